package queries

import "errors"

// GetDashboardQuery represents a query for a user's dashboard overview
type GetDashboardQuery struct {
	UserID string
	Limit  int
}

// Validate validates the GetDashboardQuery
func (q GetDashboardQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Limit < 0 {
		return errors.New("limit must be non-negative")
	}
	return nil
}

// DashboardResult aggregates everything the dashboard view needs
type DashboardResult struct {
	IdeaCount       int              `json:"ideaCount"`
	DocumentCount   int              `json:"documentCount"`
	AverageScore    float64          `json:"averageScore"`
	RecentIdeas     []IdeaResult     `json:"recentIdeas"`
	RecentDocuments []DocumentResult `json:"recentDocuments"`
	StatusBreakdown map[string]int   `json:"statusBreakdown"`
}

// ListIngredientsQuery represents a query for the frankenstein ingredient pool
type ListIngredientsQuery struct{}

// Validate validates the ListIngredientsQuery
func (q ListIngredientsQuery) Validate() error {
	return nil
}

// ListIngredientsResult lists the available ingredients and offers a random
// pair for the slot machine spin
type ListIngredientsResult struct {
	First       string   `json:"first"`
	Second      string   `json:"second"`
	Ingredients []string `json:"ingredients"`
}
