package queries

import "errors"

// ListIdeasQuery represents a query to list a user's ideas
type ListIdeasQuery struct {
	UserID string
	Status string
	Tag    string
	Limit  int
	Offset int
	SortBy string
	Order  string
}

// Validate validates the ListIdeasQuery
func (q ListIdeasQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.Limit < 0 || q.Offset < 0 {
		return errors.New("limit and offset must be non-negative")
	}
	switch q.Status {
	case "", "draft", "analyzed", "archived":
	default:
		return errors.New("invalid status filter")
	}
	return nil
}

// ListIdeasResult represents the result of listing ideas
type ListIdeasResult struct {
	Ideas  []IdeaResult `json:"ideas"`
	Total  int          `json:"total"`
	Limit  int          `json:"limit"`
	Offset int          `json:"offset"`
}
