package queries

import "errors"

// GetIdeaQuery represents a query to get a single idea
type GetIdeaQuery struct {
	UserID string
	IdeaID string
}

// Validate validates the GetIdeaQuery
func (q GetIdeaQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.IdeaID == "" {
		return errors.New("idea ID is required")
	}
	return nil
}

// IdeaResult represents the result of getting an idea
type IdeaResult struct {
	ID        string   `json:"id"`
	UserID    string   `json:"userId"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Status    string   `json:"status"`
	Tags      []string `json:"tags"`
	AudioURL  string   `json:"audioUrl,omitempty"`
	Version   int      `json:"version"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}
