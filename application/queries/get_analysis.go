package queries

import (
	"encoding/json"
	"errors"
)

// GetAnalysisQuery represents a query to fetch the latest analysis document for an idea
type GetAnalysisQuery struct {
	UserID string
	IdeaID string
	Kind   string
}

// Validate validates the GetAnalysisQuery
func (q GetAnalysisQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.IdeaID == "" {
		return errors.New("idea ID is required")
	}
	switch q.Kind {
	case "", "analysis", "hackathon":
	default:
		return errors.New("invalid document kind")
	}
	return nil
}

// GetDocumentQuery represents a query to fetch a document by its ID
type GetDocumentQuery struct {
	UserID     string
	DocumentID string
}

// Validate validates the GetDocumentQuery
func (q GetDocumentQuery) Validate() error {
	if q.UserID == "" {
		return errors.New("user ID is required")
	}
	if q.DocumentID == "" {
		return errors.New("document ID is required")
	}
	return nil
}

// DocumentResult represents a stored analysis document
type DocumentResult struct {
	ID        string          `json:"id"`
	IdeaID    string          `json:"ideaId,omitempty"`
	Kind      string          `json:"kind"`
	Payload   json.RawMessage `json:"payload"`
	CreatedAt string          `json:"createdAt"`
}
