package ports

import (
	"context"
	"time"

	"ideaforge-backend/domain/analysis"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/domain/events"
)

// IdeaRepository defines the interface for idea persistence
// This is a port in hexagonal architecture - the domain doesn't know about the implementation
type IdeaRepository interface {
	// Save persists an idea (create or update)
	Save(ctx context.Context, idea *entities.Idea) error

	// GetByID retrieves an idea by its ID
	GetByID(ctx context.Context, id valueobjects.IdeaID) (*entities.Idea, error)

	// GetByUserID retrieves all live ideas for a user
	GetByUserID(ctx context.Context, userID string) ([]*entities.Idea, error)

	// Delete removes an idea
	Delete(ctx context.Context, id valueobjects.IdeaID) error

	// Search finds ideas matching the given criteria
	Search(ctx context.Context, criteria SearchCriteria) ([]*entities.Idea, error)

	// CountByUserID returns the number of live ideas for a user
	CountByUserID(ctx context.Context, userID string) (int, error)
}

// DocumentRepository defines the interface for analysis document persistence
type DocumentRepository interface {
	// Save persists a document, enforcing any per-user storage quota
	Save(ctx context.Context, doc *entities.Document) error

	// GetByID retrieves a document owned by the given user
	GetByID(ctx context.Context, userID string, id valueobjects.DocumentID) (*entities.Document, error)

	// GetLatestByIdea retrieves the most recent document of a kind for an idea
	GetLatestByIdea(ctx context.Context, ideaID valueobjects.IdeaID, kind entities.DocumentKind) (*entities.Document, error)

	// ListByUser retrieves documents for a user, newest first
	ListByUser(ctx context.Context, userID string, kind entities.DocumentKind, limit int) ([]*entities.Document, error)

	// DeleteByIdea removes all documents attached to an idea
	DeleteByIdea(ctx context.Context, ideaID valueobjects.IdeaID) error

	// CountByUser returns the number of documents stored for a user
	CountByUser(ctx context.Context, userID string) (int, error)
}

// SearchCriteria defines search parameters
type SearchCriteria struct {
	UserID    string
	Query     string
	Tags      []string
	Status    string
	Limit     int
	Offset    int
	OrderBy   string
	OrderDesc bool
}

// Analyzer defines the interface for the generative analysis provider
type Analyzer interface {
	// AnalyzeIdea produces a structured report for a startup idea
	AnalyzeIdea(ctx context.Context, title, body string) (*analysis.Report, error)

	// EvaluateHackathon scores a project the way a hackathon jury would
	EvaluateHackathon(ctx context.Context, title, body string) (*analysis.HackathonReport, error)

	// CombineConcepts mashes two unrelated ingredients into a product concept
	CombineConcepts(ctx context.Context, first, second string) (*analysis.FrankensteinConcept, error)
}

// IngredientSource supplies random ingredient pairs for concept mashups
type IngredientSource interface {
	// RandomPair returns two distinct ingredients
	RandomPair() (string, string, error)

	// All returns the full ingredient pool
	All() []string
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	// Publish sends a single event
	Publish(ctx context.Context, event events.DomainEvent) error

	// PublishBatch sends multiple events
	PublishBatch(ctx context.Context, events []events.DomainEvent) error
}

// Cache holds short-lived read-side results, keyed by caller-chosen strings
type Cache interface {
	// Get retrieves a value from cache
	Get(ctx context.Context, key string) (interface{}, bool)

	// Set stores a value in cache for the given lifetime
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes a value from cache
	Delete(ctx context.Context, key string) error

	// Clear removes all values from cache
	Clear(ctx context.Context) error
}
