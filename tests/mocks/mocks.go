// Package mocks provides testify mocks for the application ports.
package mocks

import (
	"context"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/analysis"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/domain/events"

	"github.com/stretchr/testify/mock"
)

// IdeaRepository mocks ports.IdeaRepository
type IdeaRepository struct {
	mock.Mock
}

func (m *IdeaRepository) Save(ctx context.Context, idea *entities.Idea) error {
	args := m.Called(ctx, idea)
	return args.Error(0)
}

func (m *IdeaRepository) GetByID(ctx context.Context, id valueobjects.IdeaID) (*entities.Idea, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Idea), args.Error(1)
}

func (m *IdeaRepository) GetByUserID(ctx context.Context, userID string) ([]*entities.Idea, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Idea), args.Error(1)
}

func (m *IdeaRepository) Delete(ctx context.Context, id valueobjects.IdeaID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *IdeaRepository) Search(ctx context.Context, criteria ports.SearchCriteria) ([]*entities.Idea, error) {
	args := m.Called(ctx, criteria)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Idea), args.Error(1)
}

func (m *IdeaRepository) CountByUserID(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// DocumentRepository mocks ports.DocumentRepository
type DocumentRepository struct {
	mock.Mock
}

func (m *DocumentRepository) Save(ctx context.Context, doc *entities.Document) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *DocumentRepository) GetByID(ctx context.Context, userID string, id valueobjects.DocumentID) (*entities.Document, error) {
	args := m.Called(ctx, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *DocumentRepository) GetLatestByIdea(ctx context.Context, ideaID valueobjects.IdeaID, kind entities.DocumentKind) (*entities.Document, error) {
	args := m.Called(ctx, ideaID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Document), args.Error(1)
}

func (m *DocumentRepository) ListByUser(ctx context.Context, userID string, kind entities.DocumentKind, limit int) ([]*entities.Document, error) {
	args := m.Called(ctx, userID, kind, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Document), args.Error(1)
}

func (m *DocumentRepository) DeleteByIdea(ctx context.Context, ideaID valueobjects.IdeaID) error {
	args := m.Called(ctx, ideaID)
	return args.Error(0)
}

func (m *DocumentRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	args := m.Called(ctx, userID)
	return args.Int(0), args.Error(1)
}

// Analyzer mocks ports.Analyzer
type Analyzer struct {
	mock.Mock
}

func (m *Analyzer) AnalyzeIdea(ctx context.Context, title, body string) (*analysis.Report, error) {
	args := m.Called(ctx, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.Report), args.Error(1)
}

func (m *Analyzer) EvaluateHackathon(ctx context.Context, title, body string) (*analysis.HackathonReport, error) {
	args := m.Called(ctx, title, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.HackathonReport), args.Error(1)
}

func (m *Analyzer) CombineConcepts(ctx context.Context, first, second string) (*analysis.FrankensteinConcept, error) {
	args := m.Called(ctx, first, second)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analysis.FrankensteinConcept), args.Error(1)
}

// IngredientSource mocks ports.IngredientSource
type IngredientSource struct {
	mock.Mock
}

func (m *IngredientSource) RandomPair() (string, string, error) {
	args := m.Called()
	return args.String(0), args.String(1), args.Error(2)
}

func (m *IngredientSource) All() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

// EventPublisher mocks ports.EventPublisher
type EventPublisher struct {
	mock.Mock
}

func (m *EventPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *EventPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	args := m.Called(ctx, batch)
	return args.Error(0)
}
