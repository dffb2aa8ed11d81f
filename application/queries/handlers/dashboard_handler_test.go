package handlers

import (
	"context"
	"fmt"
	"testing"

	"ideaforge-backend/application/queries"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/infrastructure/cache"
	"ideaforge-backend/tests/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func analysisDocWithScore(t *testing.T, userID string, overall int) *entities.Document {
	t.Helper()
	payload := fmt.Sprintf(`{"summary":"s","scores":{"overall":%d}}`, overall)
	doc, err := entities.NewDocument(userID, valueobjects.NewIdeaID(), entities.KindAnalysis, []byte(payload))
	require.NoError(t, err)
	return doc
}

func TestGetDashboardHandler(t *testing.T) {
	ctx := context.Background()

	draft := storedIdea(t, "user-1")
	analyzed := storedIdea(t, "user-1")
	require.NoError(t, analyzed.MarkAnalyzed(valueobjects.NewDocumentID(), string(entities.KindAnalysis)))

	docs := []*entities.Document{
		analysisDocWithScore(t, "user-1", 80),
		analysisDocWithScore(t, "user-1", 60),
	}
	frank, err := entities.NewDocument("user-1", valueobjects.IdeaID{}, entities.KindFrankenstein, []byte(`{"name":"ToastAlarm"}`))
	require.NoError(t, err)
	docs = append(docs, frank)

	ideaRepo := new(mocks.IdeaRepository)
	docRepo := new(mocks.DocumentRepository)
	ideaRepo.On("GetByUserID", ctx, "user-1").Return([]*entities.Idea{draft, analyzed}, nil)
	docRepo.On("CountByUser", ctx, "user-1").Return(3, nil)
	docRepo.On("ListByUser", ctx, "user-1", entities.DocumentKind(""), defaultDashboardLimit).Return(docs, nil)

	handler := NewGetDashboardHandler(ideaRepo, docRepo, nil, zap.NewNop())
	result, err := handler.Handle(ctx, queries.GetDashboardQuery{UserID: "user-1"})
	require.NoError(t, err)

	assert.Equal(t, 2, result.IdeaCount)
	assert.Equal(t, 3, result.DocumentCount)
	assert.Len(t, result.RecentIdeas, 2)
	assert.Len(t, result.RecentDocuments, 3)
	assert.Equal(t, 1, result.StatusBreakdown[string(entities.StatusDraft)])
	assert.Equal(t, 1, result.StatusBreakdown[string(entities.StatusAnalyzed)])
	// Frankenstein documents do not count toward the average
	assert.InDelta(t, 70.0, result.AverageScore, 0.001)
}

func TestGetDashboardHandlerCachesResult(t *testing.T) {
	ctx := context.Background()

	ideaRepo := new(mocks.IdeaRepository)
	docRepo := new(mocks.DocumentRepository)
	ideaRepo.On("GetByUserID", ctx, "user-1").Return([]*entities.Idea{storedIdea(t, "user-1")}, nil).Once()
	docRepo.On("CountByUser", ctx, "user-1").Return(1, nil).Once()
	docRepo.On("ListByUser", ctx, "user-1", entities.DocumentKind(""), defaultDashboardLimit).
		Return([]*entities.Document{analysisDocWithScore(t, "user-1", 50)}, nil).Once()

	store := cache.NewMemory()
	defer store.Stop()

	handler := NewGetDashboardHandler(ideaRepo, docRepo, store, zap.NewNop())

	first, err := handler.Handle(ctx, queries.GetDashboardQuery{UserID: "user-1"})
	require.NoError(t, err)

	// Second call within the TTL is served from cache; the Once expectations
	// above fail the test if the repositories are hit again.
	second, err := handler.Handle(ctx, queries.GetDashboardQuery{UserID: "user-1"})
	require.NoError(t, err)

	assert.Same(t, first, second)
	ideaRepo.AssertExpectations(t)
	docRepo.AssertExpectations(t)
}

func TestGetDashboardHandlerEmpty(t *testing.T) {
	ctx := context.Background()

	ideaRepo := new(mocks.IdeaRepository)
	docRepo := new(mocks.DocumentRepository)
	ideaRepo.On("GetByUserID", ctx, "user-1").Return([]*entities.Idea{}, nil)
	docRepo.On("CountByUser", ctx, "user-1").Return(0, nil)
	docRepo.On("ListByUser", ctx, "user-1", entities.DocumentKind(""), defaultDashboardLimit).Return([]*entities.Document{}, nil)

	handler := NewGetDashboardHandler(ideaRepo, docRepo, nil, zap.NewNop())
	result, err := handler.Handle(ctx, queries.GetDashboardQuery{UserID: "user-1"})
	require.NoError(t, err)

	assert.Zero(t, result.IdeaCount)
	assert.Zero(t, result.AverageScore)
	assert.NotNil(t, result.RecentIdeas)
	assert.NotNil(t, result.RecentDocuments)
}

func TestListIngredientsHandler(t *testing.T) {
	source := new(mocks.IngredientSource)
	source.On("RandomPair").Return("toaster", "umbrella", nil)
	source.On("All").Return([]string{"toaster", "umbrella", "houseplant"})

	handler := NewListIngredientsHandler(source)
	result, err := handler.Handle(context.Background(), queries.ListIngredientsQuery{})
	require.NoError(t, err)

	assert.Equal(t, "toaster", result.First)
	assert.Equal(t, "umbrella", result.Second)
	assert.Len(t, result.Ingredients, 3)
}
