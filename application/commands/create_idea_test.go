package commands

import (
	"context"
	"testing"

	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/pkg/observability"
	"ideaforge-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validCreateCommand() CreateIdeaCommand {
	return CreateIdeaCommand{
		IdeaID: uuid.New().String(),
		UserID: "user-1",
		Title:  "Pizza drone",
		Body:   "Rooftop pizza delivery by drone.",
		Tags:   []string{"food", "drones"},
	}
}

func TestCreateIdeaHandler(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("persists the idea with tags", func(t *testing.T) {
		ideaRepo := new(mocks.IdeaRepository)
		publisher := new(mocks.EventPublisher)
		ideaRepo.On("Save", ctx, mock.AnythingOfType("*entities.Idea")).Return(nil)
		publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

		handler := NewCreateIdeaHandler(ideaRepo, publisher, nil, logger)
		idea, err := handler.Handle(ctx, validCreateCommand())

		require.NoError(t, err)
		assert.Equal(t, entities.StatusDraft, idea.Status())
		assert.ElementsMatch(t, []string{"food", "drones"}, idea.GetTags())
		ideaRepo.AssertExpectations(t)
	})

	t.Run("counts created ideas", func(t *testing.T) {
		collector := observability.NewCollector("test")
		ideaRepo := new(mocks.IdeaRepository)
		publisher := new(mocks.EventPublisher)
		ideaRepo.On("Save", ctx, mock.AnythingOfType("*entities.Idea")).Return(nil)
		publisher.On("PublishBatch", ctx, mock.Anything).Return(nil)

		handler := NewCreateIdeaHandler(ideaRepo, publisher, collector, logger)

		before := testutil.ToFloat64(collector.IdeasCreated)
		_, err := handler.Handle(ctx, validCreateCommand())
		require.NoError(t, err)

		assert.Equal(t, before+1, testutil.ToFloat64(collector.IdeasCreated))
	})

	t.Run("does not count a failed save", func(t *testing.T) {
		collector := observability.NewCollector("test")
		ideaRepo := new(mocks.IdeaRepository)
		publisher := new(mocks.EventPublisher)
		ideaRepo.On("Save", ctx, mock.AnythingOfType("*entities.Idea")).Return(assert.AnError)

		handler := NewCreateIdeaHandler(ideaRepo, publisher, collector, logger)

		before := testutil.ToFloat64(collector.IdeasCreated)
		_, err := handler.Handle(ctx, validCreateCommand())
		require.Error(t, err)

		assert.Equal(t, before, testutil.ToFloat64(collector.IdeasCreated))
	})
}
