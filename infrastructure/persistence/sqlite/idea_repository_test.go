package sqlite

import (
	"context"
	"testing"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestIdea(t *testing.T, userID, title, body string) *entities.Idea {
	t.Helper()
	content, err := valueobjects.NewIdeaContent(title, body)
	require.NoError(t, err)
	idea, err := entities.NewIdea(userID, content)
	require.NoError(t, err)
	return idea
}

func TestIdeaRepositorySaveAndGet(t *testing.T) {
	store := newTestStore(t)
	repo := NewIdeaRepository(store, zap.NewNop())
	ctx := context.Background()

	idea := newTestIdea(t, "user-1", "Solar kettle", "A kettle that boils water with sunlight")
	require.NoError(t, idea.AddTag("hardware"))

	require.NoError(t, repo.Save(ctx, idea))

	got, err := repo.GetByID(ctx, idea.ID())
	require.NoError(t, err)
	assert.True(t, got.ID().Equals(idea.ID()))
	assert.Equal(t, "user-1", got.UserID())
	assert.Equal(t, "Solar kettle", got.Content().Title())
	assert.Equal(t, []string{"hardware"}, got.GetTags())
	assert.Equal(t, entities.StatusDraft, got.Status())
}

func TestIdeaRepositorySaveIsUpsert(t *testing.T) {
	store := newTestStore(t)
	repo := NewIdeaRepository(store, zap.NewNop())
	ctx := context.Background()

	idea := newTestIdea(t, "user-1", "Original", "First version of the idea body")
	require.NoError(t, repo.Save(ctx, idea))

	updated, err := valueobjects.NewIdeaContent("Revised", "Second version of the idea body")
	require.NoError(t, err)
	require.NoError(t, idea.UpdateContent(updated))
	require.NoError(t, repo.Save(ctx, idea))

	got, err := repo.GetByID(ctx, idea.ID())
	require.NoError(t, err)
	assert.Equal(t, "Revised", got.Content().Title())

	count, err := repo.CountByUserID(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestIdeaRepositoryGetByIDNotFound(t *testing.T) {
	store := newTestStore(t)
	repo := NewIdeaRepository(store, zap.NewNop())

	_, err := repo.GetByID(context.Background(), valueobjects.NewIdeaID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestIdeaRepositoryGetByUserIDSkipsDeleted(t *testing.T) {
	store := newTestStore(t)
	repo := NewIdeaRepository(store, zap.NewNop())
	ctx := context.Background()

	live := newTestIdea(t, "user-1", "Live idea", "This one stays visible in listings")
	require.NoError(t, repo.Save(ctx, live))

	deleted := newTestIdea(t, "user-1", "Deleted idea", "This one is soft deleted and hidden")
	require.NoError(t, deleted.SoftDelete())
	require.NoError(t, repo.Save(ctx, deleted))

	other := newTestIdea(t, "user-2", "Other user", "Belongs to somebody else entirely")
	require.NoError(t, repo.Save(ctx, other))

	ideas, err := repo.GetByUserID(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	assert.Equal(t, "Live idea", ideas[0].Content().Title())
}

func TestIdeaRepositoryDelete(t *testing.T) {
	store := newTestStore(t)
	repo := NewIdeaRepository(store, zap.NewNop())
	ctx := context.Background()

	idea := newTestIdea(t, "user-1", "Short lived", "Created only to be removed again")
	require.NoError(t, repo.Save(ctx, idea))
	require.NoError(t, repo.Delete(ctx, idea.ID()))

	_, err := repo.GetByID(ctx, idea.ID())
	assert.True(t, pkgerrors.IsNotFound(err))

	err = repo.Delete(ctx, idea.ID())
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestIdeaRepositorySearch(t *testing.T) {
	store := newTestStore(t)
	repo := NewIdeaRepository(store, zap.NewNop())
	ctx := context.Background()

	kettle := newTestIdea(t, "user-1", "Solar kettle", "Boils water with concentrated sunlight")
	require.NoError(t, kettle.AddTag("hardware"))
	require.NoError(t, repo.Save(ctx, kettle))

	app := newTestIdea(t, "user-1", "Recipe app", "Suggests dinners from leftover ingredients")
	require.NoError(t, app.AddTag("software"))
	require.NoError(t, app.MarkAnalyzed(valueobjects.NewDocumentID(), string(entities.KindAnalysis)))
	require.NoError(t, repo.Save(ctx, app))

	t.Run("by text", func(t *testing.T) {
		ideas, err := repo.Search(ctx, ports.SearchCriteria{UserID: "user-1", Query: "sunlight"})
		require.NoError(t, err)
		require.Len(t, ideas, 1)
		assert.Equal(t, "Solar kettle", ideas[0].Content().Title())
	})

	t.Run("by status", func(t *testing.T) {
		ideas, err := repo.Search(ctx, ports.SearchCriteria{UserID: "user-1", Status: string(entities.StatusAnalyzed)})
		require.NoError(t, err)
		require.Len(t, ideas, 1)
		assert.Equal(t, "Recipe app", ideas[0].Content().Title())
	})

	t.Run("by tag", func(t *testing.T) {
		ideas, err := repo.Search(ctx, ports.SearchCriteria{UserID: "user-1", Tags: []string{"hardware"}})
		require.NoError(t, err)
		require.Len(t, ideas, 1)
		assert.Equal(t, "Solar kettle", ideas[0].Content().Title())
	})

	t.Run("no match", func(t *testing.T) {
		ideas, err := repo.Search(ctx, ports.SearchCriteria{UserID: "user-1", Query: "blockchain"})
		require.NoError(t, err)
		assert.Empty(t, ideas)
	})

	t.Run("pagination", func(t *testing.T) {
		ideas, err := repo.Search(ctx, ports.SearchCriteria{UserID: "user-1", Limit: 1, Offset: 1})
		require.NoError(t, err)
		assert.Len(t, ideas, 1)
	})
}
