package entities

import (
	"testing"

	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIdea(t *testing.T) *Idea {
	t.Helper()
	content, err := valueobjects.NewIdeaContent("Pizza drone", "Drones that deliver pizza to rooftops.")
	require.NoError(t, err)
	idea, err := NewIdea("user-1", content)
	require.NoError(t, err)
	return idea
}

func TestNewIdea(t *testing.T) {
	idea := newTestIdea(t)

	assert.False(t, idea.ID().IsZero())
	assert.Equal(t, "user-1", idea.UserID())
	assert.Equal(t, StatusDraft, idea.Status())
	assert.False(t, idea.IsDeleted())

	events := idea.GetUncommittedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "idea.created", events[0].GetEventType())
}

func TestNewIdeaRequiresUser(t *testing.T) {
	content, _ := valueobjects.NewIdeaContent("title", "body")
	_, err := NewIdea("", content)
	assert.Error(t, err)
}

func TestNewIdeaWithIDKeepsCallerID(t *testing.T) {
	id := valueobjects.NewIdeaID()
	content, _ := valueobjects.NewIdeaContent("title", "body")

	idea, err := NewIdeaWithID(id, "user-1", content)
	require.NoError(t, err)
	assert.True(t, idea.ID().Equals(id))
}

func TestUpdateContent(t *testing.T) {
	t.Run("updates and bumps version", func(t *testing.T) {
		idea := newTestIdea(t)
		before := idea.Version()

		updated, err := valueobjects.NewIdeaContent("Pizza drone v2", "Now with extra cheese tracking.")
		require.NoError(t, err)
		require.NoError(t, idea.UpdateContent(updated))

		assert.Equal(t, "Pizza drone v2", idea.Content().Title())
		assert.Greater(t, idea.Version(), before)
	})

	t.Run("resets analyzed status to draft", func(t *testing.T) {
		idea := newTestIdea(t)
		require.NoError(t, idea.MarkAnalyzed(valueobjects.NewDocumentID(), "analysis"))
		require.Equal(t, StatusAnalyzed, idea.Status())

		updated, _ := valueobjects.NewIdeaContent("New title", "New body.")
		require.NoError(t, idea.UpdateContent(updated))
		assert.Equal(t, StatusDraft, idea.Status())
	})

	t.Run("rejected on archived idea", func(t *testing.T) {
		idea := newTestIdea(t)
		require.NoError(t, idea.Archive())

		updated, _ := valueobjects.NewIdeaContent("New title", "New body.")
		assert.Error(t, idea.UpdateContent(updated))
	})

	t.Run("rejected on deleted idea", func(t *testing.T) {
		idea := newTestIdea(t)
		require.NoError(t, idea.SoftDelete())

		updated, _ := valueobjects.NewIdeaContent("New title", "New body.")
		assert.Error(t, idea.UpdateContent(updated))
	})
}

func TestSoftDelete(t *testing.T) {
	idea := newTestIdea(t)

	require.NoError(t, idea.SoftDelete())
	assert.True(t, idea.IsDeleted())
	require.NotNil(t, idea.DeletedAt())

	// Deleting twice fails
	assert.Error(t, idea.SoftDelete())
}

func TestTags(t *testing.T) {
	t.Run("add and remove", func(t *testing.T) {
		idea := newTestIdea(t)

		require.NoError(t, idea.AddTag("food"))
		require.NoError(t, idea.AddTag("drones"))
		assert.ElementsMatch(t, []string{"food", "drones"}, idea.GetTags())

		require.NoError(t, idea.RemoveTag("food"))
		assert.Equal(t, []string{"drones"}, idea.GetTags())
	})

	t.Run("duplicate tags ignored", func(t *testing.T) {
		idea := newTestIdea(t)

		require.NoError(t, idea.AddTag("food"))
		require.NoError(t, idea.AddTag("food"))
		assert.Len(t, idea.GetTags(), 1)
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		idea := newTestIdea(t)
		require.NoError(t, idea.AddTag("food"))

		tags := idea.GetTags()
		tags[0] = "mutated"
		assert.Equal(t, []string{"food"}, idea.GetTags())
	})
}

func TestMarkAnalyzed(t *testing.T) {
	idea := newTestIdea(t)
	idea.MarkEventsAsCommitted()

	docID := valueobjects.NewDocumentID()
	require.NoError(t, idea.MarkAnalyzed(docID, "analysis"))

	assert.Equal(t, StatusAnalyzed, idea.Status())

	events := idea.GetUncommittedEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "idea.analyzed", events[0].GetEventType())
}

func TestDocumentValidation(t *testing.T) {
	ideaID := valueobjects.NewIdeaID()
	payload := []byte(`{"summary":"good idea"}`)

	t.Run("valid analysis document", func(t *testing.T) {
		doc, err := NewDocument("user-1", ideaID, KindAnalysis, payload)
		require.NoError(t, err)
		assert.Equal(t, KindAnalysis, doc.Kind())
		assert.Equal(t, "user-1", doc.UserID())
	})

	t.Run("analysis requires an idea", func(t *testing.T) {
		_, err := NewDocument("user-1", valueobjects.IdeaID{}, KindAnalysis, payload)
		assert.Error(t, err)
	})

	t.Run("frankenstein stands alone", func(t *testing.T) {
		doc, err := NewDocument("user-1", valueobjects.IdeaID{}, KindFrankenstein, payload)
		require.NoError(t, err)
		assert.True(t, doc.IdeaID().IsZero())
	})

	t.Run("invalid kind rejected", func(t *testing.T) {
		_, err := NewDocument("user-1", ideaID, DocumentKind("bogus"), payload)
		assert.Error(t, err)
		assert.True(t, pkgerrors.IsValidation(err))
	})

	t.Run("invalid JSON payload rejected", func(t *testing.T) {
		_, err := NewDocument("user-1", ideaID, KindAnalysis, []byte("{not json"))
		assert.Error(t, err)
	})

	t.Run("empty payload rejected", func(t *testing.T) {
		_, err := NewDocument("user-1", ideaID, KindAnalysis, nil)
		assert.Error(t, err)
	})

	t.Run("payload is copied", func(t *testing.T) {
		raw := []byte(`{"summary":"ok"}`)
		doc, err := NewDocument("user-1", ideaID, KindAnalysis, raw)
		require.NoError(t, err)

		got := doc.Payload()
		got[0] = 'X'
		assert.Equal(t, byte('{'), doc.Payload()[0])
	})
}
