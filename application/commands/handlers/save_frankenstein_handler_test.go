package handlers

import (
	"context"
	"testing"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/domain/analysis"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/tests/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func validConcept(first, second string) *analysis.FrankensteinConcept {
	return &analysis.FrankensteinConcept{
		Name:        "ToastBrella",
		Pitch:       "An umbrella that toasts bread while you wait for the bus.",
		Ingredients: [2]string{first, second},
		Features:    []string{"rain-powered heating", "crumb gutter"},
		Absurdity:   85,
	}
}

func TestSaveFrankensteinHandler(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("uses caller-supplied ingredients", func(t *testing.T) {
		docRepo := new(mocks.DocumentRepository)
		analyzer := new(mocks.Analyzer)
		ingredients := new(mocks.IngredientSource)
		publisher := new(mocks.EventPublisher)

		cmd := commands.SaveFrankensteinCommand{
			UserID:           "user-1",
			DocumentID:       uuid.New().String(),
			FirstIngredient:  "toaster",
			SecondIngredient: "umbrella",
		}

		analyzer.On("CombineConcepts", ctx, "toaster", "umbrella").
			Return(validConcept("toaster", "umbrella"), nil)
		docRepo.On("Save", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		handler := NewSaveFrankensteinHandler(docRepo, analyzer, ingredients, publisher, nil, logger)
		require.NoError(t, handler.Handle(ctx, cmd))

		ingredients.AssertNotCalled(t, "RandomPair")
		docRepo.AssertExpectations(t)
	})

	t.Run("draws a random pair when none supplied", func(t *testing.T) {
		docRepo := new(mocks.DocumentRepository)
		analyzer := new(mocks.Analyzer)
		ingredients := new(mocks.IngredientSource)
		publisher := new(mocks.EventPublisher)

		cmd := commands.SaveFrankensteinCommand{
			UserID:     "user-1",
			DocumentID: uuid.New().String(),
		}

		ingredients.On("RandomPair").Return("fish tank", "treadmill", nil)
		analyzer.On("CombineConcepts", ctx, "fish tank", "treadmill").
			Return(validConcept("fish tank", "treadmill"), nil)
		docRepo.On("Save", ctx, mock.Anything).Return(nil)
		publisher.On("Publish", ctx, mock.Anything).Return(nil)

		handler := NewSaveFrankensteinHandler(docRepo, analyzer, ingredients, publisher, nil, logger)
		require.NoError(t, handler.Handle(ctx, cmd))

		ingredients.AssertExpectations(t)
	})

	t.Run("rejects a single ingredient", func(t *testing.T) {
		handler := NewSaveFrankensteinHandler(
			new(mocks.DocumentRepository),
			new(mocks.Analyzer),
			new(mocks.IngredientSource),
			new(mocks.EventPublisher),
			nil, logger)

		cmd := commands.SaveFrankensteinCommand{
			UserID:          "user-1",
			DocumentID:      uuid.New().String(),
			FirstIngredient: "toaster",
		}

		assert.Error(t, handler.Handle(ctx, cmd))
	})

	t.Run("propagates provider failure", func(t *testing.T) {
		docRepo := new(mocks.DocumentRepository)
		analyzer := new(mocks.Analyzer)
		ingredients := new(mocks.IngredientSource)
		publisher := new(mocks.EventPublisher)

		cmd := commands.SaveFrankensteinCommand{
			UserID:           "user-1",
			DocumentID:       uuid.New().String(),
			FirstIngredient:  "toaster",
			SecondIngredient: "umbrella",
		}

		analyzer.On("CombineConcepts", ctx, "toaster", "umbrella").
			Return(nil, pkgerrors.NewExternalError("gemini", assert.AnError))

		handler := NewSaveFrankensteinHandler(docRepo, analyzer, ingredients, publisher, nil, logger)
		err := handler.Handle(ctx, cmd)

		assert.True(t, pkgerrors.IsExternal(err))
		docRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}
