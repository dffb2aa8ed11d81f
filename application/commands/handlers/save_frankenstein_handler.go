package handlers

import (
	"context"
	"fmt"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/domain/events"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"go.uber.org/zap"
)

// SaveFrankensteinHandler mashes two ingredients into a concept and persists it
type SaveFrankensteinHandler struct {
	docRepo     ports.DocumentRepository
	analyzer    ports.Analyzer
	ingredients ports.IngredientSource
	publisher   ports.EventPublisher
	metrics     *observability.Collector
	logger      *zap.Logger
}

// NewSaveFrankensteinHandler creates a new frankenstein handler
func NewSaveFrankensteinHandler(
	docRepo ports.DocumentRepository,
	analyzer ports.Analyzer,
	ingredients ports.IngredientSource,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *SaveFrankensteinHandler {
	return &SaveFrankensteinHandler{
		docRepo:     docRepo,
		analyzer:    analyzer,
		ingredients: ingredients,
		publisher:   publisher,
		metrics:     metrics,
		logger:      logger,
	}
}

// Handle executes the save frankenstein command
func (h *SaveFrankensteinHandler) Handle(ctx context.Context, cmd commands.SaveFrankensteinCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	docID, err := valueobjects.NewDocumentIDFromString(cmd.DocumentID)
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}

	first, second := cmd.FirstIngredient, cmd.SecondIngredient
	if first == "" {
		first, second, err = h.ingredients.RandomPair()
		if err != nil {
			return err
		}
	}

	concept, err := h.analyzer.CombineConcepts(ctx, first, second)
	if err != nil {
		return err
	}

	// The provider occasionally drops the ingredients from its output
	if concept.Ingredients[0] == "" {
		concept.Ingredients = [2]string{first, second}
	}

	if err := concept.Validate(); err != nil {
		return pkgerrors.Wrap(err, "combination returned an invalid concept")
	}

	payload, err := concept.Marshal()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to serialize concept")
	}

	doc, err := entities.NewDocumentWithID(docID, cmd.UserID, valueobjects.IdeaID{}, entities.KindFrankenstein, payload, nil)
	if err != nil {
		return err
	}

	if err := h.docRepo.Save(ctx, doc); err != nil {
		return err
	}

	event := events.NewFrankensteinIdeaCreated(doc.ID(), cmd.UserID, concept.Ingredients, doc.CreatedAt())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish frankenstein event", zap.Error(err))
	}
	doc.MarkEventsAsCommitted()

	if h.metrics != nil {
		h.metrics.DocumentsSaved.WithLabelValues(string(entities.KindFrankenstein)).Inc()
	}

	h.logger.Info("frankenstein concept saved",
		zap.String("documentID", cmd.DocumentID),
		zap.String("first", first),
		zap.String("second", second),
		zap.Int("absurdity", concept.Absurdity))

	return nil
}
