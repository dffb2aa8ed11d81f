package handlers

import (
	"context"
	"fmt"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/domain/events"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"go.uber.org/zap"
)

// DeleteIdeaHandler handles idea deletion commands
type DeleteIdeaHandler struct {
	ideaRepo  ports.IdeaRepository
	docRepo   ports.DocumentRepository
	publisher ports.EventPublisher
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewDeleteIdeaHandler creates a new delete idea handler
func NewDeleteIdeaHandler(
	ideaRepo ports.IdeaRepository,
	docRepo ports.DocumentRepository,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *DeleteIdeaHandler {
	return &DeleteIdeaHandler{
		ideaRepo:  ideaRepo,
		docRepo:   docRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle executes the delete idea command
func (h *DeleteIdeaHandler) Handle(ctx context.Context, cmd commands.DeleteIdeaCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	ideaID, err := valueobjects.NewIdeaIDFromString(cmd.IdeaID)
	if err != nil {
		return fmt.Errorf("invalid idea ID: %w", err)
	}

	// Verify idea exists and belongs to user
	idea, err := h.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}

	if idea.UserID() != cmd.UserID {
		return pkgerrors.NewForbiddenError("idea does not belong to user")
	}

	// Delete the attached documents first
	if err := h.docRepo.DeleteByIdea(ctx, ideaID); err != nil {
		h.logger.Error("failed to delete documents for idea",
			zap.String("ideaID", cmd.IdeaID),
			zap.Error(err))
		// Continue with idea deletion, orphaned documents are harmless
	}

	if cmd.Hard {
		if err := h.ideaRepo.Delete(ctx, ideaID); err != nil {
			return fmt.Errorf("failed to delete idea: %w", err)
		}
	} else {
		if err := idea.SoftDelete(); err != nil {
			return err
		}
		if err := h.ideaRepo.Save(ctx, idea); err != nil {
			return fmt.Errorf("failed to save deleted idea: %w", err)
		}
	}

	event := events.NewIdeaDeletedEvent(
		ideaID,
		cmd.UserID,
		idea.Content().Title(),
		idea.GetTags(),
		idea.UpdatedAt(),
	)
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish deletion event", zap.Error(err))
	}
	idea.MarkEventsAsCommitted()

	if h.metrics != nil {
		h.metrics.IdeasDeleted.Inc()
	}

	h.logger.Info("idea deleted",
		zap.String("ideaID", cmd.IdeaID),
		zap.String("userID", cmd.UserID),
		zap.Bool("hard", cmd.Hard))

	return nil
}
