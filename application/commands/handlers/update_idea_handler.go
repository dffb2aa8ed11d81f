package handlers

import (
	"context"
	"fmt"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"

	"go.uber.org/zap"
)

// UpdateIdeaHandler handles idea update commands
type UpdateIdeaHandler struct {
	ideaRepo  ports.IdeaRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateIdeaHandler creates a new update idea handler
func NewUpdateIdeaHandler(
	ideaRepo ports.IdeaRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdateIdeaHandler {
	return &UpdateIdeaHandler{
		ideaRepo:  ideaRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the update idea command
func (h *UpdateIdeaHandler) Handle(ctx context.Context, cmd commands.UpdateIdeaCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	ideaID, err := valueobjects.NewIdeaIDFromString(cmd.IdeaID)
	if err != nil {
		return fmt.Errorf("invalid idea ID: %w", err)
	}

	idea, err := h.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}

	if idea.UserID() != cmd.UserID {
		return pkgerrors.NewForbiddenError("idea does not belong to user")
	}

	// Restoring has to happen before content edits, archiving after them;
	// an archived idea rejects every other mutation.
	if cmd.Status != nil && *cmd.Status == commands.StatusDraft {
		if err := idea.Restore(); err != nil {
			return err
		}
	}

	// Apply partial updates on top of the current content
	if cmd.Title != nil || cmd.Body != nil {
		title := idea.Content().Title()
		body := idea.Content().Body()
		if cmd.Title != nil {
			title = *cmd.Title
		}
		if cmd.Body != nil {
			body = *cmd.Body
		}

		content, err := valueobjects.NewIdeaContent(title, body)
		if err != nil {
			return err
		}

		if err := idea.UpdateContent(content); err != nil {
			return err
		}
	}

	if cmd.AudioURL != nil {
		if err := idea.AttachAudio(*cmd.AudioURL); err != nil {
			return err
		}
	}

	if cmd.Tags != nil {
		for _, tag := range idea.GetTags() {
			if err := idea.RemoveTag(tag); err != nil {
				h.logger.Warn("failed to remove tag", zap.String("tag", tag), zap.Error(err))
			}
		}
		for _, tag := range *cmd.Tags {
			if err := idea.AddTag(tag); err != nil {
				h.logger.Warn("skipping tag", zap.String("tag", tag), zap.Error(err))
			}
		}
	}

	if cmd.Status != nil && *cmd.Status == commands.StatusArchived {
		if err := idea.Archive(); err != nil {
			return err
		}
	}

	if err := h.ideaRepo.Save(ctx, idea); err != nil {
		return err
	}

	if err := h.publisher.PublishBatch(ctx, idea.GetUncommittedEvents()); err != nil {
		h.logger.Warn("failed to publish update events",
			zap.String("ideaID", cmd.IdeaID),
			zap.Error(err))
	}
	idea.MarkEventsAsCommitted()

	h.logger.Info("idea updated",
		zap.String("ideaID", cmd.IdeaID),
		zap.String("userID", cmd.UserID))

	return nil
}
