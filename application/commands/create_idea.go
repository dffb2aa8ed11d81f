package commands

import (
	"context"
	"errors"
	"unicode/utf8"

	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	"ideaforge-backend/pkg/observability"

	"go.uber.org/zap"
)

const (
	MaxTitleLength = 200
	MaxBodyLength  = 20000
	MaxTags        = 20
)

// CreateIdeaCommand represents the command to submit a new idea
type CreateIdeaCommand struct {
	IdeaID string   `json:"idea_id" validate:"required,uuid"`
	UserID string   `json:"user_id" validate:"required"`
	Title  string   `json:"title" validate:"required,min=1,max=200"`
	Body   string   `json:"body" validate:"required,max=20000"`
	Tags   []string `json:"tags" validate:"max=20,dive,min=1,max=30"`
}

// Validate validates the command
func (cmd CreateIdeaCommand) Validate() error {
	if cmd.IdeaID == "" {
		return errors.New("idea ID is required")
	}
	if cmd.UserID == "" {
		return errors.New("user ID is required")
	}
	if cmd.Title == "" {
		return errors.New("title is required")
	}
	if utf8.RuneCountInString(cmd.Title) > MaxTitleLength {
		return errors.New("title exceeds maximum length")
	}
	if utf8.RuneCountInString(cmd.Body) > MaxBodyLength {
		return errors.New("idea text exceeds maximum length")
	}
	if len(cmd.Tags) > MaxTags {
		return errors.New("too many tags")
	}
	return nil
}

// CreateIdeaHandler handles the CreateIdeaCommand
type CreateIdeaHandler struct {
	ideaRepo  ports.IdeaRepository
	publisher ports.EventPublisher
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewCreateIdeaHandler creates a new handler instance
func NewCreateIdeaHandler(
	ideaRepo ports.IdeaRepository,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *CreateIdeaHandler {
	return &CreateIdeaHandler{
		ideaRepo:  ideaRepo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle executes the create idea command
func (h *CreateIdeaHandler) Handle(ctx context.Context, cmd CreateIdeaCommand) (*entities.Idea, error) {
	ideaID, err := valueobjects.NewIdeaIDFromString(cmd.IdeaID)
	if err != nil {
		return nil, err
	}

	content, err := valueobjects.NewIdeaContent(cmd.Title, cmd.Body)
	if err != nil {
		return nil, err
	}

	idea, err := entities.NewIdeaWithID(ideaID, cmd.UserID, content)
	if err != nil {
		return nil, err
	}

	// Add tags if provided
	for _, tag := range cmd.Tags {
		if err := idea.AddTag(tag); err != nil {
			h.logger.Warn("skipping tag",
				zap.String("tag", tag),
				zap.Error(err))
			continue
		}
	}

	if err := h.ideaRepo.Save(ctx, idea); err != nil {
		return nil, err
	}

	// Publish domain events
	if err := h.publisher.PublishBatch(ctx, idea.GetUncommittedEvents()); err != nil {
		// Events can be retried downstream, do not fail the write
		h.logger.Warn("failed to publish idea events",
			zap.String("ideaID", idea.ID().String()),
			zap.Error(err))
	}
	idea.MarkEventsAsCommitted()

	if h.metrics != nil {
		h.metrics.IdeasCreated.Inc()
	}

	return idea, nil
}
