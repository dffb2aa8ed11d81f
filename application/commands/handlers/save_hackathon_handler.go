package handlers

import (
	"context"
	"fmt"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/application/ports"
	"ideaforge-backend/domain/core/entities"
	"ideaforge-backend/domain/core/valueobjects"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/observability"

	"go.uber.org/zap"
)

// SaveHackathonHandler evaluates an idea as a hackathon project and persists the verdict
type SaveHackathonHandler struct {
	ideaRepo  ports.IdeaRepository
	docRepo   ports.DocumentRepository
	analyzer  ports.Analyzer
	publisher ports.EventPublisher
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewSaveHackathonHandler creates a new save hackathon handler
func NewSaveHackathonHandler(
	ideaRepo ports.IdeaRepository,
	docRepo ports.DocumentRepository,
	analyzer ports.Analyzer,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *SaveHackathonHandler {
	return &SaveHackathonHandler{
		ideaRepo:  ideaRepo,
		docRepo:   docRepo,
		analyzer:  analyzer,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle executes the save hackathon command
func (h *SaveHackathonHandler) Handle(ctx context.Context, cmd commands.SaveHackathonCommand) error {
	if err := cmd.Validate(); err != nil {
		return fmt.Errorf("invalid command: %w", err)
	}

	ideaID, err := valueobjects.NewIdeaIDFromString(cmd.IdeaID)
	if err != nil {
		return fmt.Errorf("invalid idea ID: %w", err)
	}

	docID, err := valueobjects.NewDocumentIDFromString(cmd.DocumentID)
	if err != nil {
		return fmt.Errorf("invalid document ID: %w", err)
	}

	idea, err := h.ideaRepo.GetByID(ctx, ideaID)
	if err != nil {
		return err
	}

	if idea.UserID() != cmd.UserID {
		return pkgerrors.NewForbiddenError("idea does not belong to user")
	}

	report, err := h.analyzer.EvaluateHackathon(ctx, idea.Content().Title(), idea.Content().Body())
	if err != nil {
		return err
	}

	if err := report.Validate(); err != nil {
		return pkgerrors.Wrap(err, "evaluation returned an invalid report")
	}

	payload, err := report.Marshal()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to serialize report")
	}

	doc, err := entities.NewDocumentWithID(docID, cmd.UserID, ideaID, entities.KindHackathon, payload, nil)
	if err != nil {
		return err
	}

	if err := h.docRepo.Save(ctx, doc); err != nil {
		return err
	}

	if err := idea.MarkAnalyzed(doc.ID(), string(entities.KindHackathon)); err != nil {
		return err
	}
	if err := h.ideaRepo.Save(ctx, idea); err != nil {
		return err
	}

	allEvents := append(doc.GetUncommittedEvents(), idea.GetUncommittedEvents()...)
	if err := h.publisher.PublishBatch(ctx, allEvents); err != nil {
		h.logger.Warn("failed to publish hackathon events",
			zap.String("ideaID", cmd.IdeaID),
			zap.Error(err))
	}
	doc.MarkEventsAsCommitted()
	idea.MarkEventsAsCommitted()

	if h.metrics != nil {
		h.metrics.DocumentsSaved.WithLabelValues(string(entities.KindHackathon)).Inc()
	}

	h.logger.Info("hackathon evaluation saved",
		zap.String("ideaID", cmd.IdeaID),
		zap.String("documentID", cmd.DocumentID),
		zap.Int("impact", report.Scores.Impact))

	return nil
}
