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

// SaveAnalysisHandler runs the generative analysis for an idea and persists the result
type SaveAnalysisHandler struct {
	ideaRepo  ports.IdeaRepository
	docRepo   ports.DocumentRepository
	analyzer  ports.Analyzer
	publisher ports.EventPublisher
	metrics   *observability.Collector
	logger    *zap.Logger
}

// NewSaveAnalysisHandler creates a new save analysis handler
func NewSaveAnalysisHandler(
	ideaRepo ports.IdeaRepository,
	docRepo ports.DocumentRepository,
	analyzer ports.Analyzer,
	publisher ports.EventPublisher,
	metrics *observability.Collector,
	logger *zap.Logger,
) *SaveAnalysisHandler {
	return &SaveAnalysisHandler{
		ideaRepo:  ideaRepo,
		docRepo:   docRepo,
		analyzer:  analyzer,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Handle executes the save analysis command
func (h *SaveAnalysisHandler) Handle(ctx context.Context, cmd commands.SaveAnalysisCommand) error {
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

	report, err := h.analyzer.AnalyzeIdea(ctx, idea.Content().Title(), idea.Content().Body())
	if err != nil {
		return err
	}

	if err := report.Validate(); err != nil {
		return pkgerrors.Wrap(err, "analysis returned an invalid report")
	}

	payload, err := report.Marshal()
	if err != nil {
		return pkgerrors.Wrap(err, "failed to serialize report")
	}

	doc, err := entities.NewDocumentWithID(docID, cmd.UserID, ideaID, entities.KindAnalysis, payload, nil)
	if err != nil {
		return err
	}

	if err := h.docRepo.Save(ctx, doc); err != nil {
		return err
	}

	if err := idea.MarkAnalyzed(doc.ID(), string(entities.KindAnalysis)); err != nil {
		return err
	}
	if err := h.ideaRepo.Save(ctx, idea); err != nil {
		return err
	}

	allEvents := append(doc.GetUncommittedEvents(), idea.GetUncommittedEvents()...)
	if err := h.publisher.PublishBatch(ctx, allEvents); err != nil {
		h.logger.Warn("failed to publish analysis events",
			zap.String("ideaID", cmd.IdeaID),
			zap.Error(err))
	}
	doc.MarkEventsAsCommitted()
	idea.MarkEventsAsCommitted()

	if h.metrics != nil {
		h.metrics.DocumentsSaved.WithLabelValues(string(entities.KindAnalysis)).Inc()
	}

	h.logger.Info("analysis saved",
		zap.String("ideaID", cmd.IdeaID),
		zap.String("documentID", cmd.DocumentID),
		zap.Int("overallScore", report.Scores.Overall))

	return nil
}
