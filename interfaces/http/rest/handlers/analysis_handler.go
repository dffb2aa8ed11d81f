package handlers

import (
	"net/http"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/application/commands/bus"
	"ideaforge-backend/application/queries"
	querybus "ideaforge-backend/application/queries/bus"
	"ideaforge-backend/pkg/auth"
	"ideaforge-backend/pkg/common"
	pkgerrors "ideaforge-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnalysisHandler handles AI analysis requests for ideas
type AnalysisHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AnalysisHandler {
	return &AnalysisHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// AnalyzeIdea handles POST /ideas/{ideaID}/analysis. It runs the generative
// analysis and persists the resulting document, then returns it.
func (h *AnalysisHandler) AnalyzeIdea(w http.ResponseWriter, r *http.Request) {
	ideaID := chi.URLParam(r, "ideaID")
	if _, err := uuid.Parse(ideaID); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid idea ID"))
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	documentID := uuid.New().String()

	cmd := commands.SaveAnalysisCommand{
		UserID:     userCtx.UserID,
		IdeaID:     ideaID,
		DocumentID: documentID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("failed to analyze idea",
			zap.String("ideaID", ideaID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err))
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetDocumentQuery{
		UserID:     userCtx.UserID,
		DocumentID: documentID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}

// GetAnalysis handles GET /ideas/{ideaID}/analysis. The optional kind query
// parameter selects between the startup analysis and the hackathon report.
func (h *AnalysisHandler) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	ideaID := chi.URLParam(r, "ideaID")
	if _, err := uuid.Parse(ideaID); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid idea ID"))
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetAnalysisQuery{
		UserID: userCtx.UserID,
		IdeaID: ideaID,
		Kind:   r.URL.Query().Get("kind"),
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// EvaluateHackathon handles POST /ideas/{ideaID}/hackathon
func (h *AnalysisHandler) EvaluateHackathon(w http.ResponseWriter, r *http.Request) {
	ideaID := chi.URLParam(r, "ideaID")
	if _, err := uuid.Parse(ideaID); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid idea ID"))
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	documentID := uuid.New().String()

	cmd := commands.SaveHackathonCommand{
		UserID:     userCtx.UserID,
		IdeaID:     ideaID,
		DocumentID: documentID,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("failed to evaluate hackathon project",
			zap.String("ideaID", ideaID),
			zap.String("userID", userCtx.UserID),
			zap.Error(err))
		h.errors.Handle(w, r, err)
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.GetDocumentQuery{
		UserID:     userCtx.UserID,
		DocumentID: documentID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, result)
}
