package handlers

import (
	"net/http"
	"strconv"

	"ideaforge-backend/application/commands"
	"ideaforge-backend/application/commands/bus"
	"ideaforge-backend/application/queries"
	querybus "ideaforge-backend/application/queries/bus"
	"ideaforge-backend/pkg/auth"
	"ideaforge-backend/pkg/common"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxRequestBody = 1 << 20 // 1 MiB

// IdeaHandler handles idea CRUD requests
type IdeaHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewIdeaHandler creates a new idea handler
func NewIdeaHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *IdeaHandler {
	return &IdeaHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CreateIdeaRequest represents the request body for creating an idea
type CreateIdeaRequest struct {
	Title string   `json:"title" validate:"required,min=1,max=200"`
	Body  string   `json:"body" validate:"required"`
	Tags  []string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
}

// UpdateIdeaRequest represents the request body for updating an idea
type UpdateIdeaRequest struct {
	Title    *string   `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Body     *string   `json:"body,omitempty"`
	Tags     *[]string `json:"tags,omitempty" validate:"omitempty,max=20,dive,max=50"`
	Status   *string   `json:"status,omitempty" validate:"omitempty,oneof=draft archived"`
	AudioURL *string   `json:"audioUrl,omitempty" validate:"omitempty,url"`
}

// CreateIdeaResponse represents the response for creating an idea
type CreateIdeaResponse struct {
	ID        string `json:"id"`
	CreatedAt string `json:"createdAt"`
}

// CreateIdea handles POST /ideas
func (h *IdeaHandler) CreateIdea(w http.ResponseWriter, r *http.Request) {
	var req CreateIdeaRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBody); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	ideaID := uuid.New().String()

	cmd := commands.CreateIdeaCommand{
		IdeaID: ideaID,
		UserID: userCtx.UserID,
		Title:  req.Title,
		Body:   req.Body,
		Tags:   req.Tags,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("failed to create idea",
			zap.String("userID", userCtx.UserID),
			zap.Error(err))
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, CreateIdeaResponse{
		ID:        ideaID,
		CreatedAt: utils.NowRFC3339(),
	})
}

// GetIdea handles GET /ideas/{ideaID}
func (h *IdeaHandler) GetIdea(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.queryBus.Ask(r.Context(), queries.GetIdeaQuery{
		UserID: userCtx.UserID,
		IdeaID: ideaID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListIdeas handles GET /ideas
func (h *IdeaHandler) ListIdeas(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	query := queries.ListIdeasQuery{
		UserID: userCtx.UserID,
		Status: r.URL.Query().Get("status"),
		Tag:    r.URL.Query().Get("tag"),
		SortBy: r.URL.Query().Get("sortBy"),
		Order:  r.URL.Query().Get("order"),
	}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		query.Limit, _ = strconv.Atoi(limit)
	}
	if offset := r.URL.Query().Get("offset"); offset != "" {
		query.Offset, _ = strconv.Atoi(offset)
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// UpdateIdea handles PUT /ideas/{ideaID}
func (h *IdeaHandler) UpdateIdea(w http.ResponseWriter, r *http.Request) {
	ideaID := chi.URLParam(r, "ideaID")
	if _, err := uuid.Parse(ideaID); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid idea ID"))
		return
	}

	var req UpdateIdeaRequest
	if err := common.ParseJSONBody(w, r, &req, maxRequestBody); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
		return
	}

	if err := utils.ValidateStruct(req); err != nil {
		h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	cmd := commands.UpdateIdeaCommand{
		UserID:   userCtx.UserID,
		IdeaID:   ideaID,
		Title:    req.Title,
		Body:     req.Body,
		Tags:     req.Tags,
		Status:   req.Status,
		AudioURL: req.AudioURL,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	// Return the updated idea
	result, err := h.queryBus.Ask(r.Context(), queries.GetIdeaQuery{
		UserID: userCtx.UserID,
		IdeaID: ideaID,
	})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// DeleteIdea handles DELETE /ideas/{ideaID}
func (h *IdeaHandler) DeleteIdea(w http.ResponseWriter, r *http.Request) {
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

	cmd := commands.DeleteIdeaCommand{
		UserID: userCtx.UserID,
		IdeaID: ideaID,
		Hard:   r.URL.Query().Get("permanent") == "true",
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
