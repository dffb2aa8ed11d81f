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
	"ideaforge-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// FrankensteinHandler handles the concept mashup endpoints
type FrankensteinHandler struct {
	commandBus *bus.CommandBus
	queryBus   *querybus.QueryBus
	errors     *pkgerrors.ErrorHandler
	logger     *zap.Logger
}

// NewFrankensteinHandler creates a new frankenstein handler
func NewFrankensteinHandler(
	commandBus *bus.CommandBus,
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *FrankensteinHandler {
	return &FrankensteinHandler{
		commandBus: commandBus,
		queryBus:   queryBus,
		errors:     errorHandler,
		logger:     logger,
	}
}

// CombineRequest represents the request body for a frankenstein mashup.
// Both ingredients may be omitted, in which case the server draws a random
// pair from the pool.
type CombineRequest struct {
	FirstIngredient  string `json:"firstIngredient,omitempty" validate:"omitempty,max=100"`
	SecondIngredient string `json:"secondIngredient,omitempty" validate:"omitempty,max=100"`
}

// Combine handles POST /frankenstein. It generates a mashup concept and
// persists it as a document, then returns the document.
func (h *FrankensteinHandler) Combine(w http.ResponseWriter, r *http.Request) {
	var req CombineRequest
	if r.ContentLength > 0 {
		if err := common.ParseJSONBody(w, r, &req, maxRequestBody); err != nil {
			h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
			return
		}
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

	documentID := uuid.New().String()

	cmd := commands.SaveFrankensteinCommand{
		UserID:           userCtx.UserID,
		DocumentID:       documentID,
		FirstIngredient:  req.FirstIngredient,
		SecondIngredient: req.SecondIngredient,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.logger.Error("failed to combine concepts",
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

// Ingredients handles GET /frankenstein/ingredients
func (h *FrankensteinHandler) Ingredients(w http.ResponseWriter, r *http.Request) {
	result, err := h.queryBus.Ask(r.Context(), queries.ListIngredientsQuery{})
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
