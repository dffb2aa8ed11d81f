package handlers

import (
	"net/http"
	"strconv"

	"ideaforge-backend/application/queries"
	querybus "ideaforge-backend/application/queries/bus"
	"ideaforge-backend/pkg/auth"
	"ideaforge-backend/pkg/common"
	pkgerrors "ideaforge-backend/pkg/errors"

	"go.uber.org/zap"
)

// DashboardHandler serves the dashboard overview
type DashboardHandler struct {
	queryBus *querybus.QueryBus
	errors   *pkgerrors.ErrorHandler
	logger   *zap.Logger
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	queryBus *querybus.QueryBus,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		queryBus: queryBus,
		errors:   errorHandler,
		logger:   logger,
	}
}

// GetDashboard handles GET /dashboard
func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userCtx, err := auth.GetUserFromContext(r.Context())
	if err != nil {
		h.errors.Handle(w, r, err)
		return
	}

	query := queries.GetDashboardQuery{UserID: userCtx.UserID}
	if limit := r.URL.Query().Get("limit"); limit != "" {
		query.Limit, _ = strconv.Atoi(limit)
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.logger.Error("failed to build dashboard",
			zap.String("userID", userCtx.UserID),
			zap.Error(err))
		h.errors.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
