package handlers

import (
	"net/http"

	"ideaforge-backend/pkg/auth"
	"ideaforge-backend/pkg/common"
	pkgerrors "ideaforge-backend/pkg/errors"
	"ideaforge-backend/pkg/utils"

	"go.uber.org/zap"
)

// AuthHandler mints development tokens for the local storage mode. It is only
// routed when a dev token issuer exists, never in production.
type AuthHandler struct {
	tokens *auth.JWTGenerator
	errors *pkgerrors.ErrorHandler
	logger *zap.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	tokens *auth.JWTGenerator,
	errorHandler *pkgerrors.ErrorHandler,
	logger *zap.Logger,
) *AuthHandler {
	return &AuthHandler{
		tokens: tokens,
		errors: errorHandler,
		logger: logger,
	}
}

// DevTokenRequest represents the optional request body for a dev token
type DevTokenRequest struct {
	UserID string `json:"userId,omitempty" validate:"omitempty,min=1,max=100"`
	Email  string `json:"email,omitempty" validate:"omitempty,email"`
}

// DevTokenResponse represents the issued dev token
type DevTokenResponse struct {
	Token  string `json:"token"`
	UserID string `json:"userId"`
}

// IssueDevToken handles POST /auth/dev-token. The body is optional; an empty
// request issues a token for a fixed dev user.
func (h *AuthHandler) IssueDevToken(w http.ResponseWriter, r *http.Request) {
	var req DevTokenRequest
	if r.ContentLength != 0 {
		if err := common.ParseJSONBody(w, r, &req, maxRequestBody); err != nil {
			h.errors.Handle(w, r, pkgerrors.NewValidationError("invalid request body"))
			return
		}
		if err := utils.ValidateStruct(req); err != nil {
			h.errors.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
			return
		}
	}

	if req.UserID == "" {
		req.UserID = "dev-user"
	}
	if req.Email == "" {
		req.Email = req.UserID + "@localhost"
	}

	token, err := h.tokens.GenerateToken(req.UserID, req.Email, []string{"user"})
	if err != nil {
		h.logger.Error("failed to issue dev token", zap.Error(err))
		h.errors.Handle(w, r, err)
		return
	}

	h.logger.Info("dev token issued", zap.String("userID", req.UserID))

	common.RespondJSON(w, http.StatusOK, DevTokenResponse{
		Token:  token,
		UserID: req.UserID,
	})
}
