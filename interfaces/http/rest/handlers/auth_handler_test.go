package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ideaforge-backend/pkg/auth"
	pkgerrors "ideaforge-backend/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestAuthHandler(t *testing.T) (*AuthHandler, *auth.JWTValidator) {
	t.Helper()

	const secret = "dev-token-test-secret"
	generator, err := auth.NewJWTGenerator(auth.JWTGeneratorConfig{
		SecretKey: secret,
		Issuer:    "ideaforge",
		Audience:  []string{"ideaforge-api"},
	})
	require.NoError(t, err)

	validator, err := auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    "ideaforge",
		Audience:  []string{"ideaforge-api"},
	})
	require.NoError(t, err)

	logger := zap.NewNop()
	return NewAuthHandler(generator, pkgerrors.NewErrorHandler(logger, false), logger), validator
}

func decodeDevToken(t *testing.T, rec *httptest.ResponseRecorder) DevTokenResponse {
	t.Helper()
	var envelope struct {
		Success bool             `json:"success"`
		Data    DevTokenResponse `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestIssueDevTokenDefaultsUser(t *testing.T) {
	handler, validator := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/dev-token", nil)
	rec := httptest.NewRecorder()
	handler.IssueDevToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeDevToken(t, rec)
	assert.Equal(t, "dev-user", resp.UserID)

	claims, err := validator.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "dev-user", claims.UserID)
}

func TestIssueDevTokenCustomUser(t *testing.T) {
	handler, validator := newTestAuthHandler(t)

	body := strings.NewReader(`{"userId":"alice","email":"alice@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/auth/dev-token", body)
	rec := httptest.NewRecorder()
	handler.IssueDevToken(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeDevToken(t, rec)
	assert.Equal(t, "alice", resp.UserID)

	claims, err := validator.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestIssueDevTokenRejectsBadBody(t *testing.T) {
	handler, _ := newTestAuthHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/auth/dev-token", strings.NewReader(`{"userId":`))
	rec := httptest.NewRecorder()
	handler.IssueDevToken(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
