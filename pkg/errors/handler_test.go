package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func handle(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorResponse) {
	t.Helper()
	handler := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ideas", nil)
	req.Header.Set("X-Request-ID", "req-123")

	handler.Handle(rec, req, err)

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return rec, body
}

func TestHandleStatusMapping(t *testing.T) {
	cases := map[string]struct {
		err        error
		wantStatus int
		wantType   ErrorType
	}{
		"validation":     {NewValidationError("bad input"), http.StatusBadRequest, ErrorTypeValidation},
		"not found":      {NewNotFoundError("idea"), http.StatusNotFound, ErrorTypeNotFound},
		"conflict":       {NewConflictError("document already exists"), http.StatusConflict, ErrorTypeConflict},
		"unauthorized":   {NewUnauthorizedError("missing token"), http.StatusUnauthorized, ErrorTypeUnauthorized},
		"forbidden":      {NewForbiddenError("not your idea"), http.StatusForbidden, ErrorTypeForbidden},
		"quota":          {NewQuotaExceededError(100), http.StatusInsufficientStorage, ErrorTypeQuota},
		"rate limit":     {NewRateLimitError(100, "minute"), http.StatusTooManyRequests, ErrorTypeRateLimit},
		"external":       {NewExternalError("gemini", errors.New("boom")), http.StatusBadGateway, ErrorTypeExternal},
		"unavailable":    {NewUnavailableError("analyzer"), http.StatusServiceUnavailable, ErrorTypeUnavailable},
		"storage":        {NewStorageError("save idea", errors.New("disk full")), http.StatusInternalServerError, ErrorTypeStorage},
		"plain internal": {NewInternalError("oops"), http.StatusInternalServerError, ErrorTypeInternal},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			rec, body := handle(t, tc.err)
			assert.Equal(t, tc.wantStatus, rec.Code)
			assert.True(t, body.Error)
			assert.Equal(t, string(tc.wantType), body.Type)
			assert.Equal(t, "req-123", body.RequestID)
		})
	}
}

func TestHandleHidesUnknownErrors(t *testing.T) {
	rec, body := handle(t, errors.New("pq: connection refused at 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "An internal error occurred", body.Message)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestHandleWrappedAppError(t *testing.T) {
	wrapped := NewNotFoundError("document")
	rec, _ := handle(t, Wrap(wrapped, "loading analysis"))

	// Wrapping must not lose the original status
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleNilError(t *testing.T) {
	handler := NewErrorHandler(zap.NewNop(), false)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	handler.Handle(rec, req, nil)
	assert.Empty(t, rec.Body.String())
}
