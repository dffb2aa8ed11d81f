package middleware

import (
	"net/http"
	"strings"

	"ideaforge-backend/pkg/auth"
	"ideaforge-backend/pkg/common"

	"go.uber.org/zap"
)

// TokenVerifier abstracts how bearer tokens are checked. Local mode verifies
// HS256 JWTs itself; hosted mode asks Supabase.
type TokenVerifier interface {
	VerifyToken(token string) (*auth.Claims, error)
}

// jwtVerifier adapts JWTValidator to the TokenVerifier interface
type jwtVerifier struct {
	validator *auth.JWTValidator
}

func (v jwtVerifier) VerifyToken(token string) (*auth.Claims, error) {
	return v.validator.ValidateToken(token)
}

// NewJWTVerifier wraps a JWTValidator as a TokenVerifier
func NewJWTVerifier(validator *auth.JWTValidator) TokenVerifier {
	return jwtVerifier{validator: validator}
}

// Authenticate creates the authentication middleware. Requests carry a bearer
// token which is checked by the verifier; the resulting user context is
// attached to the request. IP and per-user rate limits apply.
func Authenticate(verifier TokenVerifier, logger *zap.Logger) func(http.Handler) http.Handler {
	ipLimiter := auth.NewIPRateLimiter(100)     // per minute per IP
	userLimiter := auth.NewUserRateLimiter(200) // per minute per user

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			clientIP := getClientIP(r)

			allowed, _ := ipLimiter.Allow(r.Context(), clientIP)
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Rate limit exceeded")
				return
			}

			token := extractToken(r)
			if token == "" {
				common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Missing authentication token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				logger.Warn("token rejected",
					zap.String("ip", clientIP),
					zap.String("path", r.URL.Path),
					zap.Error(err))
				switch err {
				case auth.ErrExpiredToken:
					common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Token has expired")
				default:
					common.RespondError(w, http.StatusUnauthorized, "UNAUTHORIZED", "Invalid token")
				}
				return
			}

			allowed, _ = userLimiter.Allow(r.Context(), claims.UserID)
			if !allowed {
				common.RespondError(w, http.StatusTooManyRequests, "RATE_LIMITED", "User rate limit exceeded")
				return
			}

			userCtx := &auth.UserContext{
				UserID: claims.UserID,
				Email:  claims.Email,
				Roles:  claims.Roles,
			}

			ctx := auth.SetUserInContext(r.Context(), userCtx)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken pulls the bearer token from the Authorization header or the
// auth_token cookie.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
		return authHeader
	}

	if cookie, err := r.Cookie("auth_token"); err == nil {
		return cookie.Value
	}

	return ""
}

func getClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	addr := r.RemoteAddr
	if idx := strings.LastIndex(addr, ":"); idx != -1 {
		return addr[:idx]
	}
	return addr
}
