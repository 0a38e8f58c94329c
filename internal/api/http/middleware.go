package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"unimitr-backend/internal/config"
	"unimitr-backend/internal/domain"
	"unimitr-backend/internal/logger"
	"unimitr-backend/internal/security"
)

type contextKey int

const claimsKey contextKey = iota

// ClaimsFromContext returns the validated access token claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.UserClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*security.UserClaims)
	return c, ok
}

// actorID is the id of the authenticated caller, or nil for anonymous callers.
func actorID(ctx context.Context) *int64 {
	if c, ok := ClaimsFromContext(ctx); ok {
		id := c.UserID
		return &id
	}
	return nil
}

// AuthMiddleware resolves bearer tokens and enforces the per-domain access table.
type AuthMiddleware struct {
	tokenManager security.TokenManager
	access       config.AccessConfig
}

func NewAuthMiddleware(tm security.TokenManager, access config.AccessConfig) *AuthMiddleware {
	return &AuthMiddleware{tokenManager: tm, access: access}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	// Remove Bearer prefix if present
	if len(header) > 7 && strings.ToUpper(header[0:7]) == "BEARER " {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

// Authenticate attaches claims for a valid access token. Requests without
// one continue anonymously; the route decides whether that is enough.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractToken(r)
		if token != "" {
			claims, err := m.tokenManager.ValidateToken(token)
			if err == nil && claims.Type == security.TokenTypeAccess {
				r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
			} else {
				logger.Debug("Ignoring unusable bearer token", "path", r.URL.Path, "error", err)
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireUser rejects anonymous callers with 401.
func (m *AuthMiddleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFromContext(r.Context()); !ok {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		next(w, r)
	}
}

// RequireStaff rejects anonymous callers with 401 and non-staff with 403.
func (m *AuthMiddleware) RequireStaff(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		if claims, _ := ClaimsFromContext(r.Context()); !claims.IsStaff {
			writeError(w, r, domain.ErrForbidden)
			return
		}
		next(w, r)
	})
}

// Require gates next by the configured level of op on kind: 401 without
// a valid access token, 403 when the token lacks staff.
func (m *AuthMiddleware) Require(kind domain.Kind, op config.Operation, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		level := m.access.GetSecurityLevel(kind, op)

		// Public endpoint - skip auth
		if level == config.SecurityAnonymous {
			next(w, r)
			return
		}

		claims, ok := ClaimsFromContext(r.Context())
		if !ok {
			writeDetail(w, http.StatusUnauthorized, "Authentication credentials were not provided.")
			return
		}
		if !claims.IsStaff {
			logger.Info("Access denied", "kind", kind, "operation", op, "userID", claims.UserID)
			writeError(w, r, domain.ErrForbidden)
			return
		}
		next(w, r)
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.HTTPRequest(r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}

// StripTrailingSlash lets every route match with or without its trailing slash.
func StripTrailingSlash(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if p := r.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
			r.URL.Path = strings.TrimRight(p, "/")
			if r.URL.Path == "" {
				r.URL.Path = "/"
			}
		}
		next.ServeHTTP(w, r)
	})
}
