package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/Ngapa/banyu-job-vacation/internal/common"
	"github.com/Ngapa/banyu-job-vacation/internal/domain/user"
	"github.com/Ngapa/banyu-job-vacation/internal/http/response"
	"github.com/Ngapa/banyu-job-vacation/internal/security"
)

type contextKey string

const (
	ContextUserIDKey contextKey = "user_id"
	ContextRoleKey   contextKey = "role"
)

type AuthMiddleware struct {
	jwt *security.JWTProvider
}

func NewAuthMiddleware(jwt *security.JWTProvider) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwt}
}

// Authenticate rejects requests without a valid bearer token.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := m.identify(r)
		if err != nil {
			response.Error(w, err)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Optional populates the request identity when a valid token is present and
// passes the request through untouched otherwise. Handlers that carry their
// own anonymous response shape (the favorite toggle) sit behind this.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, err := m.identify(r)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) identify(r *http.Request) (context.Context, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return nil, common.NewError(common.CodeUnauthorized, "missing authorization header", nil)
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, common.NewError(common.CodeUnauthorized, "invalid authorization header", nil)
	}
	claims, err := m.jwt.Parse(parts[1])
	if err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid token", err)
	}
	userID, err := common.ParseUUID(claims.UserID)
	if err != nil {
		return nil, common.NewError(common.CodeUnauthorized, "invalid user id", err)
	}
	role := user.Role(strings.ToLower(strings.TrimSpace(claims.Role)))
	ctx := context.WithValue(r.Context(), ContextUserIDKey, userID)
	ctx = context.WithValue(ctx, ContextRoleKey, role)
	return ctx, nil
}

func RequireRole(role user.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			activeRole, ok := r.Context().Value(ContextRoleKey).(user.Role)
			if !ok || activeRole == "" {
				response.Error(w, common.NewError(common.CodeForbidden, "role not found", nil))
				return
			}
			if activeRole != role {
				response.Error(w, common.NewError(common.CodeForbidden, "insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func UserIDFromContext(ctx context.Context) (common.UUID, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(common.UUID)
	return id, ok
}

func RoleFromContext(ctx context.Context) (user.Role, bool) {
	role, ok := ctx.Value(ContextRoleKey).(user.Role)
	return role, ok
}
