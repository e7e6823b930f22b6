package middleware

import (
	"log/slog"
	"net/http"
	"slices"
	"strings"

	dErrors "vardef/pkg/domain-errors"
	"vardef/pkg/platform/httputil"
	"vardef/pkg/requestcontext"
)

// ActiveGroupParam selects which of the caller's groups a write acts on behalf of.
const ActiveGroupParam = "active_group"

// TokenValidator validates bearer tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// Claims is what the middleware needs from a validated token.
type Claims struct {
	Subject string
	Groups  []string
}

// RequireAuth rejects requests without a valid bearer token and stores the caller's
// identity and groups on the context.
func RequireAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header"))
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "invalid or expired token"))
				return
			}

			if group := r.URL.Query().Get(ActiveGroupParam); group != "" && !slices.Contains(claims.Groups, group) {
				logger.WarnContext(ctx, "forbidden - active group not held by caller",
					"active_group", group,
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "caller is not a member of the active group"))
				return
			}

			ctx = requestcontext.WithUser(ctx, claims.Subject, claims.Groups)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
