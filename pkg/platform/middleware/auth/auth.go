package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"bibliodesk/pkg/requestcontext"
)

// Claims carries what the gateway needs from a verified staff token.
type Claims struct {
	OperatorID string
	Role       string
}

// Verifier validates a bearer token and returns its claims.
// The platform auth service mints the tokens; the gateway only verifies.
type Verifier interface {
	Verify(tokenString string) (*Claims, error)
}

// RoleStaff is the minimum role required to use the console API.
const RoleStaff = "STAFF"

// writeJSONError writes a JSON error response without pulling in httputil,
// keeping this middleware dependency-free for reuse.
func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(`{"error":"` + errCode + `","error_description":"` + errDesc + `"}`))
}

// RequireStaff enforces a valid staff bearer token and injects the operator
// identity into the request context.
func RequireStaff(verifier Verifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := requestcontext.RequestID(ctx)

			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing bearer token",
					"request_id", requestID,
					"path", r.URL.Path,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing bearer token")
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid token")
				return
			}

			if claims.Role != RoleStaff && claims.Role != "ADMIN" {
				logger.WarnContext(ctx, "forbidden - insufficient role",
					"role", claims.Role,
					"operator", claims.OperatorID,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusForbidden, "forbidden", "staff role required")
				return
			}

			ctx = requestcontext.WithOperatorID(ctx, claims.OperatorID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
