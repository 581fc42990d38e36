package middleware

import (
	"net/http"

	"show-booking/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity extracts the caller from the X-User-ID header set by the upstream
// auth layer. Session and token mechanics live outside this service; here the
// header only has to be a well-formed user id.
func Identity(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("X-User-ID")
			if raw == "" {
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			userID, err := uuid.Parse(raw)
			if err != nil {
				log.Warn("Malformed user id header",
					zap.String("path", r.URL.Path),
					zap.String("value", raw),
				)
				utils.ResponseUnauthorized(w, "Authentication required")
				return
			}

			ctx := utils.SetUserContext(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
