package http

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/mcguiretech/truapi/internal/common/logger"
)

// RecoveryMiddleware turns a handler panic into a 500 envelope carrying the
// request's trace id, so the crash can be correlated with the access log.
func RecoveryMiddleware(log *logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					ctx := r.Context()
					log.WithFields(ctx, logger.Fields{
						"action": "panic_recovered",
						"method": r.Method,
						"path":   r.URL.Path,
					}).Critical(fmt.Sprintf("panic: %v\n%s", rec, debug.Stack()))
					WriteErrorEnvelope(w, http.StatusInternalServerError, CodeUnknown, "internal server error", nil, TraceIDFromContext(ctx))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
