package http

import (
	"net/http"

	"github.com/mcguiretech/truapi/internal/common/constants"
	"github.com/mcguiretech/truapi/internal/common/httpmetrics"
	"github.com/mcguiretech/truapi/internal/common/logger"
)

func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	traceID := TraceIDMiddleware
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)
	securityHeaders := SecurityHeadersMiddleware

	// Trace id is assigned before recovery so a panic response still carries it.
	return securityHeaders(traceID(recovery(maxRequestSize(metrics.Wrap(handler)))))
}
