package http

import (
	"net/http"

	"github.com/registrar-hq/registrar/internal/common/constants"
	"github.com/registrar-hq/registrar/internal/common/httpmetrics"
	"github.com/registrar-hq/registrar/internal/common/logger"
)

// BuildBaseHandler wraps handler in the standard middleware chain:
// security headers, panic recovery, trace ids, request size limit and
// request metrics.
func BuildBaseHandler(log *logger.Logger, handler http.Handler) http.Handler {
	metrics := httpmetrics.New()
	recovery := RecoveryMiddleware(log)
	maxRequestSize := MaxRequestSizeMiddleware(constants.DefaultMaxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxRequestSize(metrics.Wrap(handler)))))
}
