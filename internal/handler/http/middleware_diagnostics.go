package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
)

const diagnosticsHeader = "X-Diagnostics-Token"

// withDiagnostics grants verbose error details to requests that present a
// valid diagnostics token, or to every request when verbose errors are
// switched on in the server config. An invalid token is logged and ignored;
// the request is still served with generic server errors.
func (h *Handler) withDiagnostics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h.verboseErrors {
			next.ServeHTTP(w, r.WithContext(utils.WithVerboseErrors(r.Context())))
			return
		}

		token := r.Header.Get(diagnosticsHeader)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		if err := utils.ValidateDiagnosticsToken(token, h.diagnosticsSignKey, DiagnosticsIssuer); err != nil {
			logger.FromRequest(r).Warn().Err(err).Msg("diagnostics token rejected")
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(utils.WithVerboseErrors(r.Context())))
	})
}
