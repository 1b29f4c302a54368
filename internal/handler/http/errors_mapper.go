package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/service"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
	"github.com/MKhiriev/go-sync-batch/models"
)

const genericServerError = "internal server error"

var clientErrorStatusMap = map[error]int{
	service.ErrUnknownScope:       http.StatusNotFound,
	service.ErrPolicyNotSupported: http.StatusUnprocessableEntity,
}

// statusFromError maps err to an HTTP status. Client faults become 4xx,
// everything else 5xx.
func statusFromError(err error) int {
	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}
	if service.FaultOf(err) == service.FaultServer {
		return http.StatusInternalServerError
	}
	for target, status := range clientErrorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusBadRequest
}

// writeError logs err and writes it as a models.ErrorResponse. Client faults
// always carry their message. Server faults carry a generic message unless
// the request was granted verbose errors.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	response := models.ErrorResponse{Error: err.Error()}
	if status >= http.StatusInternalServerError {
		log.Err(err).Int("status", status).Msg("sync request failed")
		response.Error = genericServerError
		if utils.VerboseErrorsFromContext(r.Context()) {
			response.Detail = err.Error()
		}
	} else {
		log.Debug().Err(err).Int("status", status).Msg("sync request rejected")
	}

	if _, writeErr := utils.WriteJSON(w, response, status); writeErr != nil {
		log.Err(writeErr).Msg("error writing error response")
	}
}
