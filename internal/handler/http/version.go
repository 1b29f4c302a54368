package http

import (
	"net/http"

	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	if _, err := utils.WriteJSON(w, h.buildInfo, http.StatusOK); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "Handler.getServerVersion").Msg("error writing build info")
	}
}
