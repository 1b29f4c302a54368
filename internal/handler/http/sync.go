package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-sync-batch/internal/blob"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/service"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
	"github.com/MKhiriev/go-sync-batch/models"
)

// SyncBlobHeader carries the encoded continuation token in both directions.
const SyncBlobHeader = "X-Sync-Blob"

func invalidData(err error) error {
	return fmt.Errorf("%w: %w", service.ErrInvalidDataProvided, err)
}

// download serves POST /api/sync/{scope}/download. Without a sync blob it
// starts a transfer from the given client knowledge; with one it returns
// the batch the blob points to.
func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	scope := chi.URLParam(r, "scope")
	if scope == "" {
		writeError(w, r, invalidData(ErrMissingScope))
		return
	}

	var req models.DownloadRequest
	if _, err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, invalidData(err))
		return
	}

	if headerBlob := r.Header.Get(SyncBlobHeader); headerBlob != "" {
		if req.SyncBlob != "" && req.SyncBlob != headerBlob {
			writeError(w, r, invalidData(ErrConflictingBlobs))
			return
		}
		req.SyncBlob = headerBlob
	}

	if err := h.validator.Validate(ctx, req); err != nil {
		writeError(w, r, invalidData(err))
		return
	}

	var token *models.ContinuationToken
	switch {
	case req.SyncBlob != "":
		decoded, err := blob.DecodeString(req.SyncBlob)
		if err != nil {
			writeError(w, r, err)
			return
		}
		token = &decoded
	case len(req.ClientKnowledge) > 0:
		token = &models.ContinuationToken{ClientKnowledge: req.ClientKnowledge, ClientScopeName: scope}
	}

	batch, next, err := h.services.SyncService.BeginOrContinueDownload(ctx, scope, token)
	if err != nil {
		writeError(w, r, err)
		return
	}

	encoded := blob.EncodeToString(next)
	w.Header().Set(SyncBlobHeader, encoded)

	log.Debug().
		Str("scope", scope).
		Stringer("file_name", batch.FileName).
		Int("changes", len(batch.Changes)).
		Bool("is_last_batch", batch.IsLastBatch).
		Msg("batch served")

	if _, err = utils.WriteJSON(w, models.DownloadResponse{Batch: batch, SyncBlob: encoded}, http.StatusOK); err != nil {
		log.Err(err).Str("func", "Handler.download").Msg("error writing download response")
	}
}

// upload serves POST /api/sync/{scope}/upload.
func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	scope := chi.URLParam(r, "scope")
	if scope == "" {
		writeError(w, r, invalidData(ErrMissingScope))
		return
	}

	var req models.UploadRequest
	if _, err := utils.ReadJSON(r, &req); err != nil {
		writeError(w, r, invalidData(err))
		return
	}

	result, err := h.services.SyncService.UploadChanges(ctx, scope, req.Entities, req.Policy)
	if err != nil {
		writeError(w, r, err)
		return
	}

	log.Debug().
		Str("scope", scope).
		Int("applied", len(result.AppliedIDs)).
		Int("conflicts", len(result.Conflicts)).
		Int("errors", len(result.Errors)).
		Msg("upload applied")

	if _, err = utils.WriteJSON(w, result, http.StatusOK); err != nil {
		log.Err(err).Str("func", "Handler.upload").Msg("error writing upload result")
	}
}
