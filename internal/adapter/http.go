package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-batch/internal/blob"
	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
	"github.com/MKhiriev/go-sync-batch/models"
)

const (
	syncBlobHeader    = "X-Sync-Blob"
	diagnosticsHeader = "X-Diagnostics-Token"

	defaultRetries    = 2
	defaultMaxBatches = 100_000
)

type httpServerAdapter struct {
	client *utils.HTTPClient

	diagnosticsToken string
	maxBatches       int

	logger *logger.Logger
}

// NewHTTPServerAdapter builds the REST implementation of [ServerAdapter]
// for the server at cfg.HTTPAddress. A missing scheme defaults to http.
func NewHTTPServerAdapter(cfg config.Adapter, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	return &httpServerAdapter{
		client:     utils.NewHTTPClient(baseURL, cfg.RequestTimeout, defaultRetries),
		maxBatches: defaultMaxBatches,
		logger:     logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetDiagnosticsToken(token string) {
	h.diagnosticsToken = strings.TrimSpace(token)
}

func (h *httpServerAdapter) DownloadBatch(ctx context.Context, scope, syncBlob string, knowledge []byte) (models.DownloadResponse, error) {
	req := h.request(ctx)

	body := models.DownloadRequest{}
	if syncBlob != "" {
		req.SetHeader(syncBlobHeader, syncBlob)
	} else {
		body.ClientKnowledge = knowledge
	}

	var response models.DownloadResponse
	resp, err := req.
		SetBody(body).
		SetResult(&response).
		Post(syncPath(scope, "download"))
	if err != nil {
		return models.DownloadResponse{}, fmt.Errorf("download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.DownloadResponse{}, err
	}

	// the header is authoritative when a proxy rewrites bodies
	if headerBlob := resp.Header().Get(syncBlobHeader); headerBlob != "" {
		response.SyncBlob = headerBlob
	}
	return response, nil
}

func (h *httpServerAdapter) DownloadAll(ctx context.Context, scope string, knowledge []byte) (DownloadResult, error) {
	var (
		result   = DownloadResult{Changes: []models.ChangeRecord{}}
		seen     = make(map[uuid.UUID]struct{})
		syncBlob string
	)

	for result.Batches < h.maxBatches {
		response, err := h.DownloadBatch(ctx, scope, syncBlob, knowledge)
		if err != nil {
			return DownloadResult{}, err
		}

		batch := response.Batch
		if _, dup := seen[batch.FileName]; dup {
			return DownloadResult{}, fmt.Errorf("%w: %s", ErrRepeatedBatch, batch.FileName)
		}
		seen[batch.FileName] = struct{}{}
		result.Batches++
		result.Changes = append(result.Changes, batch.Changes...)

		if batch.IsLastBatch {
			token, err := blob.DecodeString(response.SyncBlob)
			if err != nil {
				return DownloadResult{}, fmt.Errorf("decoding final sync blob: %w", err)
			}
			result.Knowledge = token.ClientKnowledge

			h.logger.Debug().Str("func", "httpServerAdapter.DownloadAll").Str("scope", scope).
				Int("batches", result.Batches).Int("changes", len(result.Changes)).Msg("download finished")
			return result, nil
		}
		syncBlob = response.SyncBlob
	}

	return DownloadResult{}, fmt.Errorf("%w: %d", ErrTooManyBatches, h.maxBatches)
}

func (h *httpServerAdapter) Upload(ctx context.Context, scope string, entities []models.ChangeRecord, policy *models.Resolution) (models.UploadResult, error) {
	var result models.UploadResult
	resp, err := h.request(ctx).
		SetBody(models.UploadRequest{Policy: policy, Entities: entities}).
		SetResult(&result).
		Post(syncPath(scope, "upload"))
	if err != nil {
		return models.UploadResult{}, fmt.Errorf("upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.UploadResult{}, err
	}
	return result, nil
}

func (h *httpServerAdapter) Version(ctx context.Context) (models.AppBuildInfo, error) {
	var info models.AppBuildInfo
	resp, err := h.request(ctx).SetResult(&info).Get("/api/version")
	if err != nil {
		return models.AppBuildInfo{}, fmt.Errorf("version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AppBuildInfo{}, err
	}
	return info, nil
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if h.diagnosticsToken != "" {
		req.SetHeader(diagnosticsHeader, h.diagnosticsToken)
	}
	return req
}

func syncPath(scope, operation string) string {
	return "/api/sync/" + url.PathEscape(scope) + "/" + operation
}
