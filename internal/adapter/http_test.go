// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-batch/internal/blob"
	"github.com/MKhiriev/go-sync-batch/internal/config"
	httphandler "github.com/MKhiriev/go-sync-batch/internal/handler/http"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/service"
	"github.com/MKhiriev/go-sync-batch/internal/store"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
	"github.com/MKhiriev/go-sync-batch/models"
)

const testScope = "orders"

func newTestAdapter(t *testing.T, serverURL string) *httpServerAdapter {
	t.Helper()
	a, err := NewHTTPServerAdapter(config.Adapter{HTTPAddress: serverURL, RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)

	adapter := a.(*httpServerAdapter)
	adapter.client.SetRetryWaitTime(time.Millisecond).SetRetryMaxWaitTime(time.Millisecond)
	return adapter
}

// newSyncServer runs the real server stack over memory storage.
func newSyncServer(t *testing.T, records int, maxBatchSize int) (*httptest.Server, *store.MemoryEntityStore) {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.Storage{Backend: config.BackendMemory}, logger.Nop())
	require.NoError(t, err)

	seed := make([]models.ChangeRecord, records)
	for i := range seed {
		seed[i] = models.ChangeRecord{Key: fmt.Sprintf("(ID=%d)", i+1), Payload: []byte(strings.Repeat("d", 40))}
	}
	storages.Entities.Seed(testScope, seed...)

	cfg := config.StructuredConfig{
		App: config.App{DiagnosticsSignKey: "secret"},
		Sync: config.Sync{
			MaxBatchSize:  maxBatchSize,
			DefaultPolicy: "server_wins",
			Scopes:        []string{testScope},
		},
	}
	services, err := service.NewServices(storages, cfg, nil, logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(httphandler.NewHandler(services, cfg, models.AppBuildInfo{BuildVersion: "v9"}, logger.Nop()).Init())
	t.Cleanup(srv.Close)
	return srv, storages.Entities
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{raw: "localhost:8080", want: "http://localhost:8080"},
		{raw: " https://sync.example.com/ ", want: "https://sync.example.com"},
		{raw: "", wantErr: true},
		{raw: "http://", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := normalizeBaseURL(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// ── against the real server ─────────────────────────────────────────────────

func TestDownloadAll_FullTransfer(t *testing.T) {
	srv, entities := newSyncServer(t, 12, 300)
	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	result, err := a.DownloadAll(ctx, testScope, nil)
	require.NoError(t, err)

	assert.Greater(t, result.Batches, 1)
	require.Len(t, result.Changes, 12)
	for i, c := range result.Changes {
		assert.Equal(t, fmt.Sprintf("(ID=%d)", i+1), c.Key)
	}
	assert.Equal(t, store.EncodeKnowledge(12), result.Knowledge)

	// nothing new since
	again, err := a.DownloadAll(ctx, testScope, result.Knowledge)
	require.NoError(t, err)
	assert.Empty(t, again.Changes)
	assert.Equal(t, 1, again.Batches)

	// one change later
	entities.Seed(testScope, models.ChangeRecord{Key: "(ID=13)", Payload: []byte("new")})
	delta, err := a.DownloadAll(ctx, testScope, result.Knowledge)
	require.NoError(t, err)
	require.Len(t, delta.Changes, 1)
	assert.Equal(t, "(ID=13)", delta.Changes[0].Key)
}

func TestUpload_RoundTrip(t *testing.T) {
	srv, entities := newSyncServer(t, 1, 1000)
	a := newTestAdapter(t, srv.URL)

	clientWins := models.ClientWins
	result, err := a.Upload(context.Background(), testScope, []models.ChangeRecord{
		{Key: "(ID=1)", Payload: []byte("mine"), ETag: "0"},
	}, &clientWins)
	require.NoError(t, err)

	assert.Empty(t, result.AppliedIDs)
	require.Len(t, result.Conflicts, 1)
	conflict, ok := result.Conflicts[0].(models.SyncConflict)
	require.True(t, ok)
	assert.Equal(t, models.ClientWins, conflict.Resolution)

	stored, found := entities.Get(testScope, "(ID=1)")
	require.True(t, found)
	assert.Equal(t, []byte("mine"), stored.Payload)
}

func TestErrors_FromRealServer(t *testing.T) {
	srv, _ := newSyncServer(t, 1, 1000)
	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	_, err := a.DownloadAll(ctx, "invoices", nil)
	assert.ErrorIs(t, err, ErrUnknownScope)

	_, err = a.DownloadBatch(ctx, testScope, "!!not-a-blob!!", nil)
	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Contains(t, err.Error(), "malformed sync blob")

	merge := models.Merge
	_, err = a.Upload(ctx, testScope, []models.ChangeRecord{{Key: "(ID=1)", Payload: []byte("x")}}, &merge)
	assert.ErrorIs(t, err, ErrPolicyNotSupported)

	info, err := a.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v9", info.BuildVersion)
}

func TestDiagnosticsToken_RevealsDetail(t *testing.T) {
	srv, _ := newSyncServer(t, 1, 1000)
	a := newTestAdapter(t, srv.URL)
	ctx := context.Background()

	finished := blob.EncodeToString(models.ContinuationToken{
		ClientScopeName: testScope,
		IsLastBatch:     true,
		BatchCode:       uuid.NullUUID{UUID: uuid.New(), Valid: true},
	})

	_, err := a.DownloadBatch(ctx, testScope, finished, nil)
	require.ErrorIs(t, err, ErrInternalServerError)
	assert.NotContains(t, err.Error(), "transfer already completed")

	token, err := utils.GenerateDiagnosticsToken(httphandler.DiagnosticsIssuer, time.Minute, "secret")
	require.NoError(t, err)
	a.SetDiagnosticsToken(token)

	_, err = a.DownloadBatch(ctx, testScope, finished, nil)
	require.ErrorIs(t, err, ErrInternalServerError)
	assert.Contains(t, err.Error(), "transfer already completed")
}

// ── against stubs ───────────────────────────────────────────────────────────

func TestDownloadAll_RepeatedBatch(t *testing.T) {
	fileName := uuid.New()
	next := blob.EncodeToString(models.ContinuationToken{
		ClientScopeName: testScope,
		BatchCode:       uuid.NullUUID{UUID: uuid.New(), Valid: true},
		NextBatch:       uuid.NullUUID{UUID: uuid.New(), Valid: true},
	})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteJSON(w, models.DownloadResponse{
			Batch:    models.Batch{FileName: fileName, Changes: []models.ChangeRecord{{Key: "(ID=1)"}}},
			SyncBlob: next,
		}, http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).DownloadAll(context.Background(), testScope, nil)
	assert.ErrorIs(t, err, ErrRepeatedBatch)
}

func TestDownloadAll_BatchLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteJSON(w, models.DownloadResponse{
			Batch:    models.Batch{FileName: uuid.New()},
			SyncBlob: "AA",
		}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	a.maxBatches = 3

	_, err := a.DownloadAll(context.Background(), testScope, nil)
	assert.ErrorIs(t, err, ErrTooManyBatches)
}

func TestDownloadBatch_SendsBlobAndKnowledge(t *testing.T) {
	var (
		gotHeader string
		gotBody   models.DownloadRequest
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/sync/"+testScope+"/download", r.URL.Path)
		gotHeader = r.Header.Get(syncBlobHeader)
		gotBody = models.DownloadRequest{}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		w.Header().Set(syncBlobHeader, "from-header")
		_, _ = utils.WriteJSON(w, models.DownloadResponse{SyncBlob: "from-body"}, http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)

	resp, err := a.DownloadBatch(context.Background(), testScope, "", []byte{1, 2})
	require.NoError(t, err)
	assert.Empty(t, gotHeader)
	assert.Equal(t, []byte{1, 2}, gotBody.ClientKnowledge)
	assert.Equal(t, "from-header", resp.SyncBlob)

	_, err = a.DownloadBatch(context.Background(), testScope, "blob", []byte{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "blob", gotHeader)
	assert.Empty(t, gotBody.ClientKnowledge)
}

func TestMapHTTPError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		want    error
		wantMsg string
	}{
		{name: "bad request json", status: http.StatusBadRequest, body: `{"error":"invalid data provided"}`, want: ErrBadRequest, wantMsg: "invalid data provided"},
		{name: "server error with detail", status: http.StatusInternalServerError, body: `{"error":"internal server error","detail":"boom"}`, want: ErrInternalServerError, wantMsg: "(boom)"},
		{name: "plain text", status: http.StatusMethodNotAllowed, body: "Method Not Allowed\n", want: ErrMethodNotAllowed, wantMsg: "Method Not Allowed"},
		{name: "timeout", status: http.StatusGatewayTimeout, want: ErrServerTimeout, wantMsg: "Gateway Timeout"},
		{name: "unmapped", status: http.StatusTeapot, wantMsg: "http 418"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			resp, err := newTestAdapter(t, srv.URL).client.R().Get("/")
			require.NoError(t, err)

			mapped := mapHTTPError(resp)
			require.Error(t, mapped)
			if tt.want != nil {
				assert.ErrorIs(t, mapped, tt.want)
			}
			assert.Contains(t, mapped.Error(), tt.wantMsg)
		})
	}
}
