// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter is the client side of the batched sync protocol.
//
// [ServerAdapter] hides the REST transport: it follows the sync blob from
// batch to batch until the server reports the last one, and maps error
// responses to the sentinels in errors.go so callers can use [errors.Is].
package adapter

import (
	"context"

	"github.com/MKhiriev/go-sync-batch/models"
)

// DownloadResult is a finished download: every change of the transfer in
// delivery order and the knowledge to send with the next download.
type DownloadResult struct {
	Changes   []models.ChangeRecord
	Knowledge []byte
	Batches   int
}

// ServerAdapter talks to a sync server.
type ServerAdapter interface {
	// SetDiagnosticsToken makes the server include error details in its
	// responses. An empty token stops sending it.
	SetDiagnosticsToken(token string)

	// DownloadBatch fetches one batch. An empty syncBlob starts a transfer
	// from knowledge; otherwise knowledge is ignored.
	DownloadBatch(ctx context.Context, scope, syncBlob string, knowledge []byte) (models.DownloadResponse, error)

	// DownloadAll runs a whole transfer starting from knowledge.
	DownloadAll(ctx context.Context, scope string, knowledge []byte) (DownloadResult, error)

	// Upload sends client changes. policy overrides the scope's resolution
	// policy when not nil.
	Upload(ctx context.Context, scope string, entities []models.ChangeRecord, policy *models.Resolution) (models.UploadResult, error)

	// Version returns the build information of the server.
	Version(ctx context.Context) (models.AppBuildInfo, error)
}
