// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// DownloadRequest starts or continues a download.
type DownloadRequest struct {
	// ClientKnowledge is used only when no sync blob is supplied.
	ClientKnowledge []byte `json:"client_knowledge,omitempty"`

	// SyncBlob is the base64url encoded continuation token from the
	// previous response. It may also travel in the X-Sync-Blob header.
	SyncBlob string `json:"sync_blob,omitempty"`
}

// DownloadResponse carries one batch and the token for the next call.
type DownloadResponse struct {
	Batch    Batch  `json:"batch"`
	SyncBlob string `json:"sync_blob"`
}

// UploadRequest carries client changes for one scope.
type UploadRequest struct {
	// Policy overrides the scope's configured resolution when set.
	Policy *Resolution `json:"policy,omitempty"`

	Entities []ChangeRecord `json:"entities"`
}

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}
