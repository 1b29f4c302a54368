// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http exposes the batched sync protocol over REST.
//
// Each scope gets a download and an upload endpoint. Downloads hand out one
// batch per call together with the sync blob for the next call; the blob
// travels either in the JSON body or in the X-Sync-Blob header. Request
// tracing, access logging, gzip compression and diagnostics gating are
// handled by middleware before requests reach the service layer.
package http
