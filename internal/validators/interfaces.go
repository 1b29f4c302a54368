// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators checks the shape of sync requests before they reach
// the orchestrator: entity counts, duplicate keys, policy names and the
// choice between a sync blob and raw client knowledge. Protocol rules that
// need scope state (key schemas, allowed policies) stay in the service.
package validators

import "context"

// Validator checks obj. When fields are given, only the named checks run;
// see the Field constants of each implementation.
type Validator interface {
	Validate(ctx context.Context, obj any, fields ...string) error
}
