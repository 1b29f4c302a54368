package service

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-sync-batch/internal/blob"
	"github.com/MKhiriev/go-sync-batch/internal/keycodec"
	"github.com/MKhiriev/go-sync-batch/internal/store"
)

// Setup errors, returned while registering scopes.
var (
	ErrMergeInterceptorMissing = errors.New("merge policy requires a merge interceptor")
	ErrUnknownResolutionPolicy = errors.New("unknown resolution policy")
	ErrScopeAlreadyRegistered  = errors.New("scope already registered")
	ErrInvalidScope            = errors.New("invalid scope configuration")
)

// Request errors caused by the caller.
var (
	ErrUnknownScope        = errors.New("unknown sync scope")
	ErrInvalidContinuation = errors.New("invalid continuation token")
	ErrMalformedEntityKey  = errors.New("malformed entity key")
	ErrPolicyNotSupported  = errors.New("resolution policy not supported by scope")
	ErrInvalidDataProvided = errors.New("invalid data provided")
)

// Protocol-state errors. They point at a logic or configuration defect on
// the server and are never worth retrying.
var (
	ErrProtocol               = errors.New("sync protocol error")
	ErrBatchNotFound          = errors.New("batch not found")
	ErrTransferCompleted      = errors.New("transfer already completed")
	ErrRecordExceedsBatchSize = errors.New("change record exceeds max batch size")
	ErrUnreferencedConflict   = errors.New("conflict references an entity absent from the request")
	ErrCorruptTransfer        = errors.New("stored transfer is inconsistent")
	ErrUnexpectedApplyStatus  = errors.New("entity applier returned an unknown status")
)

// Fault tells whether an error is the caller's or the server's.
type Fault int

const (
	FaultServer Fault = iota
	FaultClient
)

var clientFaults = []error{
	ErrUnknownScope,
	ErrInvalidContinuation,
	ErrMalformedEntityKey,
	ErrPolicyNotSupported,
	ErrUnknownResolutionPolicy,
	ErrInvalidDataProvided,
	keycodec.ErrMalformedKey,
	blob.ErrMalformedBlob,
	store.ErrInvalidKnowledge,
}

// FaultOf classifies err. Anything not known to be the caller's fault,
// protocol errors included, is a server fault.
func FaultOf(err error) Fault {
	if errors.Is(err, ErrProtocol) {
		return FaultServer
	}
	for _, target := range clientFaults {
		if errors.Is(err, target) {
			return FaultClient
		}
	}
	return FaultServer
}

// protocolError tags err as a protocol-state error.
func protocolError(err error) error {
	return fmt.Errorf("%w: %w", ErrProtocol, err)
}
