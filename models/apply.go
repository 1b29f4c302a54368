package models

// ApplyStatus is the outcome of applying one client entity to the store.
type ApplyStatus int

const (
	Applied ApplyStatus = iota
	ApplyConflict
	ApplyStoreError
)

// ApplyResult is returned by the entity applier for each uploaded entity.
type ApplyResult struct {
	Status ApplyStatus

	// ID is the identifier issued or confirmed by the store for Applied.
	ID string

	// Live is the version the store holds after the call: the record as
	// written for Applied (with its new ETag), the conflicting version for
	// ApplyConflict and, when known, the current one for ApplyStoreError.
	Live *ChangeRecord

	// Description explains an ApplyStoreError.
	Description string
}

// UploadResult is the response of an upload call.
type UploadResult struct {
	AppliedIDs []string     `json:"applied_ids"`
	Conflicts  ConflictList `json:"conflicts"`
	Errors     ConflictList `json:"errors"`
}
