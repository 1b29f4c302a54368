package store

import (
	"context"
	"encoding/binary"
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-sync-batch/internal/keycodec"
	"github.com/MKhiriev/go-sync-batch/models"
)

// MemoryEntityStore is an in-memory, versioned entity table per scope. It
// enumerates changes since a knowledge watermark and applies client writes
// with optimistic concurrency on ETags. Tombstones are kept so deletions can
// be enumerated.
//
// Knowledge is the big-endian uint64 of the last version a client has seen.
type MemoryEntityStore struct {
	mu      sync.RWMutex
	version uint64
	scopes  map[string]map[string]entityRow
}

type entityRow struct {
	record  models.ChangeRecord
	version uint64
}

// NewMemoryEntityStore returns an empty store.
func NewMemoryEntityStore() *MemoryEntityStore {
	return &MemoryEntityStore{scopes: make(map[string]map[string]entityRow)}
}

// EncodeKnowledge returns the watermark for version.
func EncodeKnowledge(version uint64) []byte {
	return binary.BigEndian.AppendUint64(nil, version)
}

// DecodeKnowledge parses a watermark; empty knowledge means "nothing seen".
func DecodeKnowledge(knowledge []byte) (uint64, error) {
	switch len(knowledge) {
	case 0:
		return 0, nil
	case 8:
		return binary.BigEndian.Uint64(knowledge), nil
	default:
		return 0, fmt.Errorf("%w: want 8 bytes, got %d", ErrInvalidKnowledge, len(knowledge))
	}
}

// Seed stores records as server-side changes, as if written by another
// replica. It returns the records with their issued ETags.
func (s *MemoryEntityStore) Seed(scope string, records ...models.ChangeRecord) []models.ChangeRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ChangeRecord, 0, len(records))
	for _, record := range records {
		out = append(out, s.write(scope, record))
	}
	return out
}

// EnumerateChanges returns every record of scope written after knowledge, in
// write order, and the watermark covering them.
func (s *MemoryEntityStore) EnumerateChanges(ctx context.Context, scope string, knowledge []byte) (models.ChangeSet, error) {
	if err := ctx.Err(); err != nil {
		return models.ChangeSet{}, err
	}
	since, err := DecodeKnowledge(knowledge)
	if err != nil {
		return models.ChangeSet{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([]entityRow, 0)
	for _, row := range s.scopes[scope] {
		if row.version > since {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].version < rows[j].version })

	changes := make([]models.ChangeRecord, len(rows))
	for i, row := range rows {
		changes[i] = row.record
	}

	watermark := since
	if s.version > watermark {
		watermark = s.version
	}
	return models.ChangeSet{Changes: changes, Knowledge: EncodeKnowledge(watermark)}, nil
}

// TryApply writes a client entity. A stale or missing ETag against an
// existing row is a conflict unless force is set. Inserts without a key get
// a freshly issued `(ID=guid'...')` key.
func (s *MemoryEntityStore) TryApply(ctx context.Context, scope string, entity models.ChangeRecord, force bool) (models.ApplyResult, error) {
	if err := ctx.Err(); err != nil {
		return models.ApplyResult{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if entity.ETag != "" {
		if _, err := strconv.ParseUint(entity.ETag, 10, 64); err != nil {
			return models.ApplyResult{
				Status:      models.ApplyStoreError,
				Description: fmt.Sprintf("invalid concurrency token %q", entity.ETag),
			}, nil
		}
	}

	if entity.Key == "" {
		if entity.Tombstone {
			return models.ApplyResult{Status: models.ApplyStoreError, Description: "cannot delete an entity without key"}, nil
		}
		key, err := keycodec.FormatIdentity(keycodec.Identity{{Name: "ID", Value: uuid.New()}})
		if err != nil {
			return models.ApplyResult{}, err
		}
		entity.Key = key
		stored := s.write(scope, entity)
		return models.ApplyResult{Status: models.Applied, ID: stored.Key, Live: &stored}, nil
	}

	row, found := s.scopes[scope][entity.Key]
	switch {
	case !found && entity.ETag != "" && !force:
		// the client edits a version the server never had
		return models.ApplyResult{
			Status:      models.ApplyStoreError,
			Description: fmt.Sprintf("entity %s does not exist", entity.Key),
		}, nil
	case found && entity.ETag != row.record.ETag && !force:
		live := row.record
		return models.ApplyResult{Status: models.ApplyConflict, ID: entity.Key, Live: &live}, nil
	}

	stored := s.write(scope, entity)
	return models.ApplyResult{Status: models.Applied, ID: stored.Key, Live: &stored}, nil
}

// Get returns the current record for key.
func (s *MemoryEntityStore) Get(scope, key string) (models.ChangeRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row, ok := s.scopes[scope][key]
	return row.record, ok
}

// write stores record under a new version. Callers hold the lock.
func (s *MemoryEntityStore) write(scope string, record models.ChangeRecord) models.ChangeRecord {
	s.version++
	record.ETag = strconv.FormatUint(s.version, 10)
	if record.Tombstone {
		record.Payload = nil
	}

	rows, ok := s.scopes[scope]
	if !ok {
		rows = make(map[string]entityRow)
		s.scopes[scope] = rows
	}
	rows[record.Key] = entityRow{record: record, version: s.version}
	return record
}
