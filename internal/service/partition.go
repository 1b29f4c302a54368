package service

import (
	"fmt"

	"github.com/MKhiriev/go-sync-batch/models"
)

// partitionChanges splits changes into consecutive groups whose cumulative
// Size stays within maxSize. Order is kept and no record is split. A record
// larger than maxSize on its own fails the whole partitioning.
func partitionChanges(changes []models.ChangeRecord, maxSize int) ([][]models.ChangeRecord, error) {
	var (
		parts   [][]models.ChangeRecord
		current []models.ChangeRecord
		size    int
	)

	for i, change := range changes {
		recordSize := change.Size()
		if recordSize > maxSize {
			return nil, fmt.Errorf("%w: record %d (%q) is %d bytes, max %d",
				ErrRecordExceedsBatchSize, i, change.Key, recordSize, maxSize)
		}

		if size+recordSize > maxSize && len(current) > 0 {
			parts = append(parts, current)
			current, size = nil, 0
		}
		current = append(current, change)
		size += recordSize
	}

	if len(current) > 0 {
		parts = append(parts, current)
	}
	return parts, nil
}
