package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from the environment following the env and envPrefix
// tags of [StructuredConfig]; SYNC_MAX_BATCH_SIZE lands in Sync.MaxBatchSize.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %w", ErrReadingEnv, err)
	}
	return nil
}
