package config

import "time"

// Supported storage backends.
const (
	BackendMemory   = "memory"
	BackendFS       = "fs"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Defaults returns the values used for every option no source has set.
func Defaults() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			DiagnosticsTokenDuration: 15 * time.Minute,
		},
		Storage: Storage{
			Backend: BackendMemory,
			Files:   Files{BatchDir: "batches"},
		},
		Server: Server{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Sync: Sync{
			MaxBatchSize:  1 << 20,
			DefaultPolicy: "server_wins",
		},
		Adapter: Adapter{
			HTTPAddress:    "localhost:8080",
			RequestTimeout: 30 * time.Second,
		},
		Workers: Workers{
			JanitorInterval: 10 * time.Minute,
			NamespaceTTL:    24 * time.Hour,
		},
	}
}
