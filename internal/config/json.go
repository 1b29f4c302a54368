package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON field names and
// string durations.
type StructuredJSONConfig struct {
	App struct {
		DiagnosticsSignKey       string   `json:"diagnostics_sign_key"`
		DiagnosticsTokenDuration Duration `json:"diagnostics_token_duration"`
		Version                  string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		Backend string `json:"backend"`
		DB      struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			BatchDir string `json:"batch_dir"`
		} `json:"files,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		VerboseErrors  bool     `json:"verbose_errors"`
	} `json:"server,omitempty"`

	Sync struct {
		MaxBatchSize      int      `json:"max_batch_size"`
		DefaultPolicy     string   `json:"default_policy"`
		Scopes            []string `json:"scopes"`
		MaxUploadEntities int      `json:"max_upload_entities"`
	} `json:"sync,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`

	Workers struct {
		JanitorInterval Duration `json:"janitor_interval"`
		NamespaceTTL    Duration `json:"namespace_ttl"`
	} `json:"workers,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			DiagnosticsSignKey:       jsonCfg.App.DiagnosticsSignKey,
			DiagnosticsTokenDuration: time.Duration(jsonCfg.App.DiagnosticsTokenDuration),
			Version:                  jsonCfg.App.Version,
		},
		Storage: Storage{
			Backend: jsonCfg.Storage.Backend,
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				BatchDir: jsonCfg.Storage.Files.BatchDir,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			VerboseErrors:  jsonCfg.Server.VerboseErrors,
		},
		Sync: Sync{
			MaxBatchSize:      jsonCfg.Sync.MaxBatchSize,
			DefaultPolicy:     jsonCfg.Sync.DefaultPolicy,
			Scopes:            jsonCfg.Sync.Scopes,
			MaxUploadEntities: jsonCfg.Sync.MaxUploadEntities,
		},
		Adapter: Adapter{
			HTTPAddress:    jsonCfg.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Adapter.RequestTimeout),
		},
		Workers: Workers{
			JanitorInterval: time.Duration(jsonCfg.Workers.JanitorInterval),
			NamespaceTTL:    time.Duration(jsonCfg.Workers.NamespaceTTL),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s" as well as from nanosecond numbers.
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
