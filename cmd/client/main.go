package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync-batch/internal/adapter"
	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const usage = `usage: sync-client <command> [flags]

commands:
  download -scope NAME [-knowledge BASE64] [-out FILE]
  upload   -scope NAME -in FILE [-policy server_wins|client_wins|merge]
  version

Connection settings come from ADAPTER_ADDRESS, ADAPTER_REQUEST_TIMEOUT or -server.
`

func main() {
	log := logger.NewLogger("sync-client")

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		log.Error().Err(err).Str("command", os.Args[1]).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

type commandFlags struct {
	server, scope, knowledge, in, out, policy, diagnosticsToken string
}

func run(ctx context.Context, command string, args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(command, flag.ContinueOnError)
	var f commandFlags
	fs.StringVar(&f.server, "server", "", "Sync server address host:port")
	fs.StringVar(&f.scope, "scope", "", "Sync scope name")
	fs.StringVar(&f.knowledge, "knowledge", "", "Base64 knowledge returned by the previous download")
	fs.StringVar(&f.in, "in", "", "JSON file with the entities to upload")
	fs.StringVar(&f.out, "out", "", "Write downloaded changes to this JSON file")
	fs.StringVar(&f.policy, "policy", "", "Resolution policy override")
	fs.StringVar(&f.diagnosticsToken, "diagnostics-token", "", "Diagnostics token for verbose server errors")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.GetStructuredConfigFromArgs(nil)
	if err != nil {
		return fmt.Errorf("error getting configs: %w", err)
	}
	if f.server != "" {
		cfg.Adapter.HTTPAddress = f.server
	}

	serverAdapter, err := adapter.NewHTTPServerAdapter(cfg.Adapter, logger.Nop())
	if err != nil {
		return err
	}
	serverAdapter.SetDiagnosticsToken(f.diagnosticsToken)

	switch command {
	case "download":
		return download(ctx, serverAdapter, f, stdout)
	case "upload":
		return upload(ctx, serverAdapter, f, stdout)
	case "version":
		return version(ctx, serverAdapter, stdout)
	default:
		return fmt.Errorf("unknown command %q\n\n%s", command, usage)
	}
}

func download(ctx context.Context, a adapter.ServerAdapter, f commandFlags, stdout io.Writer) error {
	if f.scope == "" {
		return errors.New("-scope is required")
	}

	knowledge, err := base64.StdEncoding.DecodeString(f.knowledge)
	if err != nil {
		return fmt.Errorf("invalid -knowledge: %w", err)
	}

	result, err := a.DownloadAll(ctx, f.scope, knowledge)
	if err != nil {
		return err
	}

	if f.out != "" {
		data, err := json.MarshalIndent(result.Changes, "", "  ")
		if err != nil {
			return err
		}
		if err = os.WriteFile(f.out, data, 0o644); err != nil {
			return fmt.Errorf("error writing %s: %w", f.out, err)
		}
	}

	tombstones := 0
	for _, c := range result.Changes {
		if c.Tombstone {
			tombstones++
		}
	}
	fmt.Fprintf(stdout, "scope:      %s\n", f.scope)
	fmt.Fprintf(stdout, "batches:    %d\n", result.Batches)
	fmt.Fprintf(stdout, "changes:    %d (%d deletions)\n", len(result.Changes), tombstones)
	fmt.Fprintf(stdout, "knowledge:  %s\n", base64.StdEncoding.EncodeToString(result.Knowledge))
	return nil
}

func upload(ctx context.Context, a adapter.ServerAdapter, f commandFlags, stdout io.Writer) error {
	if f.scope == "" || f.in == "" {
		return errors.New("-scope and -in are required")
	}

	data, err := os.ReadFile(f.in)
	if err != nil {
		return err
	}
	var entities []models.ChangeRecord
	if err = json.Unmarshal(data, &entities); err != nil {
		return fmt.Errorf("error decoding %s: %w", f.in, err)
	}

	var policy *models.Resolution
	if f.policy != "" {
		parsed, err := models.ParseResolution(f.policy)
		if err != nil {
			return err
		}
		policy = &parsed
	}

	result, err := a.Upload(ctx, f.scope, entities, policy)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "applied:    %d\n", len(result.AppliedIDs))
	for _, c := range result.Conflicts {
		fmt.Fprintf(stdout, "conflict:   %s %s\n", c.Kind(), c.RequestKey())
	}
	for _, c := range result.Errors {
		description := ""
		if e, ok := c.(models.SyncError); ok {
			description = e.Description
		}
		fmt.Fprintf(stdout, "error:      %s %s\n", c.RequestKey(), description)
	}
	return nil
}

func version(ctx context.Context, a adapter.ServerAdapter, stdout io.Writer) error {
	info, err := a.Version(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "client: %s (%s, %s)\n", orNA(buildVersion), orNA(buildDate), orNA(buildCommit))
	fmt.Fprintf(stdout, "server: %s (%s, %s)\n", info.BuildVersion, info.BuildDate, info.BuildCommit)
	return nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
