package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/handler"
	httphandler "github.com/MKhiriev/go-sync-batch/internal/handler/http"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/server"
	"github.com/MKhiriev/go-sync-batch/internal/service"
	"github.com/MKhiriev/go-sync-batch/internal/store"
	"github.com/MKhiriev/go-sync-batch/internal/utils"
	"github.com/MKhiriev/go-sync-batch/internal/workers"
	"github.com/MKhiriev/go-sync-batch/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	buildInfo := printBuildInfo()

	log := logger.NewLogger("sync-server")

	// `server diagnostics-token [flags]` prints a token for X-Diagnostics-Token
	if len(os.Args) > 1 && os.Args[1] == "diagnostics-token" {
		if err := issueDiagnosticsToken(os.Args[2:]); err != nil {
			log.Fatal().Err(err).Msg("error issuing diagnostics token")
		}
		return
	}

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	log.Debug().Any("config", cfg.Redacted()).Msg("received configs")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer func() {
		if err := storages.Close(); err != nil {
			log.Err(err).Msg("error closing storages")
		}
	}()

	services, err := service.NewServices(storages, *cfg, nil, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}
	log.Info().Strs("scopes", services.Scopes.Names()).Msg("scopes registered")

	handlers, err := handler.NewHandlers(services, *cfg, buildInfo, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	janitor := workers.NewNamespaceJanitor(storages.Blobs, cfg.Workers, log.GetChildLogger())
	if err = workers.NewWorkers(workers.WorkerFunc(srv.RunServer), janitor).Run(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
		return
	}
	log.Info().Msg("bye")
}

func issueDiagnosticsToken(args []string) error {
	cfg, err := config.GetStructuredConfigFromArgs(args)
	if err != nil {
		return err
	}

	token, err := utils.GenerateDiagnosticsToken(httphandler.DiagnosticsIssuer, cfg.App.DiagnosticsTokenDuration, cfg.App.DiagnosticsSignKey)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}

func printBuildInfo() models.AppBuildInfo {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)

	return models.AppBuildInfo{BuildVersion: buildVersion, BuildDate: buildDate, BuildCommit: buildCommit}
}
