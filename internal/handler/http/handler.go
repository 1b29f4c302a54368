package http

import (
	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/internal/service"
	"github.com/MKhiriev/go-sync-batch/internal/validators"
	"github.com/MKhiriev/go-sync-batch/models"
)

// DiagnosticsIssuer is the issuer expected in diagnostics tokens.
const DiagnosticsIssuer = "go-sync-batch"

type Handler struct {
	services  *service.Services
	validator validators.Validator
	buildInfo models.AppBuildInfo

	verboseErrors      bool
	diagnosticsSignKey string

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg config.StructuredConfig, buildInfo models.AppBuildInfo, logger *logger.Logger) *Handler {
	return &Handler{
		services:           services,
		validator:          validators.NewSyncValidator(cfg.Sync.MaxUploadEntities),
		buildInfo:          buildInfo,
		verboseErrors:      cfg.Server.VerboseErrors,
		diagnosticsSignKey: cfg.App.DiagnosticsSignKey,
		logger:             logger,
	}
}
