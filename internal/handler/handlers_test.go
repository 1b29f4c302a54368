package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/models"
)

func TestNewHandlers(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr error
	}{
		{name: "http address set", address: ":8080"},
		{name: "no address", wantErr: errNoHandlersAreCreated},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.StructuredConfig{Server: config.Server{HTTPAddress: tt.address}}

			h, err := NewHandlers(nil, cfg, models.AppBuildInfo{}, logger.Nop())
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, h)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, h.HTTP)
		})
	}
}
