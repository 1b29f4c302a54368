package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/keycodec"
	"github.com/MKhiriev/go-sync-batch/models"
)

var keepServer = MergeInterceptorFunc(func(_ context.Context, _ MergeContext, _, server models.ChangeRecord) (models.Resolution, models.ChangeRecord, error) {
	return models.ServerWins, server, nil
})

func TestScopeRegistry_RegisterScope(t *testing.T) {
	tests := []struct {
		name    string
		scope   string
		opts    ScopeOptions
		wantErr error
	}{
		{name: "server wins", scope: "orders", opts: ScopeOptions{Policy: models.ServerWins}},
		{name: "merge with interceptor", scope: "orders", opts: ScopeOptions{Policy: models.Merge, Interceptor: keepServer}},
		{name: "merge without interceptor", scope: "orders", opts: ScopeOptions{Policy: models.Merge}, wantErr: ErrMergeInterceptorMissing},
		{name: "unknown policy", scope: "orders", opts: ScopeOptions{Policy: models.Resolution(7)}, wantErr: ErrUnknownResolutionPolicy},
		{name: "empty name", scope: "", opts: ScopeOptions{}, wantErr: ErrInvalidScope},
		{name: "negative batch size", scope: "orders", opts: ScopeOptions{MaxBatchSize: -1}, wantErr: ErrInvalidScope},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewScopeRegistry()
			err := r.RegisterScope(tt.scope, tt.opts)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, r.Names())
				return
			}
			require.NoError(t, err)

			sc, err := r.lookup(tt.scope)
			require.NoError(t, err)
			assert.Equal(t, tt.opts.Policy, sc.Policy)
		})
	}
}

func TestScopeRegistry_Duplicate(t *testing.T) {
	r := NewScopeRegistry()
	require.NoError(t, r.RegisterScope("orders", ScopeOptions{}))
	assert.ErrorIs(t, r.RegisterScope("orders", ScopeOptions{}), ErrScopeAlreadyRegistered)
}

func TestScopeRegistry_UnknownScope(t *testing.T) {
	_, err := NewScopeRegistry().lookup("missing")
	require.ErrorIs(t, err, ErrUnknownScope)
	assert.Equal(t, FaultClient, FaultOf(err))
}

func TestScopeRegistry_RegisterFromConfig(t *testing.T) {
	cfg := config.Sync{
		DefaultPolicy: "client_wins",
		Scopes:        []string{"orders", "customers:merge:ID=guid", "regions:server_wins:Code=string;Year=int32"},
	}
	r := NewScopeRegistry()
	require.NoError(t, r.RegisterFromConfig(cfg, map[string]MergeInterceptor{"customers": keepServer}))
	assert.ElementsMatch(t, []string{"orders", "customers", "regions"}, r.Names())

	orders, err := r.lookup("orders")
	require.NoError(t, err)
	assert.Equal(t, models.ClientWins, orders.Policy)
	assert.Nil(t, orders.KeySchema)

	customers, err := r.lookup("customers")
	require.NoError(t, err)
	assert.Equal(t, models.Merge, customers.Policy)
	assert.Equal(t, keycodec.Schema{{Name: "ID", Type: keycodec.TypeGUID}}, customers.KeySchema)

	regions, err := r.lookup("regions")
	require.NoError(t, err)
	assert.Len(t, regions.KeySchema, 2)
}

func TestScopeRegistry_RegisterFromConfig_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.Sync
		wantErr error
	}{
		{
			name:    "merge scope without interceptor",
			cfg:     config.Sync{DefaultPolicy: "server_wins", Scopes: []string{"orders:merge"}},
			wantErr: ErrMergeInterceptorMissing,
		},
		{
			name:    "unknown policy",
			cfg:     config.Sync{DefaultPolicy: "server_wins", Scopes: []string{"orders:newest_wins"}},
			wantErr: ErrUnknownResolutionPolicy,
		},
		{
			name:    "bad key schema",
			cfg:     config.Sync{DefaultPolicy: "server_wins", Scopes: []string{"orders:server_wins:ID=uuid128"}},
			wantErr: ErrInvalidScope,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewScopeRegistry().RegisterFromConfig(tt.cfg, nil)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
