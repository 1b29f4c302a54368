package service

import (
	"fmt"
	"sync"

	"github.com/MKhiriev/go-sync-batch/internal/config"
	"github.com/MKhiriev/go-sync-batch/internal/keycodec"
	"github.com/MKhiriev/go-sync-batch/models"
)

// ScopeOptions configures one sync scope.
type ScopeOptions struct {
	// Policy resolves upload conflicts unless a request overrides it.
	Policy models.Resolution

	// Interceptor is required when Policy is Merge and used whenever a
	// request asks for Merge.
	Interceptor MergeInterceptor

	// MaxBatchSize overrides the service-wide limit when positive.
	MaxBatchSize int

	// KeySchema, when set, is used to validate and canonicalize entity keys.
	KeySchema keycodec.Schema
}

type scope struct {
	name string
	ScopeOptions
}

// ScopeRegistry holds the scopes a SyncService serves. Misconfiguration is
// reported at registration, never while serving requests.
type ScopeRegistry struct {
	mu     sync.RWMutex
	scopes map[string]scope
}

func NewScopeRegistry() *ScopeRegistry {
	return &ScopeRegistry{scopes: make(map[string]scope)}
}

// RegisterScope validates opts and adds the scope.
func (r *ScopeRegistry) RegisterScope(name string, opts ScopeOptions) error {
	if name == "" {
		return fmt.Errorf("%w: empty scope name", ErrInvalidScope)
	}
	if !opts.Policy.Valid() {
		return fmt.Errorf("%w: %s for scope %q", ErrUnknownResolutionPolicy, opts.Policy, name)
	}
	if opts.Policy == models.Merge && opts.Interceptor == nil {
		return fmt.Errorf("%w: scope %q", ErrMergeInterceptorMissing, name)
	}
	if opts.MaxBatchSize < 0 {
		return fmt.Errorf("%w: negative max batch size for scope %q", ErrInvalidScope, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scopes[name]; ok {
		return fmt.Errorf("%w: %q", ErrScopeAlreadyRegistered, name)
	}
	r.scopes[name] = scope{name: name, ScopeOptions: opts}
	return nil
}

// RegisterFromConfig registers every scope of cfg. interceptors supplies the
// merge interceptor of scopes by name.
func (r *ScopeRegistry) RegisterFromConfig(cfg config.Sync, interceptors map[string]MergeInterceptor) error {
	specs, err := cfg.ScopeSpecs()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidScope, err)
	}

	for _, spec := range specs {
		policy, err := models.ParseResolution(spec.Policy)
		if err != nil {
			return fmt.Errorf("%w: scope %q: %w", ErrUnknownResolutionPolicy, spec.Name, err)
		}

		opts := ScopeOptions{Policy: policy, Interceptor: interceptors[spec.Name]}
		if spec.KeySchema != "" {
			if opts.KeySchema, err = keycodec.ParseSchema(spec.KeySchema); err != nil {
				return fmt.Errorf("%w: scope %q: %w", ErrInvalidScope, spec.Name, err)
			}
		}

		if err = r.RegisterScope(spec.Name, opts); err != nil {
			return err
		}
	}
	return nil
}

func (r *ScopeRegistry) lookup(name string) (scope, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scopes[name]
	if !ok {
		return scope{}, fmt.Errorf("%w: %q", ErrUnknownScope, name)
	}
	return s, nil
}

// Names returns the registered scope names.
func (r *ScopeRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scopes))
	for name := range r.scopes {
		names = append(names, name)
	}
	return names
}
