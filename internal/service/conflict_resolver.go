package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-sync-batch/internal/logger"
	"github.com/MKhiriev/go-sync-batch/models"
)

// conflictResolver turns a write conflict into the Conflict record reported
// to the client, writing the client or merged version when it wins.
type conflictResolver struct {
	applier EntityApplier
	logger  *logger.Logger
}

func newConflictResolver(applier EntityApplier, log *logger.Logger) *conflictResolver {
	return &conflictResolver{applier: applier, logger: log}
}

// Resolve applies policy to the conflict between client and the live server
// entity. Storage failures while writing the winner become SyncErrors; only
// failures of the applier call itself are returned as errors.
func (r *conflictResolver) Resolve(ctx context.Context, s scope, policy models.Resolution, client, live models.ChangeRecord) (models.Conflict, error) {
	// both sides deleted the entity: nothing to resolve, the client only
	// learns the live tombstone
	if client.Tombstone && live.Tombstone {
		return models.LiveConflict{Live: live}, nil
	}

	switch policy {
	case models.ServerWins:
		return models.SyncConflict{Live: live, Losing: client, Resolution: models.ServerWins}, nil

	case models.ClientWins:
		return r.overwrite(ctx, s, client, client, live, models.ClientWins)

	case models.Merge:
		if s.Interceptor == nil {
			return nil, fmt.Errorf("%w: scope %q", ErrPolicyNotSupported, s.name)
		}

		decision, merged, err := s.Interceptor.Merge(ctx, MergeContext{ScopeName: s.name}, client, live)
		if err != nil {
			r.logger.Warn().Err(err).Str("func", "conflictResolver.Resolve").Str("scope", s.name).
				Str("key", client.Key).Msg("merge interceptor failed")
			return models.SyncError{
				Live:        &live,
				ErrorEntity: client,
				Description: "merge failed: " + err.Error(),
			}, nil
		}

		switch decision {
		case models.ServerWins, models.ClientWins:
			return r.Resolve(ctx, s, decision, client, live)
		case models.Merge:
			// merged versions always replace the client's entity
			merged.Key = client.Key
			return r.overwrite(ctx, s, merged, client, live, models.Merge)
		default:
			return models.SyncError{
				Live:        &live,
				ErrorEntity: client,
				Description: fmt.Sprintf("merge interceptor returned %s", decision),
			}, nil
		}

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownResolutionPolicy, policy)
	}
}

// overwrite force-writes winner over live. losing is the version reported
// as having lost: the server entity when the client won, the client entity
// when a merged version was written.
func (r *conflictResolver) overwrite(ctx context.Context, s scope, winner, client, live models.ChangeRecord, resolution models.Resolution) (models.Conflict, error) {
	result, err := r.applier.TryApply(ctx, s.name, winner, true)
	if err != nil {
		return nil, err
	}

	switch result.Status {
	case models.Applied:
		losing := live
		if resolution == models.Merge {
			losing = client
		}
		// report what the store holds now so the client continues from the
		// new concurrency token
		stored := winner
		if result.Live != nil {
			stored = *result.Live
		}
		return models.SyncConflict{Live: stored, Losing: losing, Resolution: resolution}, nil
	case models.ApplyStoreError:
		return models.SyncError{Live: &live, ErrorEntity: client, Description: result.Description}, nil
	case models.ApplyConflict:
		return models.SyncError{
			Live:        result.Live,
			ErrorEntity: client,
			Description: "conflict persisted after forced write",
		}, nil
	default:
		return nil, protocolError(fmt.Errorf("%w: %d for %q", ErrUnexpectedApplyStatus, result.Status, client.Key))
	}
}
