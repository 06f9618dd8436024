// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hierarchy

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/permission-service/internal/db"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

var (
	// ErrCycle is returned when a parent link would make a resource its own
	// ancestor.
	ErrCycle = errors.New("parent link would create a cycle")
	// ErrParentNotFound is returned when the proposed parent does not exist in
	// the tenant. Cross-tenant parents surface as this error because lookups
	// are tenant scoped.
	ErrParentNotFound = errors.New("parent resource not found")
)

// maxHops bounds the ancestor walk. Deeper chains are treated as ending at
// the cap rather than erroring, so a corrupted link can never wedge
// evaluation.
const maxHops = 10

type Resolver struct {
	db    db.DBClientInterface
	store StoreInterface
	quota QuotaInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ResolverInterface = (*Resolver)(nil)

func NewResolver(dbClient db.DBClientInterface, store StoreInterface, quota QuotaInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Resolver {
	r := new(Resolver)

	r.db = dbClient
	r.store = store
	r.quota = quota
	r.tracer = tracer
	r.monitor = monitor
	r.logger = logger

	return r
}

// Ancestors returns the containment chain above ref, nearest parent first.
// The walk stops at maxHops and visits each node at most once, so it
// terminates even on corrupted links.
func (r *Resolver) Ancestors(ctx context.Context, tenantID string, ref types.ResourceRef) ([]types.ResourceRef, error) {
	ctx, span := r.tracer.Start(ctx, "hierarchy.Resolver.Ancestors")
	defer span.End()

	seen := map[types.ResourceRef]bool{ref: true}
	var chain []types.ResourceRef

	current := ref
	for hop := 0; hop < maxHops; hop++ {
		res, err := r.store.GetResource(ctx, tenantID, current.Type, current.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Unregistered resources are roots; grants on them still
				// apply, they just have no ancestors.
				return chain, nil
			}
			return nil, fmt.Errorf("failed to walk resource hierarchy: %w", err)
		}

		if res.ParentType == nil || res.ParentID == nil {
			return chain, nil
		}

		parent := types.ResourceRef{Type: *res.ParentType, ID: *res.ParentID}
		if seen[parent] {
			r.logger.Warnf("resource hierarchy loop at %s/%s in tenant %s", parent.Type, parent.ID, tenantID)
			return chain, nil
		}

		seen[parent] = true
		chain = append(chain, parent)
		current = parent
	}

	return chain, nil
}

// Register stores the resource row and, for documents, reports the count and
// size deltas to the quota tracker. Row and deltas commit in one transaction
// so the counters can never miss a registered document.
func (r *Resolver) Register(ctx context.Context, resource *types.Resource) (*types.Resource, error) {
	ctx, span := r.tracer.Start(ctx, "hierarchy.Resolver.Register")
	defer span.End()

	if resource.ParentType != nil && resource.ParentID != nil {
		if _, err := r.store.GetResource(ctx, resource.TenantID, *resource.ParentType, *resource.ParentID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrParentNotFound
			}
			return nil, err
		}
	}

	var created *types.Resource
	err := r.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = r.store.RegisterResource(ctx, resource)
		if err != nil {
			return err
		}

		if created.Type == types.ResourceDocument {
			if _, err := r.quota.Adjust(ctx, created.TenantID, "document_count", 1); err != nil {
				return err
			}
			if created.SizeBytes > 0 {
				if _, err := r.quota.Adjust(ctx, created.TenantID, "storage_used_bytes", created.SizeBytes); err != nil {
					return err
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// SetParent relinks a resource, refusing links that would create a cycle.
// A nil parent detaches the resource into a root.
func (r *Resolver) SetParent(ctx context.Context, tenantID string, ref types.ResourceRef, parent *types.ResourceRef) error {
	ctx, span := r.tracer.Start(ctx, "hierarchy.Resolver.SetParent")
	defer span.End()

	if parent == nil {
		return r.store.SetResourceParent(ctx, tenantID, ref.Type, ref.ID, nil, nil)
	}

	if *parent == ref {
		return ErrCycle
	}

	if _, err := r.store.GetResource(ctx, tenantID, parent.Type, parent.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrParentNotFound
		}
		return err
	}

	// The link is a cycle exactly when ref already sits above the proposed
	// parent.
	above, err := r.Ancestors(ctx, tenantID, *parent)
	if err != nil {
		return err
	}
	for _, a := range above {
		if a == ref {
			return ErrCycle
		}
	}

	return r.store.SetResourceParent(ctx, tenantID, ref.Type, ref.ID, &parent.Type, &parent.ID)
}

// Remove deletes the resource row and reverses its quota contribution in the
// same transaction. Children keep their parent link; they resolve as roots
// once the parent row is gone.
func (r *Resolver) Remove(ctx context.Context, tenantID string, ref types.ResourceRef) error {
	ctx, span := r.tracer.Start(ctx, "hierarchy.Resolver.Remove")
	defer span.End()

	res, err := r.store.GetResource(ctx, tenantID, ref.Type, ref.ID)
	if err != nil {
		return err
	}

	return r.db.WithTx(ctx, func(ctx context.Context) error {
		if err := r.store.DeleteResource(ctx, tenantID, ref.Type, ref.ID); err != nil {
			return err
		}

		if res.Type == types.ResourceDocument {
			if _, err := r.quota.Adjust(ctx, tenantID, "document_count", -1); err != nil {
				return err
			}
			if res.SizeBytes > 0 {
				if _, err := r.quota.Adjust(ctx, tenantID, "storage_used_bytes", -res.SizeBytes); err != nil {
					return err
				}
			}
		}

		return nil
	})
}
