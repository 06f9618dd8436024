// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/types"
)

type ServiceInterface interface {
	Register(ctx context.Context, actorID string, resource *types.Resource) (*types.Resource, error)
	Move(ctx context.Context, actorID, tenantID string, ref types.ResourceRef, parent *types.ResourceRef) error
	Remove(ctx context.Context, actorID, tenantID string, ref types.ResourceRef) error
	RecomputeUsage(ctx context.Context, actorID, tenantID string) (*types.Tenant, error)
}

// HierarchyInterface is the containment-tree mutation surface this service
// fronts with authorization and auditing.
type HierarchyInterface interface {
	Register(ctx context.Context, resource *types.Resource) (*types.Resource, error)
	SetParent(ctx context.Context, tenantID string, ref types.ResourceRef, parent *types.ResourceRef) error
	Remove(ctx context.Context, tenantID string, ref types.ResourceRef) error
}

type EvaluatorInterface interface {
	EvaluateSilent(ctx context.Context, userID, tenantID string, ref types.ResourceRef, required capability.Set) (*types.Decision, error)
}

// StoreInterface is the slice of the storage layer the service reads.
type StoreInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetPlatformAdmin(ctx context.Context, userID string) (*types.PlatformAdmin, error)
}

type QuotaInterface interface {
	Exceeded(ctx context.Context, tenantID, counter string) (bool, error)
	Recompute(ctx context.Context, tenantID string) (*types.Tenant, error)
}

type AuditInterface interface {
	Record(ctx context.Context, entry *types.AuditEntry) error
	TryRecord(ctx context.Context, entry *types.AuditEntry)
}
