// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hierarchy

import (
	"context"

	"github.com/canonical/permission-service/internal/types"
)

type ResolverInterface interface {
	Ancestors(ctx context.Context, tenantID string, ref types.ResourceRef) ([]types.ResourceRef, error)
	Register(ctx context.Context, resource *types.Resource) (*types.Resource, error)
	SetParent(ctx context.Context, tenantID string, ref types.ResourceRef, parent *types.ResourceRef) error
	Remove(ctx context.Context, tenantID string, ref types.ResourceRef) error
}

// StoreInterface is the slice of the storage layer the resolver needs.
type StoreInterface interface {
	GetResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) (*types.Resource, error)
	RegisterResource(ctx context.Context, r *types.Resource) (*types.Resource, error)
	SetResourceParent(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string, parentType *types.ResourceType, parentID *string) error
	DeleteResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) error
}

// QuotaInterface lets the resolver report document count and storage usage
// deltas without depending on the quota package.
type QuotaInterface interface {
	Adjust(ctx context.Context, tenantID, counter string, delta int64) (int64, error)
}
