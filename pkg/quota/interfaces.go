// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package quota

import (
	"context"

	"github.com/canonical/permission-service/internal/types"
)

type ServiceInterface interface {
	Adjust(ctx context.Context, tenantID, counter string, delta int64) (int64, error)
	Exceeded(ctx context.Context, tenantID, counter string) (bool, error)
	Recompute(ctx context.Context, tenantID string) (*types.Tenant, error)
}

type StoreInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	AdjustTenantCounter(ctx context.Context, tenantID, counter string, delta int64) (int64, error)
	RecomputeTenantCounters(ctx context.Context, tenantID string) (*types.Tenant, error)
}
