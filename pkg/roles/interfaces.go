// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package roles

import (
	"context"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/types"
)

// RoleUpdate carries the mutable role fields. Nil fields are left untouched.
// Setting IsDefault true swaps the tenant's default role atomically; setting
// it false is refused, since every tenant must keep exactly one default.
type RoleUpdate struct {
	Name        *string
	DisplayName *string
	Description *string
	Level       *int
	Permissions *capability.Set
	IsDefault   *bool
}

type ServiceInterface interface {
	CreateRole(ctx context.Context, actorID string, r *types.Role) (*types.Role, error)
	UpdateRole(ctx context.Context, actorID, tenantID, name string, update RoleUpdate) (*types.Role, error)
	DeleteRole(ctx context.Context, actorID, tenantID, name string) error
	ListRoles(ctx context.Context, actorID, tenantID string) ([]*types.Role, error)
}

type StoreInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetPlatformAdmin(ctx context.Context, userID string) (*types.PlatformAdmin, error)
	GetMembershipWithRole(ctx context.Context, tenantID, userID string) (*types.Membership, *types.Role, error)

	CreateRole(ctx context.Context, r *types.Role) (*types.Role, error)
	GetRoleByName(ctx context.Context, tenantID, name string) (*types.Role, error)
	UpdateRole(ctx context.Context, r *types.Role, paths []string) error
	DeleteRole(ctx context.Context, tenantID, name string) error
	SwapDefaultRole(ctx context.Context, tenantID, roleID string) error
	ListRoles(ctx context.Context, tenantID string) ([]*types.Role, error)
}

type AuditInterface interface {
	Record(ctx context.Context, entry *types.AuditEntry) error
	TryRecord(ctx context.Context, entry *types.AuditEntry)
}
