// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"

	"github.com/canonical/permission-service/internal/types"
)

type StorageInterface interface {
	// Tenants
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	UpdateTenantStatus(ctx context.Context, id string, status types.TenantStatus) error
	AdjustTenantCounter(ctx context.Context, tenantID, counter string, delta int64) (int64, error)
	RecomputeTenantCounters(ctx context.Context, tenantID string) (*types.Tenant, error)

	// Platform admins
	GetPlatformAdmin(ctx context.Context, userID string) (*types.PlatformAdmin, error)

	// Departments
	CreateDepartment(ctx context.Context, d *types.Department) (*types.Department, error)
	GetDepartmentByID(ctx context.Context, tenantID, id string) (*types.Department, error)
	MoveDepartment(ctx context.Context, tenantID, id string, newParentID *string) error
	ListDepartments(ctx context.Context, tenantID string) ([]*types.Department, error)

	// Roles
	CreateRole(ctx context.Context, r *types.Role) (*types.Role, error)
	GetRoleByName(ctx context.Context, tenantID, name string) (*types.Role, error)
	GetRoleByID(ctx context.Context, id string) (*types.Role, error)
	UpdateRole(ctx context.Context, r *types.Role, paths []string) error
	DeleteRole(ctx context.Context, tenantID, name string) error
	SwapDefaultRole(ctx context.Context, tenantID, roleID string) error
	GetDefaultRole(ctx context.Context, tenantID string) (*types.Role, error)
	ListRoles(ctx context.Context, tenantID string) ([]*types.Role, error)

	// Memberships
	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error)
	GetMembershipWithRole(ctx context.Context, tenantID, userID string) (*types.Membership, *types.Role, error)
	UpdateMembership(ctx context.Context, m *types.Membership, paths []string) error
	ListMembersByTenantID(ctx context.Context, tenantID string) ([]*types.Membership, error)

	// Grants
	UpsertGrant(ctx context.Context, g *types.Grant) (*types.Grant, error)
	DeleteGrant(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string, granteeType types.GranteeType, granteeID string) error
	ListGrantsForResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) ([]*types.Grant, error)
	ListGrantsForGrantees(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID, userID string, roleID, departmentID *string) ([]*types.Grant, error)

	// Resources
	RegisterResource(ctx context.Context, r *types.Resource) (*types.Resource, error)
	GetResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) (*types.Resource, error)
	SetResourceParent(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string, parentType *types.ResourceType, parentID *string) error
	DeleteResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) error

	// Audit
	InsertAuditEntry(ctx context.Context, e *types.AuditEntry) (*types.AuditEntry, error)
	ListAuditEntries(ctx context.Context, filter types.AuditFilter, offset, limit uint64) ([]*types.AuditEntry, error)
}
