// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import (
	"context"

	"github.com/canonical/permission-service/internal/types"
)

// MemberUpdate carries the mutable membership fields. Nil fields are left
// untouched.
type MemberUpdate struct {
	RoleID       *string
	DepartmentID *string
	Status       *types.MembershipStatus
}

type ServiceInterface interface {
	CreateTenant(ctx context.Context, actorID string, t *types.Tenant) (*types.Tenant, error)
	GetTenant(ctx context.Context, actorID, tenantID string) (*types.Tenant, error)
	SetStatus(ctx context.Context, actorID, tenantID string, status types.TenantStatus) error

	CreateDepartment(ctx context.Context, actorID string, d *types.Department) (*types.Department, error)
	MoveDepartment(ctx context.Context, actorID, tenantID, departmentID string, newParentID *string) error

	AddMember(ctx context.Context, actorID string, m *types.Membership) (*types.Membership, error)
	UpdateMember(ctx context.Context, actorID, tenantID, userID string, update MemberUpdate) (*types.Membership, error)
}

// StoreInterface is the slice of the storage layer tenant administration
// reads and writes.
type StoreInterface interface {
	CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error)
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	UpdateTenantStatus(ctx context.Context, id string, status types.TenantStatus) error

	GetPlatformAdmin(ctx context.Context, userID string) (*types.PlatformAdmin, error)

	CreateDepartment(ctx context.Context, d *types.Department) (*types.Department, error)
	MoveDepartment(ctx context.Context, tenantID, id string, newParentID *string) error

	CreateRole(ctx context.Context, r *types.Role) (*types.Role, error)
	GetRoleByID(ctx context.Context, id string) (*types.Role, error)
	GetDefaultRole(ctx context.Context, tenantID string) (*types.Role, error)

	AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error)
	GetMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error)
	GetMembershipWithRole(ctx context.Context, tenantID, userID string) (*types.Membership, *types.Role, error)
	UpdateMembership(ctx context.Context, m *types.Membership, paths []string) error
}

type QuotaInterface interface {
	Adjust(ctx context.Context, tenantID, counter string, delta int64) (int64, error)
	Exceeded(ctx context.Context, tenantID, counter string) (bool, error)
}

type AuditInterface interface {
	Record(ctx context.Context, entry *types.AuditEntry) error
	TryRecord(ctx context.Context, entry *types.AuditEntry)
}
