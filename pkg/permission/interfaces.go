// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package permission

import (
	"context"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/types"
)

type EvaluatorInterface interface {
	// Evaluate resolves a capability request and emits decision metrics and,
	// for denied mutating requests, an audit entry.
	Evaluate(ctx context.Context, userID, tenantID string, ref types.ResourceRef, required capability.Set) (*types.Decision, error)
	// EvaluateSilent resolves without any side effects. Internal
	// authorization checks use it so they never pollute the audit trail.
	EvaluateSilent(ctx context.Context, userID, tenantID string, ref types.ResourceRef, required capability.Set) (*types.Decision, error)
}

type ServiceInterface interface {
	Grant(ctx context.Context, actorID string, grant *types.Grant) (*types.Grant, error)
	Revoke(ctx context.Context, actorID, tenantID string, ref types.ResourceRef, granteeType types.GranteeType, granteeID string) error
	ListEffective(ctx context.Context, tenantID string, ref types.ResourceRef) ([]*types.Grant, error)
}

// StoreInterface is the slice of the storage layer the evaluator and grant
// service read and write.
type StoreInterface interface {
	GetTenantByID(ctx context.Context, id string) (*types.Tenant, error)
	GetPlatformAdmin(ctx context.Context, userID string) (*types.PlatformAdmin, error)
	GetMembershipWithRole(ctx context.Context, tenantID, userID string) (*types.Membership, *types.Role, error)
	ListGrantsForGrantees(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID, userID string, roleID, departmentID *string) ([]*types.Grant, error)
	ListGrantsForResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) ([]*types.Grant, error)
	UpsertGrant(ctx context.Context, g *types.Grant) (*types.Grant, error)
	DeleteGrant(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string, granteeType types.GranteeType, granteeID string) error
}

type HierarchyInterface interface {
	Ancestors(ctx context.Context, tenantID string, ref types.ResourceRef) ([]types.ResourceRef, error)
}

type AuditInterface interface {
	Record(ctx context.Context, entry *types.AuditEntry) error
	TryRecord(ctx context.Context, entry *types.AuditEntry)
}
