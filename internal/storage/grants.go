// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/permission-service/internal/types"
	"github.com/google/uuid"
)

const grantColumns = "id, tenant_id, resource_type, resource_id, grantee_type, grantee_id, permissions, inherit, granted_by, granted_at, expires_at"

// UpsertGrant inserts a grant or, when the unique (tenant, resource, grantee)
// key already exists, overwrites its bits, inherit flag and expiry. Last
// writer wins; the transaction's atomicity is the only lock needed.
func (s *Storage) UpsertGrant(ctx context.Context, g *types.Grant) (*types.Grant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.UpsertGrant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate grant ID: %w", err)
	}

	var created types.Grant
	err = s.db.Statement(ctx).
		Insert("grants").
		Columns("id", "tenant_id", "resource_type", "resource_id", "grantee_type", "grantee_id", "permissions", "inherit", "granted_by", "expires_at").
		Values(id.String(), g.TenantID, g.ResourceType, g.ResourceID, g.GranteeType, g.GranteeID, g.Permissions, g.Inherit, g.GrantedBy, g.ExpiresAt).
		Suffix(`ON CONFLICT (tenant_id, resource_type, resource_id, grantee_type, grantee_id)
			DO UPDATE SET permissions = EXCLUDED.permissions,
			              inherit = EXCLUDED.inherit,
			              granted_by = EXCLUDED.granted_by,
			              granted_at = now(),
			              expires_at = EXCLUDED.expires_at
			RETURNING ` + grantColumns).
		QueryRowContext(ctx).
		Scan(
			&created.ID, &created.TenantID, &created.ResourceType, &created.ResourceID,
			&created.GranteeType, &created.GranteeID, &created.Permissions, &created.Inherit,
			&created.GrantedBy, &created.GrantedAt, &created.ExpiresAt,
		)

	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to upsert grant: %w", err)
	}

	return &created, nil
}

// DeleteGrant removes a grant row. A missing row is not an error: revoke is
// idempotent by contract.
func (s *Storage) DeleteGrant(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string, granteeType types.GranteeType, granteeID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteGrant")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Delete("grants").
		Where(sq.Eq{
			"tenant_id":     tenantID,
			"resource_type": resourceType,
			"resource_id":   resourceID,
			"grantee_type":  granteeType,
			"grantee_id":    granteeID,
		}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete grant: %w", err)
	}

	return nil
}

// ListGrantsForResource returns every grant on the exact resource, ordered by
// grantee tier (user, role, department) then creation order, so callers get a
// deterministic first match per tier.
func (s *Storage) ListGrantsForResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) ([]*types.Grant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListGrantsForResource")
	defer span.End()

	return s.queryGrants(ctx, s.db.Statement(ctx).
		Select(grantColumns).
		From("grants").
		Where(sq.Eq{
			"tenant_id":     tenantID,
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}).
		OrderBy(granteeTierOrder, "granted_at", "id"))
}

// granteeTierOrder sorts user grants before role grants before department
// grants, matching the evaluator's resolution tiers.
const granteeTierOrder = `CASE grantee_type
	WHEN 'user' THEN 0
	WHEN 'role' THEN 1
	ELSE 2
END`

// ListGrantsForGrantees returns the grants on a resource that could apply to
// a principal identified by user id and optional role/department ids.
func (s *Storage) ListGrantsForGrantees(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID, userID string, roleID, departmentID *string) ([]*types.Grant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListGrantsForGrantees")
	defer span.End()

	grantees := sq.Or{
		sq.Eq{"grantee_type": types.GranteeUser, "grantee_id": userID},
	}
	if roleID != nil {
		grantees = append(grantees, sq.Eq{"grantee_type": types.GranteeRole, "grantee_id": *roleID})
	}
	if departmentID != nil {
		grantees = append(grantees, sq.Eq{"grantee_type": types.GranteeDepartment, "grantee_id": *departmentID})
	}

	return s.queryGrants(ctx, s.db.Statement(ctx).
		Select(grantColumns).
		From("grants").
		Where(sq.Eq{
			"tenant_id":     tenantID,
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}).
		Where(grantees).
		OrderBy(granteeTierOrder, "granted_at", "id"))
}

func (s *Storage) queryGrants(ctx context.Context, query sq.SelectBuilder) ([]*types.Grant, error) {
	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query grants: %w", err)
	}
	defer rows.Close()

	var grants []*types.Grant
	for rows.Next() {
		var g types.Grant
		if err := rows.Scan(
			&g.ID, &g.TenantID, &g.ResourceType, &g.ResourceID,
			&g.GranteeType, &g.GranteeID, &g.Permissions, &g.Inherit,
			&g.GrantedBy, &g.GrantedAt, &g.ExpiresAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan grant: %w", err)
		}
		grants = append(grants, &g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return grants, nil
}
