// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const membershipColumns = "id, tenant_id, user_id, role_id, department_id, status, created_at"

func (s *Storage) AddMember(ctx context.Context, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AddMember")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate membership ID: %w", err)
	}

	var created types.Membership
	err = s.db.Statement(ctx).
		Insert("memberships").
		Columns("id", "tenant_id", "user_id", "role_id", "department_id", "status").
		Values(id.String(), m.TenantID, m.UserID, m.RoleID, m.DepartmentID, m.Status).
		Suffix("RETURNING " + membershipColumns).
		QueryRowContext(ctx).
		Scan(&created.ID, &created.TenantID, &created.UserID, &created.RoleID, &created.DepartmentID, &created.Status, &created.CreatedAt)

	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return &created, nil
}

// GetMembership returns the (tenant, user) link regardless of status; the
// evaluator decides what non-active status means.
func (s *Storage) GetMembership(ctx context.Context, tenantID, userID string) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembership")
	defer span.End()

	var m types.Membership
	err := s.db.Statement(ctx).
		Select(membershipColumns).
		From("memberships").
		Where(sq.Eq{"tenant_id": tenantID, "user_id": userID}).
		QueryRowContext(ctx).
		Scan(&m.ID, &m.TenantID, &m.UserID, &m.RoleID, &m.DepartmentID, &m.Status, &m.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return &m, nil
}

// GetMembershipWithRole joins the membership with its role in one round trip;
// this is the evaluator's hot read.
func (s *Storage) GetMembershipWithRole(ctx context.Context, tenantID, userID string) (*types.Membership, *types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetMembershipWithRole")
	defer span.End()

	var (
		m types.Membership
		r types.Role

		roleID          *string
		roleTenantID    *string
		roleName        *string
		roleDisplayName *string
		roleDescription *string
		roleLevel       *int
		rolePermissions *uint32
		roleIsSystem    *bool
		roleIsDefault   *bool
	)

	err := s.db.Statement(ctx).
		Select(
			"m.id", "m.tenant_id", "m.user_id", "m.role_id", "m.department_id", "m.status", "m.created_at",
			"r.id", "r.tenant_id", "r.name", "r.display_name", "r.description", "r.level", "r.permissions", "r.is_system", "r.is_default",
		).
		From("memberships m").
		LeftJoin("tenant_roles r ON m.role_id = r.id").
		Where(sq.Eq{"m.tenant_id": tenantID, "m.user_id": userID}).
		QueryRowContext(ctx).
		Scan(
			&m.ID, &m.TenantID, &m.UserID, &m.RoleID, &m.DepartmentID, &m.Status, &m.CreatedAt,
			&roleID, &roleTenantID, &roleName, &roleDisplayName, &roleDescription, &roleLevel, &rolePermissions, &roleIsSystem, &roleIsDefault,
		)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("failed to get membership with role: %w", err)
	}

	if roleID == nil {
		return &m, nil, nil
	}

	r.ID = *roleID
	r.TenantID = *roleTenantID
	r.Name = *roleName
	r.DisplayName = *roleDisplayName
	if roleDescription != nil {
		r.Description = *roleDescription
	}
	r.Level = *roleLevel
	r.Permissions = capability.Set(*rolePermissions)
	r.IsSystem = *roleIsSystem
	r.IsDefault = *roleIsDefault

	return &m, &r, nil
}

// UpdateMembership updates fields named in paths (role_id, department_id,
// status), following PATCH semantics.
func (s *Storage) UpdateMembership(ctx context.Context, m *types.Membership, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateMembership")
	defer span.End()

	if len(paths) == 0 {
		return nil
	}

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "role_id":
			updateMap["role_id"] = m.RoleID
		case "department_id":
			updateMap["department_id"] = m.DepartmentID
		case "status":
			updateMap["status"] = m.Status
		}
	}

	if len(updateMap) == 0 {
		return nil
	}

	res, err := s.db.Statement(ctx).
		Update("memberships").
		SetMap(updateMap).
		Where(sq.Eq{"tenant_id": m.TenantID, "user_id": m.UserID}).
		ExecContext(ctx)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update membership: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (s *Storage) ListMembersByTenantID(ctx context.Context, tenantID string) ([]*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListMembersByTenantID")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(membershipColumns).
		From("memberships").
		Where(sq.Eq{"tenant_id": tenantID}).
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	defer rows.Close()

	var members []*types.Membership
	for rows.Next() {
		var m types.Membership
		if err := rows.Scan(&m.ID, &m.TenantID, &m.UserID, &m.RoleID, &m.DepartmentID, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return members, nil
}
