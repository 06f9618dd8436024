// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/permission-service/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const roleColumns = "id, tenant_id, name, display_name, description, level, permissions, is_system, is_default, created_at, updated_at"

func scanRole(row sq.RowScanner) (*types.Role, error) {
	var r types.Role
	err := row.Scan(
		&r.ID, &r.TenantID, &r.Name, &r.DisplayName, &r.Description,
		&r.Level, &r.Permissions, &r.IsSystem, &r.IsDefault,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Storage) CreateRole(ctx context.Context, r *types.Role) (*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateRole")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate role ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("tenant_roles").
		Columns("id", "tenant_id", "name", "display_name", "description", "level", "permissions", "is_system", "is_default").
		Values(id.String(), r.TenantID, r.Name, r.DisplayName, r.Description, r.Level, r.Permissions, r.IsSystem, r.IsDefault).
		Suffix("RETURNING " + roleColumns).
		QueryRowContext(ctx)

	created, err := scanRole(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "role name already exists in tenant")
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert role: %w", err)
	}

	return created, nil
}

func (s *Storage) GetRoleByName(ctx context.Context, tenantID, name string) (*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetRoleByName")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(roleColumns).
		From("tenant_roles").
		Where(sq.Eq{"tenant_id": tenantID, "name": name}).
		QueryRowContext(ctx)

	r, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return r, nil
}

func (s *Storage) GetRoleByID(ctx context.Context, id string) (*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetRoleByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(roleColumns).
		From("tenant_roles").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	r, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get role: %w", err)
	}

	return r, nil
}

// UpdateRole updates fields named in paths, following PATCH semantics.
func (s *Storage) UpdateRole(ctx context.Context, r *types.Role, paths []string) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateRole")
	defer span.End()

	if len(paths) == 0 {
		return nil
	}

	updateMap := make(map[string]interface{})
	for _, p := range paths {
		switch p {
		case "name":
			updateMap["name"] = r.Name
		case "display_name":
			updateMap["display_name"] = r.DisplayName
		case "description":
			updateMap["description"] = r.Description
		case "level":
			updateMap["level"] = r.Level
		case "permissions":
			updateMap["permissions"] = r.Permissions
		}
	}

	if len(updateMap) == 0 {
		return nil
	}
	updateMap["updated_at"] = sq.Expr("now()")

	res, err := s.db.Statement(ctx).
		Update("tenant_roles").
		SetMap(updateMap).
		Where(sq.Eq{"id": r.ID, "tenant_id": r.TenantID}).
		ExecContext(ctx)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return WrapDuplicateKeyError(err, "role name already exists in tenant")
		}
		return fmt.Errorf("failed to update role: %w", err)
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

// DeleteRole removes a non-system role. Memberships referencing it fall back
// to NULL via the schema's ON DELETE SET NULL.
func (s *Storage) DeleteRole(ctx context.Context, tenantID, name string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteRole")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("tenant_roles").
		Where(sq.Eq{"tenant_id": tenantID, "name": name, "is_system": false}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete role: %w", err)
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

// SwapDefaultRole atomically moves the is_default flag to the given role,
// preserving the one-default-per-tenant invariant. Callers wrap it in a
// transaction together with the audit write.
func (s *Storage) SwapDefaultRole(ctx context.Context, tenantID, roleID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SwapDefaultRole")
	defer span.End()

	_, err := s.db.Statement(ctx).
		Update("tenant_roles").
		Set("is_default", false).
		Where(sq.Eq{"tenant_id": tenantID, "is_default": true}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to clear default role: %w", err)
	}

	res, err := s.db.Statement(ctx).
		Update("tenant_roles").
		Set("is_default", true).
		Where(sq.Eq{"tenant_id": tenantID, "id": roleID}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to set default role: %w", err)
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

func (s *Storage) GetDefaultRole(ctx context.Context, tenantID string) (*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetDefaultRole")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(roleColumns).
		From("tenant_roles").
		Where(sq.Eq{"tenant_id": tenantID, "is_default": true}).
		QueryRowContext(ctx)

	r, err := scanRole(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get default role: %w", err)
	}

	return r, nil
}

func (s *Storage) ListRoles(ctx context.Context, tenantID string) ([]*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListRoles")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(roleColumns).
		From("tenant_roles").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("level DESC", "name").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []*types.Role
	for rows.Next() {
		var r types.Role
		if err := rows.Scan(
			&r.ID, &r.TenantID, &r.Name, &r.DisplayName, &r.Description,
			&r.Level, &r.Permissions, &r.IsSystem, &r.IsDefault,
			&r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return roles, nil
}
