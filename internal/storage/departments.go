// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/permission-service/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const departmentColumns = "id, tenant_id, name, parent_id, path, level, created_at"

func scanDepartment(row sq.RowScanner) (*types.Department, error) {
	var d types.Department
	err := row.Scan(&d.ID, &d.TenantID, &d.Name, &d.ParentID, &d.Path, &d.Level, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CreateDepartment inserts a department, deriving path and level from the
// parent. The materialized path keeps ancestor lookups to a single query.
func (s *Storage) CreateDepartment(ctx context.Context, d *types.Department) (*types.Department, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateDepartment")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate department ID: %w", err)
	}

	path := id.String()
	level := 0
	if d.ParentID != nil {
		parent, err := s.GetDepartmentByID(ctx, d.TenantID, *d.ParentID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent department: %w", err)
		}
		path = parent.Path + "/" + id.String()
		level = parent.Level + 1
	}

	row := s.db.Statement(ctx).
		Insert("departments").
		Columns("id", "tenant_id", "name", "parent_id", "path", "level").
		Values(id.String(), d.TenantID, d.Name, d.ParentID, path, level).
		Suffix("RETURNING " + departmentColumns).
		QueryRowContext(ctx)

	created, err := scanDepartment(row)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to insert department: %w", err)
	}

	return created, nil
}

func (s *Storage) GetDepartmentByID(ctx context.Context, tenantID, id string) (*types.Department, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetDepartmentByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(departmentColumns).
		From("departments").
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		QueryRowContext(ctx)

	d, err := scanDepartment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}

	return d, nil
}

// MoveDepartment reparents a department and rewrites the materialized paths
// of its whole subtree. Cycles are refused here, at the structural mutation,
// so reads never have to re-verify acyclicity.
func (s *Storage) MoveDepartment(ctx context.Context, tenantID, id string, newParentID *string) error {
	ctx, span := s.tracer.Start(ctx, "storage.MoveDepartment")
	defer span.End()

	dept, err := s.GetDepartmentByID(ctx, tenantID, id)
	if err != nil {
		return err
	}

	newPath := dept.ID
	newLevel := 0
	if newParentID != nil {
		parent, err := s.GetDepartmentByID(ctx, tenantID, *newParentID)
		if err != nil {
			return fmt.Errorf("failed to resolve new parent: %w", err)
		}
		if parent.ID == dept.ID || strings.HasPrefix(parent.Path+"/", dept.Path+"/") {
			return fmt.Errorf("move of department %s under %s would create a cycle", dept.ID, parent.ID)
		}
		newPath = parent.Path + "/" + dept.ID
		newLevel = parent.Level + 1
	}

	levelDelta := newLevel - dept.Level

	_, err = s.db.Statement(ctx).
		Update("departments").
		Set("parent_id", newParentID).
		Where(sq.Eq{"tenant_id": tenantID, "id": id}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to reparent department: %w", err)
	}

	// Rewrite the path prefix for the department and every descendant.
	_, err = s.db.Statement(ctx).
		Update("departments").
		Set("path", sq.Expr("? || substr(path, ?)", newPath, len(dept.Path)+1)).
		Set("level", sq.Expr("level + ?", levelDelta)).
		Where(sq.Eq{"tenant_id": tenantID}).
		Where(sq.Or{
			sq.Eq{"id": id},
			sq.Like{"path": dept.Path + "/%"},
		}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to rewrite department paths: %w", err)
	}

	return nil
}

func (s *Storage) ListDepartments(ctx context.Context, tenantID string) ([]*types.Department, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListDepartments")
	defer span.End()

	rows, err := s.db.Statement(ctx).
		Select(departmentColumns).
		From("departments").
		Where(sq.Eq{"tenant_id": tenantID}).
		OrderBy("path").
		QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var departments []*types.Department
	for rows.Next() {
		var d types.Department
		if err := rows.Scan(&d.ID, &d.TenantID, &d.Name, &d.ParentID, &d.Path, &d.Level, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, &d)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return departments, nil
}
