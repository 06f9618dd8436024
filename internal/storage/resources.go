// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/permission-service/internal/types"
	"github.com/jackc/pgx/v5"
)

const resourceColumns = "tenant_id, resource_type, resource_id, name, parent_type, parent_id, size_bytes, created_at"

func scanResource(row sq.RowScanner) (*types.Resource, error) {
	var r types.Resource
	err := row.Scan(&r.TenantID, &r.Type, &r.ID, &r.Name, &r.ParentType, &r.ParentID, &r.SizeBytes, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *Storage) RegisterResource(ctx context.Context, r *types.Resource) (*types.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RegisterResource")
	defer span.End()

	row := s.db.Statement(ctx).
		Insert("resources").
		Columns("tenant_id", "resource_type", "resource_id", "name", "parent_type", "parent_id", "size_bytes").
		Values(r.TenantID, r.Type, r.ID, r.Name, r.ParentType, r.ParentID, r.SizeBytes).
		Suffix("RETURNING " + resourceColumns).
		QueryRowContext(ctx)

	created, err := scanResource(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, ErrDuplicateKey
		}
		if IsForeignKeyViolation(err) {
			return nil, ErrForeignKeyViolation
		}
		return nil, fmt.Errorf("failed to register resource: %w", err)
	}

	return created, nil
}

func (s *Storage) GetResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) (*types.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetResource")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(resourceColumns).
		From("resources").
		Where(sq.Eq{
			"tenant_id":     tenantID,
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}).
		QueryRowContext(ctx)

	r, err := scanResource(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get resource: %w", err)
	}

	return r, nil
}

// SetResourceParent rewrites a resource's parent link. Acyclicity is the
// hierarchy resolver's responsibility and is verified before this runs.
func (s *Storage) SetResourceParent(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string, parentType *types.ResourceType, parentID *string) error {
	ctx, span := s.tracer.Start(ctx, "storage.SetResourceParent")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("resources").
		Set("parent_type", parentType).
		Set("parent_id", parentID).
		Where(sq.Eq{
			"tenant_id":     tenantID,
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to set resource parent: %w", err)
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

func (s *Storage) DeleteResource(ctx context.Context, tenantID string, resourceType types.ResourceType, resourceID string) error {
	ctx, span := s.tracer.Start(ctx, "storage.DeleteResource")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Delete("resources").
		Where(sq.Eq{
			"tenant_id":     tenantID,
			"resource_type": resourceType,
			"resource_id":   resourceID,
		}).
		ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete resource: %w", err)
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
