// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/permission-service/internal/db"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var _ StorageInterface = (*Storage)(nil)

type Storage struct {
	db db.DBClientInterface

	logger  logging.LoggerInterface
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
}

func NewStorage(c db.DBClientInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Storage {
	s := new(Storage)

	s.db = c

	s.logger = logger
	s.tracer = tracer
	s.monitor = monitor

	return s
}

const tenantColumns = "id, name, slug, status, admin_level, max_users, max_documents, max_storage_bytes, user_count, document_count, storage_used_bytes, created_at, updated_at"

func scanTenant(row sq.RowScanner) (*types.Tenant, error) {
	var t types.Tenant
	err := row.Scan(
		&t.ID, &t.Name, &t.Slug, &t.Status, &t.AdminLevel,
		&t.MaxUsers, &t.MaxDocuments, &t.MaxStorageBytes,
		&t.UserCount, &t.DocumentCount, &t.StorageUsedBytes,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Storage) CreateTenant(ctx context.Context, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.CreateTenant")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate tenant ID: %w", err)
	}

	row := s.db.Statement(ctx).
		Insert("tenants").
		Columns("id", "name", "slug", "status", "admin_level", "max_users", "max_documents", "max_storage_bytes").
		Values(id.String(), t.Name, t.Slug, t.Status, t.AdminLevel, t.MaxUsers, t.MaxDocuments, t.MaxStorageBytes).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx)

	created, err := scanTenant(row)
	if err != nil {
		if IsDuplicateKeyError(err) {
			return nil, WrapDuplicateKeyError(err, "tenant slug already in use")
		}
		return nil, fmt.Errorf("failed to insert tenant: %w", err)
	}

	return created, nil
}

func (s *Storage) GetTenantByID(ctx context.Context, id string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetTenantByID")
	defer span.End()

	row := s.db.Statement(ctx).
		Select(tenantColumns).
		From("tenants").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get tenant: %w", err)
	}

	return t, nil
}

func (s *Storage) UpdateTenantStatus(ctx context.Context, id string, status types.TenantStatus) error {
	ctx, span := s.tracer.Start(ctx, "storage.UpdateTenantStatus")
	defer span.End()

	res, err := s.db.Statement(ctx).
		Update("tenants").
		Set("status", status).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": id}).
		ExecContext(ctx)

	if err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
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

// counterColumns whitelists the adjustable usage counters. Deltas outside
// this set are a programming error.
var counterColumns = map[string]bool{
	"user_count":         true,
	"document_count":     true,
	"storage_used_bytes": true,
}

// AdjustTenantCounter applies an atomic delta to a usage counter, clamping at
// zero. The arithmetic runs inside the UPDATE so concurrent sessions never
// lose increments; it picks up a context transaction when one is present.
func (s *Storage) AdjustTenantCounter(ctx context.Context, tenantID, counter string, delta int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "storage.AdjustTenantCounter")
	defer span.End()

	if !counterColumns[counter] {
		return 0, fmt.Errorf("unknown usage counter %q", counter)
	}

	var value int64
	err := s.db.Statement(ctx).
		Update("tenants").
		Set(counter, sq.Expr("GREATEST("+counter+" + ?, 0)", delta)).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": tenantID}).
		Suffix("RETURNING " + counter).
		QueryRowContext(ctx).
		Scan(&value)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("failed to adjust counter %s: %w", counter, err)
	}

	return value, nil
}

// RecomputeTenantCounters is the explicit repair operation: it replaces the
// running counters with totals recounted from memberships and resources.
// Normal operation only ever applies monotone deltas.
func (s *Storage) RecomputeTenantCounters(ctx context.Context, tenantID string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "storage.RecomputeTenantCounters")
	defer span.End()

	row := s.db.Statement(ctx).
		Update("tenants").
		Set("user_count", sq.Expr("(SELECT count(*) FROM memberships WHERE tenant_id = tenants.id AND status = 'active')")).
		Set("document_count", sq.Expr("(SELECT count(*) FROM resources WHERE tenant_id = tenants.id AND resource_type = 'document')")).
		Set("storage_used_bytes", sq.Expr("(SELECT coalesce(sum(size_bytes), 0) FROM resources WHERE tenant_id = tenants.id)")).
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"id": tenantID}).
		Suffix("RETURNING " + tenantColumns).
		QueryRowContext(ctx)

	t, err := scanTenant(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to recompute counters: %w", err)
	}

	return t, nil
}

func (s *Storage) GetPlatformAdmin(ctx context.Context, userID string) (*types.PlatformAdmin, error) {
	ctx, span := s.tracer.Start(ctx, "storage.GetPlatformAdmin")
	defer span.End()

	var a types.PlatformAdmin
	err := s.db.Statement(ctx).
		Select("user_id", "role", "created_at").
		From("platform_admins").
		Where(sq.Eq{"user_id": userID}).
		QueryRowContext(ctx).
		Scan(&a.UserID, &a.Role, &a.CreatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get platform admin: %w", err)
	}

	return &a, nil
}
