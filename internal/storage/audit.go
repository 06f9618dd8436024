// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package storage

import (
	"context"
	"encoding/json"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/canonical/permission-service/internal/types"
	"github.com/google/uuid"
)

const auditColumns = "id, tenant_id, action, level, actor_id, actor_name, resource_type, resource_id, resource_name, details, changes, ip_address, user_agent, request_id, success, error_message, duration_ms, created_at"

// InsertAuditEntry appends one immutable audit row. There is deliberately no
// update or delete counterpart in this package.
func (s *Storage) InsertAuditEntry(ctx context.Context, e *types.AuditEntry) (*types.AuditEntry, error) {
	ctx, span := s.tracer.Start(ctx, "storage.InsertAuditEntry")
	defer span.End()

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate audit entry ID: %w", err)
	}

	details, err := marshalJSONField(e.Details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit details: %w", err)
	}
	changes, err := marshalJSONField(e.Changes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit changes: %w", err)
	}

	var created types.AuditEntry
	var detailsRaw, changesRaw []byte
	err = s.db.Statement(ctx).
		Insert("audit_log").
		Columns(
			"id", "tenant_id", "action", "level", "actor_id", "actor_name",
			"resource_type", "resource_id", "resource_name", "details", "changes",
			"ip_address", "user_agent", "request_id", "success", "error_message", "duration_ms",
		).
		Values(
			id.String(), e.TenantID, e.Action, e.Level, e.ActorID, e.ActorName,
			e.ResourceType, e.ResourceID, e.ResourceName, details, changes,
			e.IPAddress, e.UserAgent, e.RequestID, e.Success, e.ErrorMessage, e.DurationMS,
		).
		Suffix("RETURNING " + auditColumns).
		QueryRowContext(ctx).
		Scan(
			&created.ID, &created.TenantID, &created.Action, &created.Level, &created.ActorID, &created.ActorName,
			&created.ResourceType, &created.ResourceID, &created.ResourceName, &detailsRaw, &changesRaw,
			&created.IPAddress, &created.UserAgent, &created.RequestID, &created.Success, &created.ErrorMessage, &created.DurationMS,
			&created.CreatedAt,
		)

	if err != nil {
		return nil, fmt.Errorf("failed to insert audit entry: %w", err)
	}

	created.Details, _ = unmarshalJSONField(detailsRaw)
	created.Changes, _ = unmarshalJSONField(changesRaw)

	return &created, nil
}

// ListAuditEntries returns a filtered page of entries, newest first.
func (s *Storage) ListAuditEntries(ctx context.Context, filter types.AuditFilter, offset, limit uint64) ([]*types.AuditEntry, error) {
	ctx, span := s.tracer.Start(ctx, "storage.ListAuditEntries")
	defer span.End()

	query := s.db.Statement(ctx).
		Select(auditColumns).
		From("audit_log").
		OrderBy("created_at DESC", "id DESC").
		Offset(offset).
		Limit(limit)

	if filter.TenantID != "" {
		query = query.Where(sq.Eq{"tenant_id": filter.TenantID})
	}
	if filter.Action != "" {
		query = query.Where(sq.Eq{"action": filter.Action})
	}
	if filter.ActorID != "" {
		query = query.Where(sq.Eq{"actor_id": filter.ActorID})
	}
	if filter.Level != "" {
		query = query.Where(sq.Eq{"level": filter.Level})
	}
	if !filter.From.IsZero() {
		query = query.Where(sq.GtOrEq{"created_at": filter.From})
	}
	if !filter.To.IsZero() {
		query = query.Where(sq.Lt{"created_at": filter.To})
	}

	rows, err := query.QueryContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit entries: %w", err)
	}
	defer rows.Close()

	var entries []*types.AuditEntry
	for rows.Next() {
		var e types.AuditEntry
		var detailsRaw, changesRaw []byte
		if err := rows.Scan(
			&e.ID, &e.TenantID, &e.Action, &e.Level, &e.ActorID, &e.ActorName,
			&e.ResourceType, &e.ResourceID, &e.ResourceName, &detailsRaw, &changesRaw,
			&e.IPAddress, &e.UserAgent, &e.RequestID, &e.Success, &e.ErrorMessage, &e.DurationMS,
			&e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan audit entry: %w", err)
		}

		e.Details, err = unmarshalJSONField(detailsRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode audit details: %w", err)
		}
		e.Changes, err = unmarshalJSONField(changesRaw)
		if err != nil {
			return nil, fmt.Errorf("failed to decode audit changes: %w", err)
		}

		entries = append(entries, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return entries, nil
}

func marshalJSONField(m map[string]any) ([]byte, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

func unmarshalJSONField(raw []byte) (map[string]any, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	return m, nil
}
