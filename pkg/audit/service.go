// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package audit records and serves the immutable trail of privileged
// decisions and mutations. Entries are append-only; nothing in the service
// updates or deletes them.
package audit

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

// ErrUnknownFormat is returned by Export for formats other than jsonl or csv.
var ErrUnknownFormat = errors.New("unknown export format")

type Service struct {
	store StoreInterface

	// exportPageSize bounds how many rows a single export query fetches;
	// the stream pages through the result set without materializing it.
	exportPageSize uint64

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StoreInterface, exportPageSize uint64, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.exportPageSize = exportPageSize
	if s.exportPageSize == 0 {
		s.exportPageSize = 500
	}
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

func (s *Service) Record(ctx context.Context, entry *types.AuditEntry) error {
	ctx, span := s.tracer.Start(ctx, "audit.Service.Record")
	defer span.End()

	if entry.Level == "" {
		entry.Level = types.LevelInfo
	}

	if _, err := s.store.InsertAuditEntry(ctx, entry); err != nil {
		return fmt.Errorf("failed to record audit entry: %w", err)
	}

	return nil
}

func (s *Service) TryRecord(ctx context.Context, entry *types.AuditEntry) {
	if err := s.Record(ctx, entry); err != nil {
		s.logger.Security().AuditWriteFailure(entry.Action, err)
	}
}

// Query returns one page of matching entries, newest first.
func (s *Service) Query(ctx context.Context, filter types.AuditFilter, page, size uint64) ([]*types.AuditEntry, error) {
	ctx, span := s.tracer.Start(ctx, "audit.Service.Query")
	defer span.End()

	if size == 0 {
		size = 50
	}

	return s.store.ListAuditEntries(ctx, filter, page*size, size)
}

// Export streams every matching entry to w, newest first, in fixed-size
// pages. Supported formats are "jsonl" and "csv".
func (s *Service) Export(ctx context.Context, filter types.AuditFilter, format string, w io.Writer) error {
	ctx, span := s.tracer.Start(ctx, "audit.Service.Export")
	defer span.End()

	var write func(*types.AuditEntry) error
	var flush func() error

	switch format {
	case "jsonl":
		enc := json.NewEncoder(w)
		write = func(e *types.AuditEntry) error { return enc.Encode(e) }
		flush = func() error { return nil }
	case "csv":
		cw := csv.NewWriter(w)
		if err := cw.Write(csvHeader); err != nil {
			return err
		}
		write = func(e *types.AuditEntry) error { return cw.Write(csvRecord(e)) }
		flush = func() error { cw.Flush(); return cw.Error() }
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	for offset := uint64(0); ; offset += s.exportPageSize {
		entries, err := s.store.ListAuditEntries(ctx, filter, offset, s.exportPageSize)
		if err != nil {
			return fmt.Errorf("failed to export audit entries: %w", err)
		}

		for _, e := range entries {
			if err := write(e); err != nil {
				return err
			}
		}

		if uint64(len(entries)) < s.exportPageSize {
			break
		}
	}

	return flush()
}

var csvHeader = []string{
	"id", "tenant_id", "action", "level", "actor_id", "actor_name",
	"resource_type", "resource_id", "resource_name",
	"success", "error_message", "duration_ms", "created_at",
}

func csvRecord(e *types.AuditEntry) []string {
	tenantID := ""
	if e.TenantID != nil {
		tenantID = *e.TenantID
	}

	return []string{
		e.ID, tenantID, e.Action, string(e.Level), e.ActorID, e.ActorName,
		e.ResourceType, e.ResourceID, e.ResourceName,
		strconv.FormatBool(e.Success), e.ErrorMessage,
		strconv.FormatInt(e.DurationMS, 10), e.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
