// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"io"

	"github.com/canonical/permission-service/internal/types"
)

type ServiceInterface interface {
	// Record persists an entry and propagates failures. Callers holding a
	// transaction use it so a lost audit row aborts the mutation it covers.
	Record(ctx context.Context, entry *types.AuditEntry) error
	// TryRecord persists an entry best-effort. Failures go to the security
	// log and are swallowed; read-path decisions use it so auditing never
	// blocks a check.
	TryRecord(ctx context.Context, entry *types.AuditEntry)
	Query(ctx context.Context, filter types.AuditFilter, page, size uint64) ([]*types.AuditEntry, error)
	Export(ctx context.Context, filter types.AuditFilter, format string, w io.Writer) error
}

type StoreInterface interface {
	InsertAuditEntry(ctx context.Context, e *types.AuditEntry) (*types.AuditEntry, error)
	ListAuditEntries(ctx context.Context, filter types.AuditFilter, offset, limit uint64) ([]*types.AuditEntry, error)
}

// PlatformInterface answers whether a principal holds a platform role; the
// audit API is platform-only.
type PlatformInterface interface {
	GetPlatformAdmin(ctx context.Context, userID string) (*types.PlatformAdmin, error)
}
