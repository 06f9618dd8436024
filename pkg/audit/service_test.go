// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/canonical/permission-service/internal/types"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

// startSpanPassthrough stubs tracer starts while keeping request-scoped
// values, identity included, on the context.
func startSpanPassthrough(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

//go:generate mockgen -build_flags=--mod=mod -package audit -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package audit -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package audit -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package audit -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func entryFixture(i int) *types.AuditEntry {
	tenantID := "tenant-1"
	return &types.AuditEntry{
		ID:        fmt.Sprintf("entry-%d", i),
		TenantID:  &tenantID,
		Action:    types.ActionPermGrant,
		Level:     types.LevelInfo,
		ActorID:   "admin-1",
		Success:   true,
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(i) * time.Minute),
	}
}

func TestService_RecordDefaultsLevel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "audit.Service.Record").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().InsertAuditEntry(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *types.AuditEntry) (*types.AuditEntry, error) {
			if e.Level != types.LevelInfo {
				return nil, errors.New("expected level to default to info")
			}
			return e, nil
		})

	s := NewService(mockStore, 500, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	if err := s.Record(context.Background(), &types.AuditEntry{Action: types.ActionPermGrant, ActorID: "u"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_TryRecordSwallowsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "audit.Service.Record").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().InsertAuditEntry(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))
	mockLogger.EXPECT().Security().Return(mockSecurity)
	mockSecurity.EXPECT().AuditWriteFailure(types.ActionPermCheck, gomock.Any())

	s := NewService(mockStore, 500, mockTracer, NewMockMonitorInterface(ctrl), mockLogger)

	s.TryRecord(context.Background(), &types.AuditEntry{Action: types.ActionPermCheck, ActorID: "u"})
}

func TestService_QueryPagination(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "audit.Service.Query").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().ListAuditEntries(gomock.Any(), gomock.Any(), uint64(40), uint64(20)).
		Return([]*types.AuditEntry{entryFixture(0)}, nil)

	s := NewService(mockStore, 500, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	entries, err := s.Query(context.Background(), types.AuditFilter{}, 2, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(entries))
	}
}

func TestService_ExportJSONLPaging(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "audit.Service.Export").
		DoAndReturn(startSpanPassthrough)

	// Full first page, partial second page: the stream must cross the
	// boundary and stop after the short page.
	first := []*types.AuditEntry{entryFixture(0), entryFixture(1)}
	second := []*types.AuditEntry{entryFixture(2)}
	mockStore.EXPECT().ListAuditEntries(gomock.Any(), gomock.Any(), uint64(0), uint64(2)).Return(first, nil)
	mockStore.EXPECT().ListAuditEntries(gomock.Any(), gomock.Any(), uint64(2), uint64(2)).Return(second, nil)

	s := NewService(mockStore, 2, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	var buf bytes.Buffer
	if err := s.Export(context.Background(), types.AuditFilter{}, "jsonl", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 JSON lines, got %d", len(lines))
	}
	var decoded types.AuditEntry
	if err := json.Unmarshal([]byte(lines[2]), &decoded); err != nil {
		t.Fatalf("line 3 is not valid JSON: %v", err)
	}
	if decoded.ID != "entry-2" {
		t.Errorf("expected entry-2 on the last line, got %s", decoded.ID)
	}
}

func TestService_ExportCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "audit.Service.Export").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().ListAuditEntries(gomock.Any(), gomock.Any(), uint64(0), uint64(500)).
		Return([]*types.AuditEntry{entryFixture(0)}, nil)

	s := NewService(mockStore, 500, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	var buf bytes.Buffer
	if err := s.Export(context.Background(), types.AuditFilter{}, "csv", &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header + 1 record, got %d rows", len(records))
	}
	if records[0][0] != "id" || records[1][0] != "entry-0" {
		t.Errorf("unexpected csv contents: %v", records)
	}
}

func TestService_ExportUnknownFormat(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "audit.Service.Export").
		DoAndReturn(startSpanPassthrough)

	s := NewService(NewMockStoreInterface(ctrl), 500, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	err := s.Export(context.Background(), types.AuditFilter{}, "xml", &bytes.Buffer{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("expected ErrUnknownFormat, got %v", err)
	}
}
