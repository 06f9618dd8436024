// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package quota

import (
	"context"
	"testing"

	"github.com/canonical/permission-service/internal/types"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

// startSpanPassthrough stubs tracer starts while keeping request-scoped
// values, identity included, on the context.
func startSpanPassthrough(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

//go:generate mockgen -build_flags=--mod=mod -package quota -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package quota -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package quota -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package quota -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

func TestService_Exceeded(t *testing.T) {
	tenantID := "tenant-1"

	testCases := []struct {
		name     string
		counter  string
		tenant   *types.Tenant
		expected bool
		wantErr  bool
	}{
		{
			name:     "under user limit",
			counter:  "user_count",
			tenant:   &types.Tenant{ID: tenantID, UserCount: 4, MaxUsers: 5},
			expected: false,
		},
		{
			name:     "at user limit",
			counter:  "user_count",
			tenant:   &types.Tenant{ID: tenantID, UserCount: 5, MaxUsers: 5},
			expected: true,
		},
		{
			name:     "over document limit",
			counter:  "document_count",
			tenant:   &types.Tenant{ID: tenantID, DocumentCount: 120, MaxDocuments: 100},
			expected: true,
		},
		{
			name:     "zero limit means unlimited",
			counter:  "storage_used_bytes",
			tenant:   &types.Tenant{ID: tenantID, StorageUsedBytes: 1 << 40, MaxStorageBytes: 0},
			expected: false,
		},
		{
			name:    "unknown counter",
			counter: "cpu_count",
			tenant:  &types.Tenant{ID: tenantID},
			wantErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockStoreInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "quota.Service.Exceeded").
				DoAndReturn(startSpanPassthrough)
			mockStore.EXPECT().GetTenantByID(gomock.Any(), tenantID).Return(tc.tenant, nil)

			s := NewService(mockStore, mockTracer, mockMonitor, mockLogger)

			exceeded, err := s.Exceeded(context.Background(), tenantID, tc.counter)
			if tc.wantErr {
				if err == nil {
					t.Error("expected error but got none")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if exceeded != tc.expected {
				t.Errorf("expected exceeded=%v, got %v", tc.expected, exceeded)
			}
		})
	}
}

func TestService_Adjust(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "quota.Service.Adjust").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().AdjustTenantCounter(gomock.Any(), "tenant-1", "user_count", int64(1)).Return(int64(6), nil)

	s := NewService(mockStore, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	value, err := s.Adjust(context.Background(), "tenant-1", "user_count", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if value != 6 {
		t.Errorf("expected new value 6, got %d", value)
	}
}

func TestService_Recompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repaired := &types.Tenant{ID: "tenant-1", UserCount: 3, DocumentCount: 17, StorageUsedBytes: 4096}

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "quota.Service.Recompute").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().RecomputeTenantCounters(gomock.Any(), "tenant-1").Return(repaired, nil)
	mockLogger.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())

	s := NewService(mockStore, mockTracer, NewMockMonitorInterface(ctrl), mockLogger)

	tenant, err := s.Recompute(context.Background(), "tenant-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tenant.DocumentCount != 17 {
		t.Errorf("expected recounted totals, got %+v", tenant)
	}
}
