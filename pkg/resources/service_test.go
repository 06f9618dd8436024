// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"errors"
	"testing"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/hierarchy"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/types"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/mock/gomock"
)

// startSpanPassthrough stubs tracer starts while keeping request-scoped
// values, identity included, on the context.
func startSpanPassthrough(ctx context.Context, _ string, _ ...trace.SpanStartOption) (context.Context, trace.Span) {
	return ctx, trace.SpanFromContext(ctx)
}

//go:generate mockgen -build_flags=--mod=mod -package resources -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package resources -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package resources -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package resources -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	testTenantID = "tenant-1"
	testActorID  = "user-1"
)

var testRef = types.ResourceRef{Type: types.ResourceDocument, ID: "doc-1"}

func activeTenant() *types.Tenant {
	return &types.Tenant{ID: testTenantID, Status: types.TenantActive, AdminLevel: 100}
}

func documentFixture() *types.Resource {
	parentType := types.ResourceFolder
	parentID := "folder-1"
	return &types.Resource{
		TenantID:   testTenantID,
		Type:       types.ResourceDocument,
		ID:         "doc-1",
		Name:       "q3-report",
		ParentType: &parentType,
		ParentID:   &parentID,
		SizeBytes:  2048,
	}
}

type serviceMocks struct {
	store     *MockStoreInterface
	hierarchy *MockHierarchyInterface
	evaluator *MockEvaluatorInterface
	quota     *MockQuotaInterface
	audit     *MockAuditInterface
	logger    *MockLoggerInterface
}

func newTestService(ctrl *gomock.Controller, spanName string) (*Service, serviceMocks) {
	m := serviceMocks{
		store:     NewMockStoreInterface(ctrl),
		hierarchy: NewMockHierarchyInterface(ctrl),
		evaluator: NewMockEvaluatorInterface(ctrl),
		quota:     NewMockQuotaInterface(ctrl),
		audit:     NewMockAuditInterface(ctrl),
		logger:    NewMockLoggerInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), spanName).
		DoAndReturn(startSpanPassthrough)

	s := NewService(m.store, m.hierarchy, m.evaluator, m.quota, m.audit, mockTracer, NewMockMonitorInterface(ctrl), m.logger)
	return s, m
}

func writeAllowed(m serviceMocks, ref types.ResourceRef, required capability.Set) {
	m.store.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
	m.evaluator.EXPECT().EvaluateSilent(gomock.Any(), testActorID, testTenantID, ref, required).
		Return(&types.Decision{Allowed: true, Source: types.SourceTenantAdmin, EffectiveBits: capability.Owner}, nil)
}

func TestService_Register(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Register")

	resource := documentFixture()
	parentRef := types.ResourceRef{Type: *resource.ParentType, ID: *resource.ParentID}

	writeAllowed(m, parentRef, capability.Write)
	m.quota.EXPECT().Exceeded(gomock.Any(), testTenantID, "document_count").Return(false, nil)
	m.hierarchy.EXPECT().Register(gomock.Any(), resource).Return(resource, nil)
	m.audit.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Action != types.ActionResourceAdd || e.Level != types.LevelInfo || !e.Success {
				t.Errorf("unexpected audit entry: %+v", e)
			}
			if e.ResourceID != "doc-1" || e.ResourceName != "q3-report" {
				t.Errorf("unexpected audit resource: %+v", e)
			}
		})

	created, err := s.Register(context.Background(), testActorID, resource)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "doc-1" {
		t.Errorf("expected resource doc-1, got %s", created.ID)
	}
}

func TestService_RegisterRootAuthorizesOnSelf(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Register")

	root := &types.Resource{TenantID: testTenantID, Type: types.ResourceWorkspace, ID: "ws-1", Name: "eng"}

	writeAllowed(m, types.ResourceRef{Type: types.ResourceWorkspace, ID: "ws-1"}, capability.Write)
	m.hierarchy.EXPECT().Register(gomock.Any(), root).Return(root, nil)
	m.audit.EXPECT().TryRecord(gomock.Any(), gomock.Any())

	if _, err := s.Register(context.Background(), testActorID, root); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_RegisterQuotaExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Register")

	resource := documentFixture()
	parentRef := types.ResourceRef{Type: *resource.ParentType, ID: *resource.ParentID}

	writeAllowed(m, parentRef, capability.Write)
	m.quota.EXPECT().Exceeded(gomock.Any(), testTenantID, "document_count").Return(true, nil)

	if _, err := s.Register(context.Background(), testActorID, resource); !errors.Is(err, ErrQuotaExceeded) {
		t.Errorf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestService_RegisterDeniedActor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Register")

	resource := documentFixture()
	parentRef := types.ResourceRef{Type: *resource.ParentType, ID: *resource.ParentID}

	m.store.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
	m.evaluator.EXPECT().EvaluateSilent(gomock.Any(), testActorID, testTenantID, parentRef, capability.Write).
		Return(&types.Decision{Allowed: false, Source: types.SourceNone}, nil)
	m.audit.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Success || e.Action != types.ActionResourceAdd || e.Level != types.LevelSecurity {
				t.Errorf("unexpected audit entry: %+v", e)
			}
		})

	if _, err := s.Register(context.Background(), testActorID, resource); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}

func TestService_RegisterArchivedTenant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Register")

	archived := activeTenant()
	archived.Status = types.TenantArchived
	m.store.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(archived, nil)

	if _, err := s.Register(context.Background(), testActorID, documentFixture()); !errors.Is(err, ErrTenantArchived) {
		t.Errorf("expected ErrTenantArchived, got %v", err)
	}
}

func TestService_RegisterMapsStorageErrors(t *testing.T) {
	testCases := []struct {
		name         string
		hierarchyErr error
		expected     error
	}{
		{"missing parent", hierarchy.ErrParentNotFound, ErrParentNotFound},
		{"already registered", storage.ErrDuplicateKey, ErrResourceExists},
		{"unknown tenant", storage.ErrForeignKeyViolation, ErrTenantNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl, "resources.Service.Register")

			resource := documentFixture()
			parentRef := types.ResourceRef{Type: *resource.ParentType, ID: *resource.ParentID}

			writeAllowed(m, parentRef, capability.Write)
			m.quota.EXPECT().Exceeded(gomock.Any(), testTenantID, "document_count").Return(false, nil)
			m.hierarchy.EXPECT().Register(gomock.Any(), resource).Return(nil, tc.hierarchyErr)

			if _, err := s.Register(context.Background(), testActorID, resource); !errors.Is(err, tc.expected) {
				t.Errorf("expected %v, got %v", tc.expected, err)
			}
		})
	}
}

func TestService_Move(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Move")

	parent := &types.ResourceRef{Type: types.ResourceFolder, ID: "folder-2"}

	writeAllowed(m, testRef, capability.Write)
	m.hierarchy.EXPECT().SetParent(gomock.Any(), testTenantID, testRef, parent).Return(nil)
	m.audit.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Action != types.ActionResourceMove || !e.Success {
				t.Errorf("unexpected audit entry: %+v", e)
			}
			if e.Changes["parent_id"] != "folder-2" {
				t.Errorf("expected new parent in changes, got %+v", e.Changes)
			}
		})

	if err := s.Move(context.Background(), testActorID, testTenantID, testRef, parent); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_MoveCycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Move")

	parent := &types.ResourceRef{Type: types.ResourceFolder, ID: "folder-2"}

	writeAllowed(m, testRef, capability.Write)
	m.hierarchy.EXPECT().SetParent(gomock.Any(), testTenantID, testRef, parent).Return(hierarchy.ErrCycle)

	if err := s.Move(context.Background(), testActorID, testTenantID, testRef, parent); !errors.Is(err, ErrCycle) {
		t.Errorf("expected ErrCycle, got %v", err)
	}
}

func TestService_MoveDetachToRoot(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Move")

	writeAllowed(m, testRef, capability.Write)
	m.hierarchy.EXPECT().SetParent(gomock.Any(), testTenantID, testRef, nil).Return(nil)
	m.audit.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Changes["parent_id"] != nil {
				t.Errorf("expected cleared parent in changes, got %+v", e.Changes)
			}
		})

	if err := s.Move(context.Background(), testActorID, testTenantID, testRef, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Remove")

	writeAllowed(m, testRef, capability.Delete)
	m.hierarchy.EXPECT().Remove(gomock.Any(), testTenantID, testRef).Return(nil)
	m.audit.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Action != types.ActionResourceDel || !e.Success {
				t.Errorf("unexpected audit entry: %+v", e)
			}
		})

	if err := s.Remove(context.Background(), testActorID, testTenantID, testRef); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestService_RemoveNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.Remove")

	writeAllowed(m, testRef, capability.Delete)
	m.hierarchy.EXPECT().Remove(gomock.Any(), testTenantID, testRef).Return(storage.ErrNotFound)

	if err := s.Remove(context.Background(), testActorID, testTenantID, testRef); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestService_RecomputeUsage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.RecomputeUsage")

	m.store.EXPECT().GetPlatformAdmin(gomock.Any(), testActorID).
		Return(&types.PlatformAdmin{UserID: testActorID, Role: types.PlatformOps}, nil)

	tenant := activeTenant()
	tenant.UserCount = 4
	tenant.DocumentCount = 12
	tenant.StorageUsedBytes = 4096
	m.quota.EXPECT().Recompute(gomock.Any(), testTenantID).Return(tenant, nil)
	m.audit.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Action != types.ActionQuotaChange || e.Level != types.LevelWarning {
				t.Errorf("unexpected audit entry: %+v", e)
			}
			if e.Details["document_count"] != int64(12) {
				t.Errorf("expected recounted totals in details, got %+v", e.Details)
			}
		})

	got, err := s.RecomputeUsage(context.Background(), testActorID, testTenantID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.DocumentCount != 12 {
		t.Errorf("expected document count 12, got %d", got.DocumentCount)
	}
}

func TestService_RecomputeUsageRequiresPlatformRole(t *testing.T) {
	testCases := []struct {
		name       string
		setupMocks func(serviceMocks)
	}{
		{
			name: "not a platform admin",
			setupMocks: func(m serviceMocks) {
				m.store.EXPECT().GetPlatformAdmin(gomock.Any(), testActorID).Return(nil, storage.ErrNotFound)
			},
		},
		{
			name: "support role is read only",
			setupMocks: func(m serviceMocks) {
				m.store.EXPECT().GetPlatformAdmin(gomock.Any(), testActorID).
					Return(&types.PlatformAdmin{UserID: testActorID, Role: types.PlatformSupport}, nil)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl, "resources.Service.RecomputeUsage")
			tc.setupMocks(m)

			mockSecurity := NewMockSecurityLoggerInterface(ctrl)
			mockSecurity.EXPECT().AuthorizationDenied(testActorID, testTenantID, "tenant", "platform_role")
			m.logger.EXPECT().Security().Return(mockSecurity)

			if _, err := s.RecomputeUsage(context.Background(), testActorID, testTenantID); !errors.Is(err, ErrForbidden) {
				t.Errorf("expected ErrForbidden, got %v", err)
			}
		})
	}
}

func TestService_RecomputeUsageTenantNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "resources.Service.RecomputeUsage")

	m.store.EXPECT().GetPlatformAdmin(gomock.Any(), testActorID).
		Return(&types.PlatformAdmin{UserID: testActorID, Role: types.PlatformSuperAdmin}, nil)
	m.quota.EXPECT().Recompute(gomock.Any(), testTenantID).Return(nil, storage.ErrNotFound)

	if _, err := s.RecomputeUsage(context.Background(), testActorID, testTenantID); !errors.Is(err, ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}
