// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package hierarchy

import (
	"context"
	"errors"
	"testing"

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

//go:generate mockgen -build_flags=--mod=mod -package hierarchy -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package hierarchy -destination ./mock_db.go -source=../db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package hierarchy -destination ./mock_logger.go -source=../logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package hierarchy -destination ./mock_monitor.go -source=../monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package hierarchy -destination ./mock_tracing.go -source=../tracing/interfaces.go

// passthroughTx runs the transactional closure on the caller's context.
func passthroughTx(mockDB *MockDBClientInterface) {
	mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error { return fn(ctx) })
}

func strPtr(s string) *string { return &s }

func typePtr(t types.ResourceType) *types.ResourceType { return &t }

func TestResolver_Ancestors(t *testing.T) {
	tenantID := "tenant-1"

	doc := &types.Resource{
		TenantID:   tenantID,
		Type:       types.ResourceDocument,
		ID:         "doc-1",
		ParentType: typePtr(types.ResourceFolder),
		ParentID:   strPtr("folder-1"),
	}
	folder := &types.Resource{
		TenantID:   tenantID,
		Type:       types.ResourceFolder,
		ID:         "folder-1",
		ParentType: typePtr(types.ResourceWorkspace),
		ParentID:   strPtr("ws-1"),
	}
	workspace := &types.Resource{
		TenantID: tenantID,
		Type:     types.ResourceWorkspace,
		ID:       "ws-1",
	}

	testCases := []struct {
		name       string
		ref        types.ResourceRef
		setupMocks func(*MockStoreInterface, *MockLoggerInterface)
		expected   []types.ResourceRef
	}{
		{
			name: "full chain nearest first",
			ref:  types.ResourceRef{Type: types.ResourceDocument, ID: "doc-1"},
			setupMocks: func(mockStore *MockStoreInterface, _ *MockLoggerInterface) {
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceDocument, "doc-1").Return(doc, nil)
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, "folder-1").Return(folder, nil)
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceWorkspace, "ws-1").Return(workspace, nil)
			},
			expected: []types.ResourceRef{
				{Type: types.ResourceFolder, ID: "folder-1"},
				{Type: types.ResourceWorkspace, ID: "ws-1"},
			},
		},
		{
			name: "unregistered resource is a root",
			ref:  types.ResourceRef{Type: types.ResourceDocument, ID: "ghost"},
			setupMocks: func(mockStore *MockStoreInterface, _ *MockLoggerInterface) {
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceDocument, "ghost").Return(nil, storage.ErrNotFound)
			},
			expected: nil,
		},
		{
			name: "loop terminates with warning",
			ref:  types.ResourceRef{Type: types.ResourceFolder, ID: "a"},
			setupMocks: func(mockStore *MockStoreInterface, mockLogger *MockLoggerInterface) {
				a := &types.Resource{TenantID: tenantID, Type: types.ResourceFolder, ID: "a", ParentType: typePtr(types.ResourceFolder), ParentID: strPtr("b")}
				b := &types.Resource{TenantID: tenantID, Type: types.ResourceFolder, ID: "b", ParentType: typePtr(types.ResourceFolder), ParentID: strPtr("a")}
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, "a").Return(a, nil)
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, "b").Return(b, nil)
				mockLogger.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any())
			},
			expected: []types.ResourceRef{
				{Type: types.ResourceFolder, ID: "b"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockStoreInterface(ctrl)
			mockQuota := NewMockQuotaInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockMonitor := NewMockMonitorInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "hierarchy.Resolver.Ancestors").
				DoAndReturn(startSpanPassthrough)
			tc.setupMocks(mockStore, mockLogger)

			r := NewResolver(NewMockDBClientInterface(ctrl), mockStore, mockQuota, mockTracer, mockMonitor, mockLogger)

			chain, err := r.Ancestors(context.Background(), tenantID, tc.ref)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if len(chain) != len(tc.expected) {
				t.Fatalf("expected %d ancestors, got %d", len(tc.expected), len(chain))
			}
			for i, ref := range tc.expected {
				if chain[i] != ref {
					t.Errorf("ancestor %d: expected %v, got %v", i, ref, chain[i])
				}
			}
		})
	}
}

func TestResolver_AncestorsHopCap(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tenantID := "tenant-1"
	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "hierarchy.Resolver.Ancestors").
		DoAndReturn(startSpanPassthrough)

	// A strictly increasing chain deeper than the cap.
	mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ types.ResourceType, id string) (*types.Resource, error) {
			return &types.Resource{
				TenantID:   tenantID,
				Type:       types.ResourceFolder,
				ID:         id,
				ParentType: typePtr(types.ResourceFolder),
				ParentID:   strPtr(id + "x"),
			}, nil
		}).Times(maxHops)

	r := NewResolver(NewMockDBClientInterface(ctrl), mockStore, NewMockQuotaInterface(ctrl), mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	chain, err := r.Ancestors(context.Background(), tenantID, types.ResourceRef{Type: types.ResourceFolder, ID: "f"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chain) != maxHops {
		t.Errorf("expected walk to stop at %d hops, got %d", maxHops, len(chain))
	}
}

func TestResolver_SetParent(t *testing.T) {
	tenantID := "tenant-1"
	folderA := types.ResourceRef{Type: types.ResourceFolder, ID: "a"}
	folderB := types.ResourceRef{Type: types.ResourceFolder, ID: "b"}

	testCases := []struct {
		name        string
		ref         types.ResourceRef
		parent      *types.ResourceRef
		setupMocks  func(*MockStoreInterface)
		expectedErr error
	}{
		{
			name:   "success",
			ref:    folderB,
			parent: &folderA,
			setupMocks: func(mockStore *MockStoreInterface) {
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, "a").
					Return(&types.Resource{TenantID: tenantID, Type: types.ResourceFolder, ID: "a"}, nil).Times(2)
				mockStore.EXPECT().SetResourceParent(gomock.Any(), tenantID, types.ResourceFolder, "b", typePtr(types.ResourceFolder), strPtr("a")).Return(nil)
			},
		},
		{
			name:   "detach to root",
			ref:    folderB,
			parent: nil,
			setupMocks: func(mockStore *MockStoreInterface) {
				mockStore.EXPECT().SetResourceParent(gomock.Any(), tenantID, types.ResourceFolder, "b", nil, nil).Return(nil)
			},
		},
		{
			name:        "self parent refused",
			ref:         folderA,
			parent:      &folderA,
			setupMocks:  func(*MockStoreInterface) {},
			expectedErr: ErrCycle,
		},
		{
			name:   "ancestor as child refused",
			ref:    folderA,
			parent: &folderB,
			setupMocks: func(mockStore *MockStoreInterface) {
				// b currently sits below a, so a under b is a cycle.
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, "b").
					Return(&types.Resource{TenantID: tenantID, Type: types.ResourceFolder, ID: "b", ParentType: typePtr(types.ResourceFolder), ParentID: strPtr("a")}, nil).Times(2)
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, "a").
					Return(&types.Resource{TenantID: tenantID, Type: types.ResourceFolder, ID: "a"}, nil)
			},
			expectedErr: ErrCycle,
		},
		{
			name:   "missing parent",
			ref:    folderB,
			parent: &folderA,
			setupMocks: func(mockStore *MockStoreInterface) {
				mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceFolder, "a").Return(nil, storage.ErrNotFound)
			},
			expectedErr: ErrParentNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockStoreInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), gomock.Any()).
				DoAndReturn(startSpanPassthrough).AnyTimes()
			tc.setupMocks(mockStore)

			r := NewResolver(NewMockDBClientInterface(ctrl), mockStore, NewMockQuotaInterface(ctrl), mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

			err := r.SetParent(context.Background(), tenantID, tc.ref, tc.parent)
			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected error %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestResolver_RegisterDocumentAdjustsQuota(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tenantID := "tenant-1"
	doc := &types.Resource{TenantID: tenantID, Type: types.ResourceDocument, ID: "doc-1", SizeBytes: 2048}

	mockStore := NewMockStoreInterface(ctrl)
	mockQuota := NewMockQuotaInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "hierarchy.Resolver.Register").
		DoAndReturn(startSpanPassthrough)
	mockDB := NewMockDBClientInterface(ctrl)
	passthroughTx(mockDB)
	mockStore.EXPECT().RegisterResource(gomock.Any(), doc).Return(doc, nil)
	mockQuota.EXPECT().Adjust(gomock.Any(), tenantID, "document_count", int64(1)).Return(int64(1), nil)
	mockQuota.EXPECT().Adjust(gomock.Any(), tenantID, "storage_used_bytes", int64(2048)).Return(int64(2048), nil)

	r := NewResolver(mockDB, mockStore, mockQuota, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	created, err := r.Register(context.Background(), doc)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "doc-1" {
		t.Errorf("expected created resource, got %+v", created)
	}
}

func TestResolver_RegisterQuotaFailureAbortsTx(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tenantID := "tenant-1"
	doc := &types.Resource{TenantID: tenantID, Type: types.ResourceDocument, ID: "doc-1"}
	boom := errors.New("counter update failed")

	mockStore := NewMockStoreInterface(ctrl)
	mockQuota := NewMockQuotaInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockDB := NewMockDBClientInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "hierarchy.Resolver.Register").
		DoAndReturn(startSpanPassthrough)
	// The row insert and the counter delta share one transaction; a failed
	// delta rolls the insert back.
	mockDB.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			if err := fn(ctx); err != nil {
				return err
			}
			t.Error("expected the transactional closure to fail")
			return nil
		})
	mockStore.EXPECT().RegisterResource(gomock.Any(), doc).Return(doc, nil)
	mockQuota.EXPECT().Adjust(gomock.Any(), tenantID, "document_count", int64(1)).Return(int64(0), boom)

	r := NewResolver(mockDB, mockStore, mockQuota, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	if _, err := r.Register(context.Background(), doc); !errors.Is(err, boom) {
		t.Errorf("expected counter failure to surface, got %v", err)
	}
}

func TestResolver_RemoveDocumentReversesQuota(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tenantID := "tenant-1"
	doc := &types.Resource{TenantID: tenantID, Type: types.ResourceDocument, ID: "doc-1", SizeBytes: 2048}

	mockStore := NewMockStoreInterface(ctrl)
	mockQuota := NewMockQuotaInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "hierarchy.Resolver.Remove").
		DoAndReturn(startSpanPassthrough)
	mockDB := NewMockDBClientInterface(ctrl)
	passthroughTx(mockDB)
	mockStore.EXPECT().GetResource(gomock.Any(), tenantID, types.ResourceDocument, "doc-1").Return(doc, nil)
	mockStore.EXPECT().DeleteResource(gomock.Any(), tenantID, types.ResourceDocument, "doc-1").Return(nil)
	mockQuota.EXPECT().Adjust(gomock.Any(), tenantID, "document_count", int64(-1)).Return(int64(0), nil)
	mockQuota.EXPECT().Adjust(gomock.Any(), tenantID, "storage_used_bytes", int64(-2048)).Return(int64(0), nil)

	r := NewResolver(mockDB, mockStore, mockQuota, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	if err := r.Remove(context.Background(), tenantID, types.ResourceRef{Type: types.ResourceDocument, ID: "doc-1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
