// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/canonical/permission-service/internal/identity"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

func authenticatedRequest(method, target, userID string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	ctx := context.WithValue(r.Context(), identity.UserContextKey, userID)
	return r.WithContext(ctx)
}

func TestAPI_Query(t *testing.T) {
	admin := &types.PlatformAdmin{UserID: "admin-1", Role: types.PlatformAuditor}

	testCases := []struct {
		name           string
		target         string
		userID         string
		setupMocks     func(*MockServiceInterface, *MockPlatformInterface, *MockLoggerInterface)
		expectedStatus int
	}{
		{
			name:   "success with filters",
			target: "/api/v0/audit?tenant_id=tenant-1&action=perm.grant&page=1&size=10",
			userID: "admin-1",
			setupMocks: func(mockService *MockServiceInterface, mockPlatform *MockPlatformInterface, _ *MockLoggerInterface) {
				mockPlatform.EXPECT().GetPlatformAdmin(gomock.Any(), "admin-1").Return(admin, nil)
				mockService.EXPECT().TryRecord(gomock.Any(), gomock.Any())
				mockService.EXPECT().Query(gomock.Any(), types.AuditFilter{TenantID: "tenant-1", Action: "perm.grant"}, uint64(1), uint64(10)).
					Return([]*types.AuditEntry{entryFixture(0)}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthenticated",
			target:         "/api/v0/audit",
			userID:         "",
			setupMocks:     func(*MockServiceInterface, *MockPlatformInterface, *MockLoggerInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:   "not a platform admin",
			target: "/api/v0/audit",
			userID: "user-1",
			setupMocks: func(_ *MockServiceInterface, mockPlatform *MockPlatformInterface, mockLogger *MockLoggerInterface) {
				mockPlatform.EXPECT().GetPlatformAdmin(gomock.Any(), "user-1").Return(nil, storage.ErrNotFound)
				mockSecurity := NewMockSecurityLoggerInterface(mockLogger.ctrl)
				mockLogger.EXPECT().Security().Return(mockSecurity)
				mockSecurity.EXPECT().AuthorizationDenied("user-1", "", "audit_log", "platform_role")
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "invalid from timestamp",
			target: "/api/v0/audit?from=yesterday",
			userID: "admin-1",
			setupMocks: func(_ *MockServiceInterface, mockPlatform *MockPlatformInterface, _ *MockLoggerInterface) {
				mockPlatform.EXPECT().GetPlatformAdmin(gomock.Any(), "admin-1").Return(admin, nil)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockPlatform := NewMockPlatformInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockLogger := NewMockLoggerInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "audit.API.query").
				DoAndReturn(startSpanPassthrough).AnyTimes()
			tc.setupMocks(mockService, mockPlatform, mockLogger)

			api := NewAPI(mockService, mockPlatform, mockTracer, NewMockMonitorInterface(ctrl), mockLogger)
			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, tc.target, tc.userID))

			if w.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d: %s", tc.expectedStatus, w.Code, w.Body.String())
			}

			if tc.expectedStatus == http.StatusOK {
				var body struct {
					Entries []*types.AuditEntry `json:"entries"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if len(body.Entries) != 1 {
					t.Errorf("expected 1 entry, got %d", len(body.Entries))
				}
			}
		})
	}
}

func TestAPI_QueryRecordsTrailEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockPlatform := NewMockPlatformInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "audit.API.query").DoAndReturn(startSpanPassthrough)
	mockPlatform.EXPECT().GetPlatformAdmin(gomock.Any(), "auditor-1").
		Return(&types.PlatformAdmin{UserID: "auditor-1", Role: types.PlatformAuditor}, nil)
	mockService.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Action != types.ActionAuditQuery || e.Level != types.LevelSecurity || e.ActorID != "auditor-1" {
				t.Errorf("unexpected query trail entry: %+v", e)
			}
			if e.Details["tenant_id"] != "tenant-1" {
				t.Errorf("expected queried tenant in details, got %v", e.Details)
			}
		})
	mockService.EXPECT().Query(gomock.Any(), gomock.Any(), uint64(0), uint64(50)).
		Return([]*types.AuditEntry{}, nil)

	api := NewAPI(mockService, mockPlatform, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/api/v0/audit?tenant_id=tenant-1&level=security", "auditor-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAPI_ExportRecordsTrailEntry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockPlatform := NewMockPlatformInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "audit.API.export").
		DoAndReturn(startSpanPassthrough)
	mockPlatform.EXPECT().GetPlatformAdmin(gomock.Any(), "admin-1").
		Return(&types.PlatformAdmin{UserID: "admin-1", Role: types.PlatformAuditor}, nil)
	mockService.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Action != types.ActionAuditExport || e.Level != types.LevelSecurity {
				t.Errorf("unexpected export trail entry: %+v", e)
			}
		})
	mockService.EXPECT().Export(gomock.Any(), gomock.Any(), "csv", gomock.Any()).Return(nil)

	api := NewAPI(mockService, mockPlatform, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, "/api/v0/audit/export?format=csv", "admin-1"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("expected text/csv content type, got %q", ct)
	}
}
