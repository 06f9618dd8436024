// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canonical/permission-service/internal/identity"
	"github.com/canonical/permission-service/internal/types"
	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"
)

func authenticatedRequest(method, target, userID, body string) *http.Request {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		r = httptest.NewRequest(method, target, nil)
	}
	ctx := context.WithValue(r.Context(), identity.UserContextKey, userID)
	return r.WithContext(ctx)
}

func newTestAPI(ctrl *gomock.Controller, spanName string) (*API, *MockServiceInterface) {
	mockService := NewMockServiceInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), spanName).
		DoAndReturn(startSpanPassthrough)

	return NewAPI(mockService, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl)), mockService
}

func TestAPI_Register(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "created under parent",
			body: `{"resource_type":"document","resource_id":"doc-1","name":"q3-report","parent_type":"folder","parent_id":"folder-1","size_bytes":2048}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Register(gomock.Any(), testActorID, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, r *types.Resource) (*types.Resource, error) {
						if r.TenantID != testTenantID || r.ParentID == nil || *r.ParentID != "folder-1" {
							t.Errorf("unexpected resource: %+v", r)
						}
						return r, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unknown resource type",
			body:           `{"resource_type":"bucket","resource_id":"b-1"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "parent id without parent type",
			body:           `{"resource_type":"document","resource_id":"doc-1","parent_id":"folder-1"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "document quota exhausted",
			body: `{"resource_type":"document","resource_id":"doc-1","parent_type":"folder","parent_id":"folder-1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Register(gomock.Any(), testActorID, gomock.Any()).Return(nil, ErrQuotaExceeded)
			},
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{
			name: "duplicate registration",
			body: `{"resource_type":"workspace","resource_id":"ws-1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Register(gomock.Any(), testActorID, gomock.Any()).Return(nil, ErrResourceExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "denied actor",
			body: `{"resource_type":"workspace","resource_id":"ws-1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Register(gomock.Any(), testActorID, gomock.Any()).Return(nil, ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, mockService := newTestAPI(ctrl, "resources.API.register")
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/resources", testActorID, tc.body))

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_RegisterUnauthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, _ := newTestAPI(ctrl, "resources.API.register")

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/resources", strings.NewReader(`{"resource_type":"workspace","resource_id":"ws-1"}`))
	mux.ServeHTTP(w, r)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAPI_Move(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "moved under new folder",
			body: `{"resource_type":"document","resource_id":"doc-1","parent_type":"folder","parent_id":"folder-2"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				parent := &types.ResourceRef{Type: types.ResourceFolder, ID: "folder-2"}
				mockService.EXPECT().Move(gomock.Any(), testActorID, testTenantID, testRef, parent).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "detached to root",
			body: `{"resource_type":"document","resource_id":"doc-1"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Move(gomock.Any(), testActorID, testTenantID, testRef, nil).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name: "containment cycle",
			body: `{"resource_type":"folder","resource_id":"folder-1","parent_type":"folder","parent_id":"folder-2"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Move(gomock.Any(), testActorID, testTenantID, gomock.Any(), gomock.Any()).Return(ErrCycle)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name: "missing parent",
			body: `{"resource_type":"document","resource_id":"doc-1","parent_type":"folder","parent_id":"ghost"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Move(gomock.Any(), testActorID, testTenantID, gomock.Any(), gomock.Any()).Return(ErrParentNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, mockService := newTestAPI(ctrl, "resources.API.move")
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authenticatedRequest(http.MethodPatch, "/api/v0/tenants/"+testTenantID+"/resources", testActorID, tc.body))

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_Remove(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, mockService := newTestAPI(ctrl, "resources.API.remove")
	mockService.EXPECT().Remove(gomock.Any(), testActorID, testTenantID, testRef).Return(nil)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodDelete, "/api/v0/tenants/"+testTenantID+"/resources?resource_type=document&resource_id=doc-1", testActorID, ""))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d: %s", http.StatusNoContent, w.Code, w.Body.String())
	}
}

func TestAPI_RemoveMissingQueryParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, _ := newTestAPI(ctrl, "resources.API.remove")

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodDelete, "/api/v0/tenants/"+testTenantID+"/resources?resource_type=document", testActorID, ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAPI_Recompute(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, mockService := newTestAPI(ctrl, "resources.API.recompute")

	tenant := activeTenant()
	tenant.UserCount = 4
	tenant.DocumentCount = 12
	tenant.StorageUsedBytes = 4096
	mockService.EXPECT().RecomputeUsage(gomock.Any(), testActorID, testTenantID).Return(tenant, nil)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/quota/recompute", testActorID, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp map[string]int64
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected body: %v", err)
	}
	if resp["document_count"] != 12 || resp["storage_used_bytes"] != 4096 {
		t.Errorf("unexpected counters: %+v", resp)
	}
}

func TestAPI_RecomputeForbidden(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, mockService := newTestAPI(ctrl, "resources.API.recompute")
	mockService.EXPECT().RecomputeUsage(gomock.Any(), testActorID, testTenantID).Return(nil, ErrForbidden)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/quota/recompute", testActorID, ""))

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}
