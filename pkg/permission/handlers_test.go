// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package permission

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/canonical/permission-service/internal/capability"
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

func TestAPI_Evaluate(t *testing.T) {
	testCases := []struct {
		name           string
		userID         string
		body           string
		setupMocks     func(*MockEvaluatorInterface)
		expectedStatus int
	}{
		{
			name:   "allowed",
			userID: testUserID,
			body:   `{"resource_type":"document","resource_id":"doc-1","required":"READ|WRITE"}`,
			setupMocks: func(mockEvaluator *MockEvaluatorInterface) {
				mockEvaluator.EXPECT().Evaluate(gomock.Any(), testUserID, testTenantID, testRef, capability.Read|capability.Write).
					Return(allow(types.SourceRoleDefault, capability.Editor), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "evaluates named subject",
			userID: "admin-1",
			body:   `{"user_id":"user-9","resource_type":"document","resource_id":"doc-1","required":"READ"}`,
			setupMocks: func(mockEvaluator *MockEvaluatorInterface) {
				mockEvaluator.EXPECT().Evaluate(gomock.Any(), "user-9", testTenantID, testRef, capability.Read).
					Return(deny(), nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unauthenticated",
			userID:         "",
			body:           `{"resource_type":"document","resource_id":"doc-1","required":"READ"}`,
			setupMocks:     func(*MockEvaluatorInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "bad resource type",
			userID:         testUserID,
			body:           `{"resource_type":"bucket","resource_id":"doc-1","required":"READ"}`,
			setupMocks:     func(*MockEvaluatorInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown capability",
			userID:         testUserID,
			body:           `{"resource_type":"document","resource_id":"doc-1","required":"FLY"}`,
			setupMocks:     func(*MockEvaluatorInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "unknown tenant",
			userID: testUserID,
			body:   `{"resource_type":"document","resource_id":"doc-1","required":"READ"}`,
			setupMocks: func(mockEvaluator *MockEvaluatorInterface) {
				mockEvaluator.EXPECT().Evaluate(gomock.Any(), testUserID, testTenantID, testRef, capability.Read).
					Return(nil, ErrTenantNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockEvaluator := NewMockEvaluatorInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockTracer.EXPECT().Start(gomock.Any(), "permission.API.evaluate").
				DoAndReturn(startSpanPassthrough)
			tc.setupMocks(mockEvaluator)

			api := NewAPI(mockService, mockEvaluator, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/evaluate", tc.userID, tc.body))

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_Grant(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "created",
			body: `{"resource_type":"document","resource_id":"doc-1","grantee_type":"user","grantee_id":"user-2","permissions":"EDITOR","inherit":true}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Grant(gomock.Any(), testUserID, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, g *types.Grant) (*types.Grant, error) {
						if g.Permissions != capability.Editor || !g.Inherit {
							t.Errorf("unexpected grant payload: %+v", g)
						}
						return g, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "actor lacks share",
			body: `{"resource_type":"document","resource_id":"doc-1","grantee_type":"user","grantee_id":"user-2","permissions":"EDITOR"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Grant(gomock.Any(), testUserID, gomock.Any()).Return(nil, ErrPermissionDenied)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "archived tenant",
			body: `{"resource_type":"document","resource_id":"doc-1","grantee_type":"user","grantee_id":"user-2","permissions":"EDITOR"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Grant(gomock.Any(), testUserID, gomock.Any()).Return(nil, ErrTenantArchived)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "unknown grantee",
			body: `{"resource_type":"document","resource_id":"doc-1","grantee_type":"user","grantee_id":"ghost","permissions":"EDITOR"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().Grant(gomock.Any(), testUserID, gomock.Any()).Return(nil, ErrGrantConflict)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "missing grantee",
			body:           `{"resource_type":"document","resource_id":"doc-1","permissions":"EDITOR"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed expiry",
			body:           `{"resource_type":"document","resource_id":"doc-1","grantee_type":"user","grantee_id":"user-2","permissions":"EDITOR","expires_at":"tomorrow"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockService := NewMockServiceInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)
			mockTracer.EXPECT().Start(gomock.Any(), "permission.API.grant").
				DoAndReturn(startSpanPassthrough)
			tc.setupMocks(mockService)

			api := NewAPI(mockService, NewMockEvaluatorInterface(ctrl), mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/grants", testUserID, tc.body))

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_Revoke(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "permission.API.revoke").
		DoAndReturn(startSpanPassthrough)
	mockService.EXPECT().Revoke(gomock.Any(), testUserID, testTenantID, testRef, types.GranteeUser, "user-2").Return(nil)

	api := NewAPI(mockService, NewMockEvaluatorInterface(ctrl), mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	target := "/api/v0/tenants/" + testTenantID + "/grants?resource_type=document&resource_id=doc-1&grantee_type=user&grantee_id=user-2"
	mux.ServeHTTP(w, authenticatedRequest(http.MethodDelete, target, testUserID, ""))

	if w.Code != http.StatusNoContent {
		t.Errorf("expected status %d, got %d: %s", http.StatusNoContent, w.Code, w.Body.String())
	}
}

func TestAPI_RevokeMissingParams(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "permission.API.revoke").
		DoAndReturn(startSpanPassthrough)

	api := NewAPI(NewMockServiceInterface(ctrl), NewMockEvaluatorInterface(ctrl), mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodDelete, "/api/v0/tenants/"+testTenantID+"/grants?resource_type=document", testUserID, ""))

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
}

func TestAPI_ListEffective(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockService := NewMockServiceInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "permission.API.listEffective").
		DoAndReturn(startSpanPassthrough)
	mockService.EXPECT().ListEffective(gomock.Any(), testTenantID, testRef).
		Return([]*types.Grant{grantFixture(types.GranteeUser, "user-2", capability.Editor, false, nil)}, nil)

	api := NewAPI(mockService, NewMockEvaluatorInterface(ctrl), mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	target := "/api/v0/tenants/" + testTenantID + "/permissions?resource_type=document&resource_id=doc-1"
	mux.ServeHTTP(w, authenticatedRequest(http.MethodGet, target, testUserID, ""))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), `"grants"`) {
		t.Errorf("expected grants envelope, got %s", w.Body.String())
	}
}
