// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import (
	"context"
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

func TestAPI_CreateTenant(t *testing.T) {
	testCases := []struct {
		name           string
		userID         string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name:   "created",
			userID: testActorID,
			body:   `{"name":"Acme","slug":"acme","max_users":50}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().CreateTenant(gomock.Any(), testActorID, gomock.Any()).DoAndReturn(
					func(_ context.Context, _ string, in *types.Tenant) (*types.Tenant, error) {
						out := *in
						out.ID = testTenantID
						return &out, nil
					})
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "unauthenticated",
			userID:         "",
			body:           `{"name":"Acme","slug":"acme"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing slug",
			userID:         testActorID,
			body:           `{"name":"Acme"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "bad slug",
			userID: testActorID,
			body:   `{"name":"Acme","slug":"Not A Slug!"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().CreateTenant(gomock.Any(), testActorID, gomock.Any()).Return(nil, ErrInvalidSlug)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "duplicate slug",
			userID: testActorID,
			body:   `{"name":"Acme","slug":"acme"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().CreateTenant(gomock.Any(), testActorID, gomock.Any()).Return(nil, ErrTenantExists)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "not a platform operator",
			userID: testActorID,
			body:   `{"name":"Acme","slug":"acme"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().CreateTenant(gomock.Any(), testActorID, gomock.Any()).Return(nil, ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, mockService := newTestAPI(ctrl, "tenants.API.createTenant")
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants", tc.userID, tc.body))

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_SetStatus(t *testing.T) {
	testCases := []struct {
		name           string
		body           string
		setupMocks     func(*MockServiceInterface)
		expectedStatus int
	}{
		{
			name: "suspend",
			body: `{"status":"suspended"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().SetStatus(gomock.Any(), testActorID, testTenantID, types.TenantSuspended).Return(nil)
			},
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "unknown status",
			body:           `{"status":"frozen"}`,
			setupMocks:     func(*MockServiceInterface) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "illegal transition",
			body: `{"status":"active"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().SetStatus(gomock.Any(), testActorID, testTenantID, types.TenantActive).Return(ErrInvalidTransition)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "unknown tenant",
			body: `{"status":"archived"}`,
			setupMocks: func(mockService *MockServiceInterface) {
				mockService.EXPECT().SetStatus(gomock.Any(), testActorID, testTenantID, types.TenantArchived).Return(ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			api, mockService := newTestAPI(ctrl, "tenants.API.setStatus")
			tc.setupMocks(mockService)

			mux := chi.NewMux()
			api.RegisterEndpoints(mux)

			w := httptest.NewRecorder()
			mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/status", testActorID, tc.body))

			if w.Code != tc.expectedStatus {
				t.Errorf("expected status %d, got %d: %s", tc.expectedStatus, w.Code, w.Body.String())
			}
		})
	}
}

func TestAPI_AddMemberQuotaExceeded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, mockService := newTestAPI(ctrl, "tenants.API.addMember")
	mockService.EXPECT().AddMember(gomock.Any(), testActorID, gomock.Any()).Return(nil, ErrQuotaExceeded)

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodPost, "/api/v0/tenants/"+testTenantID+"/members", testActorID, `{"user_id":"user-9"}`))

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, w.Code)
	}
}

func TestAPI_UpdateMember(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api, mockService := newTestAPI(ctrl, "tenants.API.updateMember")
	mockService.EXPECT().UpdateMember(gomock.Any(), testActorID, testTenantID, "user-9", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, _, _ string, update MemberUpdate) (*types.Membership, error) {
			if update.Status == nil || *update.Status != types.MemberDisabled {
				t.Errorf("expected disabled status in update, got %+v", update.Status)
			}
			return &types.Membership{TenantID: testTenantID, UserID: "user-9", Status: types.MemberDisabled}, nil
		})

	mux := chi.NewMux()
	api.RegisterEndpoints(mux)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, authenticatedRequest(http.MethodPatch, "/api/v0/tenants/"+testTenantID+"/members/user-9", testActorID, `{"status":"disabled"}`))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}
