// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package roles

import (
	"context"
	"errors"
	"testing"

	"github.com/canonical/permission-service/internal/capability"
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

//go:generate mockgen -build_flags=--mod=mod -package roles -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package roles -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package roles -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package roles -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package roles -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	testTenantID = "tenant-1"
	testActorID  = "admin-1"
)

type serviceMocks struct {
	db    *MockDBClientInterface
	store *MockStoreInterface
	audit *MockAuditInterface
}

func newTestService(ctrl *gomock.Controller, spanName string) (*Service, serviceMocks) {
	m := serviceMocks{
		db:    NewMockDBClientInterface(ctrl),
		store: NewMockStoreInterface(ctrl),
		audit: NewMockAuditInterface(ctrl),
	}

	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), spanName).
		DoAndReturn(startSpanPassthrough)

	s := NewService(m.db, m.store, m.audit, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))
	return s, m
}

func passthroughTx(m serviceMocks) {
	m.db.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
}

func tenantAdmin(m serviceMocks) {
	m.store.EXPECT().GetTenantByID(gomock.Any(), testTenantID).
		Return(&types.Tenant{ID: testTenantID, Status: types.TenantActive, AdminLevel: 100}, nil)
	m.store.EXPECT().GetPlatformAdmin(gomock.Any(), testActorID).
		Return(&types.PlatformAdmin{UserID: testActorID, Role: types.PlatformOps}, nil)
}

func TestService_CreateRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "roles.Service.CreateRole")

	tenantAdmin(m)
	passthroughTx(m)
	m.store.EXPECT().CreateRole(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *types.Role) (*types.Role, error) {
			if r.IsSystem {
				t.Error("API-created roles must not be system roles")
			}
			out := *r
			out.ID = "role-new"
			return &out, nil
		})
	m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *types.AuditEntry) error {
			if e.Action != types.ActionRoleCreate {
				t.Errorf("expected role.create action, got %s", e.Action)
			}
			return nil
		})

	created, err := s.CreateRole(context.Background(), testActorID, &types.Role{
		TenantID:    testTenantID,
		Name:        "reviewer",
		Level:       20,
		Permissions: capability.Reader | capability.Comment,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID != "role-new" {
		t.Errorf("expected created role ID, got %q", created.ID)
	}
}

func TestService_CreateRoleAsDefaultSwaps(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "roles.Service.CreateRole")

	tenantAdmin(m)
	passthroughTx(m)
	m.store.EXPECT().CreateRole(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, r *types.Role) (*types.Role, error) {
			if r.IsDefault {
				t.Error("default flag must be applied via swap, not on insert")
			}
			out := *r
			out.ID = "role-new"
			return &out, nil
		})
	m.store.EXPECT().SwapDefaultRole(gomock.Any(), testTenantID, "role-new").Return(nil)
	m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)

	created, err := s.CreateRole(context.Background(), testActorID, &types.Role{
		TenantID:    testTenantID,
		Name:        "starter",
		Permissions: capability.Reader,
		IsDefault:   true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created.IsDefault {
		t.Error("expected created role to be the default")
	}
}

func TestService_CreateRoleInvalidSet(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, _ := newTestService(ctrl, "roles.Service.CreateRole")

	_, err := s.CreateRole(context.Background(), testActorID, &types.Role{TenantID: testTenantID, Name: "broken"})
	if !errors.Is(err, ErrInvalidCapabilitySet) {
		t.Errorf("expected ErrInvalidCapabilitySet, got %v", err)
	}
}

func TestService_CreateRoleDuplicateName(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "roles.Service.CreateRole")

	tenantAdmin(m)
	passthroughTx(m)
	m.store.EXPECT().CreateRole(gomock.Any(), gomock.Any()).Return(nil, storage.ErrDuplicateKey)

	_, err := s.CreateRole(context.Background(), testActorID, &types.Role{
		TenantID:    testTenantID,
		Name:        "member",
		Permissions: capability.Reader,
	})
	if !errors.Is(err, ErrRoleExists) {
		t.Errorf("expected ErrRoleExists, got %v", err)
	}
}

func TestService_UpdateRoleSwapsDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "roles.Service.UpdateRole")

	tenantAdmin(m)
	m.store.EXPECT().GetRoleByName(gomock.Any(), testTenantID, "reviewer").
		Return(&types.Role{ID: "role-2", TenantID: testTenantID, Name: "reviewer", Permissions: capability.Reader}, nil)
	passthroughTx(m)
	m.store.EXPECT().SwapDefaultRole(gomock.Any(), testTenantID, "role-2").Return(nil)
	m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, e *types.AuditEntry) error {
			if e.Action != types.ActionRoleUpdate {
				t.Errorf("expected role.update action, got %s", e.Action)
			}
			return nil
		})

	makeDefault := true
	updated, err := s.UpdateRole(context.Background(), testActorID, testTenantID, "reviewer", RoleUpdate{IsDefault: &makeDefault})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !updated.IsDefault {
		t.Error("expected role to become the default")
	}
}

func TestService_UpdateRoleSystemSealed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "roles.Service.UpdateRole")

	tenantAdmin(m)
	m.store.EXPECT().GetRoleByName(gomock.Any(), testTenantID, "tenant_admin").
		Return(&types.Role{ID: "role-1", TenantID: testTenantID, Name: "tenant_admin", IsSystem: true, Level: 100}, nil)

	level := 5
	_, err := s.UpdateRole(context.Background(), testActorID, testTenantID, "tenant_admin", RoleUpdate{Level: &level})
	if !errors.Is(err, ErrSystemRole) {
		t.Errorf("expected ErrSystemRole, got %v", err)
	}
}

func TestService_UpdateRoleCannotUnsetDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "roles.Service.UpdateRole")

	tenantAdmin(m)
	m.store.EXPECT().GetRoleByName(gomock.Any(), testTenantID, "member").
		Return(&types.Role{ID: "role-2", TenantID: testTenantID, Name: "member", IsDefault: true, Permissions: capability.Editor}, nil)

	unset := false
	_, err := s.UpdateRole(context.Background(), testActorID, testTenantID, "member", RoleUpdate{IsDefault: &unset})
	if !errors.Is(err, ErrDefaultRole) {
		t.Errorf("expected ErrDefaultRole, got %v", err)
	}
}

func TestService_DeleteRole(t *testing.T) {
	testCases := []struct {
		name        string
		role        *types.Role
		expectedErr error
	}{
		{
			name: "plain role deleted",
			role: &types.Role{ID: "role-2", TenantID: testTenantID, Name: "reviewer"},
		},
		{
			name:        "system role refused",
			role:        &types.Role{ID: "role-1", TenantID: testTenantID, Name: "tenant_admin", IsSystem: true},
			expectedErr: ErrSystemRole,
		},
		{
			name:        "default role refused",
			role:        &types.Role{ID: "role-3", TenantID: testTenantID, Name: "member", IsDefault: true},
			expectedErr: ErrDefaultRole,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			s, m := newTestService(ctrl, "roles.Service.DeleteRole")

			tenantAdmin(m)
			m.store.EXPECT().GetRoleByName(gomock.Any(), testTenantID, tc.role.Name).Return(tc.role, nil)

			if tc.expectedErr == nil {
				passthroughTx(m)
				m.store.EXPECT().DeleteRole(gomock.Any(), testTenantID, tc.role.Name).Return(nil)
				m.audit.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := s.DeleteRole(context.Background(), testActorID, testTenantID, tc.role.Name)
			if !errors.Is(err, tc.expectedErr) {
				t.Errorf("expected error %v, got %v", tc.expectedErr, err)
			}
		})
	}
}

func TestService_ListRolesRequiresMembership(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s, m := newTestService(ctrl, "roles.Service.ListRoles")

	m.store.EXPECT().GetPlatformAdmin(gomock.Any(), "stranger").Return(nil, storage.ErrNotFound)
	m.store.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, "stranger").Return(nil, nil, storage.ErrNotFound)

	if _, err := s.ListRoles(context.Background(), "stranger", testTenantID); !errors.Is(err, ErrForbidden) {
		t.Errorf("expected ErrForbidden, got %v", err)
	}
}
