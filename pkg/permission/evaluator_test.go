// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package permission

import (
	"context"
	"errors"
	"testing"
	"time"

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

//go:generate mockgen -build_flags=--mod=mod -package permission -destination ./mock_interfaces.go -source=./interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package permission -destination ./mock_db.go -source=../../internal/db/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package permission -destination ./mock_logger.go -source=../../internal/logging/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package permission -destination ./mock_monitor.go -source=../../internal/monitoring/interfaces.go
//go:generate mockgen -build_flags=--mod=mod -package permission -destination ./mock_tracing.go -source=../../internal/tracing/interfaces.go

const (
	testTenantID = "tenant-1"
	testUserID   = "user-1"
	testRoleID   = "role-1"
	testDeptID   = "dept-1"
)

var testRef = types.ResourceRef{Type: types.ResourceDocument, ID: "doc-1"}

func activeTenant() *types.Tenant {
	return &types.Tenant{ID: testTenantID, Status: types.TenantActive, AdminLevel: 100}
}

func editorMembership() (*types.Membership, *types.Role) {
	roleID := testRoleID
	deptID := testDeptID
	m := &types.Membership{
		TenantID:     testTenantID,
		UserID:       testUserID,
		RoleID:       &roleID,
		DepartmentID: &deptID,
		Status:       types.MemberActive,
	}
	r := &types.Role{
		ID:          testRoleID,
		TenantID:    testTenantID,
		Name:        "member",
		Level:       10,
		Permissions: capability.Editor,
	}
	return m, r
}

func grantFixture(granteeType types.GranteeType, granteeID string, bits capability.Set, inherit bool, expiresAt *time.Time) *types.Grant {
	return &types.Grant{
		TenantID:     testTenantID,
		ResourceType: testRef.Type,
		ResourceID:   testRef.ID,
		GranteeType:  granteeType,
		GranteeID:    granteeID,
		Permissions:  bits,
		Inherit:      inherit,
		ExpiresAt:    expiresAt,
	}
}

func TestEvaluator_ResolutionOrder(t *testing.T) {
	pastExpiry := time.Now().Add(-time.Hour)

	testCases := []struct {
		name           string
		required       capability.Set
		setupMocks     func(*MockStoreInterface, *MockHierarchyInterface)
		expectedAllow  bool
		expectedSource types.DecisionSource
		expectedBits   capability.Set
	}{
		{
			name:     "platform super admin wins everything",
			required: capability.Admin,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).
					Return(&types.PlatformAdmin{UserID: testUserID, Role: types.PlatformSuperAdmin}, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourcePlatformAdmin,
			expectedBits:   capability.Owner,
		},
		{
			name:     "tenant admin by role level",
			required: capability.Delete,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				r.Level = 100
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourceTenantAdmin,
			expectedBits:   capability.Owner,
		},
		{
			name:     "user grant wins over broader role grant",
			required: capability.Read,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return([]*types.Grant{
						grantFixture(types.GranteeUser, testUserID, capability.Reader, false, nil),
						grantFixture(types.GranteeRole, testRoleID, capability.Owner, false, nil),
					}, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourceUserGrant,
			expectedBits:   capability.Reader,
		},
		{
			name:     "insufficient user grant falls to role grant",
			required: capability.Write,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				r.Permissions = capability.Reader
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return([]*types.Grant{
						grantFixture(types.GranteeUser, testUserID, capability.Reader, false, nil),
						grantFixture(types.GranteeRole, testRoleID, capability.Editor, false, nil),
					}, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourceRoleGrant,
			expectedBits:   capability.Editor,
		},
		{
			name:     "department grant applies after user and role tiers",
			required: capability.Comment,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				r.Permissions = capability.Reader
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return([]*types.Grant{
						grantFixture(types.GranteeDepartment, testDeptID, capability.Editor, false, nil),
					}, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourceDepartmentGrant,
			expectedBits:   capability.Editor,
		},
		{
			name:     "expired grant behaves as absent",
			required: capability.Write,
			setupMocks: func(mockStore *MockStoreInterface, mockHierarchy *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return([]*types.Grant{
						grantFixture(types.GranteeUser, testUserID, capability.Owner, false, &pastExpiry),
					}, nil)
				mockHierarchy.EXPECT().Ancestors(gomock.Any(), testTenantID, testRef).Return(nil, nil)
			},
			// The expired grant never counts as a denial; the role default
			// answers instead.
			expectedAllow:  true,
			expectedSource: types.SourceRoleDefault,
			expectedBits:   capability.Editor,
		},
		{
			name:     "inherited grant from ancestor",
			required: capability.Delete,
			setupMocks: func(mockStore *MockStoreInterface, mockHierarchy *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return(nil, nil)

				folder := types.ResourceRef{Type: types.ResourceFolder, ID: "folder-1"}
				mockHierarchy.EXPECT().Ancestors(gomock.Any(), testTenantID, testRef).Return([]types.ResourceRef{folder}, nil)
				inheritable := grantFixture(types.GranteeUser, testUserID, capability.Contributor, true, nil)
				inheritable.ResourceType = folder.Type
				inheritable.ResourceID = folder.ID
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, folder.Type, folder.ID, testUserID, gomock.Any(), gomock.Any()).
					Return([]*types.Grant{inheritable}, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourceInherited,
			expectedBits:   capability.Contributor,
		},
		{
			name:     "non-inheritable ancestor grant is skipped",
			required: capability.Delete,
			setupMocks: func(mockStore *MockStoreInterface, mockHierarchy *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return(nil, nil)

				folder := types.ResourceRef{Type: types.ResourceFolder, ID: "folder-1"}
				mockHierarchy.EXPECT().Ancestors(gomock.Any(), testTenantID, testRef).Return([]types.ResourceRef{folder}, nil)
				scoped := grantFixture(types.GranteeUser, testUserID, capability.Owner, false, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, folder.Type, folder.ID, testUserID, gomock.Any(), gomock.Any()).
					Return([]*types.Grant{scoped}, nil)
			},
			// Editor has no DELETE bit, so the role default cannot answer.
			expectedAllow:  false,
			expectedSource: types.SourceNone,
		},
		{
			name:     "role default answers when no grants match",
			required: capability.Write,
			setupMocks: func(mockStore *MockStoreInterface, mockHierarchy *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return(nil, nil)
				mockHierarchy.EXPECT().Ancestors(gomock.Any(), testTenantID, testRef).Return(nil, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourceRoleDefault,
			expectedBits:   capability.Editor,
		},
		{
			name:     "non-member is denied",
			required: capability.Read,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(nil, nil, storage.ErrNotFound)
			},
			expectedAllow:  false,
			expectedSource: types.SourceNone,
		},
		{
			name:     "disabled member is denied",
			required: capability.Read,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				m.Status = types.MemberDisabled
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
			},
			expectedAllow:  false,
			expectedSource: types.SourceNone,
		},
		{
			name:     "archived tenant denies members",
			required: capability.Read,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				archived := activeTenant()
				archived.Status = types.TenantArchived
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(archived, nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
			},
			expectedAllow:  false,
			expectedSource: types.SourceNone,
		},
		{
			name:     "archived tenant allows platform reads",
			required: capability.Read,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				archived := activeTenant()
				archived.Status = types.TenantArchived
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(archived, nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).
					Return(&types.PlatformAdmin{UserID: testUserID, Role: types.PlatformAuditor}, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourcePlatformAdmin,
			expectedBits:   capability.Reader,
		},
		{
			name:     "archived tenant denies platform writes",
			required: capability.Write,
			setupMocks: func(mockStore *MockStoreInterface, _ *MockHierarchyInterface) {
				archived := activeTenant()
				archived.Status = types.TenantArchived
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(archived, nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).
					Return(&types.PlatformAdmin{UserID: testUserID, Role: types.PlatformOps}, nil)
			},
			expectedAllow:  false,
			expectedSource: types.SourceNone,
		},
		{
			name:     "suspended tenant evaluates normally",
			required: capability.Write,
			setupMocks: func(mockStore *MockStoreInterface, mockHierarchy *MockHierarchyInterface) {
				suspended := activeTenant()
				suspended.Status = types.TenantSuspended
				mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(suspended, nil)
				mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
				m, r := editorMembership()
				mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(m, r, nil)
				mockStore.EXPECT().ListGrantsForGrantees(gomock.Any(), testTenantID, testRef.Type, testRef.ID, testUserID, gomock.Any(), gomock.Any()).
					Return(nil, nil)
				mockHierarchy.EXPECT().Ancestors(gomock.Any(), testTenantID, testRef).Return(nil, nil)
			},
			expectedAllow:  true,
			expectedSource: types.SourceRoleDefault,
			expectedBits:   capability.Editor,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockStore := NewMockStoreInterface(ctrl)
			mockHierarchy := NewMockHierarchyInterface(ctrl)
			mockAudit := NewMockAuditInterface(ctrl)
			mockTracer := NewMockTracingInterface(ctrl)

			mockTracer.EXPECT().Start(gomock.Any(), "permission.Evaluator.EvaluateSilent").
				DoAndReturn(startSpanPassthrough)
			tc.setupMocks(mockStore, mockHierarchy)

			e := NewEvaluator(mockStore, mockHierarchy, mockAudit, mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

			decision, err := e.EvaluateSilent(context.Background(), testUserID, testTenantID, testRef, tc.required)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if decision.Allowed != tc.expectedAllow {
				t.Errorf("expected allowed=%v, got %v", tc.expectedAllow, decision.Allowed)
			}
			if decision.Source != tc.expectedSource {
				t.Errorf("expected source %s, got %s", tc.expectedSource, decision.Source)
			}
			if tc.expectedAllow && decision.EffectiveBits != tc.expectedBits {
				t.Errorf("expected effective bits %s, got %s", tc.expectedBits, decision.EffectiveBits)
			}
		})
	}
}

func TestEvaluator_Errors(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockTracer.EXPECT().Start(gomock.Any(), "permission.Evaluator.EvaluateSilent").
		DoAndReturn(startSpanPassthrough).AnyTimes()

	e := NewEvaluator(mockStore, NewMockHierarchyInterface(ctrl), NewMockAuditInterface(ctrl), mockTracer, NewMockMonitorInterface(ctrl), NewMockLoggerInterface(ctrl))

	if _, err := e.EvaluateSilent(context.Background(), testUserID, testTenantID, testRef, capability.None); !errors.Is(err, ErrInvalidCapabilitySet) {
		t.Errorf("expected ErrInvalidCapabilitySet, got %v", err)
	}

	if _, err := e.EvaluateSilent(context.Background(), testUserID, testTenantID, testRef, capability.Set(1<<20)); !errors.Is(err, ErrInvalidCapabilitySet) {
		t.Errorf("expected ErrInvalidCapabilitySet for out-of-width bits, got %v", err)
	}

	mockStore.EXPECT().GetTenantByID(gomock.Any(), "missing").Return(nil, storage.ErrNotFound)
	if _, err := e.EvaluateSilent(context.Background(), testUserID, "missing", testRef, capability.Read); !errors.Is(err, ErrTenantNotFound) {
		t.Errorf("expected ErrTenantNotFound, got %v", err)
	}
}

func TestEvaluator_EvaluateAuditsMutatingDenials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockAudit := NewMockAuditInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)
	mockLogger := NewMockLoggerInterface(ctrl)
	mockSecurity := NewMockSecurityLoggerInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "permission.Evaluator.Evaluate").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
	mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
	mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(nil, nil, storage.ErrNotFound)

	mockMonitor.EXPECT().IncDecisionMetric(map[string]string{"allowed": "false", "source": "none"}).Return(nil)
	mockLogger.EXPECT().Security().Return(mockSecurity)
	mockSecurity.EXPECT().AuthorizationDenied(testUserID, testTenantID, "document/doc-1", "WRITE")
	mockAudit.EXPECT().TryRecord(gomock.Any(), gomock.Any()).Do(
		func(_ context.Context, e *types.AuditEntry) {
			if e.Action != types.ActionPermCheck || e.Success {
				t.Errorf("unexpected audit entry for denial: %+v", e)
			}
		})

	e := NewEvaluator(mockStore, NewMockHierarchyInterface(ctrl), mockAudit, mockTracer, mockMonitor, mockLogger)

	decision, err := e.Evaluate(context.Background(), testUserID, testTenantID, testRef, capability.Write)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Error("expected denial")
	}
}

func TestEvaluator_EvaluateSkipsAuditForReadDenials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockStore := NewMockStoreInterface(ctrl)
	mockTracer := NewMockTracingInterface(ctrl)
	mockMonitor := NewMockMonitorInterface(ctrl)

	mockTracer.EXPECT().Start(gomock.Any(), "permission.Evaluator.Evaluate").
		DoAndReturn(startSpanPassthrough)
	mockStore.EXPECT().GetTenantByID(gomock.Any(), testTenantID).Return(activeTenant(), nil)
	mockStore.EXPECT().GetPlatformAdmin(gomock.Any(), testUserID).Return(nil, storage.ErrNotFound)
	mockStore.EXPECT().GetMembershipWithRole(gomock.Any(), testTenantID, testUserID).Return(nil, nil, storage.ErrNotFound)
	mockMonitor.EXPECT().IncDecisionMetric(gomock.Any()).Return(nil)

	// No audit or security logger expectations: a read denial stays quiet.
	e := NewEvaluator(mockStore, NewMockHierarchyInterface(ctrl), NewMockAuditInterface(ctrl), mockTracer, mockMonitor, NewMockLoggerInterface(ctrl))

	decision, err := e.Evaluate(context.Background(), testUserID, testTenantID, testRef, capability.Read)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if decision.Allowed {
		t.Error("expected denial")
	}
}
