// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package tenants implements tenant lifecycle and membership administration.
// Every mutation commits together with its audit entry; an audit write
// failure aborts the mutation.
package tenants

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/db"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

// DefaultAdminLevel is the role level at or above which a member counts as a
// tenant administrator, unless the tenant or the environment overrides it.
const DefaultAdminLevel = 100

var slugPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{1,61}[a-z0-9])?$`)

// statusTransitions lists the legal tenant status changes. Archival is
// terminal.
var statusTransitions = map[types.TenantStatus][]types.TenantStatus{
	types.TenantTrial:     {types.TenantActive, types.TenantSuspended, types.TenantArchived},
	types.TenantActive:    {types.TenantSuspended, types.TenantArchived},
	types.TenantSuspended: {types.TenantActive, types.TenantArchived},
	types.TenantArchived:  {},
}

type Service struct {
	db    db.DBClientInterface
	store StoreInterface
	quota QuotaInterface
	audit AuditInterface

	adminLevel int

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(dbClient db.DBClientInterface, store StoreInterface, quota QuotaInterface, audit AuditInterface, adminLevel int, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.db = dbClient
	s.store = store
	s.quota = quota
	s.audit = audit
	s.adminLevel = adminLevel
	if s.adminLevel <= 0 {
		s.adminLevel = DefaultAdminLevel
	}
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

// CreateTenant provisions a tenant with its two seed roles: a system
// tenant_admin at the admin level and a default member role carrying editor
// bits. Only platform super_admin and ops may create tenants.
func (s *Service) CreateTenant(ctx context.Context, actorID string, t *types.Tenant) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.CreateTenant")
	defer span.End()

	if !slugPattern.MatchString(t.Slug) {
		return nil, ErrInvalidSlug
	}
	if err := s.requirePlatformOperator(ctx, actorID); err != nil {
		return nil, err
	}

	if t.Status == "" {
		t.Status = types.TenantActive
	}
	if t.AdminLevel == 0 {
		t.AdminLevel = s.adminLevel
	}

	var created *types.Tenant
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.store.CreateTenant(ctx, t)
		if err != nil {
			return err
		}

		_, err = s.store.CreateRole(ctx, &types.Role{
			TenantID:    created.ID,
			Name:        "tenant_admin",
			DisplayName: "Tenant Administrator",
			Level:       created.AdminLevel,
			Permissions: capability.Owner,
			IsSystem:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to seed admin role: %w", err)
		}

		_, err = s.store.CreateRole(ctx, &types.Role{
			TenantID:    created.ID,
			Name:        "member",
			DisplayName: "Member",
			Level:       10,
			Permissions: capability.Editor,
			IsDefault:   true,
		})
		if err != nil {
			return fmt.Errorf("failed to seed member role: %w", err)
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &created.ID,
			Action:   types.ActionTenantCreate,
			ActorID:  actorID,
			Changes: map[string]any{
				"name":   created.Name,
				"slug":   created.Slug,
				"status": created.Status,
			},
			Success: true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrTenantExists
		}
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	return created, nil
}

// GetTenant returns the tenant with its live usage counters. Members and
// platform staff may read it.
func (s *Service) GetTenant(ctx context.Context, actorID, tenantID string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.GetTenant")
	defer span.End()

	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := s.store.GetPlatformAdmin(ctx, actorID); err == nil {
		return tenant, nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	if _, err := s.store.GetMembership(ctx, tenantID, actorID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrForbidden
		}
		return nil, err
	}

	return tenant, nil
}

// SetStatus moves the tenant through its lifecycle. Illegal transitions are
// refused; archival in particular cannot be undone through the API.
func (s *Service) SetStatus(ctx context.Context, actorID, tenantID string, status types.TenantStatus) error {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.SetStatus")
	defer span.End()

	if err := s.requirePlatformOperator(ctx, actorID); err != nil {
		return err
	}

	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	allowed := false
	for _, next := range statusTransitions[tenant.Status] {
		if next == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, tenant.Status, status)
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateTenantStatus(ctx, tenantID, status); err != nil {
			return err
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &tenantID,
			Action:   types.ActionTenantStatus,
			Level:    types.LevelSecurity,
			ActorID:  actorID,
			Changes: map[string]any{
				"from": tenant.Status,
				"to":   status,
			},
			Success: true,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to update tenant status: %w", err)
	}

	s.logger.Infof("tenant %s moved from %s to %s by %s", tenantID, tenant.Status, status, actorID)
	return nil
}

func (s *Service) CreateDepartment(ctx context.Context, actorID string, d *types.Department) (*types.Department, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.CreateDepartment")
	defer span.End()

	if err := s.requireTenantAdmin(ctx, actorID, d.TenantID); err != nil {
		return nil, err
	}

	var created *types.Department
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.store.CreateDepartment(ctx, d)
		if err != nil {
			return err
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &d.TenantID,
			Action:   types.ActionDeptCreate,
			ActorID:  actorID,
			Changes: map[string]any{
				"name":      created.Name,
				"parent_id": created.ParentID,
			},
			Success: true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to create department: %w", err)
	}

	return created, nil
}

func (s *Service) MoveDepartment(ctx context.Context, actorID, tenantID, departmentID string, newParentID *string) error {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.MoveDepartment")
	defer span.End()

	if err := s.requireTenantAdmin(ctx, actorID, tenantID); err != nil {
		return err
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.MoveDepartment(ctx, tenantID, departmentID, newParentID); err != nil {
			return err
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &tenantID,
			Action:   types.ActionDeptMove,
			ActorID:  actorID,
			Changes: map[string]any{
				"department_id": departmentID,
				"new_parent_id": newParentID,
			},
			Success: true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to move department: %w", err)
	}

	return nil
}

// AddMember enrolls a user. The membership row, the user_count bump and the
// audit entry commit together. The quota check is advisory and runs before
// the transaction.
func (s *Service) AddMember(ctx context.Context, actorID string, m *types.Membership) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.AddMember")
	defer span.End()

	if err := s.requireTenantAdmin(ctx, actorID, m.TenantID); err != nil {
		return nil, err
	}

	exceeded, err := s.quota.Exceeded(ctx, m.TenantID, "user_count")
	if err != nil {
		return nil, fmt.Errorf("failed to check user quota: %w", err)
	}
	if exceeded {
		return nil, ErrQuotaExceeded
	}

	if m.RoleID == nil {
		def, err := s.store.GetDefaultRole(ctx, m.TenantID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve default role: %w", err)
		}
		m.RoleID = &def.ID
	}
	if m.Status == "" {
		m.Status = types.MemberActive
	}

	var created *types.Membership
	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.store.AddMember(ctx, m)
		if err != nil {
			return err
		}

		if _, err := s.quota.Adjust(ctx, m.TenantID, "user_count", 1); err != nil {
			return fmt.Errorf("failed to bump user count: %w", err)
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &m.TenantID,
			Action:   types.ActionMemberAdd,
			ActorID:  actorID,
			Changes: map[string]any{
				"user_id": created.UserID,
				"role_id": created.RoleID,
			},
			Success: true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrMemberExists
		}
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to add member: %w", err)
	}

	return created, nil
}

// UpdateMember applies a partial membership update. Disabling a member frees
// a user_count slot; re-enabling claims one back.
func (s *Service) UpdateMember(ctx context.Context, actorID, tenantID, userID string, update MemberUpdate) (*types.Membership, error) {
	ctx, span := s.tracer.Start(ctx, "tenants.Service.UpdateMember")
	defer span.End()

	if err := s.requireTenantAdmin(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	current, err := s.store.GetMembership(ctx, tenantID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var paths []string
	changes := make(map[string]any)
	action := types.ActionMemberUpdate

	if update.RoleID != nil {
		if _, err := s.store.GetRoleByID(ctx, *update.RoleID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		current.RoleID = update.RoleID
		paths = append(paths, "role_id")
		changes["role_id"] = *update.RoleID
		action = types.ActionRoleAssign
	}
	if update.DepartmentID != nil {
		current.DepartmentID = update.DepartmentID
		paths = append(paths, "department_id")
		changes["department_id"] = *update.DepartmentID
	}

	var countDelta int64
	if update.Status != nil && *update.Status != current.Status {
		switch {
		case *update.Status == types.MemberDisabled && current.Status == types.MemberActive:
			countDelta = -1
		case *update.Status == types.MemberActive && current.Status == types.MemberDisabled:
			countDelta = 1
		}
		current.Status = *update.Status
		paths = append(paths, "status")
		changes["status"] = *update.Status
	}

	if len(paths) == 0 {
		return current, nil
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.UpdateMembership(ctx, current, paths); err != nil {
			return err
		}

		if countDelta != 0 {
			if _, err := s.quota.Adjust(ctx, tenantID, "user_count", countDelta); err != nil {
				return fmt.Errorf("failed to adjust user count: %w", err)
			}
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &tenantID,
			Action:   action,
			ActorID:  actorID,
			Changes:  changes,
			Details:  map[string]any{"user_id": userID},
			Success:  true,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update membership: %w", err)
	}

	return current, nil
}

// requirePlatformOperator admits platform super_admin and ops roles.
func (s *Service) requirePlatformOperator(ctx context.Context, actorID string) error {
	admin, err := s.store.GetPlatformAdmin(ctx, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthorizationDenied(actorID, "", "tenant", "platform_role")
			return ErrForbidden
		}
		return err
	}
	if admin.Role != types.PlatformSuperAdmin && admin.Role != types.PlatformOps {
		s.logger.Security().AuthorizationDenied(actorID, "", "tenant", "platform_role")
		return ErrForbidden
	}
	return nil
}

// requireTenantAdmin admits platform operators and members whose role level
// reaches the tenant's admin threshold.
func (s *Service) requireTenantAdmin(ctx context.Context, actorID, tenantID string) error {
	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	admin, err := s.store.GetPlatformAdmin(ctx, actorID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if admin != nil && (admin.Role == types.PlatformSuperAdmin || admin.Role == types.PlatformOps) {
		return nil
	}

	membership, role, err := s.store.GetMembershipWithRole(ctx, tenantID, actorID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return err
	}
	if membership == nil || membership.Status != types.MemberActive || role == nil || role.Level < tenant.AdminLevel {
		s.logger.Security().AuthorizationDenied(actorID, tenantID, "tenant", "tenant_admin")
		s.audit.TryRecord(ctx, &types.AuditEntry{
			TenantID:     &tenantID,
			Action:       types.ActionTenantUpdate,
			Level:        types.LevelSecurity,
			ActorID:      actorID,
			Success:      false,
			ErrorMessage: ErrForbidden.Error(),
		})
		return ErrForbidden
	}

	return nil
}
