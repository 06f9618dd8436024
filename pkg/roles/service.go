// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package roles manages per-tenant roles: creation, updates, deletion and the
// one-default-per-tenant invariant. System roles are sealed against level and
// capability changes so the admin threshold cannot be edited away.
package roles

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/permission-service/internal/db"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

type Service struct {
	db    db.DBClientInterface
	store StoreInterface
	audit AuditInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(dbClient db.DBClientInterface, store StoreInterface, audit AuditInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.db = dbClient
	s.store = store
	s.audit = audit
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

func (s *Service) CreateRole(ctx context.Context, actorID string, r *types.Role) (*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "roles.Service.CreateRole")
	defer span.End()

	if !r.Permissions.Valid() {
		return nil, ErrInvalidCapabilitySet
	}
	if err := s.requireTenantAdmin(ctx, actorID, r.TenantID); err != nil {
		return nil, err
	}

	// API-created roles are never system roles.
	r.IsSystem = false
	makeDefault := r.IsDefault
	r.IsDefault = false

	var created *types.Role
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.store.CreateRole(ctx, r)
		if err != nil {
			return err
		}

		if makeDefault {
			if err := s.store.SwapDefaultRole(ctx, r.TenantID, created.ID); err != nil {
				return fmt.Errorf("failed to set default role: %w", err)
			}
			created.IsDefault = true
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &r.TenantID,
			Action:   types.ActionRoleCreate,
			ActorID:  actorID,
			Changes: map[string]any{
				"name":        created.Name,
				"level":       created.Level,
				"permissions": created.Permissions.Labels(),
				"is_default":  created.IsDefault,
			},
			Success: true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrRoleExists
		}
		return nil, fmt.Errorf("failed to create role: %w", err)
	}

	return created, nil
}

func (s *Service) UpdateRole(ctx context.Context, actorID, tenantID, name string, update RoleUpdate) (*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "roles.Service.UpdateRole")
	defer span.End()

	if err := s.requireTenantAdmin(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	role, err := s.store.GetRoleByName(ctx, tenantID, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if role.IsSystem && (update.Name != nil || update.Level != nil || update.Permissions != nil) {
		return nil, ErrSystemRole
	}
	if update.Permissions != nil && !update.Permissions.Valid() {
		return nil, ErrInvalidCapabilitySet
	}
	if update.IsDefault != nil && !*update.IsDefault {
		return nil, fmt.Errorf("%w: cannot unset the default flag directly", ErrDefaultRole)
	}

	var paths []string
	changes := make(map[string]any)
	if update.Name != nil {
		role.Name = *update.Name
		paths = append(paths, "name")
		changes["name"] = *update.Name
	}
	if update.DisplayName != nil {
		role.DisplayName = *update.DisplayName
		paths = append(paths, "display_name")
		changes["display_name"] = *update.DisplayName
	}
	if update.Description != nil {
		role.Description = *update.Description
		paths = append(paths, "description")
		changes["description"] = *update.Description
	}
	if update.Level != nil {
		role.Level = *update.Level
		paths = append(paths, "level")
		changes["level"] = *update.Level
	}
	if update.Permissions != nil {
		role.Permissions = *update.Permissions
		paths = append(paths, "permissions")
		changes["permissions"] = update.Permissions.Labels()
	}

	makeDefault := update.IsDefault != nil && *update.IsDefault && !role.IsDefault
	if len(paths) == 0 && !makeDefault {
		return role, nil
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if len(paths) > 0 {
			if err := s.store.UpdateRole(ctx, role, paths); err != nil {
				return err
			}
		}

		if makeDefault {
			if err := s.store.SwapDefaultRole(ctx, tenantID, role.ID); err != nil {
				return fmt.Errorf("failed to swap default role: %w", err)
			}
			role.IsDefault = true
			changes["is_default"] = true
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &tenantID,
			Action:   types.ActionRoleUpdate,
			ActorID:  actorID,
			Changes:  changes,
			Details:  map[string]any{"role": name},
			Success:  true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrDuplicateKey) {
			return nil, ErrRoleExists
		}
		return nil, fmt.Errorf("failed to update role: %w", err)
	}

	return role, nil
}

func (s *Service) DeleteRole(ctx context.Context, actorID, tenantID, name string) error {
	ctx, span := s.tracer.Start(ctx, "roles.Service.DeleteRole")
	defer span.End()

	if err := s.requireTenantAdmin(ctx, actorID, tenantID); err != nil {
		return err
	}

	role, err := s.store.GetRoleByName(ctx, tenantID, name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	if role.IsSystem {
		return ErrSystemRole
	}
	if role.IsDefault {
		return ErrDefaultRole
	}

	err = s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteRole(ctx, tenantID, name); err != nil {
			return err
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID: &tenantID,
			Action:   types.ActionRoleDelete,
			ActorID:  actorID,
			Changes:  map[string]any{"name": name},
			Success:  true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}

	return nil
}

func (s *Service) ListRoles(ctx context.Context, actorID, tenantID string) ([]*types.Role, error) {
	ctx, span := s.tracer.Start(ctx, "roles.Service.ListRoles")
	defer span.End()

	if err := s.requireMember(ctx, actorID, tenantID); err != nil {
		return nil, err
	}

	return s.store.ListRoles(ctx, tenantID)
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
		s.logger.Security().AuthorizationDenied(actorID, tenantID, "role", "tenant_admin")
		return ErrForbidden
	}

	return nil
}

// requireMember admits any active member or platform admin for reads.
func (s *Service) requireMember(ctx context.Context, actorID, tenantID string) error {
	if _, err := s.store.GetPlatformAdmin(ctx, actorID); err == nil {
		return nil
	} else if !errors.Is(err, storage.ErrNotFound) {
		return err
	}

	membership, _, err := s.store.GetMembershipWithRole(ctx, tenantID, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrForbidden
		}
		return err
	}
	if membership.Status != types.MemberActive {
		return ErrForbidden
	}

	return nil
}
