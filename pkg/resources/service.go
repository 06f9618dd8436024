// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package resources is the authorized surface over the containment tree:
// registering, relinking and removing resources, and repairing a tenant's
// usage counters.
package resources

import (
	"context"
	"errors"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/hierarchy"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

type Service struct {
	store     StoreInterface
	hierarchy HierarchyInterface
	evaluator EvaluatorInterface
	quota     QuotaInterface
	audit     AuditInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StoreInterface, hierarchy HierarchyInterface, evaluator EvaluatorInterface, quota QuotaInterface, audit AuditInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.hierarchy = hierarchy
	s.evaluator = evaluator
	s.quota = quota
	s.audit = audit
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

// Register adds a resource to the tenant's tree. The actor needs WRITE on the
// parent, or on the new resource itself when it is a root. Registering a
// document consults the document quota first.
func (s *Service) Register(ctx context.Context, actorID string, resource *types.Resource) (*types.Resource, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.Register")
	defer span.End()

	target := types.ResourceRef{Type: resource.Type, ID: resource.ID}
	if resource.ParentType != nil && resource.ParentID != nil {
		target = types.ResourceRef{Type: *resource.ParentType, ID: *resource.ParentID}
	}
	if err := s.authorize(ctx, actorID, resource.TenantID, target, capability.Write, types.ActionResourceAdd); err != nil {
		return nil, err
	}

	if resource.Type == types.ResourceDocument {
		exceeded, err := s.quota.Exceeded(ctx, resource.TenantID, "document_count")
		if err != nil {
			return nil, err
		}
		if exceeded {
			return nil, ErrQuotaExceeded
		}
	}

	created, err := s.hierarchy.Register(ctx, resource)
	if err != nil {
		switch {
		case errors.Is(err, hierarchy.ErrParentNotFound):
			return nil, ErrParentNotFound
		case errors.Is(err, storage.ErrDuplicateKey):
			return nil, ErrResourceExists
		case errors.Is(err, storage.ErrForeignKeyViolation):
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	s.audit.TryRecord(ctx, &types.AuditEntry{
		TenantID:     &created.TenantID,
		Action:       types.ActionResourceAdd,
		Level:        types.LevelInfo,
		ActorID:      actorID,
		ResourceType: string(created.Type),
		ResourceID:   created.ID,
		ResourceName: created.Name,
		Details: map[string]any{
			"parent_type": created.ParentType,
			"parent_id":   created.ParentID,
			"size_bytes":  created.SizeBytes,
		},
		Success: true,
	})

	return created, nil
}

// Move relinks a resource under a new parent, or detaches it into a root when
// parent is nil. The actor needs WRITE on the resource being moved.
func (s *Service) Move(ctx context.Context, actorID, tenantID string, ref types.ResourceRef, parent *types.ResourceRef) error {
	ctx, span := s.tracer.Start(ctx, "resources.Service.Move")
	defer span.End()

	if err := s.authorize(ctx, actorID, tenantID, ref, capability.Write, types.ActionResourceMove); err != nil {
		return err
	}

	if err := s.hierarchy.SetParent(ctx, tenantID, ref, parent); err != nil {
		switch {
		case errors.Is(err, hierarchy.ErrCycle):
			return ErrCycle
		case errors.Is(err, hierarchy.ErrParentNotFound):
			return ErrParentNotFound
		case errors.Is(err, storage.ErrNotFound):
			return ErrNotFound
		}
		return err
	}

	changes := map[string]any{"parent_type": nil, "parent_id": nil}
	if parent != nil {
		changes["parent_type"] = parent.Type
		changes["parent_id"] = parent.ID
	}
	s.audit.TryRecord(ctx, &types.AuditEntry{
		TenantID:     &tenantID,
		Action:       types.ActionResourceMove,
		Level:        types.LevelInfo,
		ActorID:      actorID,
		ResourceType: string(ref.Type),
		ResourceID:   ref.ID,
		Changes:      changes,
		Success:      true,
	})

	return nil
}

// Remove deletes a resource from the tree. The actor needs DELETE on it.
func (s *Service) Remove(ctx context.Context, actorID, tenantID string, ref types.ResourceRef) error {
	ctx, span := s.tracer.Start(ctx, "resources.Service.Remove")
	defer span.End()

	if err := s.authorize(ctx, actorID, tenantID, ref, capability.Delete, types.ActionResourceDel); err != nil {
		return err
	}

	if err := s.hierarchy.Remove(ctx, tenantID, ref); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}

	s.audit.TryRecord(ctx, &types.AuditEntry{
		TenantID:     &tenantID,
		Action:       types.ActionResourceDel,
		Level:        types.LevelInfo,
		ActorID:      actorID,
		ResourceType: string(ref.Type),
		ResourceID:   ref.ID,
		Success:      true,
	})

	return nil
}

// RecomputeUsage recounts a tenant's usage counters from the underlying rows.
// It is an operator repair tool, restricted to platform super_admin and ops.
func (s *Service) RecomputeUsage(ctx context.Context, actorID, tenantID string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "resources.Service.RecomputeUsage")
	defer span.End()

	admin, err := s.store.GetPlatformAdmin(ctx, actorID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Security().AuthorizationDenied(actorID, tenantID, "tenant", "platform_role")
			return nil, ErrForbidden
		}
		return nil, err
	}
	if admin.Role != types.PlatformSuperAdmin && admin.Role != types.PlatformOps {
		s.logger.Security().AuthorizationDenied(actorID, tenantID, "tenant", "platform_role")
		return nil, ErrForbidden
	}

	tenant, err := s.quota.Recompute(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, err
	}

	s.audit.TryRecord(ctx, &types.AuditEntry{
		TenantID: &tenantID,
		Action:   types.ActionQuotaChange,
		Level:    types.LevelWarning,
		ActorID:  actorID,
		Details: map[string]any{
			"user_count":         tenant.UserCount,
			"document_count":     tenant.DocumentCount,
			"storage_used_bytes": tenant.StorageUsedBytes,
		},
		Success: true,
	})

	return tenant, nil
}

// authorize gates a tree mutation on the evaluator's verdict. Denials land in
// the audit trail with the attempted action.
func (s *Service) authorize(ctx context.Context, actorID, tenantID string, ref types.ResourceRef, required capability.Set, action string) error {
	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrTenantNotFound
		}
		return err
	}
	if tenant.Status == types.TenantArchived {
		return ErrTenantArchived
	}

	decision, err := s.evaluator.EvaluateSilent(ctx, actorID, tenantID, ref, required)
	if err != nil {
		return err
	}
	if !decision.Allowed {
		s.audit.TryRecord(ctx, &types.AuditEntry{
			TenantID:     &tenantID,
			Action:       action,
			Level:        types.LevelSecurity,
			ActorID:      actorID,
			ResourceType: string(ref.Type),
			ResourceID:   ref.ID,
			Success:      false,
			ErrorMessage: ErrForbidden.Error(),
		})
		return ErrForbidden
	}

	return nil
}
