// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package permission

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/db"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

type Service struct {
	db        db.DBClientInterface
	store     StoreInterface
	evaluator EvaluatorInterface
	audit     AuditInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(dbClient db.DBClientInterface, store StoreInterface, evaluator EvaluatorInterface, audit AuditInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.db = dbClient
	s.store = store
	s.evaluator = evaluator
	s.audit = audit
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

// Grant writes or overwrites a grant. The grant row and its audit entry
// commit in one transaction; losing the audit write aborts the grant.
func (s *Service) Grant(ctx context.Context, actorID string, grant *types.Grant) (*types.Grant, error) {
	ctx, span := s.tracer.Start(ctx, "permission.Service.Grant")
	defer span.End()

	if !grant.Permissions.Valid() {
		return nil, ErrInvalidCapabilitySet
	}
	if grant.ExpiresAt != nil && grant.ExpiresAt.Before(time.Now()) {
		return nil, fmt.Errorf("%w: expiry is in the past", ErrGrantConflict)
	}

	ref := types.ResourceRef{Type: grant.ResourceType, ID: grant.ResourceID}
	if err := s.authorize(ctx, actorID, grant.TenantID, ref, types.ActionPermGrant); err != nil {
		return nil, err
	}

	grant.GrantedBy = actorID

	var created *types.Grant
	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.store.UpsertGrant(ctx, grant)
		if err != nil {
			return err
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID:     &grant.TenantID,
			Action:       types.ActionPermGrant,
			Level:        types.LevelSecurity,
			ActorID:      actorID,
			ResourceType: string(grant.ResourceType),
			ResourceID:   grant.ResourceID,
			Changes: map[string]any{
				"grantee_type": grant.GranteeType,
				"grantee_id":   grant.GranteeID,
				"permissions":  grant.Permissions.Labels(),
				"inherit":      grant.Inherit,
				"expires_at":   grant.ExpiresAt,
			},
			Success: true,
		})
	})
	if err != nil {
		if errors.Is(err, storage.ErrForeignKeyViolation) {
			return nil, fmt.Errorf("%w: unknown tenant or grantee", ErrGrantConflict)
		}
		return nil, fmt.Errorf("failed to store grant: %w", err)
	}

	return created, nil
}

// Revoke removes a grant. Revoking an absent grant succeeds; the audit entry
// is written either way so the intent is on record.
func (s *Service) Revoke(ctx context.Context, actorID, tenantID string, ref types.ResourceRef, granteeType types.GranteeType, granteeID string) error {
	ctx, span := s.tracer.Start(ctx, "permission.Service.Revoke")
	defer span.End()

	if err := s.authorize(ctx, actorID, tenantID, ref, types.ActionPermRevoke); err != nil {
		return err
	}

	err := s.db.WithTx(ctx, func(ctx context.Context) error {
		if err := s.store.DeleteGrant(ctx, tenantID, ref.Type, ref.ID, granteeType, granteeID); err != nil {
			return err
		}

		return s.audit.Record(ctx, &types.AuditEntry{
			TenantID:     &tenantID,
			Action:       types.ActionPermRevoke,
			Level:        types.LevelSecurity,
			ActorID:      actorID,
			ResourceType: string(ref.Type),
			ResourceID:   ref.ID,
			Changes: map[string]any{
				"grantee_type": granteeType,
				"grantee_id":   granteeID,
			},
			Success: true,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to revoke grant: %w", err)
	}

	return nil
}

// ListEffective returns the live grants on the exact resource, tier-ordered.
// Expired rows are filtered out, not deleted.
func (s *Service) ListEffective(ctx context.Context, tenantID string, ref types.ResourceRef) ([]*types.Grant, error) {
	ctx, span := s.tracer.Start(ctx, "permission.Service.ListEffective")
	defer span.End()

	grants, err := s.store.ListGrantsForResource(ctx, tenantID, ref.Type, ref.ID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	live := make([]*types.Grant, 0, len(grants))
	for _, g := range grants {
		if !g.Expired(now) {
			live = append(live, g)
		}
	}

	return live, nil
}

// authorize requires the actor to hold SHARE on the resource. Tenant and
// platform admins pass through the evaluator's admin tiers; archived tenants
// refuse the mutation outright.
func (s *Service) authorize(ctx context.Context, actorID, tenantID string, ref types.ResourceRef, action string) error {
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

	decision, err := s.evaluator.EvaluateSilent(ctx, actorID, tenantID, ref, capability.Share)
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
			ErrorMessage: ErrPermissionDenied.Error(),
		})
		return ErrPermissionDenied
	}

	return nil
}
