// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package permission resolves what a principal may do to a resource and
// manages the grants that feed that resolution. Decisions walk a fixed tier
// order; the first tier that answers wins and later tiers are never
// consulted.
package permission

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

// mutating marks the capabilities whose denial is audit-worthy. Read-path
// denials stay out of the trail to keep it signal only.
const mutating = capability.Write | capability.Delete | capability.Share | capability.Admin | capability.Export

type Evaluator struct {
	store     StoreInterface
	hierarchy HierarchyInterface
	audit     AuditInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ EvaluatorInterface = (*Evaluator)(nil)

func NewEvaluator(store StoreInterface, hierarchy HierarchyInterface, audit AuditInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Evaluator {
	e := new(Evaluator)

	e.store = store
	e.hierarchy = hierarchy
	e.audit = audit
	e.tracer = tracer
	e.monitor = monitor
	e.logger = logger

	return e
}

func (e *Evaluator) Evaluate(ctx context.Context, userID, tenantID string, ref types.ResourceRef, required capability.Set) (*types.Decision, error) {
	ctx, span := e.tracer.Start(ctx, "permission.Evaluator.Evaluate")
	defer span.End()

	start := time.Now()

	decision, err := e.resolve(ctx, userID, tenantID, ref, required)
	if err != nil {
		return nil, err
	}

	_ = e.monitor.IncDecisionMetric(map[string]string{
		"allowed": strconv.FormatBool(decision.Allowed),
		"source":  string(decision.Source),
	})

	if !decision.Allowed && required&mutating != 0 {
		e.logger.Security().AuthorizationDenied(userID, tenantID, string(ref.Type)+"/"+ref.ID, required.String())
		e.audit.TryRecord(ctx, &types.AuditEntry{
			TenantID:     &tenantID,
			Action:       types.ActionPermCheck,
			Level:        types.LevelWarning,
			ActorID:      userID,
			ResourceType: string(ref.Type),
			ResourceID:   ref.ID,
			Details: map[string]any{
				"required": required.Labels(),
				"source":   decision.Source,
			},
			Success:    false,
			DurationMS: time.Since(start).Milliseconds(),
		})
	}

	return decision, nil
}

func (e *Evaluator) EvaluateSilent(ctx context.Context, userID, tenantID string, ref types.ResourceRef, required capability.Set) (*types.Decision, error) {
	ctx, span := e.tracer.Start(ctx, "permission.Evaluator.EvaluateSilent")
	defer span.End()

	return e.resolve(ctx, userID, tenantID, ref, required)
}

// resolve runs the tier order: platform super admin, tenant admin by role
// level, user grant, role grant, department grant, inherited ancestor grant,
// role default, deny. Expired grants behave as absent, never as denials.
func (e *Evaluator) resolve(ctx context.Context, userID, tenantID string, ref types.ResourceRef, required capability.Set) (*types.Decision, error) {
	if !required.Valid() {
		return nil, ErrInvalidCapabilitySet
	}
	if userID == "" {
		return deny(), nil
	}

	tenant, err := e.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrTenantNotFound
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	admin, err := e.store.GetPlatformAdmin(ctx, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to check platform role: %w", err)
	}

	if admin != nil && admin.Role == types.PlatformSuperAdmin {
		return allow(types.SourcePlatformAdmin, capability.Owner), nil
	}

	// Archived tenants are frozen: nothing but platform-level reads.
	if tenant.Status == types.TenantArchived {
		if admin != nil && capability.Reader.Has(required) {
			return allow(types.SourcePlatformAdmin, capability.Reader), nil
		}
		return deny(), nil
	}

	membership, role, err := e.store.GetMembershipWithRole(ctx, tenantID, userID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}

	if membership == nil || membership.Status != types.MemberActive {
		// Non-super platform roles may read into tenants they are not
		// members of; everything else is denied.
		if admin != nil && capability.Reader.Has(required) {
			return allow(types.SourcePlatformAdmin, capability.Reader), nil
		}
		return deny(), nil
	}

	if role != nil && role.Level >= tenant.AdminLevel {
		return allow(types.SourceTenantAdmin, capability.Owner), nil
	}

	var roleID, departmentID *string
	if role != nil {
		roleID = &role.ID
	}
	departmentID = membership.DepartmentID

	now := time.Now()

	grants, err := e.store.ListGrantsForGrantees(ctx, tenantID, ref.Type, ref.ID, userID, roleID, departmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to load grants: %w", err)
	}
	if d := matchGrants(grants, required, now, false); d != nil {
		return d, nil
	}

	ancestors, err := e.hierarchy.Ancestors(ctx, tenantID, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve ancestors: %w", err)
	}
	for _, ancestor := range ancestors {
		grants, err := e.store.ListGrantsForGrantees(ctx, tenantID, ancestor.Type, ancestor.ID, userID, roleID, departmentID)
		if err != nil {
			return nil, fmt.Errorf("failed to load inherited grants: %w", err)
		}
		if d := matchGrants(grants, required, now, true); d != nil {
			return d, nil
		}
	}

	if role != nil && role.Permissions.Has(required) {
		return allow(types.SourceRoleDefault, role.Permissions), nil
	}

	return deny(), nil
}

// matchGrants applies first-match-wins per tier: within each grantee tier
// only the oldest applicable grant counts, and tiers are consulted in user,
// role, department order. inheritedOnly restricts the match to grants that
// cascade to descendants.
func matchGrants(grants []*types.Grant, required capability.Set, now time.Time, inheritedOnly bool) *types.Decision {
	seen := make(map[types.GranteeType]bool, 3)

	for _, g := range grants {
		if g.Expired(now) {
			continue
		}
		if inheritedOnly && !g.Inherit {
			continue
		}
		if seen[g.GranteeType] {
			continue
		}
		seen[g.GranteeType] = true

		if !g.Permissions.Has(required) {
			continue
		}

		source := types.SourceInherited
		if !inheritedOnly {
			switch g.GranteeType {
			case types.GranteeUser:
				source = types.SourceUserGrant
			case types.GranteeRole:
				source = types.SourceRoleGrant
			case types.GranteeDepartment:
				source = types.SourceDepartmentGrant
			}
		}

		return allow(source, g.Permissions)
	}

	return nil
}

func allow(source types.DecisionSource, bits capability.Set) *types.Decision {
	return &types.Decision{Allowed: true, Source: source, EffectiveBits: bits}
}

func deny() *types.Decision {
	return &types.Decision{Allowed: false, Source: types.SourceNone}
}
