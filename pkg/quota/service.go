// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package quota tracks tenant usage counters against their plan limits.
// Limits are advisory: callers consult Exceeded before a mutation, while the
// counters themselves stay exact through atomic deltas.
package quota

import (
	"context"
	"errors"
	"fmt"

	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
)

// ErrQuotaExceeded signals that a tenant is at or over a plan limit.
var ErrQuotaExceeded = errors.New("tenant quota exceeded")

type Service struct {
	store StoreInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

var _ ServiceInterface = (*Service)(nil)

func NewService(store StoreInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Service {
	s := new(Service)

	s.store = store
	s.tracer = tracer
	s.monitor = monitor
	s.logger = logger

	return s
}

// Adjust applies an atomic delta to a usage counter and returns the new
// value. Negative results clamp at zero.
func (s *Service) Adjust(ctx context.Context, tenantID, counter string, delta int64) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "quota.Service.Adjust")
	defer span.End()

	return s.store.AdjustTenantCounter(ctx, tenantID, counter, delta)
}

// Exceeded reports whether the tenant has reached the limit backing the
// counter. A limit of zero or below means unlimited. The check is advisory:
// concurrent mutations may still push usage slightly past the limit, which
// the atomic counters record faithfully.
func (s *Service) Exceeded(ctx context.Context, tenantID, counter string) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "quota.Service.Exceeded")
	defer span.End()

	tenant, err := s.store.GetTenantByID(ctx, tenantID)
	if err != nil {
		return false, err
	}

	var usage, limit int64
	switch counter {
	case "user_count":
		usage, limit = tenant.UserCount, tenant.MaxUsers
	case "document_count":
		usage, limit = tenant.DocumentCount, tenant.MaxDocuments
	case "storage_used_bytes":
		usage, limit = tenant.StorageUsedBytes, tenant.MaxStorageBytes
	default:
		return false, fmt.Errorf("unknown usage counter %q", counter)
	}

	if limit <= 0 {
		return false, nil
	}

	return usage >= limit, nil
}

// Recompute replaces the running counters with recounted totals. It exists
// for operators repairing drift after manual data surgery; the service never
// calls it on its own.
func (s *Service) Recompute(ctx context.Context, tenantID string) (*types.Tenant, error) {
	ctx, span := s.tracer.Start(ctx, "quota.Service.Recompute")
	defer span.End()

	tenant, err := s.store.RecomputeTenantCounters(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	s.logger.Infof("recomputed usage counters for tenant %s: users=%d documents=%d storage=%d",
		tenantID, tenant.UserCount, tenant.DocumentCount, tenant.StorageUsedBytes)

	return tenant, nil
}
