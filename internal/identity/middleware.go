// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package identity

import (
	"context"
	"net/http"

	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/tracing"
)

const (
	// UserHeaderName is the header carrying the pre-resolved principal ID.
	// Authentication happens upstream; an empty value means anonymous.
	UserHeaderName = "X-Authenticated-User-Id"
	// TenantHeaderName optionally pins the request to a tenant when the
	// route has no tenant path parameter.
	TenantHeaderName = "X-Tenant-Id"

	// UserContextKey is the key used to store the user ID in the context
	UserContextKey = "user_id"
	// TenantContextKey is the key used to store the tenant ID in the context
	TenantContextKey = "tenant_id"
)

type Middleware struct {
	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewMiddleware(tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *Middleware {
	return &Middleware{
		tracer:  tracer,
		monitor: monitor,
		logger:  logger,
	}
}

func (m *Middleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := m.tracer.Start(r.Context(), "identity.Middleware.HTTPMiddleware")
		defer span.End()

		ctx = context.WithValue(ctx, UserContextKey, r.Header.Get(UserHeaderName))
		if tenantID := r.Header.Get(TenantHeaderName); tenantID != "" {
			ctx = context.WithValue(ctx, TenantContextKey, tenantID)
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// UserID extracts the principal set by HTTPMiddleware; empty means anonymous.
func UserID(ctx context.Context) string {
	if v, ok := ctx.Value(UserContextKey).(string); ok {
		return v
	}
	return ""
}

// TenantID extracts the header-pinned tenant, if any.
func TenantID(ctx context.Context) string {
	if v, ok := ctx.Value(TenantContextKey).(string); ok {
		return v
	}
	return ""
}
