// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

// Package web assembles the HTTP surface: it wires storage, the hierarchy
// resolver, quota tracking, auditing and the permission engine into one chi
// router behind the shared middleware stack.
package web

import (
	"net/http"

	"github.com/canonical/permission-service/internal/db"
	"github.com/canonical/permission-service/internal/hierarchy"
	"github.com/canonical/permission-service/internal/identity"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/pkg/audit"
	"github.com/canonical/permission-service/pkg/metrics"
	"github.com/canonical/permission-service/pkg/permission"
	"github.com/canonical/permission-service/pkg/quota"
	"github.com/canonical/permission-service/pkg/resources"
	"github.com/canonical/permission-service/pkg/roles"
	"github.com/canonical/permission-service/pkg/status"
	"github.com/canonical/permission-service/pkg/tenants"
	chi "github.com/go-chi/chi/v5"
	middleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Config carries router-level tunables set from the environment.
type Config struct {
	DefaultAdminLevel   int
	AuditExportPageSize uint64
}

func NewRouter(
	store storage.StorageInterface,
	dbClient db.DBClientInterface,
	cfg Config,
	tracer tracing.TracingInterface,
	monitor monitoring.MonitorInterface,
	logger logging.LoggerInterface,
) http.Handler {
	router := chi.NewMux()

	middlewares := make(chi.Middlewares, 0)
	middlewares = append(
		middlewares,
		middleware.RequestID,
		monitoring.NewMiddleware(monitor, logger).ResponseTime(),
		cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", identity.UserHeaderName, identity.TenantHeaderName},
		}),
		identity.NewMiddleware(tracer, monitor, logger).HTTPMiddleware,
	)

	router.Use(middlewares...)

	quotaService := quota.NewService(store, tracer, monitor, logger)
	hierarchyResolver := hierarchy.NewResolver(dbClient, store, quotaService, tracer, monitor, logger)
	auditService := audit.NewService(store, cfg.AuditExportPageSize, tracer, monitor, logger)

	evaluator := permission.NewEvaluator(store, hierarchyResolver, auditService, tracer, monitor, logger)
	permissionService := permission.NewService(dbClient, store, evaluator, auditService, tracer, monitor, logger)
	tenantService := tenants.NewService(dbClient, store, quotaService, auditService, cfg.DefaultAdminLevel, tracer, monitor, logger)
	roleService := roles.NewService(dbClient, store, auditService, tracer, monitor, logger)
	resourceService := resources.NewService(store, hierarchyResolver, evaluator, quotaService, auditService, tracer, monitor, logger)

	metrics.NewAPI(logger).RegisterEndpoints(router)
	status.NewAPI(tracer, monitor, logger).RegisterEndpoints(router)
	audit.NewAPI(auditService, store, tracer, monitor, logger).RegisterEndpoints(router)
	permission.NewAPI(permissionService, evaluator, tracer, monitor, logger).RegisterEndpoints(router)
	tenants.NewAPI(tenantService, tracer, monitor, logger).RegisterEndpoints(router)
	roles.NewAPI(roleService, tracer, monitor, logger).RegisterEndpoints(router)
	resources.NewAPI(resourceService, tracer, monitor, logger).RegisterEndpoints(router)

	return tracing.NewMiddleware(monitor, logger).OpenTelemetry(router)
}
