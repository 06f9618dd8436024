// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/canonical/permission-service/internal/identity"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/storage"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
	"github.com/go-chi/chi/v5"
)

type API struct {
	service  ServiceInterface
	platform PlatformInterface

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, platform PlatformInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.platform = platform
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Get("/api/v0/audit", a.query)
	mux.Get("/api/v0/audit/export", a.export)
}

// requirePlatform lets any platform role through; the audit API only ever
// reads, so the auditor role's read/export restriction needs no extra check.
func (a *API) requirePlatform(w http.ResponseWriter, r *http.Request) (string, bool) {
	userID := identity.UserID(r.Context())
	if userID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return "", false
	}

	if _, err := a.platform.GetPlatformAdmin(r.Context(), userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			a.logger.Security().AuthorizationDenied(userID, "", "audit_log", "platform_role")
			http.Error(w, "forbidden", http.StatusForbidden)
			return "", false
		}
		http.Error(w, "internal error", http.StatusInternalServerError)
		return "", false
	}

	return userID, true
}

func (a *API) query(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "audit.API.query")
	defer span.End()
	r = r.WithContext(ctx)

	userID, ok := a.requirePlatform(w, r)
	if !ok {
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page := parseUintParam(r, "page", 0)
	size := parseUintParam(r, "size", 50)
	if size > 1000 {
		size = 1000
	}

	// Reading the trail is itself a privileged act and lands in it.
	a.service.TryRecord(ctx, &types.AuditEntry{
		Action:  types.ActionAuditQuery,
		Level:   types.LevelSecurity,
		ActorID: userID,
		Details: map[string]any{"tenant_id": filter.TenantID},
		Success: true,
	})

	entries, err := a.service.Query(ctx, filter, page, size)
	if err != nil {
		a.logger.Errorf("failed to query audit log: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	if entries == nil {
		entries = []*types.AuditEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"entries": entries,
		"page":    page,
		"size":    size,
	})
}

func (a *API) export(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "audit.API.export")
	defer span.End()
	r = r.WithContext(ctx)

	userID, ok := a.requirePlatform(w, r)
	if !ok {
		return
	}

	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "jsonl"
	}

	switch format {
	case "jsonl":
		w.Header().Set("Content-Type", "application/x-ndjson")
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
	default:
		http.Error(w, fmt.Sprintf("unknown export format %q", format), http.StatusBadRequest)
		return
	}
	w.Header().Set("Content-Disposition", "attachment; filename=audit-export."+format)

	// The export itself is a privileged read and lands in the trail.
	a.service.TryRecord(ctx, &types.AuditEntry{
		Action:  types.ActionAuditExport,
		Level:   types.LevelSecurity,
		ActorID: userID,
		Details: map[string]any{"format": format, "tenant_id": filter.TenantID},
		Success: true,
	})

	if err := a.service.Export(ctx, filter, format, w); err != nil {
		// Headers are gone by now; the truncated stream is the signal.
		a.logger.Errorf("audit export aborted: %v", err)
	}
}

func filterFromQuery(r *http.Request) (types.AuditFilter, error) {
	q := r.URL.Query()

	filter := types.AuditFilter{
		TenantID: q.Get("tenant_id"),
		Action:   q.Get("action"),
		ActorID:  q.Get("actor_id"),
		Level:    types.AuditLevel(q.Get("level")),
	}

	if v := q.Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("invalid from timestamp: %v", err)
		}
		filter.From = t
	}
	if v := q.Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return filter, fmt.Errorf("invalid to timestamp: %v", err)
		}
		filter.To = t
	}

	return filter, nil
}

func parseUintParam(r *http.Request, name string, fallback uint64) uint64 {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
