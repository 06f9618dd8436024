// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/permission-service/internal/identity"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type RegisterResourceRequest struct {
	ResourceType string  `json:"resource_type" validate:"required,oneof=workspace folder document"`
	ResourceID   string  `json:"resource_id" validate:"required"`
	Name         string  `json:"name"`
	ParentType   *string `json:"parent_type" validate:"omitempty,oneof=workspace folder,required_with=ParentID"`
	ParentID     *string `json:"parent_id" validate:"required_with=ParentType"`
	SizeBytes    int64   `json:"size_bytes" validate:"gte=0"`
}

type MoveResourceRequest struct {
	ResourceType string  `json:"resource_type" validate:"required,oneof=workspace folder document"`
	ResourceID   string  `json:"resource_id" validate:"required"`
	ParentType   *string `json:"parent_type" validate:"omitempty,oneof=workspace folder,required_with=ParentID"`
	ParentID     *string `json:"parent_id" validate:"required_with=ParentType"`
}

type API struct {
	service  ServiceInterface
	validate *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.validate = validator.New(validator.WithRequiredStructEnabled())
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/tenants/{id}/resources", a.register)
	mux.Patch("/api/v0/tenants/{id}/resources", a.move)
	mux.Delete("/api/v0/tenants/{id}/resources", a.remove)
	mux.Post("/api/v0/tenants/{id}/quota/recompute", a.recompute)
}

func (a *API) register(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "resources.API.register")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req RegisterResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	resource := &types.Resource{
		TenantID:  chi.URLParam(r, "id"),
		Type:      types.ResourceType(req.ResourceType),
		ID:        req.ResourceID,
		Name:      req.Name,
		SizeBytes: req.SizeBytes,
	}
	if req.ParentType != nil && req.ParentID != nil {
		parentType := types.ResourceType(*req.ParentType)
		resource.ParentType = &parentType
		resource.ParentID = req.ParentID
	}

	created, err := a.service.Register(ctx, actorID, resource)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (a *API) move(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "resources.API.move")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req MoveResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ref := types.ResourceRef{Type: types.ResourceType(req.ResourceType), ID: req.ResourceID}
	var parent *types.ResourceRef
	if req.ParentType != nil && req.ParentID != nil {
		parent = &types.ResourceRef{Type: types.ResourceType(*req.ParentType), ID: *req.ParentID}
	}

	if err := a.service.Move(ctx, actorID, chi.URLParam(r, "id"), ref, parent); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) remove(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "resources.API.remove")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	resourceType := q.Get("resource_type")
	resourceID := q.Get("resource_id")
	if resourceType == "" || resourceID == "" {
		http.Error(w, "resource_type and resource_id are required", http.StatusBadRequest)
		return
	}

	ref := types.ResourceRef{Type: types.ResourceType(resourceType), ID: resourceID}
	if err := a.service.Remove(ctx, actorID, chi.URLParam(r, "id"), ref); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) recompute(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "resources.API.recompute")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	tenant, err := a.service.RecomputeUsage(ctx, actorID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"user_count":         tenant.UserCount,
		"document_count":     tenant.DocumentCount,
		"storage_used_bytes": tenant.StorageUsedBytes,
	})
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound), errors.Is(err, ErrNotFound), errors.Is(err, ErrParentNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrForbidden), errors.Is(err, ErrTenantArchived):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrCycle), errors.Is(err, ErrResourceExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrQuotaExceeded):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		a.logger.Errorf("request failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
