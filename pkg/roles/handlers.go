// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package roles

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/identity"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type CreateRoleRequest struct {
	Name        string `json:"name" validate:"required"`
	DisplayName string `json:"display_name"`
	Description string `json:"description"`
	Level       int    `json:"level" validate:"gte=0"`
	Permissions string `json:"permissions" validate:"required"`
	IsDefault   bool   `json:"is_default"`
}

type UpdateRoleRequest struct {
	Name        *string `json:"name"`
	DisplayName *string `json:"display_name"`
	Description *string `json:"description"`
	Level       *int    `json:"level" validate:"omitempty,gte=0"`
	Permissions *string `json:"permissions"`
	IsDefault   *bool   `json:"is_default"`
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
	mux.Get("/api/v0/tenants/{id}/roles", a.listRoles)
	mux.Post("/api/v0/tenants/{id}/roles", a.createRole)
	mux.Patch("/api/v0/tenants/{id}/roles/{name}", a.updateRole)
	mux.Delete("/api/v0/tenants/{id}/roles/{name}", a.deleteRole)
}

func (a *API) listRoles(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "roles.API.listRoles")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	roles, err := a.service.ListRoles(ctx, actorID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	if roles == nil {
		roles = []*types.Role{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"roles": roles})
}

func (a *API) createRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "roles.API.createRole")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	permissions, err := capability.Parse(req.Permissions)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := a.service.CreateRole(ctx, actorID, &types.Role{
		TenantID:    chi.URLParam(r, "id"),
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Level:       req.Level,
		Permissions: permissions,
		IsDefault:   req.IsDefault,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (a *API) updateRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "roles.API.updateRole")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req UpdateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update := RoleUpdate{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		Description: req.Description,
		Level:       req.Level,
		IsDefault:   req.IsDefault,
	}
	if req.Permissions != nil {
		permissions, err := capability.Parse(*req.Permissions)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		update.Permissions = &permissions
	}

	updated, err := a.service.UpdateRole(ctx, actorID, chi.URLParam(r, "id"), chi.URLParam(r, "name"), update)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

func (a *API) deleteRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "roles.API.deleteRole")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := a.service.DeleteRole(ctx, actorID, chi.URLParam(r, "id"), chi.URLParam(r, "name")); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrSystemRole), errors.Is(err, ErrDefaultRole):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrInvalidCapabilitySet):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrRoleExists):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		a.logger.Errorf("request failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
