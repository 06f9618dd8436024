// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

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

type CreateTenantRequest struct {
	Name            string `json:"name" validate:"required"`
	Slug            string `json:"slug" validate:"required"`
	AdminLevel      int    `json:"admin_level"`
	MaxUsers        int64  `json:"max_users"`
	MaxDocuments    int64  `json:"max_documents"`
	MaxStorageBytes int64  `json:"max_storage_bytes"`
}

type SetStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=active suspended archived"`
}

type CreateDepartmentRequest struct {
	Name     string  `json:"name" validate:"required"`
	ParentID *string `json:"parent_id"`
}

type MoveDepartmentRequest struct {
	DepartmentID string  `json:"department_id" validate:"required"`
	NewParentID  *string `json:"new_parent_id"`
}

type AddMemberRequest struct {
	UserID       string  `json:"user_id" validate:"required"`
	RoleID       *string `json:"role_id"`
	DepartmentID *string `json:"department_id"`
}

type UpdateMemberRequest struct {
	RoleID       *string `json:"role_id"`
	DepartmentID *string `json:"department_id"`
	Status       *string `json:"status" validate:"omitempty,oneof=active disabled invited"`
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
	mux.Post("/api/v0/tenants", a.createTenant)
	mux.Get("/api/v0/tenants/{id}", a.getTenant)
	mux.Post("/api/v0/tenants/{id}/status", a.setStatus)
	mux.Post("/api/v0/tenants/{id}/departments", a.createDepartment)
	mux.Post("/api/v0/tenants/{id}/departments/move", a.moveDepartment)
	mux.Post("/api/v0/tenants/{id}/members", a.addMember)
	mux.Patch("/api/v0/tenants/{id}/members/{uid}", a.updateMember)
}

func (a *API) createTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.createTenant")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := a.service.CreateTenant(ctx, actorID, &types.Tenant{
		Name:            req.Name,
		Slug:            req.Slug,
		AdminLevel:      req.AdminLevel,
		MaxUsers:        req.MaxUsers,
		MaxDocuments:    req.MaxDocuments,
		MaxStorageBytes: req.MaxStorageBytes,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (a *API) getTenant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.getTenant")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	tenant, err := a.service.GetTenant(ctx, actorID, chi.URLParam(r, "id"))
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(tenant)
}

func (a *API) setStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.setStatus")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req SetStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.service.SetStatus(ctx, actorID, chi.URLParam(r, "id"), types.TenantStatus(req.Status)); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) createDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.createDepartment")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req CreateDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := a.service.CreateDepartment(ctx, actorID, &types.Department{
		TenantID: chi.URLParam(r, "id"),
		Name:     req.Name,
		ParentID: req.ParentID,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (a *API) moveDepartment(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.moveDepartment")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req MoveDepartmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := a.service.MoveDepartment(ctx, actorID, chi.URLParam(r, "id"), req.DepartmentID, req.NewParentID); err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) addMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.addMember")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	created, err := a.service.AddMember(ctx, actorID, &types.Membership{
		TenantID:     chi.URLParam(r, "id"),
		UserID:       req.UserID,
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (a *API) updateMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "tenants.API.updateMember")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req UpdateMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	update := MemberUpdate{
		RoleID:       req.RoleID,
		DepartmentID: req.DepartmentID,
	}
	if req.Status != nil {
		status := types.MembershipStatus(*req.Status)
		update.Status = &status
	}

	updated, err := a.service.UpdateMember(ctx, actorID, chi.URLParam(r, "id"), chi.URLParam(r, "uid"), update)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(updated)
}

func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, ErrForbidden):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrInvalidSlug), errors.Is(err, ErrInvalidTransition):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrTenantExists), errors.Is(err, ErrMemberExists):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrQuotaExceeded):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	default:
		a.logger.Errorf("request failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
