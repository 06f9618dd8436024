// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package permission

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/canonical/permission-service/internal/capability"
	"github.com/canonical/permission-service/internal/identity"
	"github.com/canonical/permission-service/internal/logging"
	"github.com/canonical/permission-service/internal/monitoring"
	"github.com/canonical/permission-service/internal/tracing"
	"github.com/canonical/permission-service/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
)

type EvaluateRequest struct {
	UserID       string `json:"user_id"`
	ResourceType string `json:"resource_type" validate:"required,oneof=workspace folder document"`
	ResourceID   string `json:"resource_id" validate:"required"`
	Required     string `json:"required" validate:"required"`
}

type EvaluateResponse struct {
	Allowed       bool                 `json:"allowed"`
	Source        types.DecisionSource `json:"source"`
	EffectiveBits capability.Set       `json:"effective_bits"`
	Labels        []string             `json:"labels,omitempty"`
}

type GrantRequest struct {
	ResourceType string  `json:"resource_type" validate:"required,oneof=workspace folder document"`
	ResourceID   string  `json:"resource_id" validate:"required"`
	GranteeType  string  `json:"grantee_type" validate:"required,oneof=user role department"`
	GranteeID    string  `json:"grantee_id" validate:"required"`
	Permissions  string  `json:"permissions" validate:"required"`
	Inherit      bool    `json:"inherit"`
	ExpiresAt    *string `json:"expires_at"`
}

type API struct {
	service   ServiceInterface
	evaluator EvaluatorInterface
	validate  *validator.Validate

	tracer  tracing.TracingInterface
	monitor monitoring.MonitorInterface
	logger  logging.LoggerInterface
}

func NewAPI(service ServiceInterface, evaluator EvaluatorInterface, tracer tracing.TracingInterface, monitor monitoring.MonitorInterface, logger logging.LoggerInterface) *API {
	a := new(API)

	a.service = service
	a.evaluator = evaluator
	a.validate = validator.New(validator.WithRequiredStructEnabled())
	a.tracer = tracer
	a.monitor = monitor
	a.logger = logger

	return a
}

func (a *API) RegisterEndpoints(mux *chi.Mux) {
	mux.Post("/api/v0/tenants/{id}/evaluate", a.evaluate)
	mux.Post("/api/v0/tenants/{id}/grants", a.grant)
	mux.Delete("/api/v0/tenants/{id}/grants", a.revoke)
	mux.Get("/api/v0/tenants/{id}/permissions", a.listEffective)
}

func (a *API) evaluate(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "permission.API.evaluate")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req EvaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := a.validate.Struct(req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	required, err := capability.Parse(req.Required)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Callers are trusted backend services with a pre-resolved identity
	// header, so any of them may name another subject to check on a user's
	// behalf. Without one the caller is the subject.
	subject := req.UserID
	if subject == "" {
		subject = actorID
	}

	ref := types.ResourceRef{Type: types.ResourceType(req.ResourceType), ID: req.ResourceID}
	decision, err := a.evaluator.Evaluate(ctx, subject, chi.URLParam(r, "id"), ref, required)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(EvaluateResponse{
		Allowed:       decision.Allowed,
		Source:        decision.Source,
		EffectiveBits: decision.EffectiveBits,
		Labels:        decision.EffectiveBits.Labels(),
	})
}

func (a *API) grant(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "permission.API.grant")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req GrantRequest
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

	var expiresAt *time.Time
	if req.ExpiresAt != nil {
		t, err := time.Parse(time.RFC3339, *req.ExpiresAt)
		if err != nil {
			http.Error(w, "invalid expires_at timestamp", http.StatusBadRequest)
			return
		}
		expiresAt = &t
	}

	grant := &types.Grant{
		TenantID:     chi.URLParam(r, "id"),
		ResourceType: types.ResourceType(req.ResourceType),
		ResourceID:   req.ResourceID,
		GranteeType:  types.GranteeType(req.GranteeType),
		GranteeID:    req.GranteeID,
		Permissions:  permissions,
		Inherit:      req.Inherit,
		ExpiresAt:    expiresAt,
	}

	created, err := a.service.Grant(ctx, actorID, grant)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(created)
}

func (a *API) revoke(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "permission.API.revoke")
	defer span.End()

	actorID := identity.UserID(ctx)
	if actorID == "" {
		http.Error(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	q := r.URL.Query()
	resourceType := q.Get("resource_type")
	resourceID := q.Get("resource_id")
	granteeType := q.Get("grantee_type")
	granteeID := q.Get("grantee_id")
	if resourceType == "" || resourceID == "" || granteeType == "" || granteeID == "" {
		http.Error(w, "resource_type, resource_id, grantee_type and grantee_id are required", http.StatusBadRequest)
		return
	}

	ref := types.ResourceRef{Type: types.ResourceType(resourceType), ID: resourceID}
	err := a.service.Revoke(ctx, actorID, chi.URLParam(r, "id"), ref, types.GranteeType(granteeType), granteeID)
	if err != nil {
		a.writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) listEffective(w http.ResponseWriter, r *http.Request) {
	ctx, span := a.tracer.Start(r.Context(), "permission.API.listEffective")
	defer span.End()

	if identity.UserID(ctx) == "" {
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
	grants, err := a.service.ListEffective(ctx, chi.URLParam(r, "id"), ref)
	if err != nil {
		a.writeError(w, err)
		return
	}

	if grants == nil {
		grants = []*types.Grant{}
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"grants": grants})
}

// writeError maps domain errors to status codes. Denials are a flat 403 with
// no tier detail; the audit entry carries the trace.
func (a *API) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrTenantNotFound):
		http.Error(w, "tenant not found", http.StatusNotFound)
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrTenantArchived):
		http.Error(w, "forbidden", http.StatusForbidden)
	case errors.Is(err, ErrInvalidCapabilitySet):
		http.Error(w, "invalid capability set", http.StatusBadRequest)
	case errors.Is(err, ErrGrantConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		a.logger.Errorf("request failed: %v", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
