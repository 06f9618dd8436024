// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package permission

import "errors"

var (
	// ErrPermissionDenied is returned when the acting principal lacks the
	// capability a mutation requires. Handlers surface it as a generic 403;
	// the audit trail carries the detail.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrTenantNotFound is returned when the tenant in the request does not
	// exist.
	ErrTenantNotFound = errors.New("tenant not found")

	// ErrTenantArchived is returned for mutations against archived tenants.
	ErrTenantArchived = errors.New("tenant is archived")

	// ErrInvalidCapabilitySet is returned when a request names capabilities
	// outside the defined bit width, or none at all.
	ErrInvalidCapabilitySet = errors.New("invalid capability set")

	// ErrGrantConflict is returned when a grant cannot be written as
	// requested, e.g. an expiry already in the past.
	ErrGrantConflict = errors.New("conflicting grant")
)
