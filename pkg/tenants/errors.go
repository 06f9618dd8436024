// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package tenants

import "errors"

var (
	ErrForbidden         = errors.New("actor is not a tenant administrator")
	ErrNotFound          = errors.New("not found")
	ErrTenantExists      = errors.New("tenant slug already in use")
	ErrInvalidSlug       = errors.New("invalid tenant slug")
	ErrInvalidTransition = errors.New("invalid tenant status transition")
	ErrMemberExists      = errors.New("user is already a member of the tenant")
	ErrQuotaExceeded     = errors.New("tenant user quota exceeded")
)
