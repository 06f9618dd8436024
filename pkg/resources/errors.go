// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package resources

import "errors"

var (
	ErrForbidden      = errors.New("actor is not allowed to manage this resource")
	ErrTenantNotFound = errors.New("tenant not found")
	ErrTenantArchived = errors.New("tenant is archived")
	ErrNotFound       = errors.New("resource not found")
	ErrParentNotFound = errors.New("parent resource not found")
	ErrCycle          = errors.New("parent link would create a cycle")
	ErrResourceExists = errors.New("resource already registered")
	ErrQuotaExceeded  = errors.New("tenant quota exceeded")
)
