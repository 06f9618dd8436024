// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package roles

import "errors"

var (
	ErrForbidden            = errors.New("actor is not a tenant administrator")
	ErrNotFound             = errors.New("role not found")
	ErrRoleExists           = errors.New("role name already in use")
	ErrSystemRole           = errors.New("system roles cannot be modified or deleted")
	ErrDefaultRole          = errors.New("the default role cannot be deleted; assign another default first")
	ErrInvalidCapabilitySet = errors.New("invalid capability set")
)
