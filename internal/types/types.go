// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package types

import (
	"time"

	"github.com/canonical/permission-service/internal/capability"
)

type TenantStatus string

const (
	TenantActive    TenantStatus = "active"
	TenantSuspended TenantStatus = "suspended"
	TenantArchived  TenantStatus = "archived"
	TenantTrial     TenantStatus = "trial"
)

type Tenant struct {
	ID     string       `db:"id" json:"id"`
	Name   string       `db:"name" json:"name"`
	Slug   string       `db:"slug" json:"slug"`
	Status TenantStatus `db:"status" json:"status"`

	// AdminLevel is the role level threshold at or above which a member is
	// treated as a tenant administrator.
	AdminLevel int `db:"admin_level" json:"admin_level"`

	MaxUsers        int64 `db:"max_users" json:"max_users"`
	MaxDocuments    int64 `db:"max_documents" json:"max_documents"`
	MaxStorageBytes int64 `db:"max_storage_bytes" json:"max_storage_bytes"`

	UserCount        int64 `db:"user_count" json:"user_count"`
	DocumentCount    int64 `db:"document_count" json:"document_count"`
	StorageUsedBytes int64 `db:"storage_used_bytes" json:"storage_used_bytes"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type Department struct {
	ID       string  `db:"id" json:"id"`
	TenantID string  `db:"tenant_id" json:"tenant_id"`
	Name     string  `db:"name" json:"name"`
	ParentID *string `db:"parent_id" json:"parent_id,omitempty"`

	// Path is the materialized ancestor chain, "root-id/.../own-id", kept
	// consistent with ParentID so ancestor lookups never recurse.
	Path  string `db:"path" json:"path"`
	Level int    `db:"level" json:"level"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type Role struct {
	ID          string `db:"id" json:"id"`
	TenantID    string `db:"tenant_id" json:"tenant_id"`
	Name        string `db:"name" json:"name"`
	DisplayName string `db:"display_name" json:"display_name"`
	Description string `db:"description" json:"description,omitempty"`

	Level       int            `db:"level" json:"level"`
	Permissions capability.Set `db:"permissions" json:"permissions"`

	IsSystem  bool `db:"is_system" json:"is_system"`
	IsDefault bool `db:"is_default" json:"is_default"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type MembershipStatus string

const (
	MemberActive   MembershipStatus = "active"
	MemberDisabled MembershipStatus = "disabled"
	MemberInvited  MembershipStatus = "invited"
)

type Membership struct {
	ID           string           `db:"id" json:"id"`
	TenantID     string           `db:"tenant_id" json:"tenant_id"`
	UserID       string           `db:"user_id" json:"user_id"`
	RoleID       *string          `db:"role_id" json:"role_id,omitempty"`
	DepartmentID *string          `db:"department_id" json:"department_id,omitempty"`
	Status       MembershipStatus `db:"status" json:"status"`
	CreatedAt    time.Time        `db:"created_at" json:"created_at"`
}

type ResourceType string

const (
	ResourceWorkspace ResourceType = "workspace"
	ResourceFolder    ResourceType = "folder"
	ResourceDocument  ResourceType = "document"
)

// Resource is a node in the tenant's containment forest. Only hierarchy and
// size metadata live here; content handling is external to this service.
type Resource struct {
	TenantID   string        `db:"tenant_id" json:"tenant_id"`
	Type       ResourceType  `db:"resource_type" json:"resource_type"`
	ID         string        `db:"resource_id" json:"resource_id"`
	Name       string        `db:"name" json:"name"`
	ParentType *ResourceType `db:"parent_type" json:"parent_type,omitempty"`
	ParentID   *string       `db:"parent_id" json:"parent_id,omitempty"`
	SizeBytes  int64         `db:"size_bytes" json:"size_bytes"`
	CreatedAt  time.Time     `db:"created_at" json:"created_at"`
}

// ResourceRef identifies a resource by type and id.
type ResourceRef struct {
	Type ResourceType `json:"resource_type"`
	ID   string       `json:"resource_id"`
}

type GranteeType string

const (
	GranteeUser       GranteeType = "user"
	GranteeRole       GranteeType = "role"
	GranteeDepartment GranteeType = "department"
)

type Grant struct {
	ID           string         `db:"id" json:"id"`
	TenantID     string         `db:"tenant_id" json:"tenant_id"`
	ResourceType ResourceType   `db:"resource_type" json:"resource_type"`
	ResourceID   string         `db:"resource_id" json:"resource_id"`
	GranteeType  GranteeType    `db:"grantee_type" json:"grantee_type"`
	GranteeID    string         `db:"grantee_id" json:"grantee_id"`
	Permissions  capability.Set `db:"permissions" json:"permissions"`

	// Inherit makes the grant apply to descendant resources reached via the
	// hierarchy walk, not only the resource it names.
	Inherit bool `db:"inherit" json:"inherit"`

	GrantedBy string     `db:"granted_by" json:"granted_by"`
	GrantedAt time.Time  `db:"granted_at" json:"granted_at"`
	ExpiresAt *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// Expired reports whether the grant has lapsed at the given decision time.
// Expired grants behave as absent, never as explicit denials.
func (g *Grant) Expired(now time.Time) bool {
	return g.ExpiresAt != nil && g.ExpiresAt.Before(now)
}

type PlatformRole string

const (
	PlatformSuperAdmin PlatformRole = "super_admin"
	PlatformOps        PlatformRole = "ops"
	PlatformSupport    PlatformRole = "support"
	PlatformAuditor    PlatformRole = "auditor"
)

type PlatformAdmin struct {
	UserID    string       `db:"user_id" json:"user_id"`
	Role      PlatformRole `db:"role" json:"role"`
	CreatedAt time.Time    `db:"created_at" json:"created_at"`
}

type AuditLevel string

const (
	LevelInfo     AuditLevel = "info"
	LevelWarning  AuditLevel = "warning"
	LevelCritical AuditLevel = "critical"
	LevelSecurity AuditLevel = "security"
)

// Audit action names, namespaced by subsystem.
const (
	ActionPermGrant    = "perm.grant"
	ActionPermRevoke   = "perm.revoke"
	ActionPermCheck    = "perm.check"
	ActionRoleCreate   = "role.create"
	ActionRoleUpdate   = "role.update"
	ActionRoleDelete   = "role.delete"
	ActionRoleAssign   = "role.assign"
	ActionTenantCreate = "tenant.create"
	ActionTenantUpdate = "tenant.update"
	ActionTenantStatus = "tenant.status"
	ActionDeptCreate   = "dept.create"
	ActionDeptMove     = "dept.move"
	ActionMemberAdd    = "member.add"
	ActionMemberUpdate = "member.update"
	ActionResourceAdd  = "resource.register"
	ActionResourceMove = "resource.move"
	ActionResourceDel  = "resource.delete"
	ActionQuotaChange  = "quota.change"
	ActionAuditQuery   = "data.query"
	ActionAuditExport  = "data.export"
)

// AuditEntry is an immutable record of a privileged decision or mutation.
// There is no update or delete path anywhere in the service.
type AuditEntry struct {
	ID       string  `db:"id" json:"id"`
	TenantID *string `db:"tenant_id" json:"tenant_id,omitempty"`

	Action string     `db:"action" json:"action"`
	Level  AuditLevel `db:"level" json:"level"`

	ActorID   string `db:"actor_id" json:"actor_id"`
	ActorName string `db:"actor_name" json:"actor_name,omitempty"`

	ResourceType string `db:"resource_type" json:"resource_type,omitempty"`
	ResourceID   string `db:"resource_id" json:"resource_id,omitempty"`
	ResourceName string `db:"resource_name" json:"resource_name,omitempty"`

	Details map[string]any `db:"details" json:"details,omitempty"`
	Changes map[string]any `db:"changes" json:"changes,omitempty"`

	IPAddress string `db:"ip_address" json:"ip_address,omitempty"`
	UserAgent string `db:"user_agent" json:"user_agent,omitempty"`
	RequestID string `db:"request_id" json:"request_id,omitempty"`

	Success      bool   `db:"success" json:"success"`
	ErrorMessage string `db:"error_message" json:"error_message,omitempty"`
	DurationMS   int64  `db:"duration_ms" json:"duration_ms,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// AuditFilter narrows audit log queries; zero values mean "no filter".
type AuditFilter struct {
	TenantID string
	Action   string
	ActorID  string
	Level    AuditLevel
	From     time.Time
	To       time.Time
}

// DecisionSource names the resolution tier that produced a decision.
type DecisionSource string

const (
	SourcePlatformAdmin   DecisionSource = "platform_admin"
	SourceTenantAdmin     DecisionSource = "tenant_admin"
	SourceUserGrant       DecisionSource = "user_grant"
	SourceRoleGrant       DecisionSource = "role_grant"
	SourceDepartmentGrant DecisionSource = "department_grant"
	SourceInherited       DecisionSource = "inherited"
	SourceRoleDefault     DecisionSource = "role_default"
	SourceNone            DecisionSource = "none"
)

type Decision struct {
	Allowed       bool           `json:"allowed"`
	Source        DecisionSource `json:"source"`
	EffectiveBits capability.Set `json:"effective_bits"`
}
