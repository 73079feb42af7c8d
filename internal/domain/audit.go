package domain

import "time"

// AuditAction names an administrative change recorded in the audit trail.
type AuditAction string

const (
	AuditDomainRulesSaved  AuditAction = "domain_rules.saved"
	AuditAutomationCreated AuditAction = "automation.created"
	AuditAutomationUpdated AuditAction = "automation.updated"
	AuditAutomationDeleted AuditAction = "automation.deleted"
	AuditAutomationRun     AuditAction = "automation.run"
	AuditSSOUpdated        AuditAction = "sso.updated"
	AuditRoleCreated       AuditAction = "role.created"
	AuditRoleUpdated       AuditAction = "role.updated"
	AuditRoleDeleted       AuditAction = "role.deleted"
	AuditUpgradeRequested  AuditAction = "upgrade.requested"
)

// AuditEntry records who changed what through the console.
type AuditEntry struct {
	ID        string      `json:"id"`
	UserID    string      `json:"user_id"`
	UserEmail string      `json:"user_email"`
	Action    AuditAction `json:"action"`
	Target    string      `json:"target,omitempty"`
	Detail    string      `json:"detail,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}
