package domain

import "time"

// AuditFields holds standard audit information for domain entities.
// CreatedBy/LastUpdatedBy carry the operator label ("system" for scheduled
// jobs) since this deployment has no user accounts.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     string    `json:"createdBy"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy string    `json:"lastUpdatedBy"`
}

// SystemActor is the audit label used when no request-scoped operator exists
// (startup tasks, the overdue sweep worker).
const SystemActor = "system"
