package domain

import "time"

// Idempotency remembers the requirement produced by a strict submission made
// with an Idempotency-Key, so a client retry returns the same record instead
// of a conflict. Rows are keyed by (scope, key) and expire at ExpiresAt.
// RequestHash fingerprints the submission the key was first used with.
type Idempotency struct {
	ID            string    `gorm:"type:char(36);primaryKey"`
	Scope         string    `gorm:"type:varchar(128);not null;uniqueIndex:ux_idempotency_scope_key,priority:1"`
	Key           string    `gorm:"type:varchar(200);not null;uniqueIndex:ux_idempotency_scope_key,priority:2"`
	RequestHash   string    `gorm:"type:char(64);not null;default:''"`
	RequirementID string    `gorm:"type:char(36);not null"`
	Status        int       `gorm:"not null"`
	CreatedAt     time.Time `gorm:"not null"`
	ExpiresAt     time.Time `gorm:"not null;index"`
}

// TableName implements the GORM tabler interface.
func (Idempotency) TableName() string { return "idempotency" }
