package models

import (
	"time"

	"github.com/uptrace/bun"
)

// CooldownExemption marks an applicant as exempt from the re-application cooldown.
type CooldownExemption struct {
	bun.BaseModel `bun:"table:cooldown_exempt,alias:ce"`

	ApplicantID string    `bun:"applicant_id,pk"`
	GrantedBy   string    `bun:"granted_by,nullzero"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
