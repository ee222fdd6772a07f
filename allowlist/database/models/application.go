package models

import (
	"time"

	"github.com/uptrace/bun"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationApproved ApplicationStatus = "approved"
	ApplicationDeclined ApplicationStatus = "declined"
)

// Terminal reports whether no further transition may leave this status.
func (s ApplicationStatus) Terminal() bool {
	return s == ApplicationApproved || s == ApplicationDeclined
}

type Application struct {
	bun.BaseModel `bun:"table:applications,alias:a"`

	ID             int64             `bun:"id,pk,autoincrement"`
	ApplicantID    string            `bun:"applicant_id,notnull"`
	ApplicantName  string            `bun:"applicant_name,notnull,default:''"`
	SteamHex       string            `bun:"steam_hex,notnull"`
	RealName       string            `bun:"real_name,notnull"`
	CharacterName  string            `bun:"character_name,notnull"`
	Age            int               `bun:"age,notnull"`
	CharacterStory string            `bun:"character_story,type:text,notnull,default:''"`
	Status         ApplicationStatus `bun:"status,notnull,default:'pending'"`

	// Set only when the application leaves pending.
	ReviewerID   string `bun:"reviewer_id,nullzero"`
	ReviewReason string `bun:"review_reason,type:text,nullzero"`

	// Review message carrying the decision buttons.
	ChannelID string `bun:"channel_id,nullzero"`
	MessageID string `bun:"message_id,nullzero"`

	CreatedAt         time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt         time.Time `bun:"updated_at,notnull,default:current_timestamp"`
	LastApplicationAt time.Time `bun:"last_application_at,notnull,default:current_timestamp"`
}

func (a *Application) HasReviewMessage() bool {
	return a.MessageID != ""
}
