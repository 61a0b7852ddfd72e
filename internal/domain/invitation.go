package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Invitation status values. pending is the initial state; the other three are
// terminal and have no outgoing transitions.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusDeclined  = "declined"
	StatusExpired   = "expired"
)

// Invitation is one organizer's coffee proposal to one invitee. The token is
// the invitee's only credential; invitee fields stay empty until a response
// lands, and the chosen slot is set only on confirmation.
type Invitation struct {
	InviteID       uuid.UUID                         `gorm:"column:invite_id;type:uuid;primaryKey" json:"invite_id"`
	Token          string                            `gorm:"column:token;uniqueIndex;not null" json:"token"`
	OrganizerName  string                            `gorm:"column:organizer_name;not null" json:"organizer_name"`
	OrganizerEmail string                            `gorm:"column:organizer_email;not null" json:"organizer_email"`
	InviteeName    string                            `gorm:"column:invitee_name" json:"invitee_name,omitempty"`
	InviteeEmail   string                            `gorm:"column:invitee_email" json:"invitee_email,omitempty"`
	CafeID         uuid.UUID                         `gorm:"column:cafe_id;type:uuid;not null" json:"cafe_id"`
	Preferences    datatypes.JSONType[PreferenceSet] `gorm:"column:preferences;not null" json:"preferences"`
	ChosenDate     string                            `gorm:"column:chosen_date" json:"chosen_date,omitempty"`
	ChosenTime     string                            `gorm:"column:chosen_time" json:"chosen_time,omitempty"`
	Status         string                            `gorm:"column:status;not null;default:'pending'" json:"status"`
	ExpiresAt      time.Time                         `gorm:"column:expires_at;not null" json:"expires_at"`
	ConfirmedAt    *time.Time                        `gorm:"column:confirmed_at" json:"confirmed_at,omitempty"`
	DeclinedAt     *time.Time                        `gorm:"column:declined_at" json:"declined_at,omitempty"`
	CreatedAt      time.Time                         `json:"createdAt"`
	UpdatedAt      time.Time                         `json:"updatedAt"`
	DeletedAt      gorm.DeletedAt                    `gorm:"index" json:"-"`
}

func (Invitation) TableName() string {
	return "invitations"
}

func (i *Invitation) BeforeCreate(tx *gorm.DB) error {
	if i.InviteID == uuid.Nil {
		i.InviteID = uuid.New()
	}
	return nil
}
