package model

import (
	"time"
)

type FamilyInvitation struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	FamilyID  uint64    `gorm:"not null;index:idx_family_id" json:"familyId"`
	InviterID uint64    `gorm:"not null" json:"inviterId"`
	InviteeID uint64    `gorm:"not null;index:idx_invitee_id" json:"inviteeId"`
	Status    string    `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Family  Family `gorm:"foreignKey:FamilyID;references:ID" json:"family,omitempty"`
	Inviter User   `gorm:"foreignKey:InviterID;references:ID" json:"inviter,omitempty"`
}

func (FamilyInvitation) TableName() string {
	return "family_invitations"
}
