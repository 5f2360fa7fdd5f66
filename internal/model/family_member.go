package model

import (
	"time"
)

type FamilyMember struct {
	ID       uint64    `gorm:"primaryKey" json:"id"`
	FamilyID uint64    `gorm:"not null;uniqueIndex:idx_family_user,priority:1" json:"familyId"`
	UserID   uint64    `gorm:"not null;uniqueIndex:idx_family_user,priority:2" json:"userId"`
	Role     string    `gorm:"type:varchar(20);not null;default:member" json:"role"`
	JoinedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"joinedAt"`

	User User `gorm:"foreignKey:UserID;references:ID" json:"user,omitempty"`
}

func (FamilyMember) TableName() string {
	return "family_members"
}
