package model

import (
	"time"
)

type Family struct {
	ID                  uint64    `gorm:"primaryKey" json:"id"`
	Name                string    `gorm:"type:varchar(100);not null" json:"name"`
	AdminID             uint64    `gorm:"not null;index:idx_admin_id" json:"adminId"`
	DietaryRestrictions []string  `gorm:"type:json;serializer:json" json:"dietaryRestrictions"`
	CreatedAt           time.Time `json:"createdAt"`
	UpdatedAt           time.Time `json:"updatedAt"`

	Members []FamilyMember `gorm:"foreignKey:FamilyID;references:ID" json:"members,omitempty"`
}

func (Family) TableName() string {
	return "families"
}
