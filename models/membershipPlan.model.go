package models

import (
	"gorm.io/gorm"
)

// MembershipPlan is a billing plan a member can be on, e.g. "Premium, 6 months".
// The name+duration combination is unique among non-deleted plans, enforced at
// creation time. Editing or deleting a plan never touches members already on
// it: each member carries a frozen duration snapshot.
type MembershipPlan struct {
	gorm.Model
	Name           string  `gorm:"not null" json:"name"`
	DurationMonths int     `gorm:"not null" json:"months"`
	Price          float64 `gorm:"not null;default:0" json:"price"`
	IsDeleted      bool    `gorm:"default:false" json:"isDeleted"`
}

func (MembershipPlan) TableName() string {
	return "membership_plans"
}
