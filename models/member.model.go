package models

import (
	"time"

	"gorm.io/gorm"
)

// Member administrative status enum values. This is the admin-togglable
// presence flag, independent of whether the member's billing cycle lapsed.
const (
	MemberActive   = "ACTIVE"
	MemberInactive = "INACTIVE"
)

// Member is a gym member. NextBillDate is always derived from
// LastPaymentDate + PlanDurationMonths; it is never hand-edited.
// PlanDurationMonths is the plan's duration frozen at the last
// registration/renewal, so later plan edits do not move billing dates.
type Member struct {
	gorm.Model
	MemberCode         string    `gorm:"uniqueIndex;not null" json:"memberId"` // e.g. GYM0131
	Name               string    `gorm:"not null" json:"name"`
	Mobile             string    `gorm:"not null" json:"mobile"`
	Email              string    `gorm:"default:''" json:"email"`
	ProfilePic         string    `gorm:"default:''" json:"profilePic"`
	MembershipPlanID   uint      `gorm:"not null;index" json:"membershipPlanId"`
	PlanDurationMonths int       `gorm:"not null" json:"planDurationMonths"`
	LastPaymentDate    time.Time `gorm:"not null" json:"lastPaymentDate"`
	NextBillDate       time.Time `gorm:"not null;index" json:"nextBillDate"`
	Status             string    `gorm:"not null;type:varchar(20);default:'ACTIVE'" json:"status"`
	ReminderSent       bool      `gorm:"default:false" json:"reminderSent"`
	IsDeleted          bool      `gorm:"default:false" json:"isDeleted"`

	// Relations
	MembershipPlan MembershipPlan `gorm:"foreignKey:MembershipPlanID" json:"membershipPlan,omitempty"`
}

func (Member) TableName() string {
	return "members"
}
