package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name                string    `gorm:"default:''" json:"name"`
	Email               string    `gorm:"unique;not null" json:"email"`
	Mobile              string    `gorm:"default:''" json:"mobile"`
	Role                string    `gorm:"default:'ADMIN'" json:"role"`
	Password            string    `gorm:"not null" json:"-"`
	GymName             string    `gorm:"default:''" json:"gymName"`
	LastLogin           time.Time `gorm:"default:NULL" json:"lastLogin"`
	FailedLoginAttempts int       `gorm:"default:0" json:"-"`
	LastFailedLogin     *time.Time `json:"-"`
	IsBlocked           bool       `gorm:"default:false" json:"-"`
	BlockedUntil        *time.Time `json:"-"`
	IsDeleted           bool       `gorm:"default:false" json:"-"`
}
