package model

import (
	"time"

	"gorm.io/gorm"
)

type Admin struct {
	ID           string `gorm:"primaryKey"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
	DeletedAt    gorm.DeletedAt `gorm:"index"`
	Email        string         `gorm:"required; not null"`
	LastSignInAt *time.Time
}
