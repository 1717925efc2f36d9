package model

import (
	"time"
)

type Presensi struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	SubmissionID string    `gorm:"uniqueIndex;size:36" json:"submission_id"`
	Name         string    `gorm:"not null" json:"name"`
	OutletName   string    `json:"outlet_name"`
	Kunjungan    string    `json:"kunjungan"`
	PhotoURL     string    `gorm:"not null" json:"photo_url"`
	Latitude     float64   `gorm:"not null" json:"latitude"`
	Longitude    float64   `gorm:"not null" json:"longitude"`
	Address      string    `gorm:"not null" json:"address"`
	CreatedAt    time.Time `gorm:"index" json:"created_at"`
}

func (Presensi) TableName() string {
	return "presensi"
}
