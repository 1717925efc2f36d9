package model

import "time"

// Kunjungan is a visit note. It has no link back to Presensi.
type Kunjungan struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Hasil     string    `gorm:"not null" json:"hasil"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Address   string    `gorm:"not null" json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

func (Kunjungan) TableName() string {
	return "kunjungan"
}
