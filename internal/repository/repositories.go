package repository

import (
	"github.com/presensi-sales/backend/internal/model"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Repositories interface {
	Admin() AdminRepository
	Presensi() PresensiRepository
	Kunjungan() KunjunganRepository
}

type repositories struct {
	adminRepository     AdminRepository
	presensiRepository  PresensiRepository
	kunjunganRepository KunjunganRepository
}

func NewRepositories(db *gorm.DB) Repositories {
	err := db.AutoMigrate(&model.Admin{}, &model.Presensi{}, &model.Kunjungan{})
	if err != nil {
		logrus.Panic(err)
	}
	return &repositories{
		adminRepository:     newAdminRepository(db),
		presensiRepository:  newPresensiRepository(db),
		kunjunganRepository: newKunjunganRepository(db),
	}
}

func (r repositories) Admin() AdminRepository {
	return r.adminRepository
}

func (r repositories) Presensi() PresensiRepository {
	return r.presensiRepository
}

func (r repositories) Kunjungan() KunjunganRepository {
	return r.kunjunganRepository
}
