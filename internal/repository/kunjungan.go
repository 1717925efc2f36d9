package repository

import (
	"context"
	"fmt"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"gorm.io/gorm"
)

type KunjunganRepository interface {
	Create(ctx context.Context, kunjungan model.Kunjungan) (model.Kunjungan, error)
}

type kunjungan struct {
	db *gorm.DB
}

func newKunjunganRepository(db *gorm.DB) KunjunganRepository {
	return &kunjungan{
		db: db,
	}
}

func (k *kunjungan) Create(ctx context.Context, kunjungan model.Kunjungan) (model.Kunjungan, error) {
	result := k.db.WithContext(ctx).Create(&kunjungan)
	if result.Error != nil {
		return model.Kunjungan{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return kunjungan, nil
}
