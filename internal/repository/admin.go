package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"gorm.io/gorm"
)

type AdminRepository interface {
	Create(ctx context.Context, admin model.Admin) (model.Admin, error)
	GetByID(ctx context.Context, id string) (model.Admin, error)
	Save(ctx context.Context, admin model.Admin) (model.Admin, error)
}

type admin struct {
	db *gorm.DB
}

func newAdminRepository(db *gorm.DB) AdminRepository {
	return &admin{
		db: db,
	}
}

func (a *admin) Create(ctx context.Context, admin model.Admin) (model.Admin, error) {
	result := a.db.WithContext(ctx).Create(&admin)
	if result.Error != nil {
		return model.Admin{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return admin, nil
}

func (a *admin) GetByID(ctx context.Context, id string) (model.Admin, error) {
	var admin model.Admin
	result := a.db.WithContext(ctx).First(&admin, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Admin{}, fmt.Errorf("%w: admin %s", dto.ErrNotFound, id)
		}
		return model.Admin{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return admin, nil
}

func (a *admin) Save(ctx context.Context, admin model.Admin) (model.Admin, error) {
	result := a.db.WithContext(ctx).Save(&admin)
	if result.Error != nil {
		return model.Admin{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return admin, nil
}
