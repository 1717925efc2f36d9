package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"gorm.io/gorm"
)

// PresensiQuery selects records with From <= created_at < To. Zero bounds are open.
// Limit <= 0 returns every matching row.
type PresensiQuery struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

type PresensiRepository interface {
	Create(ctx context.Context, presensi model.Presensi) (model.Presensi, error)
	GetBySubmissionID(ctx context.Context, submissionID string) (model.Presensi, error)
	List(ctx context.Context, query PresensiQuery) ([]model.Presensi, int64, error)
}

type presensi struct {
	db *gorm.DB
}

func newPresensiRepository(db *gorm.DB) PresensiRepository {
	return &presensi{
		db: db,
	}
}

func (p *presensi) Create(ctx context.Context, presensi model.Presensi) (model.Presensi, error) {
	result := p.db.WithContext(ctx).Create(&presensi)
	if result.Error != nil {
		return model.Presensi{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return presensi, nil
}

func (p *presensi) GetBySubmissionID(ctx context.Context, submissionID string) (model.Presensi, error) {
	var presensi model.Presensi
	result := p.db.WithContext(ctx).Where("submission_id = ?", submissionID).First(&presensi)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return model.Presensi{}, fmt.Errorf("%w: presensi %s", dto.ErrNotFound, submissionID)
		}
		return model.Presensi{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return presensi, nil
}

func (p *presensi) List(ctx context.Context, query PresensiQuery) ([]model.Presensi, int64, error) {
	var total int64
	result := p.db.WithContext(ctx).Model(&model.Presensi{}).Scopes(createdBetween(query)).Count(&total)
	if result.Error != nil {
		return nil, 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	tx := p.db.WithContext(ctx).Scopes(createdBetween(query)).Order("id DESC")
	if query.Limit > 0 {
		tx = tx.Limit(query.Limit).Offset(query.Offset)
	}

	var records []model.Presensi
	if result := tx.Find(&records); result.Error != nil {
		return nil, 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, result.Error)
	}

	return records, total, nil
}

func createdBetween(query PresensiQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if !query.From.IsZero() {
			db = db.Where("created_at >= ?", query.From)
		}
		if !query.To.IsZero() {
			db = db.Where("created_at < ?", query.To)
		}
		return db
	}
}
