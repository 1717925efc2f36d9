package service

import (
	"context"
	"strings"
	"time"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/presensi-sales/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	hasilRequiredMessage   = "Hasil kunjungan harus diisi"
	locationMissingMessage = "Lokasi belum tersedia, silakan refresh lokasi"
	kunjunganFailedMessage = "Gagal menyimpan hasil kunjungan"
)

type SubmitKunjunganRequest struct {
	Hasil     string
	Latitude  *float64
	Longitude *float64
	Address   string
}

type KunjunganService interface {
	Submit(ctx context.Context, request SubmitKunjunganRequest) (model.Kunjungan, error)
}

type kunjunganService struct {
	kunjunganRepository repository.KunjunganRepository
	now                 func() time.Time
}

func newKunjunganService(kunjunganRepository repository.KunjunganRepository) KunjunganService {
	return &kunjunganService{
		kunjunganRepository: kunjunganRepository,
		now:                 time.Now,
	}
}

func (k *kunjunganService) Submit(ctx context.Context, request SubmitKunjunganRequest) (model.Kunjungan, error) {
	if strings.TrimSpace(request.Hasil) == "" {
		return model.Kunjungan{}, dto.NewUserError(dto.ErrValidation, hasilRequiredMessage, nil)
	}
	if request.Latitude == nil || request.Longitude == nil || strings.TrimSpace(request.Address) == "" {
		return model.Kunjungan{}, dto.NewUserError(dto.ErrValidation, locationMissingMessage, nil)
	}

	created, err := k.kunjunganRepository.Create(ctx, model.Kunjungan{
		Hasil:     request.Hasil,
		Latitude:  *request.Latitude,
		Longitude: *request.Longitude,
		Address:   request.Address,
		CreatedAt: k.now(),
	})
	if err != nil {
		logrus.Errorf("Error inserting kunjungan: %v", err)
		return model.Kunjungan{}, dto.NewUserError(dto.ErrRemoteFailure, kunjunganFailedMessage, err)
	}

	logrus.Infof("Kunjungan %d stored", created.ID)
	return created, nil
}
