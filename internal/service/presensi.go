package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/presensi-sales/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	presensiRequiredMessage = "Nama, outlet, foto, lokasi, dan alamat wajib diisi!"
	submissionIDMessage     = "ID pengiriman tidak valid"
	uploadFailedMessage     = "Gagal upload foto"
	insertFailedMessage     = "Gagal simpan data"

	maxUploadAttempts = 5
)

type SubmitPresensiRequest struct {
	SubmissionID string
	Name         string
	Outlet       string
	Kunjungan    string
	Photo        *Photo
	Latitude     *float64
	Longitude    *float64
	Address      string
}

type SubmitPresensiResult struct {
	Record model.Presensi
	// Replayed is set when the submission id was already stored and nothing new was written.
	Replayed bool
}

type PresensiService interface {
	Submit(ctx context.Context, request SubmitPresensiRequest) (SubmitPresensiResult, error)
}

type presensiService struct {
	presensiRepository repository.PresensiRepository
	photoStorage       client.PhotoStorage
	publicBaseURL      string
	now                func() time.Time
}

func newPresensiService(presensiRepository repository.PresensiRepository, photoStorage client.PhotoStorage, config dto.Config) PresensiService {
	return &presensiService{
		presensiRepository: presensiRepository,
		photoStorage:       photoStorage,
		publicBaseURL:      config.PublicStorageURL,
		now:                time.Now,
	}
}

func (p *presensiService) Submit(ctx context.Context, request SubmitPresensiRequest) (SubmitPresensiResult, error) {
	if err := validatePresensi(request); err != nil {
		return SubmitPresensiResult{}, err
	}

	submissionID := request.SubmissionID
	if submissionID == "" {
		submissionID = uuid.NewString()
	} else {
		parsed, err := uuid.Parse(submissionID)
		if err != nil {
			return SubmitPresensiResult{}, dto.NewUserError(dto.ErrValidation, submissionIDMessage, err)
		}
		submissionID = parsed.String()

		existing, err := p.presensiRepository.GetBySubmissionID(ctx, submissionID)
		if err == nil {
			logrus.Infof("Presensi %s already stored as record %d", submissionID, existing.ID)
			return SubmitPresensiResult{Record: existing, Replayed: true}, nil
		}
		if !errors.Is(err, dto.ErrNotFound) {
			return SubmitPresensiResult{}, dto.NewUserError(dto.ErrInternalFailure, insertFailedMessage, err)
		}
	}

	createdAt := p.now()
	fileName, generation, err := p.uploadPhoto(ctx, createdAt, request.Photo)
	if err != nil {
		logrus.Errorf("Error uploading photo for %s: %v", submissionID, err)
		return SubmitPresensiResult{}, dto.NewUserError(dto.ErrRemoteFailure, uploadFailedMessage, err)
	}

	record, err := p.presensiRepository.Create(ctx, model.Presensi{
		SubmissionID: submissionID,
		Name:         strings.TrimSpace(request.Name),
		OutletName:   strings.TrimSpace(request.Outlet),
		Kunjungan:    request.Kunjungan,
		PhotoURL:     p.publicURL(fileName),
		Latitude:     *request.Latitude,
		Longitude:    *request.Longitude,
		Address:      request.Address,
		CreatedAt:    createdAt,
	})
	if err != nil {
		p.discardPhoto(ctx, fileName, generation)

		// A concurrent retry with the same submission id may have won the unique index.
		if existing, lookupErr := p.presensiRepository.GetBySubmissionID(ctx, submissionID); lookupErr == nil {
			logrus.Infof("Presensi %s stored concurrently as record %d", submissionID, existing.ID)
			return SubmitPresensiResult{Record: existing, Replayed: true}, nil
		}

		logrus.Errorf("Error inserting presensi %s: %v", submissionID, err)
		return SubmitPresensiResult{}, dto.NewUserError(dto.ErrRemoteFailure, insertFailedMessage, err)
	}

	logrus.Infof("Presensi %d stored for %s at %s", record.ID, record.Name, record.OutletName)
	return SubmitPresensiResult{Record: record}, nil
}

// uploadPhoto stores the photo as <epoch-ms>.jpg, moving to the next
// millisecond while the name is taken.
func (p *presensiService) uploadPhoto(ctx context.Context, at time.Time, photo *Photo) (string, int64, error) {
	millis := at.UnixMilli()
	for attempt := 0; attempt < maxUploadAttempts; attempt++ {
		fileName := fmt.Sprintf("%d.jpg", millis+int64(attempt))
		generation, err := p.photoStorage.Upload(ctx, fileName, photo.ContentType, photo.Data)
		if err == nil {
			return fileName, generation, nil
		}
		if !errors.Is(err, client.ErrObjectExists) {
			return "", 0, err
		}
	}
	return "", 0, fmt.Errorf("%w: no free photo name after %d attempts", client.ErrObjectExists, maxUploadAttempts)
}

func (p *presensiService) publicURL(fileName string) string {
	return fmt.Sprintf("%s/%s/%s", p.publicBaseURL, p.photoStorage.Bucket(), fileName)
}

// discardPhoto removes an upload whose row was never written. The generation
// condition keeps it from touching any other request's object.
func (p *presensiService) discardPhoto(ctx context.Context, fileName string, generation int64) {
	deleteCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
	defer cancel()

	if err := p.photoStorage.Delete(deleteCtx, fileName, generation); err != nil {
		logrus.Errorf("Orphaned photo %s#%d left in bucket %s: %v", fileName, generation, p.photoStorage.Bucket(), err)
	}
}

func validatePresensi(request SubmitPresensiRequest) error {
	if err := ValidatePresensiFields(request); err != nil {
		return err
	}
	if request.Photo == nil || len(request.Photo.Data) == 0 {
		return dto.NewUserError(dto.ErrValidation, presensiRequiredMessage, nil)
	}
	return nil
}

// ValidatePresensiFields checks everything except the photo, so a caller can
// reject an incomplete form before decoding the frame.
func ValidatePresensiFields(request SubmitPresensiRequest) error {
	missing := strings.TrimSpace(request.Name) == "" ||
		strings.TrimSpace(request.Outlet) == "" ||
		request.Latitude == nil || request.Longitude == nil ||
		strings.TrimSpace(request.Address) == ""
	if missing {
		return dto.NewUserError(dto.ErrValidation, presensiRequiredMessage, nil)
	}
	return nil
}
