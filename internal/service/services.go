package service

import (
	"time"

	authV4 "firebase.google.com/go/v4/auth"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/repository"
)

type Services interface {
	Auth() AuthService
	Presensi() PresensiService
	Kunjungan() KunjunganService
	Records() RecordService
	Export() ExportService
	Location() LocationService
	Capture() CaptureService
}

type services struct {
	authService      AuthService
	presensiService  PresensiService
	kunjunganService KunjunganService
	recordService    RecordService
	exportService    ExportService
	locationService  LocationService
	captureService   CaptureService
}

func NewServices(repositories repository.Repositories, config dto.Config, clients client.Clients, location *time.Location) Services {
	return &services{
		authService:      newAuthService(repositories.Admin(), clients.PasswordClient(), clients.AuthClient(), authV4.IsIDTokenExpired, config),
		presensiService:  newPresensiService(repositories.Presensi(), clients.PhotoStorage(), config),
		kunjunganService: newKunjunganService(repositories.Kunjungan()),
		recordService:    newRecordService(repositories.Presensi(), location),
		exportService:    newExportService(location),
		locationService:  newLocationService(clients.Geocoder()),
		captureService:   newCaptureService(),
	}
}

func (s services) Auth() AuthService {
	return s.authService
}

func (s services) Presensi() PresensiService {
	return s.presensiService
}

func (s services) Kunjungan() KunjunganService {
	return s.kunjunganService
}

func (s services) Records() RecordService {
	return s.recordService
}

func (s services) Export() ExportService {
	return s.exportService
}

func (s services) Location() LocationService {
	return s.locationService
}

func (s services) Capture() CaptureService {
	return s.captureService
}
