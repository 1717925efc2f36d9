package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/golang/geo/s2"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/sirupsen/logrus"
)

type RefreshStatus string

const (
	RefreshIdle    RefreshStatus = "idle"
	RefreshLoading RefreshStatus = "loading"
	RefreshSuccess RefreshStatus = "success"
	RefreshError   RefreshStatus = "error"
)

const (
	AddressLookupFailed = "Gagal mengambil alamat"
	AddressNotFound     = "Alamat tidak ditemukan"

	locationErrorMessage = "Izinkan lokasi & aktifkan GPS (Presisi Tinggi)."

	statusResetDelay = 1500 * time.Millisecond
)

var defaultPositionOptions = client.PositionOptions{
	HighAccuracy: true,
	Timeout:      15 * time.Second,
	MaximumAge:   0,
}

type LocationInfo struct {
	Latitude   float64       `json:"latitude"`
	Longitude  float64       `json:"longitude"`
	HasFix     bool          `json:"has_fix"`
	Address    string        `json:"address"`
	Status     RefreshStatus `json:"status"`
	Refreshing bool          `json:"refreshing"`
	Error      string        `json:"error,omitempty"`
}

// LocationTracker owns the position, address and refresh feedback of one page.
type LocationTracker struct {
	locator    client.Locator
	geocoder   client.ReverseGeocoder
	options    client.PositionOptions
	resetDelay time.Duration
	afterFunc  func(time.Duration, func()) *time.Timer

	mu         sync.Mutex
	info       LocationInfo
	generation int
}

func NewLocationTracker(locator client.Locator, geocoder client.ReverseGeocoder) *LocationTracker {
	return &LocationTracker{
		locator:    locator,
		geocoder:   geocoder,
		options:    defaultPositionOptions,
		resetDelay: statusResetDelay,
		afterFunc:  time.AfterFunc,
		info:       LocationInfo{Status: RefreshIdle},
	}
}

func (t *LocationTracker) Info() LocationInfo {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.info
}

// Refresh takes a fresh fix and resolves its address. A failed address lookup
// stores a placeholder instead of failing.
func (t *LocationTracker) Refresh(ctx context.Context) (LocationInfo, error) {
	t.mu.Lock()
	t.generation++
	generation := t.generation
	t.info.Status = RefreshLoading
	t.info.Refreshing = true
	t.mu.Unlock()

	positionCtx, cancel := context.WithTimeout(ctx, t.options.Timeout)
	position, err := t.locator.CurrentPosition(positionCtx, t.options)
	cancel()
	if err == nil && !s2.LatLngFromDegrees(position.Latitude, position.Longitude).IsValid() {
		err = fmt.Errorf("%w: invalid coordinate (%f, %f)", dto.ErrLocationUnavailable, position.Latitude, position.Longitude)
	}
	if err != nil {
		t.mu.Lock()
		t.info.Error = locationErrorMessage
		t.info.Status = RefreshError
		info := t.info
		t.mu.Unlock()

		t.scheduleReset(generation)
		return info, dto.NewUserError(dto.ErrLocationUnavailable, locationErrorMessage, err)
	}

	t.mu.Lock()
	t.info.Latitude = position.Latitude
	t.info.Longitude = position.Longitude
	t.info.HasFix = true
	t.mu.Unlock()

	address, status := t.lookupAddress(ctx, position)

	t.mu.Lock()
	t.info.Address = address
	t.info.Status = status
	info := t.info
	t.mu.Unlock()

	t.scheduleReset(generation)
	return info, nil
}

func (t *LocationTracker) lookupAddress(ctx context.Context, position client.Position) (string, RefreshStatus) {
	address, err := t.geocoder.Reverse(ctx, position.Latitude, position.Longitude)
	if err != nil {
		logrus.Warnf("Reverse geocode failed for (%f, %f): %v", position.Latitude, position.Longitude, err)
		return AddressLookupFailed, RefreshError
	}
	if address == "" {
		return AddressNotFound, RefreshSuccess
	}
	return address, RefreshSuccess
}

func (t *LocationTracker) scheduleReset(generation int) {
	if t.afterFunc == nil {
		return
	}
	t.afterFunc(t.resetDelay, func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		if t.generation != generation {
			return
		}
		t.info.Status = RefreshIdle
		t.info.Refreshing = false
	})
}

type LocationService interface {
	Locate(ctx context.Context, locator client.Locator) (LocationInfo, error)
}

type locationService struct {
	geocoder client.ReverseGeocoder
}

func newLocationService(geocoder client.ReverseGeocoder) LocationService {
	return &locationService{
		geocoder: geocoder,
	}
}

// Locate runs one refresh for a single request. The tracker does not outlive
// the call, so no status reset is scheduled and the result is reported settled.
func (s *locationService) Locate(ctx context.Context, locator client.Locator) (LocationInfo, error) {
	tracker := NewLocationTracker(locator, s.geocoder)
	tracker.afterFunc = nil

	info, err := tracker.Refresh(ctx)
	info.Refreshing = false
	return info, err
}
