package client

import (
	"context"
	"fmt"
	"time"

	"github.com/presensi-sales/backend/internal/dto"
)

type PositionOptions struct {
	HighAccuracy bool
	Timeout      time.Duration
	MaximumAge   time.Duration
}

type Position struct {
	Latitude  float64
	Longitude float64
	Timestamp time.Time
}

type Locator interface {
	CurrentPosition(ctx context.Context, options PositionOptions) (Position, error)
}

// reportedLocator answers with the fix the browser already took.
type reportedLocator struct {
	latitude  *float64
	longitude *float64
	now       func() time.Time
}

func NewReportedLocator(latitude, longitude *float64) Locator {
	return &reportedLocator{latitude: latitude, longitude: longitude, now: time.Now}
}

func (l *reportedLocator) CurrentPosition(ctx context.Context, options PositionOptions) (Position, error) {
	if err := ctx.Err(); err != nil {
		return Position{}, fmt.Errorf("%w: %v", dto.ErrLocationUnavailable, err)
	}
	if l.latitude == nil || l.longitude == nil {
		return Position{}, fmt.Errorf("%w: no position reported", dto.ErrLocationUnavailable)
	}

	return Position{
		Latitude:  *l.latitude,
		Longitude: *l.longitude,
		Timestamp: l.now(),
	}, nil
}
