package service

import (
	"context"
	"math"
	"time"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/presensi-sales/backend/internal/repository"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"

	invalidDayMessage   = "Format tanggal harus YYYY-MM-DD"
	invalidMonthMessage = "Format bulan harus YYYY-MM"
	listFailedMessage   = "Gagal mengambil data presensi"
	invalidPageMessage  = "Parameter halaman tidak valid"

	MaxPerPage = 500
	maxOffset  = math.MaxInt32
)

type FilterMode string

const (
	FilterAll   FilterMode = "all"
	FilterDay   FilterMode = "day"
	FilterMonth FilterMode = "month"
)

// RecordFilter holds the admin page's day/month selection. Selecting a day
// also moves the month to that day's month; selecting a month clears the day.
type RecordFilter struct {
	day   string
	month string
}

func (f *RecordFilter) SetDay(day string) error {
	if day == "" {
		f.day = ""
		return nil
	}
	if _, err := time.Parse(dayLayout, day); err != nil {
		return dto.NewUserError(dto.ErrValidation, invalidDayMessage, err)
	}
	f.day = day
	f.month = day[:len(monthLayout)]
	return nil
}

func (f *RecordFilter) SetMonth(month string) error {
	if month != "" {
		if _, err := time.Parse(monthLayout, month); err != nil {
			return dto.NewUserError(dto.ErrValidation, invalidMonthMessage, err)
		}
	}
	f.month = month
	f.day = ""
	return nil
}

func (f RecordFilter) Day() string {
	return f.day
}

func (f RecordFilter) Month() string {
	return f.month
}

func (f RecordFilter) Mode() FilterMode {
	switch {
	case f.day != "":
		return FilterDay
	case f.month != "":
		return FilterMonth
	default:
		return FilterAll
	}
}

// Label names the active selection: the day, else the month, else "all".
func (f RecordFilter) Label() string {
	switch f.Mode() {
	case FilterDay:
		return f.day
	case FilterMonth:
		return f.month
	default:
		return string(FilterAll)
	}
}

// Range returns the half-open [from, to) interval of the selection in loc.
// Both bounds are zero when nothing is selected.
func (f RecordFilter) Range(loc *time.Location) (time.Time, time.Time) {
	switch f.Mode() {
	case FilterDay:
		from, _ := time.ParseInLocation(dayLayout, f.day, loc)
		return from, from.AddDate(0, 0, 1)
	case FilterMonth:
		from, _ := time.ParseInLocation(monthLayout, f.month, loc)
		return from, from.AddDate(0, 1, 0)
	default:
		return time.Time{}, time.Time{}
	}
}

type Pagination struct {
	Page    int
	PerPage int
}

type RecordPage struct {
	Records []model.Presensi `json:"data"`
	Total   int64            `json:"total"`
	Page    int              `json:"page,omitempty"`
	PerPage int              `json:"per_page,omitempty"`
}

type RecordService interface {
	List(ctx context.Context, filter RecordFilter, pagination Pagination) (RecordPage, error)
	All(ctx context.Context, filter RecordFilter) ([]model.Presensi, error)
	Location() *time.Location
}

type recordService struct {
	presensiRepository repository.PresensiRepository
	location           *time.Location
}

func newRecordService(presensiRepository repository.PresensiRepository, location *time.Location) RecordService {
	return &recordService{
		presensiRepository: presensiRepository,
		location:           location,
	}
}

func (r *recordService) List(ctx context.Context, filter RecordFilter, pagination Pagination) (RecordPage, error) {
	from, to := filter.Range(r.location)
	query := repository.PresensiQuery{From: from, To: to}
	if pagination.PerPage > MaxPerPage || pagination.PerPage < 0 {
		return RecordPage{}, dto.NewUserError(dto.ErrValidation, invalidPageMessage, nil)
	}
	if pagination.PerPage > 0 {
		page := pagination.Page
		if page < 1 {
			page = 1
		}
		if page-1 > maxOffset/pagination.PerPage {
			return RecordPage{}, dto.NewUserError(dto.ErrValidation, invalidPageMessage, nil)
		}
		query.Limit = pagination.PerPage
		query.Offset = (page - 1) * pagination.PerPage
		pagination.Page = page
	}

	records, total, err := r.presensiRepository.List(ctx, query)
	if err != nil {
		return RecordPage{}, dto.NewUserError(dto.ErrRemoteFailure, listFailedMessage, err)
	}

	return RecordPage{
		Records: records,
		Total:   total,
		Page:    pagination.Page,
		PerPage: pagination.PerPage,
	}, nil
}

func (r *recordService) All(ctx context.Context, filter RecordFilter) ([]model.Presensi, error) {
	page, err := r.List(ctx, filter, Pagination{})
	if err != nil {
		return nil, err
	}
	return page.Records, nil
}

func (r *recordService) Location() *time.Location {
	return r.location
}
