package service

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var wib = time.FixedZone("WIB", 7*60*60)

func TestRecordFilterSelection(t *testing.T) {
	var filter RecordFilter
	assert.Equal(t, FilterAll, filter.Mode())
	assert.Equal(t, "all", filter.Label())

	require.NoError(t, filter.SetDay("2025-01-05"))
	assert.Equal(t, FilterDay, filter.Mode())
	assert.Equal(t, "2025-01-05", filter.Day())
	assert.Equal(t, "2025-01", filter.Month())
	assert.Equal(t, "2025-01-05", filter.Label())

	require.NoError(t, filter.SetMonth("2025-02"))
	assert.Equal(t, FilterMonth, filter.Mode())
	assert.Empty(t, filter.Day())
	assert.Equal(t, "2025-02", filter.Label())

	require.NoError(t, filter.SetMonth(""))
	assert.Equal(t, FilterAll, filter.Mode())

	require.NoError(t, filter.SetDay("2025-03-10"))
	require.NoError(t, filter.SetDay(""))
	assert.Equal(t, FilterMonth, filter.Mode())
	assert.Equal(t, "2025-03", filter.Month())
}

func TestRecordFilterRejectsBadFormats(t *testing.T) {
	var filter RecordFilter

	err := filter.SetDay("05-01-2025")
	assert.ErrorIs(t, err, dto.ErrValidation)
	err = filter.SetDay("2025-02-30")
	assert.ErrorIs(t, err, dto.ErrValidation)
	err = filter.SetMonth("2025-13")
	assert.ErrorIs(t, err, dto.ErrValidation)

	assert.Equal(t, FilterAll, filter.Mode())
}

func TestRecordFilterRange(t *testing.T) {
	var filter RecordFilter

	from, to := filter.Range(wib)
	assert.True(t, from.IsZero())
	assert.True(t, to.IsZero())

	require.NoError(t, filter.SetDay("2025-01-31"))
	from, to = filter.Range(wib)
	assert.True(t, time.Date(2025, time.January, 31, 0, 0, 0, 0, wib).Equal(from))
	assert.True(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, wib).Equal(to))

	require.NoError(t, filter.SetMonth("2024-12"))
	from, to = filter.Range(wib)
	assert.True(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, wib).Equal(from))
	assert.True(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, wib).Equal(to))
}

func seededRecords() *fakePresensiRepository {
	return &fakePresensiRepository{records: []model.Presensi{
		{ID: 1, Name: "A", CreatedAt: time.Date(2025, time.January, 5, 8, 0, 0, 0, wib)},
		{ID: 2, Name: "B", CreatedAt: time.Date(2025, time.January, 5, 15, 30, 0, 0, wib)},
		{ID: 3, Name: "C", CreatedAt: time.Date(2025, time.February, 1, 9, 0, 0, 0, wib)},
	}}
}

func recordIDs(records []model.Presensi) []uint {
	ids := make([]uint, 0, len(records))
	for _, record := range records {
		ids = append(ids, record.ID)
	}
	return ids
}

func TestListRecordsByDayAndMonth(t *testing.T) {
	service := newRecordService(seededRecords(), wib)

	var filter RecordFilter
	require.NoError(t, filter.SetDay("2025-01-05"))
	page, err := service.List(context.Background(), filter, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 1}, recordIDs(page.Records))
	assert.Equal(t, int64(2), page.Total)

	require.NoError(t, filter.SetMonth("2025-02"))
	page, err = service.List(context.Background(), filter, Pagination{})
	require.NoError(t, err)
	assert.Equal(t, []uint{3}, recordIDs(page.Records))

	all, err := service.All(context.Background(), RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 2, 1}, recordIDs(all))
}

func TestListRecordsRespectsTimezoneBoundary(t *testing.T) {
	repo := &fakePresensiRepository{records: []model.Presensi{
		// 2025-01-05 23:30 UTC is already 2025-01-06 in WIB.
		{ID: 1, CreatedAt: time.Date(2025, time.January, 5, 23, 30, 0, 0, time.UTC)},
	}}
	service := newRecordService(repo, wib)

	var filter RecordFilter
	require.NoError(t, filter.SetDay("2025-01-06"))
	page, err := service.List(context.Background(), filter, Pagination{})
	require.NoError(t, err)
	assert.Len(t, page.Records, 1)

	require.NoError(t, filter.SetDay("2025-01-05"))
	page, err = service.List(context.Background(), filter, Pagination{})
	require.NoError(t, err)
	assert.Empty(t, page.Records)
}

func TestListRecordsPaginates(t *testing.T) {
	repo := seededRecords()
	service := newRecordService(repo, wib)

	page, err := service.List(context.Background(), RecordFilter{}, Pagination{Page: 2, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, recordIDs(page.Records))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, repo.lastQuery.Offset)
	assert.Equal(t, 2, repo.lastQuery.Limit)

	page, err = service.List(context.Background(), RecordFilter{}, Pagination{PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, []uint{3, 2}, recordIDs(page.Records))
}

func TestListRecordsStoreFailure(t *testing.T) {
	service := newRecordService(&fakePresensiRepository{listErr: errBoom}, wib)

	_, err := service.List(context.Background(), RecordFilter{}, Pagination{})
	assert.ErrorIs(t, err, dto.ErrRemoteFailure)
	assert.Equal(t, wib, service.Location())
}

func TestListRecordsRejectsOutOfRangePages(t *testing.T) {
	repo := seededRecords()
	service := newRecordService(repo, wib)

	_, err := service.List(context.Background(), RecordFilter{}, Pagination{Page: 1, PerPage: MaxPerPage + 1})
	assert.ErrorIs(t, err, dto.ErrValidation)

	_, err = service.List(context.Background(), RecordFilter{}, Pagination{Page: math.MaxInt, PerPage: MaxPerPage})
	assert.ErrorIs(t, err, dto.ErrValidation)
	assert.Zero(t, repo.lastQuery.Limit)

	page, err := service.List(context.Background(), RecordFilter{}, Pagination{Page: 1, PerPage: MaxPerPage})
	require.NoError(t, err)
	assert.Len(t, page.Records, 3)
}
