package service

import (
	"bytes"
	"testing"
	"time"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportWritesPresensiSheet(t *testing.T) {
	records := []model.Presensi{
		{
			ID:         2,
			Name:       "Budi",
			OutletName: "Toko Maju Jaya",
			PhotoURL:   "https://storage.googleapis.com/presensi-foto/1.jpg",
			Address:    "Jakarta",
			Kunjungan:  "Order",
			CreatedAt:  time.Date(2025, time.January, 5, 2, 30, 0, 0, time.UTC),
		},
		{
			ID:        1,
			Name:      "Sari",
			PhotoURL:  "https://storage.googleapis.com/presensi-foto/2.jpg",
			Address:   "Bandung",
			CreatedAt: time.Date(2025, time.January, 4, 20, 5, 0, 0, time.UTC),
		},
	}

	var filter RecordFilter
	require.NoError(t, filter.SetMonth("2025-01"))

	file, err := newExportService(wib).Export(records, filter)
	require.NoError(t, err)
	assert.Equal(t, "data-presensi-2025-01.xlsx", file.FileName)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)

	book, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer book.Close()

	assert.Equal(t, []string{"Presensi"}, book.GetSheetList())

	rows, err := book.GetRows("Presensi")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"No", "Nama", "Outlet", "Foto", "Waktu", "Alamat", "Hasil_Kunjungan"}, rows[0])
	assert.Equal(t, []string{"1", "Budi", "Toko Maju Jaya", "https://storage.googleapis.com/presensi-foto/1.jpg", "05/01/2025, 09.30", "Jakarta", "Order"}, rows[1])
	assert.Equal(t, []string{"2", "Sari", "-", "https://storage.googleapis.com/presensi-foto/2.jpg", "05/01/2025, 03.05", "Bandung", "-"}, rows[2])

	width, err := book.GetColWidth("Presensi", "C")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Toko Maju Jaya")+4), width)

	width, err = book.GetColWidth("Presensi", "G")
	require.NoError(t, err)
	assert.Equal(t, float64(len("Hasil_Kunjungan")+4), width)
}

func TestExportEmptyReturnsNothingToExport(t *testing.T) {
	_, err := newExportService(wib).Export(nil, RecordFilter{})
	assert.ErrorIs(t, err, dto.ErrNothingToExport)
}

func TestExportFileName(t *testing.T) {
	var filter RecordFilter
	assert.Equal(t, "data-presensi-all.xlsx", ExportFileName(filter))

	require.NoError(t, filter.SetDay("2025-01-05"))
	assert.Equal(t, "data-presensi-2025-01-05.xlsx", ExportFileName(filter))
}

func TestColumnWidthsAreCapped(t *testing.T) {
	long := make([]byte, 400)
	for i := range long {
		long[i] = 'x'
	}

	widths := columnWidths([][]string{{"1", "Budi", "-", string(long), "05/01/2025, 09.30", "Jakarta", "-"}})
	assert.Equal(t, 255, widths[3])
	assert.Equal(t, len("Nama")+4, widths[1])
}
