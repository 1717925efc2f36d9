package service

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	exportSheet       = "Presensi"
	exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportTimeLayout  = "02/01/2006, 15.04"
	exportWidthMargin = 4
	exportMaxWidth    = 255
)

var exportHeaders = []string{"No", "Nama", "Outlet", "Foto", "Waktu", "Alamat", "Hasil_Kunjungan"}

type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type ExportService interface {
	Export(records []model.Presensi, filter RecordFilter) (ExportFile, error)
}

type exportService struct {
	location *time.Location
}

func newExportService(location *time.Location) ExportService {
	return &exportService{location: location}
}

func (e *exportService) Export(records []model.Presensi, filter RecordFilter) (ExportFile, error) {
	if len(records) == 0 {
		return ExportFile{}, dto.NewUserError(dto.ErrNothingToExport, "Tidak ada data presensi", nil)
	}

	rows := make([][]string, 0, len(records))
	for i, record := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			record.Name,
			orDash(record.OutletName),
			record.PhotoURL,
			record.CreatedAt.In(e.location).Format(exportTimeLayout),
			record.Address,
			orDash(record.Kunjungan),
		})
	}

	file := excelize.NewFile()
	defer func() {
		if err := file.Close(); err != nil {
			logrus.Warnf("Error closing workbook: %v", err)
		}
	}()

	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return ExportFile{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}

	header := make([]interface{}, len(exportHeaders))
	for i, title := range exportHeaders {
		header[i] = title
	}
	if err := file.SetSheetRow(exportSheet, "A1", &header); err != nil {
		return ExportFile{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return ExportFile{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
		}
		values := make([]interface{}, len(row))
		values[0] = i + 1
		for j := 1; j < len(row); j++ {
			values[j] = row[j]
		}
		if err := file.SetSheetRow(exportSheet, cell, &values); err != nil {
			return ExportFile{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
		}
	}

	for col, width := range columnWidths(rows) {
		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return ExportFile{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
		}
		if err := file.SetColWidth(exportSheet, name, name, float64(width)); err != nil {
			return ExportFile{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return ExportFile{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}

	return ExportFile{
		FileName:    ExportFileName(filter),
		ContentType: exportContentType,
		Data:        buf.Bytes(),
	}, nil
}

func ExportFileName(filter RecordFilter) string {
	return fmt.Sprintf("data-presensi-%s.xlsx", filter.Label())
}

// columnWidths is the longest value per column, header included, plus a margin,
// capped at the widest column a sheet accepts.
func columnWidths(rows [][]string) []int {
	widths := make([]int, len(exportHeaders))
	for i, title := range exportHeaders {
		widths[i] = utf8.RuneCountInString(title)
	}
	for _, row := range rows {
		for i, value := range row {
			if n := utf8.RuneCountInString(value); n > widths[i] {
				widths[i] = n
			}
		}
	}
	for i := range widths {
		widths[i] += exportWidthMargin
		if widths[i] > exportMaxWidth {
			widths[i] = exportMaxWidth
		}
	}
	return widths
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
