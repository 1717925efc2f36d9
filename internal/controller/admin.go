package controller

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/presensi-sales/backend/internal/service"
)

const invalidPageMessage = "Parameter halaman tidak valid"

type AdminController interface {
	List(c echo.Context) error
	Export(c echo.Context) error
}

type adminController struct {
	recordService service.RecordService
	exportService service.ExportService
}

func newAdminController(recordService service.RecordService, exportService service.ExportService) AdminController {
	return &adminController{
		recordService: recordService,
		exportService: exportService,
	}
}

type filterResponse struct {
	Mode  service.FilterMode `json:"mode"`
	Date  string             `json:"date"`
	Month string             `json:"month"`
}

type listResponse struct {
	service.RecordPage
	Filter filterResponse `json:"filter"`
}

func (a *adminController) List(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return toHTTPError(err)
	}

	pagination, err := paginationFromQuery(c)
	if err != nil {
		return toHTTPError(err)
	}

	page, err := a.recordService.List(c.Request().Context(), filter, pagination)
	if err != nil {
		return toHTTPError(err)
	}
	if page.Records == nil {
		page.Records = []model.Presensi{}
	}

	return c.JSON(http.StatusOK, listResponse{
		RecordPage: page,
		Filter: filterResponse{
			Mode:  filter.Mode(),
			Date:  filter.Day(),
			Month: filter.Month(),
		},
	})
}

// Export streams the filtered records as an .xlsx attachment, or 204 when there is nothing to export.
func (a *adminController) Export(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return toHTTPError(err)
	}

	records, err := a.recordService.All(c.Request().Context(), filter)
	if err != nil {
		return toHTTPError(err)
	}

	file, err := a.exportService.Export(records, filter)
	if err != nil {
		if errors.Is(err, dto.ErrNothingToExport) {
			return c.NoContent(http.StatusNoContent)
		}
		return toHTTPError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.FileName))
	return c.Blob(http.StatusOK, file.ContentType, file.Data)
}

// filterFromQuery applies month before date so a date always wins, matching the page's controls.
func filterFromQuery(c echo.Context) (service.RecordFilter, error) {
	var filter service.RecordFilter
	if month := c.QueryParam("month"); month != "" {
		if err := filter.SetMonth(month); err != nil {
			return filter, err
		}
	}
	if date := c.QueryParam("date"); date != "" {
		if err := filter.SetDay(date); err != nil {
			return filter, err
		}
	}
	return filter, nil
}

func paginationFromQuery(c echo.Context) (service.Pagination, error) {
	var pagination service.Pagination
	for name, target := range map[string]*int{"page": &pagination.Page, "per_page": &pagination.PerPage} {
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		value, err := strconv.Atoi(raw)
		if err != nil || value < 0 {
			return pagination, dto.NewUserError(dto.ErrValidation, invalidPageMessage, err)
		}
		*target = value
	}
	if pagination.PerPage > service.MaxPerPage {
		return pagination, dto.NewUserError(dto.ErrValidation, invalidPageMessage, nil)
	}
	return pagination, nil
}
