package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/service"
)

type PresensiController interface {
	Submit(c echo.Context) error
}

type presensiController struct {
	presensiService service.PresensiService
	captureService  service.CaptureService
}

func newPresensiController(presensiService service.PresensiService, captureService service.CaptureService) PresensiController {
	return &presensiController{
		presensiService: presensiService,
		captureService:  captureService,
	}
}

// Submit takes a multipart form. The photo part is the raw, unmirrored camera frame.
func (p *presensiController) Submit(c echo.Context) error {
	request := service.SubmitPresensiRequest{
		SubmissionID: strings.TrimSpace(c.FormValue("submission_id")),
		Name:         c.FormValue("name"),
		Outlet:       c.FormValue("outlet"),
		Kunjungan:    c.FormValue("kunjungan"),
		Latitude:     parseCoordinate(c.FormValue("latitude")),
		Longitude:    parseCoordinate(c.FormValue("longitude")),
		Address:      c.FormValue("address"),
	}

	if err := service.ValidatePresensiFields(request); err != nil {
		return toHTTPError(err)
	}

	if header, err := c.FormFile("photo"); err == nil {
		file, err := header.Open()
		if err != nil {
			return toHTTPError(err)
		}
		defer file.Close()

		photo, err := p.captureService.Snapshot(c.Request().Context(), client.NewUploadCamera(file))
		if err != nil {
			return toHTTPError(err)
		}
		request.Photo = &photo
	}

	result, err := p.presensiService.Submit(c.Request().Context(), request)
	if err != nil {
		return toHTTPError(err)
	}

	status := http.StatusCreated
	if result.Replayed {
		status = http.StatusOK
	}
	return c.JSON(status, map[string]interface{}{
		"message": "Presensi berhasil!",
		"data":    result.Record,
	})
}

func parseCoordinate(value string) *float64 {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil
	}
	return &parsed
}
