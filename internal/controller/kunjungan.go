package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/service"
)

type KunjunganController interface {
	Submit(c echo.Context) error
}

type kunjunganController struct {
	kunjunganService service.KunjunganService
}

func newKunjunganController(kunjunganService service.KunjunganService) KunjunganController {
	return &kunjunganController{
		kunjunganService: kunjunganService,
	}
}

type kunjunganRequest struct {
	Hasil     string   `json:"hasil"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
}

func (k *kunjunganController) Submit(c echo.Context) error {
	var body kunjunganRequest
	if err := c.Bind(&body); err != nil {
		return toHTTPError(dto.NewUserError(dto.ErrValidation, "Data tidak valid", err))
	}

	created, err := k.kunjunganService.Submit(c.Request().Context(), service.SubmitKunjunganRequest{
		Hasil:     body.Hasil,
		Latitude:  body.Latitude,
		Longitude: body.Longitude,
		Address:   body.Address,
	})
	if err != nil {
		return toHTTPError(err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Hasil kunjungan tersimpan!",
		"data":    created,
	})
}
