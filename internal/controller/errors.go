package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/sirupsen/logrus"
)

const genericErrorMessage = "Terjadi kesalahan, silakan coba lagi"

func toHTTPError(err error) *echo.HTTPError {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, dto.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, dto.ErrNotAuthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, dto.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, dto.ErrCameraUnavailable), errors.Is(err, dto.ErrLocationUnavailable):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, dto.ErrRemoteFailure):
		status = http.StatusBadGateway
	}

	if status >= http.StatusInternalServerError {
		logrus.Errorf("Request failed: %v", err)
	}

	return echo.NewHTTPError(status, dto.UserMessage(err, genericErrorMessage)).SetInternal(err)
}
