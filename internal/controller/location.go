package controller

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/service"
	"github.com/shopspring/decimal"
)

const coordinateDecimals = 6

type LocationController interface {
	Resolve(c echo.Context) error
}

type locationController struct {
	locationService service.LocationService
}

func newLocationController(locationService service.LocationService) LocationController {
	return &locationController{
		locationService: locationService,
	}
}

type locationResponse struct {
	service.LocationInfo
	LatitudeText  string `json:"latitude_text,omitempty"`
	LongitudeText string `json:"longitude_text,omitempty"`
}

// Resolve reverse-geocodes the fix the browser reports in ?lat=&lon=.
func (l *locationController) Resolve(c echo.Context) error {
	locator := client.NewReportedLocator(parseCoordinate(c.QueryParam("lat")), parseCoordinate(c.QueryParam("lon")))

	info, err := l.locationService.Locate(c.Request().Context(), locator)
	if err != nil && !errors.Is(err, dto.ErrLocationUnavailable) {
		return toHTTPError(err)
	}

	response := locationResponse{LocationInfo: info}
	if info.HasFix {
		response.LatitudeText = decimal.NewFromFloat(info.Latitude).StringFixed(coordinateDecimals)
		response.LongitudeText = decimal.NewFromFloat(info.Longitude).StringFixed(coordinateDecimals)
	}

	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
	}
	return c.JSON(status, response)
}
