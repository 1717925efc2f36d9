package controller

import (
	"github.com/labstack/echo/v4"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/service"
)

type Controllers interface {
	Auth() AuthController
	Presensi() PresensiController
	Kunjungan() KunjunganController
	Location() LocationController
	Admin() AdminController
	Info() InfoController

	Route(e *echo.Echo)
}

type controllers struct {
	authService service.AuthService

	authController      AuthController
	presensiController  PresensiController
	kunjunganController KunjunganController
	locationController  LocationController
	adminController     AdminController
	infoController      InfoController
}

func NewControllers(services service.Services, config dto.Config) Controllers {
	return &controllers{
		authService:         services.Auth(),
		authController:      newAuthController(services.Auth(), config.SessionMode),
		presensiController:  newPresensiController(services.Presensi(), services.Capture()),
		kunjunganController: newKunjunganController(services.Kunjungan()),
		locationController:  newLocationController(services.Location()),
		adminController:     newAdminController(services.Records(), services.Export()),
		infoController:      newInfoController(),
	}
}

func (c controllers) Auth() AuthController {
	return c.authController
}

func (c controllers) Presensi() PresensiController {
	return c.presensiController
}

func (c controllers) Kunjungan() KunjunganController {
	return c.kunjunganController
}

func (c controllers) Location() LocationController {
	return c.locationController
}

func (c controllers) Admin() AdminController {
	return c.adminController
}

func (c controllers) Info() InfoController {
	return c.infoController
}

func (c controllers) Route(e *echo.Echo) {
	e.GET("/", c.infoController.Info)

	api := e.Group("/api")
	api.POST("/presensi", c.presensiController.Submit)
	api.POST("/kunjungan", c.kunjunganController.Submit)
	api.GET("/location", c.locationController.Resolve)

	auth := api.Group("/auth")
	auth.POST("/login", c.authController.Login)
	auth.POST("/prefill", c.authController.Prefill)
	auth.POST("/logout", c.authController.Logout)

	admin := api.Group("/admin", RequireSession(c.authService))
	admin.GET("/presensi", c.adminController.List)
	admin.GET("/presensi/export", c.adminController.Export)
}
