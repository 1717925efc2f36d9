package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/controller"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/repository"
	"github.com/presensi-sales/backend/internal/service"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxBodySize     = "10M"
	shutdownTimeout = 10 * time.Second
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using process environment")
	}

	config := dto.LoadConfig()
	if err := config.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	location, err := config.Location()
	if err != nil {
		logrus.Fatalf("Invalid timezone: %v", err)
	}

	db, err := gorm.Open(postgres.Open(config.DatabaseURL), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("Error connecting to database: %v", err)
	}

	repositories := repository.NewRepositories(db)
	clients := client.NewClients(config)
	services := service.NewServices(repositories, config, clients, location)
	controllers := controller.NewControllers(services, config)

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:     true,
		LogStatus:  true,
		LogMethod:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logrus.WithFields(logrus.Fields{
				"method":  v.Method,
				"uri":     v.URI,
				"status":  v.Status,
				"latency": v.Latency,
			}).Info("request")
			return nil
		},
	}))
	if len(config.AllowedOrigins) > 0 {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     config.AllowedOrigins,
			AllowCredentials: true,
		}))
	} else {
		logrus.Info("ALLOWED_ORIGINS not set, serving same-origin requests only")
	}
	e.Use(middleware.BodyLimit(maxBodySize))

	controllers.Route(e)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		logrus.Infof("Listening on :%s", config.Port)
		if err := e.Start(":" + config.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("Server stopped: %v", err)
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Error shutting down: %v", err)
	}
}
