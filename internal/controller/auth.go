package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/service"
)

type AuthController interface {
	Login(c echo.Context) error
	Prefill(c echo.Context) error
	Logout(c echo.Context) error
}

type authController struct {
	authService service.AuthService
	sessionMode dto.SessionMode
}

func newAuthController(authService service.AuthService, sessionMode dto.SessionMode) AuthController {
	return &authController{
		authService: authService,
		sessionMode: sessionMode,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember"`
}

type loginResponse struct {
	ID       string              `json:"id"`
	Email    string              `json:"email"`
	Storage  service.ClientState `json:"storage"`
	Redirect string              `json:"redirect"`
}

func (a *authController) Login(c echo.Context) error {
	var body loginRequest
	if err := c.Bind(&body); err != nil {
		return toHTTPError(dto.NewUserError(dto.ErrValidation, "Email dan password wajib diisi!", err))
	}

	result, err := a.authService.SignIn(c.Request().Context(), body.Email, body.Password, body.Remember)
	if err != nil {
		return toHTTPError(err)
	}

	if result.State.Remember {
		c.SetCookie(&http.Cookie{
			Name:   service.CookieRemember,
			Value:  "true",
			Path:   "/",
			MaxAge: int(service.RememberMaxAge / time.Second),
		})
	} else {
		c.SetCookie(expiredCookie(service.CookieRemember))
	}

	c.SetCookie(&http.Cookie{
		Name:     service.CookieToken,
		Value:    result.State.LoginToken,
		Path:     "/",
		MaxAge:   int(result.State.LoginTokenMaxAge / time.Second),
		HttpOnly: a.sessionMode == dto.SessionModeToken,
		SameSite: http.SameSiteLaxMode,
	})

	return c.JSON(http.StatusOK, loginResponse{
		ID:       result.Admin.ID,
		Email:    result.Admin.Email,
		Storage:  result.State,
		Redirect: "/admin",
	})
}

// Prefill takes the browser's persisted remember-me entries and returns the login form values.
func (a *authController) Prefill(c echo.Context) error {
	stored := map[string]string{}
	if err := c.Bind(&stored); err != nil {
		return toHTTPError(dto.NewUserError(dto.ErrValidation, "Data tidak valid", err))
	}
	return c.JSON(http.StatusOK, a.authService.Prefill(stored))
}

func (a *authController) Logout(c echo.Context) error {
	c.SetCookie(expiredCookie(service.CookieToken))
	return c.NoContent(http.StatusNoContent)
}

func expiredCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:   name,
		Value:  "",
		Path:   "/",
		MaxAge: -1,
	}
}
