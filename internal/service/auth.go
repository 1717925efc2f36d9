package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/presensi-sales/backend/internal/model"
	"github.com/presensi-sales/backend/internal/repository"
	"github.com/sirupsen/logrus"
)

const (
	StorageRememberMe       = "rememberMe"
	StorageRememberEmail    = "rememberEmail"
	StorageRememberPassword = "rememberPassword"

	CookieRemember = "sb-remember"
	CookieToken    = "token"

	LegacyLoginToken = "loggedin"

	RememberMaxAge  = 7 * 24 * time.Hour
	sessionTokenTTL = 12 * time.Hour

	credentialsRequiredMessage = "Email dan password wajib diisi!"
	signInFailedMessage        = "Email atau password salah!"
)

// ClientState is what the browser must persist after a successful sign-in.
type ClientState struct {
	Set    map[string]string `json:"set"`
	Remove []string          `json:"remove"`

	Remember         bool          `json:"-"`
	LoginToken       string        `json:"-"`
	LoginTokenMaxAge time.Duration `json:"-"`
}

type SignInResult struct {
	Admin model.Admin
	State ClientState
}

type Session struct {
	UID   string
	Email string
	Mode  dto.SessionMode
}

type Prefill struct {
	Remember bool   `json:"remember"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthService interface {
	SignIn(ctx context.Context, email, password string, remember bool) (SignInResult, error)
	ValidateSession(ctx context.Context, token string) (Session, error)
	Prefill(stored map[string]string) Prefill
}

type authService struct {
	adminRepository     repository.AdminRepository
	passwordClient      client.PasswordClient
	authClient          client.AuthClient
	tokenExpireVerifier client.TokenExpireVerifier
	sessionMode         dto.SessionMode
	rememberMode        dto.RememberMode
	sessionSecret       []byte
	now                 func() time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func newAuthService(adminRepository repository.AdminRepository, passwordClient client.PasswordClient, authClient client.AuthClient, verifier client.TokenExpireVerifier, config dto.Config) AuthService {
	return &authService{
		adminRepository:     adminRepository,
		passwordClient:      passwordClient,
		authClient:          authClient,
		tokenExpireVerifier: verifier,
		sessionMode:         config.SessionMode,
		rememberMode:        config.RememberMode,
		sessionSecret:       []byte(config.SessionSecret),
		now:                 time.Now,
	}
}

func (a *authService) SignIn(ctx context.Context, email, password string, remember bool) (SignInResult, error) {
	if email == "" || password == "" {
		return SignInResult{}, dto.NewUserError(dto.ErrValidation, credentialsRequiredMessage, nil)
	}

	admin, err := a.verifyCredentials(ctx, email, password)
	if err != nil {
		logrus.Warnf("Sign-in failed for %s: %v", email, err)
		return SignInResult{}, dto.NewUserError(dto.ErrNotAuthorized, signInFailedMessage, err)
	}

	state := a.rememberState(email, password, remember)

	token, maxAge, err := a.issueLoginToken(admin, remember)
	if err != nil {
		logrus.Errorf("Error issuing session for %s: %v", email, err)
		return SignInResult{}, dto.NewUserError(dto.ErrNotAuthorized, signInFailedMessage, err)
	}
	state.LoginToken = token
	state.LoginTokenMaxAge = maxAge

	logrus.Infof("Admin %s signed in (remember=%v)", admin.Email, remember)
	return SignInResult{Admin: admin, State: state}, nil
}

func (a *authService) verifyCredentials(ctx context.Context, email, password string) (model.Admin, error) {
	signIn, err := a.passwordClient.SignInWithPassword(ctx, email, password)
	if err != nil {
		return model.Admin{}, err
	}

	token, err := a.authClient.VerifyIDToken(ctx, signIn.IDToken)
	if err != nil {
		if a.tokenExpireVerifier(err) {
			return model.Admin{}, fmt.Errorf("%w: %v", dto.ErrNotAuthorized, err)
		}
		return model.Admin{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}

	tokenEmail, _ := token.Claims["email"].(string)
	if tokenEmail == "" {
		tokenEmail = signIn.Email
	}
	if tokenEmail == "" {
		return model.Admin{}, fmt.Errorf("%w: %v", dto.ErrInternalFailure, "email claim not found")
	}

	return a.syncAdmin(ctx, token.UID, tokenEmail)
}

func (a *authService) syncAdmin(ctx context.Context, uid, email string) (model.Admin, error) {
	now := a.now()

	admin, err := a.adminRepository.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, dto.ErrNotFound) {
			return a.adminRepository.Create(ctx, model.Admin{
				ID:           uid,
				Email:        email,
				LastSignInAt: &now,
			})
		}
		return model.Admin{}, err
	}

	admin.Email = email
	admin.LastSignInAt = &now
	return a.adminRepository.Save(ctx, admin)
}

func (a *authService) rememberState(email, password string, remember bool) ClientState {
	if !remember {
		return ClientState{
			Remove: []string{StorageRememberMe, StorageRememberEmail, StorageRememberPassword},
		}
	}

	state := ClientState{
		Set: map[string]string{
			StorageRememberMe:    "true",
			StorageRememberEmail: email,
		},
		Remember: true,
	}
	if a.rememberMode == dto.RememberModeInsecure {
		// Reversible encoding only; anyone with access to the browser can read it.
		state.Set[StorageRememberPassword] = base64.StdEncoding.EncodeToString([]byte(password))
	} else {
		state.Remove = []string{StorageRememberPassword}
	}
	return state
}

func (a *authService) issueLoginToken(admin model.Admin, remember bool) (string, time.Duration, error) {
	if a.sessionMode != dto.SessionModeToken {
		return LegacyLoginToken, 0, nil
	}

	ttl := sessionTokenTTL
	if remember {
		ttl = RememberMaxAge
	}
	now := a.now()
	claims := sessionClaims{
		Email: admin.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   admin.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.sessionSecret)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %v", dto.ErrInternalFailure, err)
	}
	return signed, ttl, nil
}

func (a *authService) ValidateSession(ctx context.Context, token string) (Session, error) {
	if token == "" {
		return Session{}, fmt.Errorf("%w: missing session", dto.ErrNotAuthorized)
	}

	if a.sessionMode != dto.SessionModeToken {
		if token != LegacyLoginToken {
			return Session{}, fmt.Errorf("%w: invalid session", dto.ErrNotAuthorized)
		}
		return Session{Mode: dto.SessionModeLegacy}, nil
	}

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.sessionSecret, nil
	}, jwt.WithTimeFunc(a.now))
	if err != nil || !parsed.Valid {
		return Session{}, fmt.Errorf("%w: %v", dto.ErrNotAuthorized, err)
	}

	return Session{UID: claims.Subject, Email: claims.Email, Mode: dto.SessionModeToken}, nil
}

// Prefill restores the login form from what a previous "remember me" sign-in persisted.
func (a *authService) Prefill(stored map[string]string) Prefill {
	if stored[StorageRememberMe] != "true" {
		return Prefill{}
	}

	prefill := Prefill{Remember: true, Email: stored[StorageRememberEmail]}
	if encoded := strings.TrimSpace(stored[StorageRememberPassword]); encoded != "" {
		if decoded, err := base64.StdEncoding.DecodeString(encoded); err == nil {
			prefill.Password = string(decoded)
		}
	}
	return prefill
}
