package client

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/auth"
	"github.com/presensi-sales/backend/internal/dto"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
)

type AuthClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type TokenExpireVerifier func(err error) bool

// SignInResult is what the identity provider returns for a valid email/password pair.
type SignInResult struct {
	UID     string
	Email   string
	IDToken string
}

type PasswordClient interface {
	SignInWithPassword(ctx context.Context, email, password string) (SignInResult, error)
}

type identityToolkitClient struct {
	service *identitytoolkit.Service
}

func newPasswordClient(service *identitytoolkit.Service) PasswordClient {
	return &identityToolkitClient{service: service}
}

func (c *identityToolkitClient) SignInWithPassword(ctx context.Context, email, password string) (SignInResult, error) {
	response, err := c.service.Relyingparty.VerifyPassword(&identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}).Context(ctx).Do()
	if err != nil {
		return SignInResult{}, fmt.Errorf("%w: %v", dto.ErrNotAuthorized, err)
	}

	return SignInResult{
		UID:     response.LocalId,
		Email:   response.Email,
		IDToken: response.IdToken,
	}, nil
}
