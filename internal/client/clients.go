package client

import (
	"context"

	firebase "firebase.google.com/go/v4"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/sirupsen/logrus"
	identitytoolkit "google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

type Clients interface {
	AuthClient() AuthClient
	PasswordClient() PasswordClient
	PhotoStorage() PhotoStorage
	Geocoder() ReverseGeocoder
}

type clients struct {
	authClient     AuthClient
	passwordClient PasswordClient
	photoStorage   PhotoStorage
	geocoder       ReverseGeocoder
}

func (c clients) AuthClient() AuthClient {
	return c.authClient
}

func (c clients) PasswordClient() PasswordClient {
	return c.passwordClient
}

func (c clients) PhotoStorage() PhotoStorage {
	return c.photoStorage
}

func (c clients) Geocoder() ReverseGeocoder {
	return c.geocoder
}

func NewClients(cfg dto.Config) Clients {
	ctx := context.Background()

	decodedFirebaseKey, err := cfg.DecodeFirebaseKey()
	if err != nil {
		logrus.Panic(err)
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{StorageBucket: cfg.StorageBucket}, option.WithCredentialsJSON(decodedFirebaseKey))
	if err != nil {
		logrus.Panic(err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		logrus.Panic(err)
	}

	storageClient, err := app.Storage(ctx)
	if err != nil {
		logrus.Panic(err)
	}
	bucket, err := storageClient.Bucket(cfg.StorageBucket)
	if err != nil {
		logrus.Panic(err)
	}

	identityService, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.FirebaseAPIKey))
	if err != nil {
		logrus.Panic(err)
	}

	return &clients{
		authClient:     authClient,
		passwordClient: newPasswordClient(identityService),
		photoStorage:   newPhotoStorage(bucket, cfg.StorageBucket),
		geocoder:       NewNominatimGeocoder(cfg.NominatimURL, cfg.NominatimAgent, nil),
	}
}
