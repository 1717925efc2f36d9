package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gcs "cloud.google.com/go/storage"
	"github.com/presensi-sales/backend/internal/dto"
	"google.golang.org/api/googleapi"
)

// ErrObjectExists is returned by Upload when the name is already taken.
var ErrObjectExists = errors.New("object already exists")

type PhotoStorage interface {
	// Upload creates the object only if the name is free and returns its generation.
	Upload(ctx context.Context, name, contentType string, data []byte) (int64, error)
	// Delete removes the object only while it is still at the given generation.
	Delete(ctx context.Context, name string, generation int64) error
	Bucket() string
}

type bucketStorage struct {
	bucket *gcs.BucketHandle
	name   string
}

func newPhotoStorage(bucket *gcs.BucketHandle, name string) PhotoStorage {
	return &bucketStorage{bucket: bucket, name: name}
}

func (s *bucketStorage) Upload(ctx context.Context, name, contentType string, data []byte) (int64, error) {
	writer := s.bucket.Object(name).If(gcs.Conditions{DoesNotExist: true}).NewWriter(ctx)
	writer.ContentType = contentType
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return 0, uploadError(name, err)
	}
	if err := writer.Close(); err != nil {
		return 0, uploadError(name, err)
	}
	return writer.Attrs().Generation, nil
}

func (s *bucketStorage) Delete(ctx context.Context, name string, generation int64) error {
	err := s.bucket.Object(name).If(gcs.Conditions{GenerationMatch: generation}).Delete(ctx)
	if err != nil {
		return fmt.Errorf("%w: delete %s#%d: %v", dto.ErrRemoteFailure, name, generation, err)
	}
	return nil
}

func (s *bucketStorage) Bucket() string {
	return s.name
}

func uploadError(name string, err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusPreconditionFailed {
		return fmt.Errorf("%w: %s", ErrObjectExists, name)
	}
	return fmt.Errorf("%w: write %s: %v", dto.ErrRemoteFailure, name, err)
}
