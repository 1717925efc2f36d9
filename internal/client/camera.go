package client

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/presensi-sales/backend/internal/dto"
	_ "golang.org/x/image/webp"
)

// MaxFrameDimension bounds each side of an uploaded frame. Larger frames are
// refused before any pixel buffer is allocated.
const MaxFrameDimension = 4096

type Facing string

const (
	FacingUser        Facing = "user"
	FacingEnvironment Facing = "environment"
)

type Camera interface {
	Open(ctx context.Context, facing Facing) (CameraStream, error)
}

type CameraStream interface {
	Frame() (image.Image, error)
	Close() error
}

// uploadCamera serves a frame the browser captured and posted.
type uploadCamera struct {
	source io.Reader
}

func NewUploadCamera(source io.Reader) Camera {
	return &uploadCamera{source: source}
}

func (c *uploadCamera) Open(ctx context.Context, facing Facing) (CameraStream, error) {
	if c.source == nil {
		return nil, fmt.Errorf("%w: no frame uploaded", dto.ErrCameraUnavailable)
	}

	data, err := io.ReadAll(c.source)
	if err != nil {
		return nil, fmt.Errorf("%w: read frame: %v", dto.ErrCameraUnavailable, err)
	}
	config, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame header: %v", dto.ErrCameraUnavailable, err)
	}
	if config.Width <= 0 || config.Height <= 0 || config.Width > MaxFrameDimension || config.Height > MaxFrameDimension {
		return nil, fmt.Errorf("%w: frame %dx%d exceeds %dx%d", dto.ErrCameraUnavailable, config.Width, config.Height, MaxFrameDimension, MaxFrameDimension)
	}

	frame, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: decode frame: %v", dto.ErrCameraUnavailable, err)
	}

	return &frameStream{frame: frame}, nil
}

type frameStream struct {
	frame  image.Image
	closed bool
}

func (s *frameStream) Frame() (image.Image, error) {
	if s.closed {
		return nil, fmt.Errorf("%w: stream closed", dto.ErrCameraUnavailable)
	}
	return s.frame, nil
}

func (s *frameStream) Close() error {
	s.closed = true
	return nil
}
