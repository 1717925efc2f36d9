package service

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"sync"

	"github.com/presensi-sales/backend/internal/client"
	"github.com/presensi-sales/backend/internal/dto"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

const (
	photoQuality     = 95
	photoContentType = "image/jpeg"

	cameraErrorMessage = "Tidak dapat membuka kamera. Izinkan akses kamera."
)

type Photo struct {
	Data        []byte
	ContentType string
	PreviewURL  string
	Width       int
	Height      int
}

// Capture is a single camera session. A failed Start leaves it disabled for good.
type Capture struct {
	camera client.Camera

	mu       sync.Mutex
	stream   client.CameraStream
	errorMsg string
}

func NewCapture(camera client.Camera) *Capture {
	return &Capture{camera: camera}
}

func (c *Capture) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		return nil
	}
	if c.errorMsg != "" {
		return dto.NewUserError(dto.ErrCameraUnavailable, c.errorMsg, nil)
	}

	stream, err := c.camera.Open(ctx, client.FacingUser)
	if err != nil {
		c.errorMsg = cameraErrorMessage
		return dto.NewUserError(dto.ErrCameraUnavailable, cameraErrorMessage, err)
	}
	c.stream = stream
	return nil
}

func (c *Capture) Enabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stream != nil
}

// ErrorMessage is the message to show when the camera could not be opened.
func (c *Capture) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errorMsg
}

// TakePhoto mirrors the current frame to match the on-screen preview and encodes it as JPEG.
func (c *Capture) TakePhoto() (Photo, error) {
	c.mu.Lock()
	stream := c.stream
	c.mu.Unlock()

	if stream == nil {
		return Photo{}, dto.NewUserError(dto.ErrCameraUnavailable, cameraErrorMessage, nil)
	}

	frame, err := stream.Frame()
	if err != nil {
		return Photo{}, dto.NewUserError(dto.ErrCameraUnavailable, cameraErrorMessage, err)
	}

	canvas := mirrorFrame(frame)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: photoQuality}); err != nil {
		return Photo{}, fmt.Errorf("%w: encode photo: %v", dto.ErrInternalFailure, err)
	}

	data := buf.Bytes()
	return Photo{
		Data:        data,
		ContentType: photoContentType,
		PreviewURL:  "data:" + photoContentType + ";base64," + base64.StdEncoding.EncodeToString(data),
		Width:       canvas.Bounds().Dx(),
		Height:      canvas.Bounds().Dy(),
	}, nil
}

func (c *Capture) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stream != nil {
		if err := c.stream.Close(); err != nil {
			logrus.Warnf("Error closing camera stream: %v", err)
		}
		c.stream = nil
	}
}

func mirrorFrame(frame image.Image) *image.RGBA {
	bounds := frame.Bounds()
	canvas := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	// x' = -x + (minX + width), y' = y - minY
	flip := f64.Aff3{
		-1, 0, float64(bounds.Min.X + bounds.Dx()),
		0, 1, float64(-bounds.Min.Y),
	}
	draw.NearestNeighbor.Transform(canvas, flip, frame, bounds, draw.Src, nil)

	return canvas
}

type CaptureService interface {
	// Snapshot opens the camera, takes one photo and releases the stream.
	Snapshot(ctx context.Context, camera client.Camera) (Photo, error)
}

type captureService struct{}

func newCaptureService() CaptureService {
	return &captureService{}
}

func (s *captureService) Snapshot(ctx context.Context, camera client.Camera) (Photo, error) {
	capture := NewCapture(camera)
	if err := capture.Start(ctx); err != nil {
		return Photo{}, err
	}
	defer capture.Stop()

	return capture.TakePhoto()
}
