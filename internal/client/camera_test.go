package client

import (
	"bytes"
	"context"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/presensi-sales/backend/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedFrame(t *testing.T) []byte {
	t.Helper()

	frame := image.NewRGBA(image.Rect(0, 0, 4, 3))
	frame.Set(1, 1, color.RGBA{G: 255, A: 255})

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, frame))
	return buf.Bytes()
}

func TestUploadCameraServesDecodedFrame(t *testing.T) {
	stream, err := NewUploadCamera(bytes.NewReader(encodedFrame(t))).Open(context.Background(), FacingUser)
	require.NoError(t, err)

	frame, err := stream.Frame()
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), frame.Bounds())

	_, g, _, _ := frame.At(1, 1).RGBA()
	assert.Equal(t, uint32(0xffff), g)

	require.NoError(t, stream.Close())
	_, err = stream.Frame()
	assert.ErrorIs(t, err, dto.ErrCameraUnavailable)
}

func TestUploadCameraRejectsUnreadableFrame(t *testing.T) {
	_, err := NewUploadCamera(strings.NewReader("not an image")).Open(context.Background(), FacingUser)
	assert.ErrorIs(t, err, dto.ErrCameraUnavailable)

	_, err = NewUploadCamera(nil).Open(context.Background(), FacingUser)
	assert.ErrorIs(t, err, dto.ErrCameraUnavailable)
}

func TestReportedLocator(t *testing.T) {
	latitude, longitude := -6.2, 106.8

	position, err := NewReportedLocator(&latitude, &longitude).CurrentPosition(context.Background(), PositionOptions{})
	require.NoError(t, err)
	assert.Equal(t, -6.2, position.Latitude)
	assert.Equal(t, 106.8, position.Longitude)
	assert.False(t, position.Timestamp.IsZero())

	_, err = NewReportedLocator(&latitude, nil).CurrentPosition(context.Background(), PositionOptions{})
	assert.ErrorIs(t, err, dto.ErrLocationUnavailable)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewReportedLocator(&latitude, &longitude).CurrentPosition(ctx, PositionOptions{})
	assert.ErrorIs(t, err, dto.ErrLocationUnavailable)
}

// pngHeader is a PNG signature plus an IHDR chunk declaring an 8-bit gray
// image of the given size. It carries no pixel data.
func pngHeader(width, height uint32) []byte {
	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], width)
	binary.BigEndian.PutUint32(ihdr[4:8], height)
	ihdr[8] = 8

	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")
	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestUploadCameraRejectsOversizedFrame(t *testing.T) {
	for _, size := range [][2]uint32{{40000, 40000}, {MaxFrameDimension + 1, 10}, {10, MaxFrameDimension + 1}} {
		_, err := NewUploadCamera(bytes.NewReader(pngHeader(size[0], size[1]))).Open(context.Background(), FacingUser)
		assert.ErrorIs(t, err, dto.ErrCameraUnavailable)
		assert.Contains(t, err.Error(), "exceeds")
	}
}
