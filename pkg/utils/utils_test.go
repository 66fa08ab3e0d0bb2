package utils

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"mime/multipart"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 120, B: 40, A: 255})
		}
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

// withPNGDimensions rewrites the IHDR chunk so the header declares w x h.
func withPNGDimensions(t *testing.T, data []byte, w, h uint32) []byte {
	t.Helper()
	require.Equal(t, "IHDR", string(data[12:16]))

	out := append([]byte(nil), data...)
	binary.BigEndian.PutUint32(out[16:20], w)
	binary.BigEndian.PutUint32(out[20:24], h)
	binary.BigEndian.PutUint32(out[29:33], crc32.ChecksumIEEE(out[12:29]))
	return out
}

func TestIsAllowedImage(t *testing.T) {
	tests := []struct {
		filename string
		allowed  bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"group.png", true},
		{"scan.gif", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.allowed, IsAllowedImage(tt.filename))
		})
	}
}

func TestValidateImageFile(t *testing.T) {
	u := NewWithLimits(1024, DefaultMaxPixels)

	assert.ErrorIs(t, u.ValidateImageFile(nil), ErrNoFile)
	assert.ErrorIs(t, u.ValidateImageFile(&multipart.FileHeader{}), ErrNoFile)
	assert.ErrorIs(t, u.ValidateImageFile(&multipart.FileHeader{Filename: "a.bmp", Size: 10}), ErrExtensionDenied)
	assert.ErrorIs(t, u.ValidateImageFile(&multipart.FileHeader{Filename: "a.png", Size: 2048}), ErrFileTooLarge)
	assert.NoError(t, u.ValidateImageFile(&multipart.FileHeader{Filename: "a.png", Size: 512}))
}

func TestPrepareForDetection(t *testing.T) {
	u := New()

	t.Run("JPEGWithinLimitUnchanged", func(t *testing.T) {
		in := encodeJPEG(t, solidImage(40, 30))
		out, err := u.PrepareForDetection(in, 100)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("PNGConvertedToJPEG", func(t *testing.T) {
		out, err := u.PrepareForDetection(encodePNG(t, solidImage(40, 30)), 100)
		require.NoError(t, err)

		cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, "jpeg", format)
		assert.Equal(t, 40, cfg.Width)
		assert.Equal(t, 30, cfg.Height)
	})

	t.Run("OversizedDownscaled", func(t *testing.T) {
		out, err := u.PrepareForDetection(encodeJPEG(t, solidImage(400, 200)), 100)
		require.NoError(t, err)

		cfg, _, err := image.DecodeConfig(bytes.NewReader(out))
		require.NoError(t, err)
		assert.Equal(t, 100, cfg.Width)
		assert.Equal(t, 50, cfg.Height)
	})

	t.Run("TooManyPixelsRejectedBeforeDecode", func(t *testing.T) {
		capped := NewWithLimits(DefaultMaxFileSize, 1000)

		_, err := capped.PrepareForDetection(encodePNG(t, solidImage(40, 30)), 100)
		assert.ErrorIs(t, err, ErrTooManyPixels)

		_, err = capped.PrepareForDetection(encodeJPEG(t, solidImage(20, 20)), 100)
		assert.NoError(t, err)
	})

	t.Run("HugeDeclaredDimensionsRejected", func(t *testing.T) {
		bomb := withPNGDimensions(t, encodePNG(t, solidImage(4, 4)), 12000, 12000)

		_, err := u.PrepareForDetection(bomb, 1600)
		assert.ErrorIs(t, err, ErrTooManyPixels)
	})

	t.Run("NotAnImage", func(t *testing.T) {
		_, err := u.PrepareForDetection([]byte("definitely not an image"), 100)
		assert.Error(t, err)
	})
}

func TestNewULIDFromTimestamp(t *testing.T) {
	id, err := New().NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	assert.Len(t, id, 26)
}
