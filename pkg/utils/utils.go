package utils

import (
	"bytes"
	"crypto/rand"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/image/draw"
)

var (
	ErrNoFile          = errors.New("no file uploaded")
	ErrFileTooLarge    = errors.New("file size exceeds limit")
	ErrExtensionDenied = errors.New("file extension not allowed")
	ErrTooManyPixels   = errors.New("image dimensions exceed limit")
)

var allowedExtensions = map[string]bool{".png": true, ".jpg": true, ".jpeg": true}

const (
	detectionJPEGQuality = 95

	DefaultMaxFileSize = 10 * 1024 * 1024
	DefaultMaxPixels   = 40_000_000
)

type IUtils interface {
	NewULIDFromTimestamp(t time.Time) (string, error)
	ValidateImageFile(file *multipart.FileHeader) error
	ReadFile(file *multipart.FileHeader) ([]byte, error)
	PrepareForDetection(imageData []byte, maxSide int) ([]byte, error)
}

type utils struct {
	maxFileSize int64
	maxPixels   int64
}

func New() IUtils {
	return NewWithLimits(DefaultMaxFileSize, DefaultMaxPixels)
}

// NewWithLimits caps uploads at maxFileSize bytes and decoded images at
// maxPixels (width*height). A non-positive maxPixels disables the pixel cap.
func NewWithLimits(maxFileSize, maxPixels int64) IUtils {
	return &utils{
		maxFileSize: maxFileSize,
		maxPixels:   maxPixels,
	}
}

func (u *utils) NewULIDFromTimestamp(t time.Time) (string, error) {
	ms := ulid.Timestamp(t)
	entropy := ulid.Monotonic(rand.Reader, 0)

	id, err := ulid.New(ms, entropy)
	if err != nil {
		return "", err
	}

	return id.String(), nil
}

// Extension returns the lower-cased extension of filename, including the dot.
func Extension(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func IsAllowedImage(filename string) bool {
	return allowedExtensions[Extension(filename)]
}

func (u *utils) ValidateImageFile(file *multipart.FileHeader) error {
	if file == nil || file.Filename == "" {
		return ErrNoFile
	}

	if !IsAllowedImage(file.Filename) {
		return ErrExtensionDenied
	}

	if file.Size > u.maxFileSize {
		return ErrFileTooLarge
	}

	return nil
}

func (u *utils) ReadFile(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	return io.ReadAll(src)
}

// PrepareForDetection returns JPEG bytes no larger than maxSide on either edge.
// JPEG input that already fits is returned unchanged. Images whose header
// declares more pixels than the configured cap are rejected before decoding.
func (u *utils) PrepareForDetection(imageData []byte, maxSide int) ([]byte, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}

	if u.maxPixels > 0 && int64(cfg.Width)*int64(cfg.Height) > u.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	fits := maxSide <= 0 || (cfg.Width <= maxSide && cfg.Height <= maxSide)
	if format == "jpeg" && fits {
		return imageData, nil
	}

	img, _, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, err
	}

	if !fits {
		img = resize(img, maxSide)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: detectionJPEGQuality}); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func resize(img image.Image, maxSide int) image.Image {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	newWidth, newHeight := maxSide, maxSide
	if width > height {
		newHeight = height * maxSide / width
	} else {
		newWidth = width * maxSide / height
	}
	if newWidth < 1 {
		newWidth = 1
	}
	if newHeight < 1 {
		newHeight = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
	return dst
}
