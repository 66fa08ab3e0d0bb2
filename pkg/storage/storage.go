// Package storage keeps enrollment photos on the local filesystem or in S3.
package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
)

const (
	DriverLocal = "local"
	DriverS3    = "s3"
)

var (
	ErrInvalidName = errors.New("invalid file name")
	ErrNotFound    = errors.New("file not found")
)

type IStorage interface {
	// Save writes data under name, replacing any previous file, and returns its location.
	Save(ctx context.Context, name string, data []byte) (string, error)
	Read(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

type Config struct {
	Driver    string
	Directory string
	S3        S3Config
}

func New(cfg Config, log *logrus.Logger) (IStorage, error) {
	switch cfg.Driver {
	case "", DriverLocal:
		return NewLocal(cfg.Directory, log)
	case DriverS3:
		return NewS3(cfg.S3, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

// validateName rejects anything that is not a plain file name.
func validateName(name string) error {
	if name == "" || name == "." || name == ".." || filepath.Base(name) != name {
		return ErrInvalidName
	}
	return nil
}

type localStorage struct {
	dir string
	log *logrus.Logger
}

func NewLocal(dir string, log *logrus.Logger) (IStorage, error) {
	if dir == "" {
		return nil, errors.New("upload directory is not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &localStorage{dir: dir, log: log}, nil
}

func (s *localStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	if err := validateName(name); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", name, err)
	}

	s.log.WithFields(logrus.Fields{
		"file": name,
		"size": len(data),
	}).Debug("Stored photo")
	return path, nil
}

func (s *localStorage) Read(_ context.Context, name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

func (s *localStorage) Delete(_ context.Context, name string) error {
	if err := validateName(name); err != nil {
		return err
	}

	err := os.Remove(filepath.Join(s.dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
