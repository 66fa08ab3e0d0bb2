package config

import (
	"mime/multipart"
	"testing"
	"time"

	"FaceAttendance/pkg/face"
	"FaceAttendance/pkg/storage"
	"FaceAttendance/pkg/utils"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"APP_PORT", "BODY_LIMIT_MB", "DATABASE_MAX_OPEN_CONNS", "STORAGE_DRIVER", "UPLOAD_FOLDER",
		"REDIS_ADDRESS", "REDIS_DB", "GALLERY_CACHE_TTL_SECONDS", "FACE_MODELS_DIR",
		"FACE_GROUP_DETECTOR", "FACE_MAX_IMAGE_SIDE", "BCRYPT_COST", "UPLOAD_LIMIT_MB", "FACE_MAX_PIXELS",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, 50*1024*1024, cfg.BodyLimit())
	assert.Equal(t, int64(20*1024*1024), cfg.UploadLimit())
	assert.Equal(t, utils.DefaultMaxPixels, cfg.MaxPixels)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.Equal(t, 5, cfg.Database.MaxIdleConns)
	assert.Equal(t, storage.DriverLocal, cfg.Storage.Driver)
	assert.Equal(t, "./uploads", cfg.Storage.Directory)
	assert.Empty(t, cfg.Redis.Address)
	assert.Equal(t, 0, cfg.Redis.DB)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Equal(t, "./models", cfg.Face.ModelsDir)
	assert.Equal(t, face.DetectorCNN, cfg.Face.GroupDetector)
	assert.Equal(t, 1600, cfg.Face.MaxImageSide)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("STORAGE_DRIVER", "s3")
	t.Setenv("AWS_BUCKET_NAME", "photos")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("FACE_GROUP_DETECTOR", "hog")
	t.Setenv("FACE_MAX_IMAGE_SIDE", "not-a-number")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, storage.DriverS3, cfg.Storage.Driver)
	assert.Equal(t, "photos", cfg.Storage.S3.BucketName)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, face.DetectorHOG, cfg.Face.GroupDetector)
	assert.Equal(t, 1600, cfg.Face.MaxImageSide)
}

func TestUploadLimitStaysBelowBodyLimit(t *testing.T) {
	tests := []struct {
		name   string
		body   int
		upload int
		want   int64
	}{
		{"below body limit", 50, 20, 20 * 1024 * 1024},
		{"equal to body limit", 50, 50, 25 * 1024 * 1024},
		{"above body limit", 10, 40, 5 * 1024 * 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &AppConfig{BodyLimitMB: tt.body, UploadLimitMB: tt.upload}
			assert.Equal(t, tt.want, cfg.UploadLimit())
			assert.Less(t, cfg.UploadLimit(), int64(cfg.BodyLimit()))
		})
	}
}

func TestNewUtilsUsesConfiguredLimits(t *testing.T) {
	cfg := &AppConfig{BodyLimitMB: 4, UploadLimitMB: 1, MaxPixels: 100}
	u := cfg.NewUtils()

	// Fits in the request body but not in the per-image limit.
	oversized := &multipart.FileHeader{Filename: "class.jpg", Size: 2 * 1024 * 1024}
	assert.ErrorIs(t, u.ValidateImageFile(oversized), utils.ErrFileTooLarge)
	assert.NoError(t, u.ValidateImageFile(&multipart.FileHeader{Filename: "class.jpg", Size: 1024}))
}
