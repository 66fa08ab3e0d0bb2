package config

import (
	"FaceAttendance/database/postgres"
	"FaceAttendance/pkg/face"
	"FaceAttendance/pkg/redis"
	"FaceAttendance/pkg/storage"
	"FaceAttendance/pkg/utils"
	"os"
	"strconv"
	"time"
)

type AppConfig struct {
	Port          string
	Env           string
	BodyLimitMB   int
	UploadLimitMB int
	MaxPixels     int
	BcryptCost    int

	Database postgres.Config
	Storage  storage.Config
	Redis    redis.Config
	Face     face.Config
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

// Load reads the configuration from the environment. Call godotenv first when a
// .env file should be honoured.
func Load() *AppConfig {
	redisDB, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil || redisDB < 0 {
		redisDB = 0
	}

	return &AppConfig{
		Port:          envString("APP_PORT", "3000"),
		Env:           os.Getenv("APP_ENV"),
		BodyLimitMB:   envInt("BODY_LIMIT_MB", 50),
		UploadLimitMB: envInt("UPLOAD_LIMIT_MB", 20),
		MaxPixels:     envInt("FACE_MAX_PIXELS", utils.DefaultMaxPixels),
		BcryptCost:    envInt("BCRYPT_COST", 10),
		Database: postgres.Config{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Storage: storage.Config{
			Driver:    envString("STORAGE_DRIVER", storage.DriverLocal),
			Directory: envString("UPLOAD_FOLDER", "./uploads"),
			S3: storage.S3Config{
				Region:          os.Getenv("AWS_REGION"),
				AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
				BucketName:      os.Getenv("AWS_BUCKET_NAME"),
				Prefix:          os.Getenv("AWS_KEY_PREFIX"),
			},
		},
		Redis: redis.Config{
			Address:  os.Getenv("REDIS_ADDRESS"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
			TTL:      time.Duration(envInt("GALLERY_CACHE_TTL_SECONDS", 300)) * time.Second,
		},
		Face: face.Config{
			ModelsDir:     envString("FACE_MODELS_DIR", "./models"),
			GroupDetector: envString("FACE_GROUP_DETECTOR", face.DetectorCNN),
			MaxImageSide:  envInt("FACE_MAX_IMAGE_SIDE", 1600),
		},
	}
}

// BodyLimit is the request body limit in bytes.
func (c *AppConfig) BodyLimit() int {
	return c.BodyLimitMB * 1024 * 1024
}

// UploadLimit is the per-image limit in bytes. It stays below BodyLimit so an
// oversized photo reaches the handlers instead of being cut off by fiber.
func (c *AppConfig) UploadLimit() int64 {
	upload := int64(c.UploadLimitMB) * 1024 * 1024
	if body := int64(c.BodyLimit()); upload >= body {
		return body / 2
	}
	return upload
}

// NewUtils builds the upload and image helpers with the configured limits.
func (c *AppConfig) NewUtils() utils.IUtils {
	return utils.NewWithLimits(c.UploadLimit(), int64(c.MaxPixels))
}
