package redis

import (
	"FaceAttendance/internal/entity"
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	galleryKey    = "faceattendance:gallery"
	generationKey = "faceattendance:gallery:generation"
)

// IGalleryCache holds a snapshot of every stored face embedding. A miss is
// reported with ok=false and a nil error.
//
// Every invalidation bumps a generation number. GetGallery reports the
// generation it observed, and SetGallery only stores a snapshot when the
// generation is still the same, so a snapshot read before an invalidation is
// never written back after it.
type IGalleryCache interface {
	GetGallery(ctx context.Context) (gallery []entity.FaceEmbedding, generation int64, ok bool, err error)
	SetGallery(ctx context.Context, generation int64, gallery []entity.FaceEmbedding) (stored bool, err error)
	InvalidateGallery(ctx context.Context) error
	Close() error
}

type Config struct {
	Address  string
	Password string
	DB       int
	TTL      time.Duration
}

type redisClient struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

// New connects to Redis. An empty address yields a cache that always misses.
func New(cfg Config, log *logrus.Logger) IGalleryCache {
	if cfg.Address == "" {
		log.Info("Redis address not set, gallery cache disabled")
		return Noop()
	}

	log.Info(fmt.Sprintf("Connecting to Redis at %s...", cfg.Address))

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := client.Ping(ctx).Result(); err != nil {
		log.Error(fmt.Sprintf("Failed to connect to Redis: %v", err))
	} else {
		log.Info("Successfully connected to Redis")
	}

	return &redisClient{client: client, ttl: cfg.TTL, log: log}
}

func (r *redisClient) GetGallery(ctx context.Context) ([]entity.FaceEmbedding, int64, bool, error) {
	vals, err := r.client.MGet(ctx, galleryKey, generationKey).Result()
	if err != nil {
		r.log.Error(fmt.Sprintf("Error reading gallery cache: %v", err))
		return nil, 0, false, err
	}

	generation, err := parseGeneration(vals[1])
	if err != nil {
		r.log.Error(fmt.Sprintf("Invalid gallery generation: %v", err))
		return nil, 0, false, err
	}

	raw, isString := vals[0].(string)
	if !isString {
		r.log.Debug("Gallery cache miss")
		return nil, generation, false, nil
	}

	var gallery []entity.FaceEmbedding
	if err := jsoniter.UnmarshalFromString(raw, &gallery); err != nil {
		r.log.Warn(fmt.Sprintf("Discarding undecodable gallery cache entry: %v", err))
		return nil, generation, false, nil
	}

	r.log.Debug(fmt.Sprintf("Gallery cache hit with %d embeddings", len(gallery)))
	return gallery, generation, true, nil
}

func (r *redisClient) SetGallery(ctx context.Context, generation int64, gallery []entity.FaceEmbedding) (bool, error) {
	payload, err := jsoniter.Marshal(gallery)
	if err != nil {
		return false, err
	}

	stored := false
	err = r.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, generationKey).Int64()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if current != generation {
			return nil
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, galleryKey, payload, r.ttl)
			return nil
		})
		if err == nil {
			stored = true
		}
		return err
	}, generationKey)

	switch {
	case errors.Is(err, redis.TxFailedErr):
		stored = false
	case err != nil:
		r.log.Error(fmt.Sprintf("Error writing gallery cache: %v", err))
		return false, err
	}

	if !stored {
		r.log.Debug(fmt.Sprintf("Skipped stale gallery snapshot from generation %d", generation))
	}
	return stored, nil
}

func (r *redisClient) InvalidateGallery(ctx context.Context) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, generationKey)
		pipe.Del(ctx, galleryKey)
		return nil
	})
	if err != nil {
		r.log.Error(fmt.Sprintf("Error invalidating gallery cache: %v", err))
		return err
	}
	return nil
}

func parseGeneration(v interface{}) (int64, error) {
	s, ok := v.(string)
	if !ok {
		return 0, nil
	}
	return strconv.ParseInt(s, 10, 64)
}

func (r *redisClient) Close() error {
	return r.client.Close()
}

type noopCache struct{}

// Noop returns a cache that never stores anything.
func Noop() IGalleryCache {
	return noopCache{}
}

func (noopCache) GetGallery(context.Context) ([]entity.FaceEmbedding, int64, bool, error) {
	return nil, 0, false, nil
}

func (noopCache) SetGallery(context.Context, int64, []entity.FaceEmbedding) (bool, error) {
	return false, nil
}

func (noopCache) InvalidateGallery(context.Context) error { return nil }

func (noopCache) Close() error { return nil }
