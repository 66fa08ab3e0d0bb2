// Package mock provides an in-memory redis.IGalleryCache for tests.
package mock

import (
	"context"
	"sync"

	"FaceAttendance/internal/entity"
	"FaceAttendance/pkg/redis"
)

// MockGalleryCache follows the generation rule of the Redis cache: a snapshot
// is only stored when no invalidation happened since it was read.
type MockGalleryCache struct {
	mu         sync.Mutex
	gallery    []entity.FaceEmbedding
	stored     bool
	generation int64

	GetErr error

	Hits          int
	Misses        int
	Sets          int
	StaleSets     int
	Invalidations int
}

func NewMockGalleryCache() *MockGalleryCache {
	return &MockGalleryCache{}
}

func (m *MockGalleryCache) GetGallery(context.Context) ([]entity.FaceEmbedding, int64, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.GetErr != nil {
		return nil, 0, false, m.GetErr
	}
	if !m.stored {
		m.Misses++
		return nil, m.generation, false, nil
	}
	m.Hits++
	out := make([]entity.FaceEmbedding, len(m.gallery))
	copy(out, m.gallery)
	return out, m.generation, true, nil
}

func (m *MockGalleryCache) SetGallery(_ context.Context, generation int64, gallery []entity.FaceEmbedding) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if generation != m.generation {
		m.StaleSets++
		return false, nil
	}

	m.Sets++
	m.gallery = make([]entity.FaceEmbedding, len(gallery))
	copy(m.gallery, gallery)
	m.stored = true
	return true, nil
}

func (m *MockGalleryCache) InvalidateGallery(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Invalidations++
	m.generation++
	m.gallery, m.stored = nil, false
	return nil
}

func (m *MockGalleryCache) Close() error { return nil }

var _ redis.IGalleryCache = (*MockGalleryCache)(nil)
