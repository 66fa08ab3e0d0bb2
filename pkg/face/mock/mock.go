// Package mock provides a face.IExtractor that maps image bytes to fixed embeddings.
package mock

import (
	"sync"

	"FaceAttendance/internal/facematch"
	"FaceAttendance/pkg/face"
)

// MockExtractor looks up the exact image bytes it is given. Enroll returns the
// first face registered for an image; Detect returns all of them.
type MockExtractor struct {
	mu    sync.Mutex
	faces map[string][]facematch.Embedding

	EnrollErr error
	DetectErr error

	EnrollCalls int
	DetectCalls int
	Closed      bool
}

func NewMockExtractor() *MockExtractor {
	return &MockExtractor{faces: make(map[string][]facematch.Embedding)}
}

// SetFaces registers the faces found in img.
func (m *MockExtractor) SetFaces(img []byte, faces ...facematch.Embedding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faces[string(img)] = faces
}

func (m *MockExtractor) Enroll(img []byte) (facematch.Embedding, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.EnrollCalls++
	if m.EnrollErr != nil {
		return nil, false, m.EnrollErr
	}

	faces := m.faces[string(img)]
	if len(faces) == 0 {
		return nil, false, nil
	}
	return faces[0], true, nil
}

func (m *MockExtractor) Detect(img []byte) ([]facematch.Embedding, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.DetectCalls++
	if m.DetectErr != nil {
		return nil, m.DetectErr
	}

	faces := m.faces[string(img)]
	if len(faces) == 0 {
		return nil, face.ErrNoFaceDetected
	}
	return faces, nil
}

func (m *MockExtractor) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
}

var _ face.IExtractor = (*MockExtractor)(nil)
