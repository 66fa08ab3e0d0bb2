// Package mock provides an in-memory studentRepository.Repository for tests.
package mock

import (
	"context"
	"sync"

	"FaceAttendance/internal/api/student"
	studentRepository "FaceAttendance/internal/api/student/repository"
	"FaceAttendance/internal/entity"
	"FaceAttendance/internal/facematch"
)

// MockRepository keeps students and embeddings in insertion order. Writes made
// through a transactional client become visible only after Commit.
type MockRepository struct {
	mu         sync.RWMutex
	students   map[string]entity.Student
	order      []string
	embeddings []entity.FaceEmbedding

	// Error injection
	NewClientError   error
	CreateStudentErr error
	CreateEmbedErr   error
	GetAllErr        error
	CommitErr        error

	GetAllCalls int

	// AfterGetAll runs once GetAll has taken its snapshot, outside the lock.
	AfterGetAll func()
}

func NewMockRepository() *MockRepository {
	return &MockRepository{students: make(map[string]entity.Student)}
}

func (m *MockRepository) NewClient(tx bool) (studentRepository.Client, error) {
	if m.NewClientError != nil {
		return studentRepository.Client{}, m.NewClientError
	}

	c := &client{repo: m, tx: tx}
	return studentRepository.Client{
		Students:   c,
		Embeddings: c,
		Commit:     c.commit,
		Rollback:   c.rollback,
	}, nil
}

// AddStudent stores a student directly, bypassing error injection.
func (m *MockRepository) AddStudent(s entity.Student) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.addStudent(s)
}

// AddEmbedding stores an embedding directly, bypassing error injection.
func (m *MockRepository) AddEmbedding(enrollNumber string, e facematch.Embedding) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.embeddings = append(m.embeddings, entity.FaceEmbedding{EnrollNumber: enrollNumber, Embedding: e})
}

func (m *MockRepository) Student(enrollNumber string) (entity.Student, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.students[enrollNumber]
	return s, ok
}

func (m *MockRepository) StudentCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.students)
}

func (m *MockRepository) Embedding(enrollNumber string) (facematch.Embedding, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, e := range m.embeddings {
		if e.EnrollNumber == enrollNumber {
			return e.Embedding, true
		}
	}
	return nil, false
}

func (m *MockRepository) EmbeddingCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.embeddings)
}

func (m *MockRepository) addStudent(s entity.Student) {
	if _, ok := m.students[s.EnrollNumber]; !ok {
		m.order = append(m.order, s.EnrollNumber)
	}
	m.students[s.EnrollNumber] = s
}

func (m *MockRepository) hasEmbedding(enrollNumber string) bool {
	for _, e := range m.embeddings {
		if e.EnrollNumber == enrollNumber {
			return true
		}
	}
	return false
}

type client struct {
	repo *MockRepository
	tx   bool

	pendingStudents   []entity.Student
	pendingEmbeddings []entity.FaceEmbedding
}

func (c *client) CreateStudent(_ context.Context, s entity.Student) error {
	if c.repo.CreateStudentErr != nil {
		return c.repo.CreateStudentErr
	}

	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	if _, ok := c.repo.students[s.EnrollNumber]; ok {
		return student.ErrStudentAlreadyExists
	}
	for _, p := range c.pendingStudents {
		if p.EnrollNumber == s.EnrollNumber {
			return student.ErrStudentAlreadyExists
		}
	}

	if c.tx {
		c.pendingStudents = append(c.pendingStudents, s)
		return nil
	}
	c.repo.addStudent(s)
	return nil
}

func (c *client) GetByEnrollNumber(_ context.Context, enrollNumber string) (entity.Student, error) {
	c.repo.mu.RLock()
	defer c.repo.mu.RUnlock()

	s, ok := c.repo.students[enrollNumber]
	if !ok {
		return entity.Student{}, student.ErrStudentNotFound
	}
	return s, nil
}

func (c *client) GetWithoutEmbedding(_ context.Context) ([]entity.Student, error) {
	c.repo.mu.RLock()
	defer c.repo.mu.RUnlock()

	out := make([]entity.Student, 0)
	for _, id := range c.repo.order {
		s := c.repo.students[id]
		if s.HasPhoto() && !c.repo.hasEmbedding(id) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (c *client) CreateEmbedding(_ context.Context, enrollNumber string, e facematch.Embedding) error {
	if c.repo.CreateEmbedErr != nil {
		return c.repo.CreateEmbedErr
	}

	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	if c.repo.hasEmbedding(enrollNumber) {
		return student.ErrEmbeddingExists
	}

	record := entity.FaceEmbedding{EnrollNumber: enrollNumber, Embedding: e}
	if c.tx {
		c.pendingEmbeddings = append(c.pendingEmbeddings, record)
		return nil
	}
	c.repo.embeddings = append(c.repo.embeddings, record)
	return nil
}

func (c *client) GetAll(_ context.Context) ([]entity.FaceEmbedding, error) {
	c.repo.mu.Lock()
	c.repo.GetAllCalls++
	if c.repo.GetAllErr != nil {
		c.repo.mu.Unlock()
		return nil, c.repo.GetAllErr
	}

	out := make([]entity.FaceEmbedding, len(c.repo.embeddings))
	copy(out, c.repo.embeddings)
	hook := c.repo.AfterGetAll
	c.repo.mu.Unlock()

	if hook != nil {
		hook()
	}
	return out, nil
}

func (c *client) commit() error {
	if c.repo.CommitErr != nil {
		return c.repo.CommitErr
	}

	c.repo.mu.Lock()
	defer c.repo.mu.Unlock()

	for _, s := range c.pendingStudents {
		c.repo.addStudent(s)
	}
	c.repo.embeddings = append(c.repo.embeddings, c.pendingEmbeddings...)
	c.pendingStudents, c.pendingEmbeddings = nil, nil
	return nil
}

func (c *client) rollback() error {
	c.pendingStudents, c.pendingEmbeddings = nil, nil
	return nil
}
