package studentRepository

import (
	"FaceAttendance/internal/entity"
	"FaceAttendance/internal/facematch"
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var db sqlx.ExtContext
	var commitFunc, rollbackFunc func() error

	db = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		db = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Students:   &studentRepository{q: db, log: r.log},
		Embeddings: &embeddingRepository{q: db, log: r.log},
		Commit:     commitFunc,
		Rollback:   rollbackFunc,
	}, nil
}

type Students interface {
	CreateStudent(ctx context.Context, student entity.Student) error
	GetByEnrollNumber(ctx context.Context, enrollNumber string) (entity.Student, error)
	GetWithoutEmbedding(ctx context.Context) ([]entity.Student, error)
}

type Embeddings interface {
	CreateEmbedding(ctx context.Context, enrollNumber string, embedding facematch.Embedding) error
	GetAll(ctx context.Context) ([]entity.FaceEmbedding, error)
}

type Client struct {
	Students   Students
	Embeddings Embeddings

	Commit   func() error
	Rollback func() error
}

type studentRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}

type embeddingRepository struct {
	q   sqlx.ExtContext
	log *logrus.Logger
}
