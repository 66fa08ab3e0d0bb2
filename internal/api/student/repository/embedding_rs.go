package studentRepository

import (
	"FaceAttendance/internal/api/student"
	"FaceAttendance/internal/entity"
	"FaceAttendance/internal/facematch"
	contextPkg "FaceAttendance/pkg/context"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/sirupsen/logrus"
)

type EmbeddingDB struct {
	EnrollNumber string          `db:"enroll_number"`
	Embedding    pgvector.Vector `db:"embedding"`
	CreatedAt    time.Time       `db:"created_at"`
}

func (r *embeddingRepository) CreateEmbedding(c context.Context, enrollNumber string, embedding facematch.Embedding) error {
	requestID := contextPkg.GetRequestID(c)

	argsKV := map[string]interface{}{
		"enroll_number": enrollNumber,
		"embedding":     pgvector.NewVector(embedding),
		"created_at":    time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateEmbedding, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateEmbedding")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.WithFields(logrus.Fields{
				"request_id":    requestID,
				"enroll_number": enrollNumber,
			}).Warn("Embedding already exists")
			return student.ErrEmbeddingExists
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating embedding")
		return fmt.Errorf("create embedding: %w", err)
	}

	return nil
}

func (r *embeddingRepository) GetAll(c context.Context) ([]entity.FaceEmbedding, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, queryGetAllEmbeddings)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAll embeddings query err")
		return nil, fmt.Errorf("list embeddings: %w", err)
	}
	defer rows.Close()

	embeddings := make([]entity.FaceEmbedding, 0)
	for rows.Next() {
		var row EmbeddingDB
		if err := rows.StructScan(&row); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("GetAll embeddings scan err")
			return nil, fmt.Errorf("scan embedding: %w", err)
		}
		embeddings = append(embeddings, entity.FaceEmbedding{
			EnrollNumber: row.EnrollNumber,
			Embedding:    facematch.Embedding(row.Embedding.Slice()),
			CreatedAt:    row.CreatedAt,
		})
	}

	return embeddings, rows.Err()
}
