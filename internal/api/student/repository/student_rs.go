package studentRepository

import (
	"FaceAttendance/internal/api/student"
	"FaceAttendance/internal/entity"
	contextPkg "FaceAttendance/pkg/context"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type StudentDB struct {
	EnrollNumber  string         `db:"enroll_number"`
	FullName      sql.NullString `db:"full_name"`
	Email         sql.NullString `db:"email"`
	Password      string         `db:"password"`
	Batch         sql.NullString `db:"batch"`
	Course        sql.NullString `db:"course"`
	ImageFilename sql.NullString `db:"image_filename"`
	CreatedAt     sql.NullTime   `db:"created_at"`
}

func (s StudentDB) toEntity() entity.Student {
	return entity.Student{
		EnrollNumber:  s.EnrollNumber,
		FullName:      s.FullName.String,
		Email:         s.Email.String,
		Password:      s.Password,
		Batch:         s.Batch.String,
		Course:        s.Course.String,
		ImageFilename: s.ImageFilename.String,
		CreatedAt:     s.CreatedAt.Time,
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func (r *studentRepository) CreateStudent(c context.Context, s entity.Student) error {
	requestID := contextPkg.GetRequestID(c)

	createdAt := s.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	argsKV := map[string]interface{}{
		"enroll_number":  s.EnrollNumber,
		"full_name":      nullString(s.FullName),
		"email":          nullString(s.Email),
		"password":       s.Password,
		"batch":          nullString(s.Batch),
		"course":         nullString(s.Course),
		"image_filename": nullString(s.ImageFilename),
		"created_at":     createdAt,
	}

	query, args, err := sqlx.Named(queryCreateStudent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateStudent")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			r.log.WithFields(logrus.Fields{
				"request_id":    requestID,
				"enroll_number": s.EnrollNumber,
			}).Warn("Student already exists")
			return student.ErrStudentAlreadyExists
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating student")
		return fmt.Errorf("create student: %w", err)
	}

	return nil
}

func (r *studentRepository) GetByEnrollNumber(c context.Context, enrollNumber string) (entity.Student, error) {
	requestID := contextPkg.GetRequestID(c)
	var row StudentDB

	argsKV := map[string]interface{}{
		"enroll_number": enrollNumber,
	}

	query, args, err := sqlx.Named(queryGetByEnrollNumber, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByEnrollNumber named query preparation err")
		return entity.Student{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id":    requestID,
				"enroll_number": enrollNumber,
			}).Debug("GetByEnrollNumber no rows found")
			return entity.Student{}, student.ErrStudentNotFound
		}

		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetByEnrollNumber query err")
		return entity.Student{}, fmt.Errorf("get student: %w", err)
	}

	return row.toEntity(), nil
}

func (r *studentRepository) GetWithoutEmbedding(c context.Context) ([]entity.Student, error) {
	requestID := contextPkg.GetRequestID(c)

	rows, err := r.q.QueryxContext(c, queryGetWithoutEmbedding)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetWithoutEmbedding query err")
		return nil, fmt.Errorf("list students without embedding: %w", err)
	}
	defer rows.Close()

	students := make([]entity.Student, 0)
	for rows.Next() {
		var row StudentDB
		if err := rows.StructScan(&row); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("GetWithoutEmbedding scan err")
			return nil, fmt.Errorf("scan student: %w", err)
		}
		students = append(students, row.toEntity())
	}

	return students, rows.Err()
}
