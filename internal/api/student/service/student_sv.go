package studentService

import (
	"FaceAttendance/internal/api/student"
	"FaceAttendance/internal/entity"
	"FaceAttendance/internal/facematch"
	contextPkg "FaceAttendance/pkg/context"
	"FaceAttendance/pkg/utils"
	"context"
	"errors"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
)

func (s *studentService) Signup(c context.Context, req student.SignupRequest, photo *multipart.FileHeader) (student.SignupResult, error) {
	requestID := contextPkg.GetRequestID(c)

	lookup, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return student.SignupResult{}, err
	}

	_, err = lookup.Students.GetByEnrollNumber(c, req.EnrollNumber)
	switch {
	case err == nil:
		s.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"enroll_number": req.EnrollNumber,
		}).Warn("Signup for existing student")
		return student.SignupResult{}, student.ErrStudentAlreadyExists
	case !errors.Is(err, student.ErrStudentNotFound):
		return student.SignupResult{}, err
	}

	hashedPassword, err := s.bcryptUtils.HashPassword(req.Password)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to hash password")
		return student.SignupResult{}, err
	}

	record := entity.Student{
		EnrollNumber: req.EnrollNumber,
		FullName:     req.FullName,
		Email:        req.Email,
		Password:     hashedPassword,
		Batch:        req.Batch,
		Course:       req.Course,
		CreatedAt:    time.Now(),
	}

	var embedding facematch.Embedding
	imageData, ok, err := s.readPhoto(c, photo)
	if err != nil {
		return student.SignupResult{}, err
	}
	if ok {
		record.ImageFilename = req.EnrollNumber + utils.Extension(photo.Filename)
		embedding = s.enrollEmbedding(c, req.EnrollNumber, imageData)
	}

	if err := s.createStudent(c, record, embedding, imageData); err != nil {
		return student.SignupResult{}, err
	}

	if embedding != nil {
		s.invalidateGallery(c)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"enroll_number": req.EnrollNumber,
		"has_photo":     record.HasPhoto(),
		"has_embedding": embedding != nil,
	}).Info("Student signed up")

	return student.SignupResult{
		EnrollNumber:  record.EnrollNumber,
		ImageFilename: record.ImageFilename,
		HasEmbedding:  embedding != nil,
	}, nil
}

// readPhoto returns ok=false when no usable photo was uploaded. A file with a
// missing or disallowed extension counts as no photo.
func (s *studentService) readPhoto(c context.Context, photo *multipart.FileHeader) ([]byte, bool, error) {
	requestID := contextPkg.GetRequestID(c)

	err := s.utils.ValidateImageFile(photo)
	switch {
	case errors.Is(err, utils.ErrNoFile):
		return nil, false, nil
	case errors.Is(err, utils.ErrExtensionDenied):
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"file":       photo.Filename,
		}).Warn("Ignoring photo with disallowed extension")
		return nil, false, nil
	case errors.Is(err, utils.ErrFileTooLarge):
		return nil, false, student.ErrPhotoTooLarge
	case err != nil:
		return nil, false, err
	}

	data, err := s.utils.ReadFile(photo)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read uploaded photo")
		return nil, false, err
	}

	return data, true, nil
}

// enrollEmbedding returns nil when the photo yields no usable face.
func (s *studentService) enrollEmbedding(c context.Context, enrollNumber string, imageData []byte) facematch.Embedding {
	fields := logrus.Fields{
		"request_id":    contextPkg.GetRequestID(c),
		"enroll_number": enrollNumber,
	}

	embedding, ok, err := s.extractor.Enroll(imageData)
	if err != nil {
		fields["error"] = err.Error()
		s.log.WithFields(fields).Warn("Face extraction failed, storing student without embedding")
		return nil
	}
	if !ok {
		s.log.WithFields(fields).Warn("No face found in photo, storing student without embedding")
		return nil
	}

	return embedding
}

// createStudent inserts the student and its embedding in one transaction. The
// photo is written only once the insert holds the enroll number, so a rejected
// duplicate never touches the file of the student that owns it.
func (s *studentService) createStudent(c context.Context, record entity.Student, embedding facematch.Embedding, imageData []byte) error {
	requestID := contextPkg.GetRequestID(c)

	repo, err := s.repo.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to begin transaction")
		return err
	}

	if err := repo.Students.CreateStudent(c, record); err != nil {
		_ = repo.Rollback()
		return err
	}

	if embedding != nil {
		if err := repo.Embeddings.CreateEmbedding(c, record.EnrollNumber, embedding); err != nil {
			_ = repo.Rollback()
			return err
		}
	}

	if record.HasPhoto() {
		if _, err := s.storage.Save(c, record.ImageFilename, imageData); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"file":       record.ImageFilename,
				"error":      err.Error(),
			}).Error("Failed to store photo")
			_ = repo.Rollback()
			return student.ErrFailedToStorePhoto
		}
	}

	if err := repo.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit signup")
		_ = repo.Rollback()
		s.removePhoto(c, record.ImageFilename)
		return err
	}

	return nil
}

func (s *studentService) removePhoto(c context.Context, name string) {
	if name == "" {
		return
	}
	if err := s.storage.Delete(c, name); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"file":       name,
			"error":      err.Error(),
		}).Error("Failed to remove photo after failed signup")
	}
}

func (s *studentService) invalidateGallery(c context.Context) {
	if err := s.galleryCache.InvalidateGallery(c); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(c),
			"error":      err.Error(),
		}).Warn("Failed to invalidate gallery cache")
	}
}

func (s *studentService) Login(c context.Context, req student.LoginRequest) error {
	requestID := contextPkg.GetRequestID(c)

	if req.EnrollNumber == "" {
		return student.ErrStudentNotFound
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to create repository client")
		return err
	}

	record, err := repo.Students.GetByEnrollNumber(c, req.EnrollNumber)
	if err != nil {
		return err
	}

	if err := s.bcryptUtils.ComparePassword(record.Password, req.Password); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":    requestID,
			"enroll_number": req.EnrollNumber,
		}).Warn("Incorrect password")
		return student.ErrIncorrectPassword
	}

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"enroll_number": req.EnrollNumber,
	}).Info("Student logged in")

	return nil
}
