package studentService

import (
	"FaceAttendance/internal/api/student"
	contextPkg "FaceAttendance/pkg/context"
	"context"

	"github.com/sirupsen/logrus"
)

func (s *studentService) Backfill(c context.Context, report func(done, total int)) (student.BackfillResult, error) {
	requestID := contextPkg.GetRequestID(c)
	var result student.BackfillResult

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return result, err
	}

	pending, err := repo.Students.GetWithoutEmbedding(c)
	if err != nil {
		return result, err
	}

	total := len(pending)
	for i, st := range pending {
		if err := c.Err(); err != nil {
			return result, err
		}
		result.Scanned++

		fields := logrus.Fields{
			"request_id":    requestID,
			"enroll_number": st.EnrollNumber,
			"file":          st.ImageFilename,
		}

		imageData, err := s.storage.Read(c, st.ImageFilename)
		if err != nil {
			fields["error"] = err.Error()
			s.log.WithFields(fields).Warn("Failed to read stored photo")
			result.Failures++
		} else if embedding, ok, err := s.extractor.Enroll(imageData); err != nil {
			fields["error"] = err.Error()
			s.log.WithFields(fields).Warn("Face extraction failed")
			result.Failures++
		} else if !ok {
			s.log.WithFields(fields).Info("No face found in stored photo")
			result.NoFace++
		} else if err := repo.Embeddings.CreateEmbedding(c, st.EnrollNumber, embedding); err != nil {
			fields["error"] = err.Error()
			s.log.WithFields(fields).Error("Failed to store embedding")
			result.Failures++
		} else {
			result.Created++
		}

		if report != nil {
			report(i+1, total)
		}
	}

	if result.Created > 0 {
		s.invalidateGallery(c)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"scanned":    result.Scanned,
		"created":    result.Created,
		"no_face":    result.NoFace,
		"failures":   result.Failures,
	}).Info("Embedding backfill finished")

	return result, nil
}
