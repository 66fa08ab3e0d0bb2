package attendanceService

import (
	"FaceAttendance/internal/api/attendance"
	"FaceAttendance/internal/entity"
	"FaceAttendance/internal/facematch"
	contextPkg "FaceAttendance/pkg/context"
	"FaceAttendance/pkg/utils"
	"errors"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *attendanceService) Search(c context.Context, req attendance.SearchRequest, photo *multipart.FileHeader) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)

	if err := s.utils.ValidateImageFile(photo); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rejected search upload")

		if errors.Is(err, utils.ErrFileTooLarge) {
			return nil, attendance.ErrImageTooLarge
		}
		return nil, attendance.ErrInvalidImage
	}

	img, err := s.utils.ReadFile(photo)
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"date":       req.Date,
		"batch":      req.Batch,
		"course":     req.Course,
		"file_size":  len(img),
	}).Info("Attendance search")

	return s.SearchImage(c, img)
}

func (s *attendanceService) SearchImage(c context.Context, img []byte) ([]string, error) {
	requestID := contextPkg.GetRequestID(c)

	queries, err := s.extractor.Detect(img)
	if errors.Is(err, utils.ErrTooManyPixels) {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rejected oversized search image")
		return nil, attendance.ErrImageTooLarge
	} else if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Face detection failed")
		return nil, err
	}

	gallery, err := s.gallery(c)
	if err != nil {
		return nil, err
	}

	present := facematch.Match(queries, entity.Candidates(gallery))

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"faces":      len(queries),
		"gallery":    len(gallery),
		"present":    len(present),
	}).Info("Attendance search matched")

	return present, nil
}

// gallery prefers the cached snapshot and repopulates it from the store on a
// miss. The repopulation is tied to the generation seen on the miss, so a
// concurrent enrollment wins over the snapshot read here.
func (s *attendanceService) gallery(c context.Context) ([]entity.FaceEmbedding, error) {
	requestID := contextPkg.GetRequestID(c)

	cached, generation, ok, err := s.galleryCache.GetGallery(c)
	cacheReadable := err == nil
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Gallery cache unavailable, reading from database")
	} else if ok {
		return cached, nil
	}

	repo, err := s.repo.NewClient(false)
	if err != nil {
		return nil, err
	}

	gallery, err := repo.Embeddings.GetAll(c)
	if err != nil {
		return nil, err
	}

	if !cacheReadable {
		return gallery, nil
	}

	stored, err := s.galleryCache.SetGallery(c, generation, gallery)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to populate gallery cache")
	} else if !stored {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"generation": generation,
		}).Debug("Gallery changed during search, cache not populated")
	}

	return gallery, nil
}
