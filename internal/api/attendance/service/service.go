package attendanceService

import (
	"FaceAttendance/internal/api/attendance"
	studentRepository "FaceAttendance/internal/api/student/repository"
	"FaceAttendance/pkg/face"
	"FaceAttendance/pkg/redis"
	"FaceAttendance/pkg/utils"
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type AttendanceService interface {
	// Search returns the enroll numbers of enrolled students found in photo.
	Search(c context.Context, req attendance.SearchRequest, photo *multipart.FileHeader) ([]string, error)
	// SearchImage matches raw image bytes against the gallery.
	SearchImage(c context.Context, img []byte) ([]string, error)
}

type attendanceService struct {
	log          *logrus.Logger
	repo         studentRepository.Repository
	extractor    face.IExtractor
	galleryCache redis.IGalleryCache
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	repo studentRepository.Repository,
	extractor face.IExtractor,
	galleryCache redis.IGalleryCache,
	utils utils.IUtils,
) AttendanceService {
	return &attendanceService{
		log:          log,
		repo:         repo,
		extractor:    extractor,
		galleryCache: galleryCache,
		utils:        utils,
	}
}
