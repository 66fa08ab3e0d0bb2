package studentService

import (
	"FaceAttendance/internal/api/student"
	studentRepository "FaceAttendance/internal/api/student/repository"
	"FaceAttendance/pkg/bcrypt"
	"FaceAttendance/pkg/face"
	"FaceAttendance/pkg/redis"
	"FaceAttendance/pkg/storage"
	"FaceAttendance/pkg/utils"
	"context"
	"mime/multipart"

	"github.com/sirupsen/logrus"
)

type StudentService interface {
	// Signup registers a student. photo may be nil.
	Signup(c context.Context, req student.SignupRequest, photo *multipart.FileHeader) (student.SignupResult, error)
	// Login returns nil on success, ErrStudentNotFound or ErrIncorrectPassword otherwise.
	Login(c context.Context, req student.LoginRequest) error
	// Backfill creates embeddings for students that have a stored photo but none yet.
	Backfill(c context.Context, report func(done, total int)) (student.BackfillResult, error)
}

type studentService struct {
	log          *logrus.Logger
	repo         studentRepository.Repository
	extractor    face.IExtractor
	storage      storage.IStorage
	galleryCache redis.IGalleryCache
	bcryptUtils  bcrypt.IBcrypt
	utils        utils.IUtils
}

func New(
	log *logrus.Logger,
	repo studentRepository.Repository,
	extractor face.IExtractor,
	storage storage.IStorage,
	galleryCache redis.IGalleryCache,
	bcryptUtils bcrypt.IBcrypt,
	utils utils.IUtils,
) StudentService {
	return &studentService{
		log:          log,
		repo:         repo,
		extractor:    extractor,
		storage:      storage,
		galleryCache: galleryCache,
		bcryptUtils:  bcryptUtils,
		utils:        utils,
	}
}
