package config

import (
	"FaceAttendance/database/postgres"
	attendanceHandler "FaceAttendance/internal/api/attendance/handler"
	attendanceService "FaceAttendance/internal/api/attendance/service"
	studentHandler "FaceAttendance/internal/api/student/handler"
	studentRepository "FaceAttendance/internal/api/student/repository"
	studentService "FaceAttendance/internal/api/student/service"
	"FaceAttendance/internal/middleware"
	"FaceAttendance/pkg/bcrypt"
	"FaceAttendance/pkg/face"
	"FaceAttendance/pkg/redis"
	"FaceAttendance/pkg/storage"
	"FaceAttendance/pkg/utils"
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

const MsgHealthy = "Hello World"

type ServerOption func(*Server) error

type Server struct {
	engine       *fiber.App
	db           *sqlx.DB
	repo         studentRepository.Repository
	log          *logrus.Logger
	middleware   middleware.Middleware
	validator    *validator.Validate
	utils        utils.IUtils
	bcryptUtils  bcrypt.IBcrypt
	extractor    face.IExtractor
	storage      storage.IStorage
	galleryCache redis.IGalleryCache
	handlers     []handler
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if server.repo == nil {
		return nil, fmt.Errorf("database is required")
	}
	if server.extractor == nil {
		return nil, fmt.Errorf("face extractor is required")
	}
	if server.storage == nil {
		return nil, fmt.Errorf("photo storage is required")
	}
	if server.middleware == nil {
		server.middleware = middleware.New(server.log)
	}
	if server.validator == nil {
		server.validator = NewValidator()
	}
	if server.utils == nil {
		server.utils = utils.New()
	}
	if server.bcryptUtils == nil {
		server.bcryptUtils = bcrypt.New()
	}
	if server.galleryCache == nil {
		server.galleryCache = redis.Noop()
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

// WithDatabase connects to Postgres and applies pending migrations.
func WithDatabase(cfg postgres.Config) ServerOption {
	return func(s *Server) error {
		db, err := postgres.New(cfg)
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to connect to database: %v", err)
			}
			return fmt.Errorf("failed to create database connection: %w", err)
		}

		applied, err := postgres.Migrate(context.Background(), db)
		if err != nil {
			db.Close()
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		if s.log != nil && len(applied) > 0 {
			s.log.WithField("migrations", applied).Info("Applied database migrations")
		}

		s.db = db
		s.repo = studentRepository.New(db, s.log)
		return nil
	}
}

// WithRepository replaces the database-backed repository.
func WithRepository(repo studentRepository.Repository) ServerOption {
	return func(s *Server) error {
		s.repo = repo
		return nil
	}
}

func WithExtractor(extractor face.IExtractor) ServerOption {
	return func(s *Server) error {
		s.extractor = extractor
		return nil
	}
}

func WithStorage(store storage.IStorage) ServerOption {
	return func(s *Server) error {
		s.storage = store
		return nil
	}
}

func WithGalleryCache(cache redis.IGalleryCache) ServerOption {
	return func(s *Server) error {
		s.galleryCache = cache
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithUtils(u utils.IUtils) ServerOption {
	return func(s *Server) error {
		s.utils = u
		return nil
	}
}

func WithBcryptUtils(b bcrypt.IBcrypt) ServerOption {
	return func(s *Server) error {
		s.bcryptUtils = b
		return nil
	}
}

func (s *Server) RegisterHandler() {
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(s.middleware.NewLoggingMiddleware())

	// Student Domain
	studentServices := studentService.New(s.log, s.repo, s.extractor, s.storage, s.galleryCache, s.bcryptUtils, s.utils)
	studentHandlers := studentHandler.New(s.log, studentServices, s.validator, s.middleware)

	// Attendance Domain
	attendanceServices := attendanceService.New(s.log, s.repo, s.extractor, s.galleryCache, s.utils)
	attendanceHandlers := attendanceHandler.New(s.log, s.middleware, attendanceServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, studentHandlers, attendanceHandlers)

	for _, h := range s.handlers {
		h.Start(s.engine)
	}
}

// App exposes the fiber engine, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.engine
}

func (s *Server) Run(port string) error {
	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

// Shutdown stops the listener and releases the database, cache and recognizer.
func (s *Server) Shutdown() error {
	err := s.engine.Shutdown()

	if s.galleryCache != nil {
		if cerr := s.galleryCache.Close(); cerr != nil {
			s.log.Errorf("Failed to close gallery cache: %v", cerr)
		}
	}
	if s.db != nil {
		if cerr := s.db.Close(); cerr != nil {
			s.log.Errorf("Failed to close database: %v", cerr)
		}
	}
	s.extractor.Close()

	return err
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": MsgHealthy,
		})
	})
}
