package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
)

const entityInstructor = "instructor"

type instructorRepository interface {
	List(ctx context.Context) ([]models.Instructor, error)
	FindByID(ctx context.Context, id string) (*models.Instructor, error)
	Create(ctx context.Context, instructor *models.Instructor) error
	Update(ctx context.Context, instructor *models.Instructor) error
	Delete(ctx context.Context, id string) error
}

// InstructorRequest carries the editable instructor fields. Blank email and
// title are stored as NULL.
type InstructorRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email" validate:"omitempty,email"`
	Title *string `json:"title"`
}

// InstructorService manages instructors.
type InstructorService struct {
	repo      instructorRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewInstructorService creates the service.
func NewInstructorService(repo instructorRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *InstructorService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InstructorService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

func (s *InstructorService) List(ctx context.Context) ([]models.Instructor, error) {
	instructors, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, entityInstructor, "list")
	}
	return instructors, nil
}

func (s *InstructorService) Get(ctx context.Context, id string) (*models.Instructor, error) {
	instructor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityInstructor, "load")
	}
	return instructor, nil
}

func (s *InstructorService) Create(ctx context.Context, req InstructorRequest) (instructor *models.Instructor, err error) {
	defer func() { s.metrics.RecordMutation(entityInstructor, actionCreate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityInstructor)
	}
	instructor = &models.Instructor{Name: req.Name, Email: req.Email, Title: req.Title}
	if err := s.repo.Create(ctx, instructor); err != nil {
		s.logger.Warn("create instructor failed", zap.String("name", req.Name), zap.Error(err))
		return nil, repoError(err, entityInstructor, actionCreate)
	}
	return instructor, nil
}

func (s *InstructorService) Update(ctx context.Context, id string, req InstructorRequest) (instructor *models.Instructor, err error) {
	defer func() { s.metrics.RecordMutation(entityInstructor, actionUpdate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityInstructor)
	}
	instructor, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityInstructor, "load")
	}
	instructor.Name, instructor.Email, instructor.Title = req.Name, req.Email, req.Title
	if err := s.repo.Update(ctx, instructor); err != nil {
		s.logger.Warn("update instructor failed", zap.String("id", id), zap.Error(err))
		return nil, repoError(err, entityInstructor, actionUpdate)
	}
	return instructor, nil
}

// Delete fails with a REFERENCED error while schedules still use the instructor.
func (s *InstructorService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecordMutation(entityInstructor, actionDelete, err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete instructor failed", zap.String("id", id), zap.Error(err))
		return repoError(err, entityInstructor, actionDelete)
	}
	return nil
}

func (r *InstructorRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = optional(r.Email)
	r.Title = optional(r.Title)
}
