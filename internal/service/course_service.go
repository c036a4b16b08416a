package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
)

const entityCourse = "course"

type courseRepository interface {
	List(ctx context.Context) ([]models.Course, error)
	ListWithProgram(ctx context.Context) ([]models.Course, error)
	FindByID(ctx context.Context, id string) (*models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, id string) error
}

// CourseRequest carries the editable course fields. The numeric ranges match
// what the console forms offer.
type CourseRequest struct {
	ProgramID    string `json:"program_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
	Code         string `json:"code" validate:"required"`
	Credits      int    `json:"credits" validate:"min=1,max=10"`
	ECTSCredits  int    `json:"ects_credits" validate:"min=1,max=30"`
	LectureHours int    `json:"lecture_hours" validate:"min=0,max=10"`
	LabHours     int    `json:"lab_hours" validate:"min=0,max=10"`
	Semester     int    `json:"semester" validate:"min=1,max=8"`
	Year         int    `json:"year" validate:"min=2020,max=2030"`
}

// CourseService manages courses.
type CourseService struct {
	repo      courseRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewCourseService creates the service.
func NewCourseService(repo courseRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// List returns courses with their program joined.
func (s *CourseService) List(ctx context.Context) ([]models.Course, error) {
	courses, err := s.repo.ListWithProgram(ctx)
	if err != nil {
		return nil, repoError(err, entityCourse, "list")
	}
	return courses, nil
}

func (s *CourseService) Get(ctx context.Context, id string) (*models.Course, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityCourse, "load")
	}
	return course, nil
}

func (s *CourseService) Create(ctx context.Context, req CourseRequest) (course *models.Course, err error) {
	defer func() { s.metrics.RecordMutation(entityCourse, actionCreate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityCourse)
	}
	course = &models.Course{}
	req.apply(course)
	if err := s.repo.Create(ctx, course); err != nil {
		s.logger.Warn("create course failed", zap.String("code", req.Code), zap.Error(err))
		return nil, repoError(err, entityCourse, actionCreate)
	}
	return course, nil
}

func (s *CourseService) Update(ctx context.Context, id string, req CourseRequest) (course *models.Course, err error) {
	defer func() { s.metrics.RecordMutation(entityCourse, actionUpdate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityCourse)
	}
	course, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityCourse, "load")
	}
	req.apply(course)
	if err := s.repo.Update(ctx, course); err != nil {
		s.logger.Warn("update course failed", zap.String("id", id), zap.Error(err))
		return nil, repoError(err, entityCourse, actionUpdate)
	}
	return course, nil
}

// Delete fails with a REFERENCED error while schedules still use the course.
func (s *CourseService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecordMutation(entityCourse, actionDelete, err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete course failed", zap.String("id", id), zap.Error(err))
		return repoError(err, entityCourse, actionDelete)
	}
	return nil
}

func (r *CourseRequest) normalize() {
	r.ProgramID = strings.TrimSpace(r.ProgramID)
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
}

func (r CourseRequest) apply(c *models.Course) {
	programID := r.ProgramID
	c.ProgramID = &programID
	c.Name = r.Name
	c.Code = r.Code
	c.Credits = r.Credits
	c.ECTSCredits = r.ECTSCredits
	c.LectureHours = r.LectureHours
	c.LabHours = r.LabHours
	c.Semester = r.Semester
	c.Year = r.Year
}
