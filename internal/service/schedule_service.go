package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
)

const entitySchedule = "schedule"

type scheduleRepository interface {
	ListDetailed(ctx context.Context) ([]models.ScheduleDetail, error)
	FindByID(ctx context.Context, id string) (*models.Schedule, error)
	Create(ctx context.Context, schedule *models.Schedule) error
	Update(ctx context.Context, schedule *models.Schedule) error
	Delete(ctx context.Context, id string) error
}

// ScheduleRequest carries the editable schedule fields. A nil or blank time
// is stored as NULL, meaning the hour is not decided yet.
type ScheduleRequest struct {
	CourseID     string             `json:"course_id" validate:"required"`
	InstructorID string             `json:"instructor_id" validate:"required"`
	RoomID       string             `json:"room_id" validate:"required"`
	DayOfWeek    int                `json:"day_of_week" validate:"min=1,max=7"`
	StartTime    *string            `json:"start_time" validate:"omitempty,clock"`
	EndTime      *string            `json:"end_time" validate:"omitempty,clock"`
	SessionType  models.SessionType `json:"session_type" validate:"required,oneof=LECTURE LAB SEMINAR EXAM"`
}

// ScheduleService manages schedule slots.
type ScheduleService struct {
	repo      scheduleRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewScheduleService creates the service.
func NewScheduleService(repo scheduleRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// List returns schedules with their joins, ordered by day then start time.
func (s *ScheduleService) List(ctx context.Context) ([]models.ScheduleDetail, error) {
	schedules, err := s.repo.ListDetailed(ctx)
	if err != nil {
		return nil, repoError(err, entitySchedule, "list")
	}
	return schedules, nil
}

func (s *ScheduleService) Get(ctx context.Context, id string) (*models.Schedule, error) {
	schedule, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entitySchedule, "load")
	}
	return schedule, nil
}

func (s *ScheduleService) Create(ctx context.Context, req ScheduleRequest) (schedule *models.Schedule, err error) {
	defer func() { s.metrics.RecordMutation(entitySchedule, actionCreate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entitySchedule)
	}
	schedule = &models.Schedule{}
	req.apply(schedule)
	if err := s.repo.Create(ctx, schedule); err != nil {
		s.logger.Warn("create schedule failed", zap.String("course_id", req.CourseID), zap.Int("day", req.DayOfWeek), zap.Error(err))
		return nil, repoError(err, entitySchedule, actionCreate)
	}
	return schedule, nil
}

func (s *ScheduleService) Update(ctx context.Context, id string, req ScheduleRequest) (schedule *models.Schedule, err error) {
	defer func() { s.metrics.RecordMutation(entitySchedule, actionUpdate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entitySchedule)
	}
	schedule, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entitySchedule, "load")
	}
	req.apply(schedule)
	if err := s.repo.Update(ctx, schedule); err != nil {
		s.logger.Warn("update schedule failed", zap.String("id", id), zap.Error(err))
		return nil, repoError(err, entitySchedule, actionUpdate)
	}
	return schedule, nil
}

func (s *ScheduleService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecordMutation(entitySchedule, actionDelete, err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete schedule failed", zap.String("id", id), zap.Error(err))
		return repoError(err, entitySchedule, actionDelete)
	}
	return nil
}

func (r *ScheduleRequest) normalize() {
	r.CourseID = strings.TrimSpace(r.CourseID)
	r.InstructorID = strings.TrimSpace(r.InstructorID)
	r.RoomID = strings.TrimSpace(r.RoomID)
	r.StartTime = optional(r.StartTime)
	r.EndTime = optional(r.EndTime)
	r.SessionType = models.SessionType(strings.ToUpper(strings.TrimSpace(string(r.SessionType))))
}

func (r ScheduleRequest) apply(s *models.Schedule) {
	s.CourseID = r.CourseID
	s.InstructorID = r.InstructorID
	s.RoomID = r.RoomID
	s.DayOfWeek = r.DayOfWeek
	s.StartTime = r.StartTime
	s.EndTime = r.EndTime
	s.SessionType = r.SessionType
}
