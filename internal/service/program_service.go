package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
)

const entityProgram = "program"

type programRepository interface {
	List(ctx context.Context) ([]models.Program, error)
	FindByID(ctx context.Context, id string) (*models.Program, error)
	Create(ctx context.Context, program *models.Program) error
	Update(ctx context.Context, program *models.Program) error
	Delete(ctx context.Context, id string) error
}

// ProgramRequest carries the editable program fields.
type ProgramRequest struct {
	Name  string              `json:"name" validate:"required"`
	Code  string              `json:"code" validate:"required"`
	Level models.ProgramLevel `json:"level" validate:"required,oneof=BACHELOR MASTER PHD"`
}

// ProgramService manages study programs.
type ProgramService struct {
	repo      programRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewProgramService creates the service.
func NewProgramService(repo programRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *ProgramService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgramService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

func (s *ProgramService) List(ctx context.Context) ([]models.Program, error) {
	programs, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, entityProgram, "list")
	}
	return programs, nil
}

func (s *ProgramService) Get(ctx context.Context, id string) (*models.Program, error) {
	program, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityProgram, "load")
	}
	return program, nil
}

func (s *ProgramService) Create(ctx context.Context, req ProgramRequest) (program *models.Program, err error) {
	defer func() { s.metrics.RecordMutation(entityProgram, actionCreate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityProgram)
	}
	program = &models.Program{Name: req.Name, Code: req.Code, Level: req.Level}
	if err := s.repo.Create(ctx, program); err != nil {
		s.logger.Warn("create program failed", zap.String("code", req.Code), zap.Error(err))
		return nil, repoError(err, entityProgram, actionCreate)
	}
	return program, nil
}

func (s *ProgramService) Update(ctx context.Context, id string, req ProgramRequest) (program *models.Program, err error) {
	defer func() { s.metrics.RecordMutation(entityProgram, actionUpdate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityProgram)
	}
	program, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityProgram, "load")
	}
	program.Name, program.Code, program.Level = req.Name, req.Code, req.Level
	if err := s.repo.Update(ctx, program); err != nil {
		s.logger.Warn("update program failed", zap.String("id", id), zap.Error(err))
		return nil, repoError(err, entityProgram, actionUpdate)
	}
	return program, nil
}

func (s *ProgramService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecordMutation(entityProgram, actionDelete, err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete program failed", zap.String("id", id), zap.Error(err))
		return repoError(err, entityProgram, actionDelete)
	}
	return nil
}

func (r *ProgramRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	r.Level = models.ProgramLevel(strings.ToUpper(strings.TrimSpace(string(r.Level))))
}
