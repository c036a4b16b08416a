package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
)

const entityRoom = "room"

type roomRepository interface {
	List(ctx context.Context) ([]models.Room, error)
	FindByID(ctx context.Context, id string) (*models.Room, error)
	Create(ctx context.Context, room *models.Room) error
	Update(ctx context.Context, room *models.Room) error
	Delete(ctx context.Context, id string) error
}

// RoomRequest carries the editable room fields.
type RoomRequest struct {
	Name     string           `json:"name" validate:"required"`
	Code     string           `json:"code" validate:"required"`
	Capacity *int             `json:"capacity" validate:"omitempty,gt=0"`
	RoomType *models.RoomType `json:"room_type" validate:"omitempty,oneof=LECTURE LAB SEMINAR COMPUTER_LAB"`
}

// RoomService manages rooms.
type RoomService struct {
	repo      roomRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewRoomService creates the service.
func NewRoomService(repo roomRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *RoomService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RoomService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	rooms, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, entityRoom, "list")
	}
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id string) (*models.Room, error) {
	room, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityRoom, "load")
	}
	return room, nil
}

func (s *RoomService) Create(ctx context.Context, req RoomRequest) (room *models.Room, err error) {
	defer func() { s.metrics.RecordMutation(entityRoom, actionCreate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityRoom)
	}
	room = &models.Room{Name: req.Name, Code: req.Code, Capacity: req.Capacity, RoomType: req.RoomType}
	if err := s.repo.Create(ctx, room); err != nil {
		s.logger.Warn("create room failed", zap.String("code", req.Code), zap.Error(err))
		return nil, repoError(err, entityRoom, actionCreate)
	}
	return room, nil
}

func (s *RoomService) Update(ctx context.Context, id string, req RoomRequest) (room *models.Room, err error) {
	defer func() { s.metrics.RecordMutation(entityRoom, actionUpdate, err) }()

	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, entityRoom)
	}
	room, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityRoom, "load")
	}
	room.Name, room.Code, room.Capacity, room.RoomType = req.Name, req.Code, req.Capacity, req.RoomType
	if err := s.repo.Update(ctx, room); err != nil {
		s.logger.Warn("update room failed", zap.String("id", id), zap.Error(err))
		return nil, repoError(err, entityRoom, actionUpdate)
	}
	return room, nil
}

func (s *RoomService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecordMutation(entityRoom, actionDelete, err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete room failed", zap.String("id", id), zap.Error(err))
		return repoError(err, entityRoom, actionDelete)
	}
	return nil
}

func (r *RoomRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Code = strings.TrimSpace(r.Code)
	if r.RoomType != nil && strings.TrimSpace(string(*r.RoomType)) == "" {
		r.RoomType = nil
	}
}
