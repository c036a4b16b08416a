package service

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
	appErrors "github.com/kampus/orari/pkg/errors"
)

const entityNotification = "notification"

type notificationRepository interface {
	List(ctx context.Context) ([]models.Notification, error)
	ListActive(ctx context.Context) ([]models.Notification, error)
	FindByID(ctx context.Context, id string) (*models.Notification, error)
	Create(ctx context.Context, n *models.Notification) error
	Update(ctx context.Context, n *models.Notification) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
}

// NotificationRequest carries the editable notification fields. A nil
// IsActive means active on create and unchanged on update.
type NotificationRequest struct {
	Title    string          `json:"title" validate:"required"`
	Message  string          `json:"message" validate:"required"`
	Severity models.Severity `json:"severity" validate:"required,oneof=info success warning destructive"`
	IsActive *bool           `json:"is_active"`
	StartAt  *time.Time      `json:"start_at"`
	EndAt    *time.Time      `json:"end_at"`
}

// NotificationService manages banner notifications.
type NotificationService struct {
	repo      notificationRepository
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
}

// NewNotificationService creates the service.
func NewNotificationService(repo notificationRepository, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *NotificationService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &NotificationService{repo: repo, validator: validate, metrics: metrics, logger: logger}
}

// List returns every notification, newest first.
func (s *NotificationService) List(ctx context.Context) ([]models.Notification, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, repoError(err, entityNotification, "list")
	}
	return list, nil
}

// Active returns the notifications shown in the public banner.
func (s *NotificationService) Active(ctx context.Context) ([]models.Notification, error) {
	list, err := s.repo.ListActive(ctx)
	if err != nil {
		return nil, repoError(err, entityNotification, "list")
	}
	return list, nil
}

func (s *NotificationService) Get(ctx context.Context, id string) (*models.Notification, error) {
	n, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityNotification, "load")
	}
	return n, nil
}

func (s *NotificationService) Create(ctx context.Context, req NotificationRequest) (n *models.Notification, err error) {
	defer func() { s.metrics.RecordMutation(entityNotification, actionCreate, err) }()

	if err := s.validate(&req); err != nil {
		return nil, err
	}
	n = &models.Notification{IsActive: true}
	req.apply(n)
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("create notification failed", zap.String("title", req.Title), zap.Error(err))
		return nil, repoError(err, entityNotification, actionCreate)
	}
	return n, nil
}

func (s *NotificationService) Update(ctx context.Context, id string, req NotificationRequest) (n *models.Notification, err error) {
	defer func() { s.metrics.RecordMutation(entityNotification, actionUpdate, err) }()

	if err := s.validate(&req); err != nil {
		return nil, err
	}
	n, err = s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, repoError(err, entityNotification, "load")
	}
	req.apply(n)
	if err := s.repo.Update(ctx, n); err != nil {
		s.logger.Warn("update notification failed", zap.String("id", id), zap.Error(err))
		return nil, repoError(err, entityNotification, actionUpdate)
	}
	return n, nil
}

// SetActive writes only the active flag.
func (s *NotificationService) SetActive(ctx context.Context, id string, active bool) (err error) {
	defer func() { s.metrics.RecordMutation(entityNotification, actionToggle, err) }()

	if err := s.repo.SetActive(ctx, id, active); err != nil {
		s.logger.Warn("toggle notification failed", zap.String("id", id), zap.Bool("active", active), zap.Error(err))
		return repoError(err, entityNotification, actionUpdate)
	}
	return nil
}

func (s *NotificationService) Delete(ctx context.Context, id string) (err error) {
	defer func() { s.metrics.RecordMutation(entityNotification, actionDelete, err) }()

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Warn("delete notification failed", zap.String("id", id), zap.Error(err))
		return repoError(err, entityNotification, actionDelete)
	}
	return nil
}

func (s *NotificationService) validate(req *NotificationRequest) error {
	req.Title = strings.TrimSpace(req.Title)
	req.Message = strings.TrimSpace(req.Message)
	req.Severity = models.Severity(strings.ToLower(strings.TrimSpace(string(req.Severity))))
	if err := s.validator.Struct(req); err != nil {
		return validationError(err, entityNotification)
	}
	if req.StartAt != nil && req.EndAt != nil && req.EndAt.Before(*req.StartAt) {
		return appErrors.Clone(appErrors.ErrValidation, "end_at must not be before start_at")
	}
	return nil
}

func (r NotificationRequest) apply(n *models.Notification) {
	n.Title = r.Title
	n.Message = r.Message
	n.Severity = r.Severity
	if r.IsActive != nil {
		n.IsActive = *r.IsActive
	}
	n.StartAt = utc(r.StartAt)
	n.EndAt = utc(r.EndAt)
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
