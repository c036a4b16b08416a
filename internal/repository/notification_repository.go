package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kampus/orari/internal/models"
)

const notificationColumns = `id, title, message, severity, is_active, start_at, end_at, created_at, updated_at`

// NotificationRepository stores banner notifications.
type NotificationRepository struct {
	db *sqlx.DB
}

// NewNotificationRepository creates the repository.
func NewNotificationRepository(db *sqlx.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// List returns every notification, newest first.
func (r *NotificationRepository) List(ctx context.Context) ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, `SELECT `+notificationColumns+` FROM notifications ORDER BY created_at DESC`); err != nil {
		return nil, wrap("list notifications", err)
	}
	return notifications, nil
}

// ListActive returns active notifications, newest first. The display window
// is not applied.
func (r *NotificationRepository) ListActive(ctx context.Context) ([]models.Notification, error) {
	notifications := []models.Notification{}
	if err := r.db.SelectContext(ctx, &notifications, `SELECT `+notificationColumns+` FROM notifications WHERE is_active = TRUE ORDER BY created_at DESC`); err != nil {
		return nil, wrap("list active notifications", err)
	}
	return notifications, nil
}

// FindByID returns sql.ErrNoRows when the notification does not exist.
func (r *NotificationRepository) FindByID(ctx context.Context, id string) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.GetContext(ctx, &n, `SELECT `+notificationColumns+` FROM notifications WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find notification", err)
	}
	return &n, nil
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	n.CreatedAt = now
	n.UpdatedAt = now

	const query = `INSERT INTO notifications (id, title, message, severity, is_active, start_at, end_at, created_at, updated_at)
VALUES (:id, :title, :message, :severity, :is_active, :start_at, :end_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, n); err != nil {
		return wrap("create notification", err)
	}
	return nil
}

func (r *NotificationRepository) Update(ctx context.Context, n *models.Notification) error {
	n.UpdatedAt = time.Now().UTC()
	const query = `UPDATE notifications SET title = :title, message = :message, severity = :severity, is_active = :is_active,
	start_at = :start_at, end_at = :end_at, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, n)
	if err != nil {
		return wrap("update notification", err)
	}
	return affectedOne("update notification", res)
}

// SetActive flips only the active flag.
func (r *NotificationRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notifications SET is_active = $2, updated_at = $3 WHERE id = $1`, id, active, time.Now().UTC())
	if err != nil {
		return wrap("set notification active", err)
	}
	return affectedOne("set notification active", res)
}

func (r *NotificationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM notifications WHERE id = $1`, id)
	if err != nil {
		return wrap("delete notification", err)
	}
	return affectedOne("delete notification", res)
}
