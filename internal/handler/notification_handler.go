package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/service"
	"github.com/kampus/orari/pkg/response"
)

type notificationService interface {
	List(ctx context.Context) ([]models.Notification, error)
	Get(ctx context.Context, id string) (*models.Notification, error)
	Create(ctx context.Context, req service.NotificationRequest) (*models.Notification, error)
	Update(ctx context.Context, id string, req service.NotificationRequest) (*models.Notification, error)
	Delete(ctx context.Context, id string) error
	Active(ctx context.Context) ([]models.Notification, error)
	SetActive(ctx context.Context, id string, active bool) error
}

// NotificationHandler manages banner notification endpoints.
type NotificationHandler struct {
	service notificationService
}

// NewNotificationHandler constructs handler.
func NewNotificationHandler(svc notificationService) *NotificationHandler {
	return &NotificationHandler{service: svc}
}

// List godoc
// @Summary List notifications
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications [get]
func (h *NotificationHandler) List(c *gin.Context) {
	notifications, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, notifications, len(notifications))
}

// Get godoc
// @Summary Get notification
// @Tags Notifications
// @Produce json
// @Param id path string true "Notification ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id} [get]
func (h *NotificationHandler) Get(c *gin.Context) {
	notification, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notification)
}

// Create godoc
// @Summary Create notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param payload body service.NotificationRequest true "Notification payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /notifications [post]
func (h *NotificationHandler) Create(c *gin.Context) {
	var req service.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	notification, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, notification)
}

// Update godoc
// @Summary Update notification
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param payload body service.NotificationRequest true "Notification payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id} [put]
func (h *NotificationHandler) Update(c *gin.Context) {
	var req service.NotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	notification, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, notification)
}

// Delete godoc
// @Summary Delete notification
// @Tags Notifications
// @Param id path string true "Notification ID"
// @Success 204
// @Failure 409 {object} response.Envelope
// @Router /notifications/{id} [delete]
func (h *NotificationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Active godoc
// @Summary List active notifications
// @Description Notifications shown in the public banner, newest first
// @Tags Notifications
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /notifications/active [get]
func (h *NotificationHandler) Active(c *gin.Context) {
	notifications, err := h.service.Active(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.List(c, notifications, len(notifications))
}

type setActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// SetActive godoc
// @Summary Toggle notification
// @Description Sets only the active flag
// @Tags Notifications
// @Accept json
// @Produce json
// @Param id path string true "Notification ID"
// @Param payload body setActiveRequest true "Active flag"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Router /notifications/{id}/active [patch]
func (h *NotificationHandler) SetActive(c *gin.Context) {
	var req setActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	if err := h.service.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
