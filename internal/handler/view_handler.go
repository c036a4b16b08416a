package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kampus/orari/internal/dto"
	"github.com/kampus/orari/pkg/response"
)

type viewService interface {
	PublicSchedule(ctx context.Context, now time.Time) (*dto.ScheduleView, error)
	Dashboard(ctx context.Context) (*dto.DashboardView, error)
}

// ViewHandler serves the read views as JSON.
type ViewHandler struct {
	service  viewService
	location *time.Location
	clock    func() time.Time
}

// NewViewHandler constructs handler. loc is the display timezone; nil means UTC.
func NewViewHandler(svc viewService, loc *time.Location) *ViewHandler {
	return &ViewHandler{service: svc, location: orUTC(loc), clock: time.Now}
}

func (h *ViewHandler) now() time.Time {
	return h.clock().In(h.location)
}

func orUTC(loc *time.Location) *time.Location {
	if loc == nil {
		return time.UTC
	}
	return loc
}

// PublicSchedule godoc
// @Summary Public schedule
// @Description Every schedule ordered by weekday with display labels and active banners
// @Tags Schedules
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /schedules/public [get]
func (h *ViewHandler) PublicSchedule(c *gin.Context) {
	view, err := h.service.PublicSchedule(c.Request.Context(), h.now())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}

// Dashboard godoc
// @Summary Dashboard
// @Description Record counts, recent schedules and the per-weekday histogram
// @Tags Dashboard
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /dashboard [get]
// @Security BearerAuth
func (h *ViewHandler) Dashboard(c *gin.Context) {
	view, err := h.service.Dashboard(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view)
}
