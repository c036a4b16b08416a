package handler

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/console"
	"github.com/kampus/orari/internal/models"
)

func init() {
	gob.Register(console.Notice{})
}

// page is the data every rendered template receives.
type page struct {
	Title          string
	Identity       *models.Identity
	AnalyticsTagID string
	Notices        []console.Notice
	Error          bool
	ShowBanner     bool
	Data           interface{}
}

// pages builds page data shared by the HTML handlers.
type pages struct {
	analyticsTagID string
	logger         *zap.Logger
}

func newPages(analyticsTagID string, logger *zap.Logger) pages {
	if logger == nil {
		logger = zap.NewNop()
	}
	return pages{analyticsTagID: analyticsTagID, logger: logger}
}

func (p pages) new(c *gin.Context, title string) *page {
	return &page{
		Title:          title,
		Identity:       identityFromContext(c),
		AnalyticsTagID: p.analyticsTagID,
		Notices:        p.takeFlashes(c),
	}
}

// flash queues a notice for the next rendered page.
func (p pages) flash(c *gin.Context, notice console.Notice) {
	session := sessions.Default(c)
	session.AddFlash(notice)
	if err := session.Save(); err != nil {
		p.logger.Warn("failed to save flash", zap.Error(err))
	}
}

func (p pages) takeFlashes(c *gin.Context) []console.Notice {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(); err != nil {
		p.logger.Warn("failed to save session", zap.Error(err))
	}
	notices := make([]console.Notice, 0, len(raw))
	for _, item := range raw {
		if notice, ok := item.(console.Notice); ok {
			notices = append(notices, notice)
		}
	}
	return notices
}
