package handler

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"unicode"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/console"
	"github.com/kampus/orari/internal/middleware"
	"github.com/kampus/orari/internal/models"
	appErrors "github.com/kampus/orari/pkg/errors"
	"github.com/kampus/orari/pkg/response"
)

type authService interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.TokenPair, error)
	Refresh(ctx context.Context, req models.RefreshTokenRequest) (*models.TokenPair, error)
	Logout(ctx context.Context, refreshToken, userID string) error
}

// AuthHandler exposes the token API and the session sign-in pages.
type AuthHandler struct {
	pages
	service authService
}

// NewAuthHandler constructs the auth handler.
func NewAuthHandler(svc authService, analyticsTagID string, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{pages: newPages(analyticsTagID, logger), service: svc}
}

type logoutRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type loginForm struct {
	Email      string `form:"email"`
	Password   string `form:"password"`
	RedirectTo string `form:"redirectTo"`
}

type loginView struct {
	Email      string
	RedirectTo string
}

// Login godoc
// @Summary Login
// @Description Exchange credentials for an access and refresh token pair
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.LoginRequest true "Credentials"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Failure 429 {object} response.Envelope
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pair)
}

// Refresh godoc
// @Summary Refresh token
// @Tags Auth
// @Accept json
// @Produce json
// @Param payload body models.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	req.IP = c.ClientIP()
	req.UserAgent = c.Request.UserAgent()

	pair, err := h.service.Refresh(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, pair)
}

// Logout godoc
// @Summary Logout
// @Tags Auth
// @Accept json
// @Param payload body logoutRequest true "Refresh token"
// @Success 204
// @Failure 403 {object} response.Envelope
// @Router /auth/logout [post]
// @Security BearerAuth
func (h *AuthHandler) Logout(c *gin.Context) {
	identity := identityFromContext(c)
	if identity == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req logoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}
	if err := h.service.Logout(c.Request.Context(), req.RefreshToken, identity.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// LoginPage renders the sign-in form.
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if identityFromContext(c) != nil {
		c.Redirect(http.StatusFound, middleware.DashboardPath)
		return
	}
	p := h.new(c, "Sign in")
	p.Data = loginView{RedirectTo: c.Query("redirectTo")}
	c.HTML(http.StatusOK, "login.html", p)
}

// SessionLogin signs in from the login form, stores the tokens in the session
// cookie and redirects to redirectTo or the dashboard.
func (h *AuthHandler) SessionLogin(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	pair, err := h.service.Login(c.Request.Context(), models.LoginRequest{
		Email:     strings.TrimSpace(form.Email),
		Password:  form.Password,
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	})
	if err != nil {
		appErr := appErrors.FromError(err)
		h.logger.Info("session login failed", zap.String("email", form.Email), zap.String("code", appErr.Code))
		p := h.new(c, "Sign in")
		p.Notices = append(p.Notices, console.Notice{Title: "Sign in failed", Description: appErr.Message, Variant: console.VariantDestructive})
		p.Data = loginView{Email: form.Email, RedirectTo: form.RedirectTo}
		c.HTML(appErr.Status, "login.html", p)
		return
	}

	session := sessions.Default(c)
	middleware.StoreTokens(session, pair)
	if err := session.Save(); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session"))
		return
	}
	c.Redirect(http.StatusSeeOther, safeRedirect(form.RedirectTo))
}

// SessionLogout revokes the session's refresh token, clears the session and
// returns to the home page.
func (h *AuthHandler) SessionLogout(c *gin.Context) {
	session := sessions.Default(c)
	if refresh, _ := session.Get(middleware.SessionRefreshToken).(string); refresh != "" {
		if err := h.service.Logout(c.Request.Context(), refresh, ""); err != nil {
			h.logger.Warn("failed to revoke session token", zap.Error(err))
		}
	}
	middleware.ClearTokens(session)
	if err := session.Save(); err != nil {
		h.logger.Warn("failed to save session", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// safeRedirect keeps redirects on this site. Browsers drop tabs and newlines
// and read backslashes as slashes, so both the raw and the decoded target
// must be a plain local path.
func safeRedirect(target string) string {
	decoded, err := url.PathUnescape(target)
	if err != nil || !localPath(target) || !localPath(decoded) {
		return middleware.DashboardPath
	}
	return target
}

func localPath(p string) bool {
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.ContainsRune(p, '\\') {
		return false
	}
	for _, r := range p {
		if unicode.IsControl(r) {
			return false
		}
	}
	u, err := url.Parse(p)
	return err == nil && u.Scheme == "" && u.Host == ""
}
