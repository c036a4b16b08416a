package middleware

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/models"
	appErrors "github.com/kampus/orari/pkg/errors"
)

// Paths the gate treats specially.
const (
	LoginPath     = "/api/petrit/login"
	DashboardPath = "/dashboard"
	SchedulesPath = "/schedules"
	ManagePath    = "/manage"
)

// Session keys holding the issued tokens.
const (
	SessionAccessToken  = "access_token"
	SessionRefreshToken = "refresh_token"
)

type sessionAuthenticator interface {
	ValidateToken(token string) (*models.JWTClaims, error)
	Refresh(ctx context.Context, req models.RefreshTokenRequest) (*models.TokenPair, error)
}

// StoreTokens puts a freshly issued pair into the session.
func StoreTokens(session sessions.Session, pair *models.TokenPair) {
	session.Set(SessionAccessToken, pair.AccessToken)
	session.Set(SessionRefreshToken, pair.RefreshToken)
}

// ClearTokens removes the tokens from the session.
func ClearTokens(session sessions.Session) {
	session.Delete(SessionAccessToken)
	session.Delete(SessionRefreshToken)
}

// Gate resolves the session identity and applies the page access rules in
// order:
//
//  1. "/" and every path prefixed "/schedules" pass.
//  2. "/manage" and "/dashboard" prefixes without identity redirect to the
//     login entry point with redirectTo set to the original path.
//  3. GET or HEAD of the login entry point without identity redirects to
//     "/schedules".
//  4. The same with identity redirects to "/dashboard".
//  5. Everything else passes.
//
// The session cookie is rewritten on every request with opts, whichever rule
// applied, so an active session keeps sliding forward.
func Gate(auth sessionAuthenticator, opts sessions.Options, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		session := sessions.Default(c)
		identity := resolveIdentity(c, session, auth, logger)
		if identity != nil {
			setIdentity(c, identity)
		}

		session.Options(opts)
		if err := session.Save(); err != nil {
			logger.Warn("failed to save session", zap.Error(err))
		}

		if target, redirect := gateRedirect(c.Request, identity != nil); redirect {
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

func gateRedirect(r *http.Request, signedIn bool) (string, bool) {
	path := r.URL.Path
	switch {
	case path == "/" || strings.HasPrefix(path, SchedulesPath):
		return "", false
	case strings.HasPrefix(path, ManagePath) || strings.HasPrefix(path, DashboardPath):
		if signedIn {
			return "", false
		}
		return LoginPath + "?" + url.Values{"redirectTo": {path}}.Encode(), true
	case path == LoginPath && (r.Method == http.MethodGet || r.Method == http.MethodHead):
		if signedIn {
			return DashboardPath, true
		}
		return SchedulesPath, true
	default:
		return "", false
	}
}

// resolveIdentity validates the session access token, rotating it through the
// refresh token once it has expired. Tokens the auth service rejects are
// dropped; a server-side failure leaves them in place and the request is
// served anonymously.
func resolveIdentity(c *gin.Context, session sessions.Session, auth sessionAuthenticator, logger *zap.Logger) *models.Identity {
	access, _ := session.Get(SessionAccessToken).(string)
	refresh, _ := session.Get(SessionRefreshToken).(string)
	if access == "" && refresh == "" {
		return nil
	}

	if access != "" {
		if claims, err := auth.ValidateToken(access); err == nil {
			identity := claims.Identity()
			return &identity
		}
	}

	if refresh == "" {
		ClearTokens(session)
		return nil
	}
	pair, err := auth.Refresh(c.Request.Context(), models.RefreshTokenRequest{
		RefreshToken: refresh,
		IP:           c.ClientIP(),
		UserAgent:    c.Request.UserAgent(),
	})
	if err != nil {
		if appErrors.ServerFault(err) {
			logger.Warn("session refresh unavailable", zap.Error(err))
			return nil
		}
		logger.Debug("session refresh rejected", zap.Error(err))
		ClearTokens(session)
		return nil
	}
	StoreTokens(session, pair)
	identity := pair.User
	return &identity
}
