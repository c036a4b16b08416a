package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kampus/orari/internal/middleware"
	"github.com/kampus/orari/internal/models"
	appErrors "github.com/kampus/orari/pkg/errors"
)

func identityFromContext(c *gin.Context) *models.Identity {
	identity, ok := middleware.IdentityFromContext(c)
	if !ok {
		return nil
	}
	return identity
}

func invalidPayload(err error) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload")
}
