package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appErrors "github.com/kampus/orari/pkg/errors"
	"github.com/kampus/orari/pkg/middleware/requestid"
)

// Envelope is the body of every /api/v1 response. Errors carry the request id
// so a failed console or API call can be matched to the access log.
type Envelope struct {
	Data      interface{}      `json:"data,omitempty"`
	Error     *appErrors.Error `json:"error,omitempty"`
	Meta      *Meta            `json:"meta,omitempty"`
	RequestID string           `json:"request_id,omitempty"`
}

// Meta describes a collection listing.
type Meta struct {
	Count int `json:"count"`
}

func noStore(c *gin.Context) {
	c.Header("Cache-Control", "no-store")
	c.Header("Pragma", "no-cache")
}

// JSON sends a single record or view.
func JSON(c *gin.Context, status int, data interface{}) {
	noStore(c)
	c.JSON(status, Envelope{Data: data})
}

// List sends a whole record collection with its size.
func List(c *gin.Context, rows interface{}, count int) {
	noStore(c)
	c.JSON(http.StatusOK, Envelope{Data: rows, Meta: &Meta{Count: count}})
}

// Created responds with HTTP 201 Created.
func Created(c *gin.Context, data interface{}) {
	JSON(c, http.StatusCreated, data)
}

// Error converts err to the typed error and sends it with its status.
func Error(c *gin.Context, err error) {
	appErr := appErrors.FromError(err)
	_ = c.Error(err)
	noStore(c)
	c.JSON(appErr.Status, Envelope{Error: appErr, RequestID: requestid.Value(c)})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
