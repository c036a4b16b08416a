package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/kampus/orari/pkg/errors"
	"github.com/kampus/orari/pkg/middleware/requestid"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(requestid.Middleware())
	r.GET("/rooms", func(c *gin.Context) {
		List(c, []string{"A-101", "Lab 2"}, 2)
	})
	r.DELETE("/courses/:id", func(c *gin.Context) {
		Error(c, appErrors.Clone(appErrors.ErrReferenced, "course is still referenced by schedules"))
	})
	r.POST("/manage/:entity", func(c *gin.Context) {
		Error(c, appErrors.ErrUnknownCollection)
	})
	return r
}

func serve(r *gin.Engine, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set(requestid.Header, "req-42")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestListCarriesCount(t *testing.T) {
	rec := serve(newRouter(), http.MethodGet, "/rooms")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
	var body struct {
		Data []string `json:"data"`
		Meta Meta     `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{"A-101", "Lab 2"}, body.Data)
	assert.Equal(t, 2, body.Meta.Count)
	assert.NotContains(t, rec.Body.String(), "request_id")
}

func TestErrorCarriesCodeAndRequestID(t *testing.T) {
	r := newRouter()

	rec := serve(r, http.MethodDelete, "/courses/c1")
	assert.Equal(t, http.StatusConflict, rec.Code)
	var body struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "REFERENCED", body.Error.Code)
	assert.Equal(t, "course is still referenced by schedules", body.Error.Message)
	assert.Equal(t, "req-42", body.RequestID)

	rec = serve(r, http.MethodPost, "/manage/students")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "UNKNOWN_COLLECTION")
}
