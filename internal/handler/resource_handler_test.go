package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kampus/orari/internal/dto"
	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/service"
	"github.com/kampus/orari/internal/timetable"
	appErrors "github.com/kampus/orari/pkg/errors"
)

type fakeProgramService struct {
	created   []service.ProgramRequest
	deleteErr error
}

func (f *fakeProgramService) List(context.Context) ([]models.Program, error) {
	return []models.Program{{ID: "p1", Name: "Computer Science"}}, nil
}

func (f *fakeProgramService) Get(_ context.Context, id string) (*models.Program, error) {
	if id != "p1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "program not found")
	}
	return &models.Program{ID: "p1", Name: "Computer Science"}, nil
}

func (f *fakeProgramService) Create(_ context.Context, req service.ProgramRequest) (*models.Program, error) {
	f.created = append(f.created, req)
	return &models.Program{ID: "p2", Name: req.Name, Code: req.Code, Level: req.Level}, nil
}

func (f *fakeProgramService) Update(_ context.Context, id string, req service.ProgramRequest) (*models.Program, error) {
	return &models.Program{ID: id, Name: req.Name}, nil
}

func (f *fakeProgramService) Delete(context.Context, string) error {
	return f.deleteErr
}

type fakeNotificationService struct {
	setActive []bool
}

func (f *fakeNotificationService) List(context.Context) ([]models.Notification, error) {
	return nil, nil
}

func (f *fakeNotificationService) Get(context.Context, string) (*models.Notification, error) {
	return nil, appErrors.ErrNotFound
}

func (f *fakeNotificationService) Create(_ context.Context, req service.NotificationRequest) (*models.Notification, error) {
	return &models.Notification{ID: "n1", Title: req.Title}, nil
}

func (f *fakeNotificationService) Update(_ context.Context, id string, req service.NotificationRequest) (*models.Notification, error) {
	return &models.Notification{ID: id, Title: req.Title}, nil
}

func (f *fakeNotificationService) Delete(context.Context, string) error { return nil }

func (f *fakeNotificationService) Active(context.Context) ([]models.Notification, error) {
	return []models.Notification{{ID: "n1", Title: "Exam week", IsActive: true}}, nil
}

func (f *fakeNotificationService) SetActive(_ context.Context, _ string, active bool) error {
	f.setActive = append(f.setActive, active)
	return nil
}

func sendJSON(handler gin.HandlerFunc, method, target, body string, params ...gin.Param) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	handler(c)
	c.Writer.WriteHeaderNow()
	return rec
}

func TestProgramHandlerCreate(t *testing.T) {
	svc := &fakeProgramService{}
	h := NewProgramHandler(svc)

	rec := sendJSON(h.Create, http.MethodPost, "/programs", `{"name":"Computer Science","code":"CS","level":"BACHELOR"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, svc.created, 1)
	assert.Equal(t, models.ProgramLevelBachelor, svc.created[0].Level)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "p2", envelope.Data["id"])
}

func TestProgramHandlerCreateInvalidPayload(t *testing.T) {
	h := NewProgramHandler(&fakeProgramService{})

	rec := sendJSON(h.Create, http.MethodPost, "/programs", `{"name":`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
}

func TestProgramHandlerGetNotFound(t *testing.T) {
	h := NewProgramHandler(&fakeProgramService{})

	rec := sendJSON(h.Get, http.MethodGet, "/programs/missing", "", gin.Param{Key: "id", Value: "missing"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProgramHandlerDeleteReferenced(t *testing.T) {
	h := NewProgramHandler(&fakeProgramService{deleteErr: appErrors.Clone(appErrors.ErrReferenced, "program is still referenced by courses")})

	rec := sendJSON(h.Delete, http.MethodDelete, "/programs/p1", "", gin.Param{Key: "id", Value: "p1"})

	assert.Equal(t, http.StatusConflict, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "REFERENCED", envelope.Error.Code)

	ok := NewProgramHandler(&fakeProgramService{})
	rec = sendJSON(ok.Delete, http.MethodDelete, "/programs/p1", "", gin.Param{Key: "id", Value: "p1"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestNotificationHandlerSetActive(t *testing.T) {
	svc := &fakeNotificationService{}
	h := NewNotificationHandler(svc)

	rec := sendJSON(h.SetActive, http.MethodPatch, "/notifications/n1/active", `{"is_active":false}`, gin.Param{Key: "id", Value: "n1"})
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []bool{false}, svc.setActive)

	rec = sendJSON(h.SetActive, http.MethodPatch, "/notifications/n1/active", `{}`, gin.Param{Key: "id", Value: "n1"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Len(t, svc.setActive, 1)
}

func TestNotificationHandlerActive(t *testing.T) {
	h := NewNotificationHandler(&fakeNotificationService{})

	rec := sendJSON(h.Active, http.MethodGet, "/notifications/active", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Exam week")
}

type fakeViewService struct {
	err  error
	seen time.Time
}

func (f *fakeViewService) PublicSchedule(_ context.Context, now time.Time) (*dto.ScheduleView, error) {
	f.seen = now
	if f.err != nil {
		return nil, f.err
	}
	return &dto.ScheduleView{Rows: []dto.ScheduleRow{{ID: "s1", CourseName: "Algorithms"}}, CurrentDay: 1}, nil
}

func (f *fakeViewService) Dashboard(context.Context) (*dto.DashboardView, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.DashboardView{Counts: dto.DashboardCounts{Courses: 2}}, nil
}

func TestViewHandlerPublicSchedule(t *testing.T) {
	h := NewViewHandler(&fakeViewService{}, nil)

	rec := sendJSON(h.PublicSchedule, http.MethodGet, "/schedules/public", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	rows, ok := envelope.Data["rows"].([]interface{})
	require.True(t, ok)
	assert.Len(t, rows, 1)
}

func TestViewHandlerUsesDisplayTimezone(t *testing.T) {
	svc := &fakeViewService{}
	cet := time.FixedZone("CET", 60*60)
	h := NewViewHandler(svc, cet)
	h.clock = func() time.Time { return time.Date(2026, 10, 18, 23, 30, 0, 0, time.UTC) }

	rec := sendJSON(h.PublicSchedule, http.MethodGet, "/schedules/public", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, cet, svc.seen.Location())
	assert.Equal(t, 1, timetable.DayOfWeek(svc.seen))
}

func TestViewHandlerDashboardFailure(t *testing.T) {
	h := NewViewHandler(&fakeViewService{err: appErrors.Clone(appErrors.ErrInternal, "failed to load dashboard data")}, nil)

	rec := sendJSON(h.Dashboard, http.MethodGet, "/dashboard", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "failed to load dashboard data")
}

type fakePinger struct {
	err error
}

func (f fakePinger) PingContext(context.Context) error { return f.err }

func TestMetricsHandlerReady(t *testing.T) {
	rec := sendJSON(NewMetricsHandler(nil, fakePinger{}).Ready, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = sendJSON(NewMetricsHandler(nil, fakePinger{err: errors.New("connection refused")}).Ready, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "connection refused")

	rec = sendJSON(NewMetricsHandler(nil, nil).Ready, http.MethodGet, "/ready", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestMetricsHandlerPrometheus(t *testing.T) {
	rec := sendJSON(NewMetricsHandler(nil, nil).Prometheus, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	metrics := service.NewMetricsService()
	metrics.RecordMutation("courses", "create", nil)
	rec = sendJSON(NewMetricsHandler(metrics, nil).Prometheus, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "orari_mutations_total")
}
