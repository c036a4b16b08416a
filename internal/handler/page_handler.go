package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/kampus/orari/internal/console"
	"github.com/kampus/orari/internal/dto"
	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/service"
	appErrors "github.com/kampus/orari/pkg/errors"
	"github.com/kampus/orari/pkg/response"
)

type pageViewService interface {
	PublicSchedule(ctx context.Context, now time.Time) (*dto.ScheduleView, error)
	Dashboard(ctx context.Context) (*dto.DashboardView, error)
	Console(ctx context.Context) (*dto.ConsoleData, error)
}

type scheduleExporter interface {
	Schedule(ctx context.Context, format string) (*service.ExportResult, error)
}

// PageHandlerParams wires the HTML page handler.
type PageHandlerParams struct {
	Views          pageViewService
	Exports        scheduleExporter
	Console        *console.Console
	AnalyticsTagID string
	// Location is the display timezone used to pick the current weekday.
	Location *time.Location
	Logger   *zap.Logger
}

// PageHandler renders the public schedule, the dashboard and the management
// console.
type PageHandler struct {
	pages
	views   pageViewService
	exports scheduleExporter
	console  *console.Console
	location *time.Location
	clock    func() time.Time
}

// NewPageHandler constructs the page handler.
func NewPageHandler(params PageHandlerParams) *PageHandler {
	return &PageHandler{
		pages:   newPages(params.AnalyticsTagID, params.Logger),
		views:   params.Views,
		exports: params.Exports,
		console:  params.Console,
		location: orUTC(params.Location),
		clock:    time.Now,
	}
}

func (h *PageHandler) now() time.Time {
	return h.clock().In(h.location)
}

// Home renders the public schedule with the notification banner.
func (h *PageHandler) Home(c *gin.Context) {
	h.renderSchedule(c, true)
}

// Schedules renders the public schedule.
func (h *PageHandler) Schedules(c *gin.Context) {
	h.renderSchedule(c, false)
}

func (h *PageHandler) renderSchedule(c *gin.Context, banner bool) {
	p := h.new(c, "Orari")
	p.ShowBanner = banner
	view, err := h.views.PublicSchedule(c.Request.Context(), h.now())
	if err != nil {
		p.Error = true
		c.HTML(http.StatusInternalServerError, "schedule.html", p)
		return
	}
	p.Data = view
	c.HTML(http.StatusOK, "schedule.html", p)
}

// Export godoc
// @Summary Download the schedule
// @Tags Schedules
// @Produce octet-stream
// @Param format query string false "pdf, csv or xlsx" default(pdf)
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /schedules/export [get]
func (h *PageHandler) Export(c *gin.Context) {
	result, err := h.exports.Schedule(c.Request.Context(), c.DefaultQuery("format", "pdf"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, result.ContentType, result.Payload)
}

// Dashboard renders the signed-in overview.
func (h *PageHandler) Dashboard(c *gin.Context) {
	p := h.new(c, "Dashboard")
	view, err := h.views.Dashboard(c.Request.Context())
	if err != nil {
		p.Error = true
		c.HTML(http.StatusInternalServerError, "dashboard.html", p)
		return
	}
	p.Data = view
	c.HTML(http.StatusOK, "dashboard.html", p)
}

type manageView struct {
	Tab     console.Entity
	Tabs    []console.Entity
	Tables  *console.Tables
	Create  formView
	Edit    *formView
	Confirm *confirmView
}

type formView struct {
	Entity      console.Entity
	Action      string
	Values      url.Values
	SubmitLabel string
	BusyLabel   string
	Busy        bool
	Options     *formOptions
}

type confirmView struct {
	Entity console.Entity
	Action string
	Prompt string
}

type formOptions struct {
	Programs     []models.Program
	Courses      []models.Course
	Instructors  []models.Instructor
	Rooms        []models.Room
	Levels       []models.ProgramLevel
	RoomTypes    []models.RoomType
	SessionTypes []models.SessionType
	Severities   []models.Severity
	Titles       []string
	Days         []int
}

// Manage renders the console. ?tab selects the collection, ?edit=<id> opens
// the edit dialog and ?confirm=<id> the delete confirmation.
func (h *PageHandler) Manage(c *gin.Context) {
	tab := tabFrom(c.Query("tab"))
	p := h.new(c, "Manage")
	tables, ok := h.loadTables(c, p)
	if !ok {
		return
	}

	view := h.manageView(c, tables, tab)
	if id := c.Query("edit"); id != "" {
		if state, found := h.console.EditState(tables, tab, id); found {
			view.Edit = editForm(tab, id, state.Values)
		}
	}
	if id := c.Query("confirm"); id != "" && tab.RequiresConfirmation() {
		if res := h.console.Delete(c.Request.Context(), tables, tab, id, false); res.Confirm != "" {
			view.Confirm = confirmFor(tab, id, res.Confirm)
		}
	}
	h.renderManage(c, p, view, tables)
}

// ManageCreate handles a creation form. Success redirects back to the tab so
// the listing is read again; failure re-renders with the submitted values.
func (h *PageHandler) ManageCreate(c *gin.Context) {
	entity, ok := console.ParseEntity(c.Param("entity"))
	if !ok {
		response.Error(c, appErrors.ErrUnknownCollection)
		return
	}
	values, err := postForm(c)
	if err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	result, err := h.console.Create(c.Request.Context(), submitKey(c), entity, values)
	if errors.Is(err, console.ErrBusy) {
		p := h.new(c, "Manage")
		tables, ok := h.loadTables(c, p)
		if !ok {
			return
		}
		view := h.manageView(c, tables, entity)
		view.Create.Values = values
		view.Create.Busy = true
		h.renderManage(c, p, view, tables)
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	if result.OK {
		h.flash(c, result.Notice)
		c.Redirect(http.StatusSeeOther, manageURL(entity))
		return
	}

	p := h.new(c, "Manage")
	p.Notices = append(p.Notices, result.Notice)
	tables, ok := h.loadTables(c, p)
	if !ok {
		return
	}
	view := h.manageView(c, tables, entity)
	view.Create.Values = result.Values
	h.renderManage(c, p, view, tables)
}

// ManageEdit saves the edit dialog for one record.
func (h *PageHandler) ManageEdit(c *gin.Context) {
	entity, ok := console.ParseEntity(c.Param("entity"))
	if !ok {
		response.Error(c, appErrors.ErrUnknownCollection)
		return
	}
	values, err := postForm(c)
	if err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	p := h.new(c, "Manage")
	tables, ok := h.loadTables(c, p)
	if !ok {
		return
	}
	id := c.Param("id")
	result := h.console.Edit(c.Request.Context(), tables, entity, id, values)
	p.Notices = append(p.Notices, result.Notice)

	view := h.manageView(c, tables, entity)
	if !result.OK {
		view.Edit = editForm(entity, id, result.Values)
	}
	h.renderManage(c, p, view, tables)
}

// ManageDelete removes one record, or asks for confirmation first when the
// collection requires it and confirmed is not set.
func (h *PageHandler) ManageDelete(c *gin.Context) {
	entity, ok := console.ParseEntity(c.Param("entity"))
	if !ok {
		response.Error(c, appErrors.ErrUnknownCollection)
		return
	}

	p := h.new(c, "Manage")
	tables, ok := h.loadTables(c, p)
	if !ok {
		return
	}
	id := c.Param("id")
	confirmed, _ := strconv.ParseBool(c.PostForm("confirmed"))
	result := h.console.Delete(c.Request.Context(), tables, entity, id, confirmed)

	view := h.manageView(c, tables, entity)
	if result.Confirm != "" {
		view.Confirm = confirmFor(entity, id, result.Confirm)
	}
	if result.Notice != nil {
		p.Notices = append(p.Notices, *result.Notice)
	}
	h.renderManage(c, p, view, tables)
}

// ManageToggle flips a notification's active flag.
func (h *PageHandler) ManageToggle(c *gin.Context) {
	entity, ok := console.ParseEntity(c.Param("entity"))
	if !ok || entity != console.Notifications {
		response.Error(c, appErrors.Clone(appErrors.ErrUnknownCollection, "only notifications can be toggled"))
		return
	}
	active, err := strconv.ParseBool(c.PostForm("active"))
	if err != nil {
		response.Error(c, invalidPayload(err))
		return
	}

	p := h.new(c, "Manage")
	tables, ok := h.loadTables(c, p)
	if !ok {
		return
	}
	notice, _ := h.console.Toggle(c.Request.Context(), tables, identityFromContext(c), c.Param("id"), active)
	p.Notices = append(p.Notices, notice)
	h.renderManage(c, p, h.manageView(c, tables, entity), tables)
}

func (h *PageHandler) loadTables(c *gin.Context, p *page) (*console.Tables, bool) {
	data, err := h.views.Console(c.Request.Context())
	if err != nil {
		p.Error = true
		c.HTML(http.StatusInternalServerError, "manage.html", p)
		return nil, false
	}
	return console.NewTables(data), true
}

func (h *PageHandler) manageView(c *gin.Context, tables *console.Tables, tab console.Entity) *manageView {
	values := url.Values{}
	if tab == console.Notifications {
		values.Set("is_active", "on")
	}
	return &manageView{
		Tab:    tab,
		Tabs:   console.Entities,
		Tables: tables,
		Create: formView{
			Entity:      tab,
			Action:      "/manage/" + string(tab),
			Values:      values,
			SubmitLabel: tab.SubmitLabel(),
			BusyLabel:   tab.BusyLabel(),
			Busy:        h.console.InFlight(submitKey(c) + "|" + string(tab)),
		},
	}
}

func (h *PageHandler) renderManage(c *gin.Context, p *page, view *manageView, tables *console.Tables) {
	options := &formOptions{
		Programs:     tables.Programs.Rows(),
		Courses:      tables.Courses.Rows(),
		Instructors:  tables.Instructors.Rows(),
		Rooms:        tables.Rooms.Rows(),
		Levels:       models.ProgramLevels,
		RoomTypes:    models.RoomTypes,
		SessionTypes: models.SessionTypes,
		Severities:   models.Severities,
		Titles:       models.InstructorTitles,
		Days:         []int{1, 2, 3, 4, 5, 6, 7},
	}
	view.Create.Options = options
	if view.Edit != nil {
		view.Edit.Options = options
	}
	p.Data = view
	c.HTML(http.StatusOK, "manage.html", p)
}

func editForm(entity console.Entity, id string, values url.Values) *formView {
	return &formView{
		Entity:      entity,
		Action:      "/manage/" + string(entity) + "/" + url.PathEscape(id),
		Values:      values,
		SubmitLabel: "Save changes",
		BusyLabel:   "Saving...",
	}
}

func confirmFor(entity console.Entity, id, prompt string) *confirmView {
	return &confirmView{
		Entity: entity,
		Action: "/manage/" + string(entity) + "/" + url.PathEscape(id) + "/delete",
		Prompt: prompt,
	}
}

func tabFrom(raw string) console.Entity {
	if entity, ok := console.ParseEntity(raw); ok {
		return entity
	}
	return console.Entities[0]
}

func manageURL(entity console.Entity) string {
	return "/manage?" + url.Values{"tab": {string(entity)}}.Encode()
}

func postForm(c *gin.Context) (url.Values, error) {
	if err := c.Request.ParseForm(); err != nil {
		return nil, err
	}
	return c.Request.PostForm, nil
}

// submitKey identifies who is submitting a form for the in-flight guard.
func submitKey(c *gin.Context) string {
	if identity := identityFromContext(c); identity != nil {
		return identity.UserID
	}
	return c.ClientIP()
}
