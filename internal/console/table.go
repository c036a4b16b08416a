package console

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/kampus/orari/internal/dto"
	"github.com/kampus/orari/internal/models"
	"github.com/kampus/orari/internal/timetable"
)

// Table is a locally owned list of records seeded from a read. Mutations only
// happen after the matching backend call succeeded.
type Table[T any] struct {
	rows []T
	key  func(T) string
}

// NewTable copies rows into a new table keyed by key.
func NewTable[T any](rows []T, key func(T) string) *Table[T] {
	t := &Table[T]{key: key}
	t.Reset(rows)
	return t
}

// Reset replaces the contents with a copy of rows.
func (t *Table[T]) Reset(rows []T) {
	t.rows = append(make([]T, 0, len(rows)), rows...)
}

// Rows returns the current records in order.
func (t *Table[T]) Rows() []T { return t.rows }

func (t *Table[T]) Len() int { return len(t.rows) }

func (t *Table[T]) index(id string) int {
	for i, row := range t.rows {
		if t.key(row) == id {
			return i
		}
	}
	return -1
}

// Find returns a copy of the record with id.
func (t *Table[T]) Find(id string) (T, bool) {
	if i := t.index(id); i >= 0 {
		return t.rows[i], true
	}
	var zero T
	return zero, false
}

// Patch replaces the record with id in place.
func (t *Table[T]) Patch(id string, row T) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.rows[i] = row
	return true
}

// Remove drops the record with id.
func (t *Table[T]) Remove(id string) bool {
	i := t.index(id)
	if i < 0 {
		return false
	}
	t.rows = append(t.rows[:i], t.rows[i+1:]...)
	return true
}

// Tables holds one table per console tab.
type Tables struct {
	Programs      *Table[models.Program]
	Courses       *Table[models.Course]
	Instructors   *Table[models.Instructor]
	Rooms         *Table[models.Room]
	Schedules     *Table[models.ScheduleDetail]
	Notifications *Table[models.Notification]
}

// NewTables seeds the tables from a console read.
func NewTables(data *dto.ConsoleData) *Tables {
	if data == nil {
		data = &dto.ConsoleData{}
	}
	return &Tables{
		Programs:      NewTable(data.Programs, func(p models.Program) string { return p.ID }),
		Courses:       NewTable(data.Courses, func(c models.Course) string { return c.ID }),
		Instructors:   NewTable(data.Instructors, func(i models.Instructor) string { return i.ID }),
		Rooms:         NewTable(data.Rooms, func(r models.Room) string { return r.ID }),
		Schedules:     NewTable(data.Schedules, func(s models.ScheduleDetail) string { return s.ID }),
		Notifications: NewTable(data.Notifications, func(n models.Notification) string { return n.ID }),
	}
}

// EditState is the edit dialog content. Values is an independent copy, so
// changing it never touches the table.
type EditState struct {
	Entity Entity
	ID     string
	Values url.Values
}

// EditState builds the dialog for the record with id, or false when absent.
func (c *Console) EditState(t *Tables, entity Entity, id string) (*EditState, bool) {
	values := url.Values{}
	switch entity {
	case Programs:
		p, ok := t.Programs.Find(id)
		if !ok {
			return nil, false
		}
		values.Set("name", p.Name)
		values.Set("code", p.Code)
		values.Set("level", string(p.Level))
	case Courses:
		co, ok := t.Courses.Find(id)
		if !ok {
			return nil, false
		}
		values.Set("program_id", deref(co.ProgramID))
		values.Set("name", co.Name)
		values.Set("code", co.Code)
		values.Set("credits", strconv.Itoa(co.Credits))
		values.Set("ects_credits", strconv.Itoa(co.ECTSCredits))
		values.Set("lecture_hours", strconv.Itoa(co.LectureHours))
		values.Set("lab_hours", strconv.Itoa(co.LabHours))
		values.Set("semester", strconv.Itoa(co.Semester))
		values.Set("year", strconv.Itoa(co.Year))
	case Instructors:
		in, ok := t.Instructors.Find(id)
		if !ok {
			return nil, false
		}
		values.Set("name", in.Name)
		values.Set("email", deref(in.Email))
		values.Set("title", deref(in.Title))
	case Rooms:
		r, ok := t.Rooms.Find(id)
		if !ok {
			return nil, false
		}
		values.Set("name", r.Name)
		values.Set("code", r.Code)
		if r.Capacity != nil {
			values.Set("capacity", strconv.Itoa(*r.Capacity))
		}
		if r.RoomType != nil {
			values.Set("room_type", string(*r.RoomType))
		}
	case Schedules:
		s, ok := t.Schedules.Find(id)
		if !ok {
			return nil, false
		}
		values.Set("course_id", s.CourseID)
		values.Set("instructor_id", s.InstructorID)
		values.Set("room_id", s.RoomID)
		values.Set("day_of_week", strconv.Itoa(s.DayOfWeek))
		values.Set("session_type", string(s.SessionType))
		setClock(values, "start_time", "no_start_time", s.StartTime)
		setClock(values, "end_time", "no_end_time", s.EndTime)
	case Notifications:
		n, ok := t.Notifications.Find(id)
		if !ok {
			return nil, false
		}
		values.Set("title", n.Title)
		values.Set("message", n.Message)
		values.Set("severity", string(n.Severity))
		if n.IsActive {
			values.Set("is_active", "on")
		}
		if n.StartAt != nil {
			values.Set("start_at", n.StartAt.In(c.location).Format(DateTimeLocal))
		}
		if n.EndAt != nil {
			values.Set("end_at", n.EndAt.In(c.location).Format(DateTimeLocal))
		}
	default:
		return nil, false
	}
	return &EditState{Entity: entity, ID: id, Values: values}, true
}

// EditResult is the outcome of saving an edit dialog. On failure the dialog
// stays open with Values.
type EditResult struct {
	Notice Notice
	OK     bool
	Values url.Values
}

// Edit sends one update for id and, on success, patches only that record,
// re-resolving its display joins from the other tables.
func (c *Console) Edit(ctx context.Context, t *Tables, entity Entity, id string, values url.Values) EditResult {
	if err := c.edit(ctx, t, entity, id, values); err != nil {
		c.logger.Warn("console update failed", zap.String("entity", string(entity)), zap.String("id", id), zap.Error(err))
		return EditResult{Notice: failure("Failed to update " + entity.Noun()), Values: cloneValues(values)}
	}
	return EditResult{Notice: success("Saved", entity.Title()+" updated"), OK: true}
}

func (c *Console) edit(ctx context.Context, t *Tables, entity Entity, id string, values url.Values) error {
	switch entity {
	case Programs:
		p, err := c.programs.Update(ctx, id, DecodeProgram(values))
		if err != nil {
			return err
		}
		t.Programs.Patch(id, *p)
	case Courses:
		req, err := DecodeCourse(values)
		if err != nil {
			return err
		}
		co, err := c.courses.Update(ctx, id, req)
		if err != nil {
			return err
		}
		updated := *co
		updated.Program = t.programRef(deref(co.ProgramID))
		t.Courses.Patch(id, updated)
	case Instructors:
		in, err := c.instructors.Update(ctx, id, DecodeInstructor(values))
		if err != nil {
			return err
		}
		t.Instructors.Patch(id, *in)
	case Rooms:
		req, err := DecodeRoom(values)
		if err != nil {
			return err
		}
		r, err := c.rooms.Update(ctx, id, req)
		if err != nil {
			return err
		}
		t.Rooms.Patch(id, *r)
	case Schedules:
		req, err := DecodeSchedule(values)
		if err != nil {
			return err
		}
		s, err := c.schedules.Update(ctx, id, req)
		if err != nil {
			return err
		}
		t.Schedules.Patch(id, t.scheduleDetail(*s))
	case Notifications:
		req, err := DecodeNotification(values, c.location)
		if err != nil {
			return err
		}
		n, err := c.notifications.Update(ctx, id, req)
		if err != nil {
			return err
		}
		t.Notifications.Patch(id, *n)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
	return nil
}

// DeleteResult is the outcome of a delete click. Confirm is set, and nothing
// was sent, when the entity asks first and confirmed was false.
type DeleteResult struct {
	Notice  *Notice
	OK      bool
	Confirm string
}

// Delete removes the record with id. Courses and instructors are only deleted
// once confirmed; on failure the table is left unchanged.
func (c *Console) Delete(ctx context.Context, t *Tables, entity Entity, id string, confirmed bool) DeleteResult {
	if entity.RequiresConfirmation() && !confirmed {
		return DeleteResult{Confirm: fmt.Sprintf("This action cannot be undone. This will permanently delete %q.", t.name(entity, id))}
	}

	if err := c.delete(ctx, entity, id); err != nil {
		c.logger.Warn("console delete failed", zap.String("entity", string(entity)), zap.String("id", id), zap.Error(err))
		notice := failure(deleteFailure(entity))
		return DeleteResult{Notice: &notice}
	}

	switch entity {
	case Programs:
		t.Programs.Remove(id)
	case Courses:
		t.Courses.Remove(id)
	case Instructors:
		t.Instructors.Remove(id)
	case Rooms:
		t.Rooms.Remove(id)
	case Schedules:
		t.Schedules.Remove(id)
	case Notifications:
		t.Notifications.Remove(id)
	}
	notice := success("Deleted", entity.Title()+" removed")
	return DeleteResult{Notice: &notice, OK: true}
}

func (c *Console) delete(ctx context.Context, entity Entity, id string) error {
	switch entity {
	case Programs:
		return c.programs.Delete(ctx, id)
	case Courses:
		return c.courses.Delete(ctx, id)
	case Instructors:
		return c.instructors.Delete(ctx, id)
	case Rooms:
		return c.rooms.Delete(ctx, id)
	case Schedules:
		return c.schedules.Delete(ctx, id)
	case Notifications:
		return c.notifications.Delete(ctx, id)
	default:
		return fmt.Errorf("unknown entity %q", entity)
	}
}

func deleteFailure(entity Entity) string {
	switch entity {
	case Courses:
		return "Failed to delete course. It may be referenced by schedules."
	case Instructors:
		return "Failed to delete instructor. They may be referenced by schedules."
	default:
		return "Failed to delete"
	}
}

// Toggle flips a notification's active flag with one backend call. Without a
// signed-in identity it is refused before any call is made.
func (c *Console) Toggle(ctx context.Context, t *Tables, identity *models.Identity, id string, active bool) (Notice, bool) {
	if identity == nil {
		return Notice{Title: "Not signed in", Description: "You must be logged in to update notifications.", Variant: VariantDestructive}, false
	}
	if err := c.notifications.SetActive(ctx, id, active); err != nil {
		c.logger.Warn("console toggle failed", zap.String("id", id), zap.String("user_id", identity.UserID), zap.Error(err))
		return failure("Failed to update status"), false
	}
	if n, ok := t.Notifications.Find(id); ok {
		n.IsActive = active
		n.UpdatedAt = time.Now().UTC()
		t.Notifications.Patch(id, n)
	}
	state := "inactive"
	if active {
		state = "active"
	}
	return success("Updated", "Notification is now "+state+"."), true
}

func (t *Tables) programRef(id string) *models.ProgramRef {
	p, ok := t.Programs.Find(id)
	if !ok {
		return nil
	}
	return &models.ProgramRef{ID: p.ID, Name: p.Name, Code: p.Code}
}

func (t *Tables) scheduleDetail(s models.Schedule) models.ScheduleDetail {
	d := models.ScheduleDetail{Schedule: s}
	if co, ok := t.Courses.Find(s.CourseID); ok {
		d.Course = &models.CourseRef{ID: co.ID, Name: co.Name, Code: co.Code, Credits: co.Credits, ECTSCredits: co.ECTSCredits, Program: co.Program}
	}
	if in, ok := t.Instructors.Find(s.InstructorID); ok {
		d.Instructor = &models.InstructorRef{ID: in.ID, Name: in.Name, Title: in.Title}
	}
	if r, ok := t.Rooms.Find(s.RoomID); ok {
		d.Room = &models.RoomRef{ID: r.ID, Name: r.Name, Code: r.Code}
	}
	return d
}

func (t *Tables) name(entity Entity, id string) string {
	switch entity {
	case Courses:
		if co, ok := t.Courses.Find(id); ok {
			return co.Name
		}
	case Instructors:
		if in, ok := t.Instructors.Find(id); ok {
			return in.Name
		}
	}
	return id
}

func setClock(values url.Values, field, unset string, v *string) {
	if v == nil {
		values.Set(unset, "on")
		return
	}
	values.Set(field, timetable.FormatTime(v))
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
