package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/kampus/orari/internal/models"
)

const courseColumns = `id, program_id, name, code, credits, ects_credits, lecture_hours, lab_hours, semester, year, created_at, updated_at`

// CourseRepository stores courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository creates the repository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses ordered by name without their program.
func (r *CourseRepository) List(ctx context.Context) ([]models.Course, error) {
	courses := []models.Course{}
	if err := r.db.SelectContext(ctx, &courses, `SELECT `+courseColumns+` FROM courses ORDER BY name`); err != nil {
		return nil, wrap("list courses", err)
	}
	return courses, nil
}

type courseWithProgramRow struct {
	models.Course
	ProgramName sql.NullString `db:"program_name"`
	ProgramCode sql.NullString `db:"program_code"`
}

// ListWithProgram returns courses ordered by name with the program joined.
func (r *CourseRepository) ListWithProgram(ctx context.Context) ([]models.Course, error) {
	const query = `SELECT c.id, c.program_id, c.name, c.code, c.credits, c.ects_credits, c.lecture_hours, c.lab_hours, c.semester, c.year, c.created_at, c.updated_at,
	p.name AS program_name, p.code AS program_code
FROM courses c
LEFT JOIN programs p ON p.id = c.program_id
ORDER BY c.name`
	var rows []courseWithProgramRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, wrap("list courses with program", err)
	}
	courses := make([]models.Course, 0, len(rows))
	for _, row := range rows {
		course := row.Course
		if row.ProgramName.Valid && course.ProgramID != nil {
			course.Program = &models.ProgramRef{ID: *course.ProgramID, Name: row.ProgramName.String, Code: row.ProgramCode.String}
		}
		courses = append(courses, course)
	}
	return courses, nil
}

// FindByID returns sql.ErrNoRows when the course does not exist.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.Course, error) {
	var course models.Course
	if err := r.db.GetContext(ctx, &course, `SELECT `+courseColumns+` FROM courses WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find course", err)
	}
	return &course, nil
}

// Count returns the number of courses.
func (r *CourseRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, wrap("count courses", err)
	}
	return total, nil
}

func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	course.CreatedAt = now
	course.UpdatedAt = now

	const query = `INSERT INTO courses (id, program_id, name, code, credits, ects_credits, lecture_hours, lab_hours, semester, year, created_at, updated_at)
VALUES (:id, :program_id, :name, :code, :credits, :ects_credits, :lecture_hours, :lab_hours, :semester, :year, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return wrap("create course", err)
	}
	return nil
}

func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET program_id = :program_id, name = :name, code = :code, credits = :credits, ects_credits = :ects_credits,
	lecture_hours = :lecture_hours, lab_hours = :lab_hours, semester = :semester, year = :year, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, course)
	if err != nil {
		return wrap("update course", err)
	}
	return affectedOne("update course", res)
}

func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM courses WHERE id = $1`, id)
	if err != nil {
		return wrap("delete course", err)
	}
	return affectedOne("delete course", res)
}
