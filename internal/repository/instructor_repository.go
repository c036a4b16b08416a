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

const instructorColumns = `id, name, email, title, created_at, updated_at`

// InstructorRepository stores instructors.
type InstructorRepository struct {
	db *sqlx.DB
}

// NewInstructorRepository creates the repository.
func NewInstructorRepository(db *sqlx.DB) *InstructorRepository {
	return &InstructorRepository{db: db}
}

// List returns every instructor ordered by name.
func (r *InstructorRepository) List(ctx context.Context) ([]models.Instructor, error) {
	instructors := []models.Instructor{}
	if err := r.db.SelectContext(ctx, &instructors, `SELECT `+instructorColumns+` FROM instructors ORDER BY name`); err != nil {
		return nil, wrap("list instructors", err)
	}
	return instructors, nil
}

// FindByID returns sql.ErrNoRows when the instructor does not exist.
func (r *InstructorRepository) FindByID(ctx context.Context, id string) (*models.Instructor, error) {
	var instructor models.Instructor
	if err := r.db.GetContext(ctx, &instructor, `SELECT `+instructorColumns+` FROM instructors WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find instructor", err)
	}
	return &instructor, nil
}

// Count returns the number of instructors.
func (r *InstructorRepository) Count(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM instructors`); err != nil {
		return 0, wrap("count instructors", err)
	}
	return total, nil
}

func (r *InstructorRepository) Create(ctx context.Context, instructor *models.Instructor) error {
	if instructor.ID == "" {
		instructor.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	instructor.CreatedAt = now
	instructor.UpdatedAt = now

	const query = `INSERT INTO instructors (id, name, email, title, created_at, updated_at) VALUES (:id, :name, :email, :title, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, instructor); err != nil {
		return wrap("create instructor", err)
	}
	return nil
}

func (r *InstructorRepository) Update(ctx context.Context, instructor *models.Instructor) error {
	instructor.UpdatedAt = time.Now().UTC()
	const query = `UPDATE instructors SET name = :name, email = :email, title = :title, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, instructor)
	if err != nil {
		return wrap("update instructor", err)
	}
	return affectedOne("update instructor", res)
}

func (r *InstructorRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM instructors WHERE id = $1`, id)
	if err != nil {
		return wrap("delete instructor", err)
	}
	return affectedOne("delete instructor", res)
}
