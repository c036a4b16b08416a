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

const programColumns = `id, name, code, level, created_at, updated_at`

// ProgramRepository stores study programs.
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository creates the repository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// List returns every program ordered by name.
func (r *ProgramRepository) List(ctx context.Context) ([]models.Program, error) {
	programs := []models.Program{}
	if err := r.db.SelectContext(ctx, &programs, `SELECT `+programColumns+` FROM programs ORDER BY name`); err != nil {
		return nil, wrap("list programs", err)
	}
	return programs, nil
}

// FindByID returns sql.ErrNoRows when the program does not exist.
func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*models.Program, error) {
	var program models.Program
	if err := r.db.GetContext(ctx, &program, `SELECT `+programColumns+` FROM programs WHERE id = $1`, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, wrap("find program", err)
	}
	return &program, nil
}

func (r *ProgramRepository) Create(ctx context.Context, program *models.Program) error {
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	const query = `INSERT INTO programs (id, name, code, level, created_at, updated_at) VALUES (:id, :name, :code, :level, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, program); err != nil {
		return wrap("create program", err)
	}
	return nil
}

func (r *ProgramRepository) Update(ctx context.Context, program *models.Program) error {
	program.UpdatedAt = time.Now().UTC()
	const query = `UPDATE programs SET name = :name, code = :code, level = :level, updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, program)
	if err != nil {
		return wrap("update program", err)
	}
	return affectedOne("update program", res)
}

func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return wrap("delete program", err)
	}
	return affectedOne("delete program", res)
}
