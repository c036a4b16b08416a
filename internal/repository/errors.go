package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrForeignKey reports a write refused by a foreign key constraint: a delete
// of a row that is still referenced, or an insert pointing at a missing row.
var ErrForeignKey = errors.New("foreign key violation")

const pqForeignKeyViolation = "23503"

// wrap annotates err with op and lifts foreign key violations to ErrForeignKey.
func wrap(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
		return fmt.Errorf("%s: %w (%s)", op, ErrForeignKey, pqErr.Constraint)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// affectedOne turns a zero-row update or delete into sql.ErrNoRows.
func affectedOne(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s rows affected: %w", op, err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
