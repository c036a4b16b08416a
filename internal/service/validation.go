package service

import (
	"database/sql"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/kampus/orari/internal/repository"
	appErrors "github.com/kampus/orari/pkg/errors"
)

var clockPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d(:[0-5]\d)?$`)

// NewValidator returns a validator with the "clock" tag (HH:MM or HH:MM:SS)
// registered. Services expect the tag to exist.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("clock", func(fl validator.FieldLevel) bool {
		return clockPattern.MatchString(fl.Field().String())
	})
	return v
}

// Mutation actions, also used as metric labels.
const (
	actionCreate = "create"
	actionUpdate = "update"
	actionDelete = "delete"
	actionToggle = "toggle"
)

// repoError maps a repository failure for entity onto the typed error surfaced
// to callers.
func repoError(err error, entity, action string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, entity+" not found")
	case errors.Is(err, repository.ErrForeignKey) && action == actionDelete:
		return appErrors.Wrap(err, appErrors.ErrReferenced.Code, appErrors.ErrReferenced.Status, entity+" is still referenced by schedules")
	case errors.Is(err, repository.ErrForeignKey):
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "referenced record does not exist")
	default:
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to "+action+" "+entity)
	}
}

func validationError(err error, entity string) error {
	return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid "+entity+" payload")
}

// optional trims s and turns blank input into nil.
func optional(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
