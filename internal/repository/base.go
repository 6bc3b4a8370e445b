// Package repository implements the data access layer for the application.
package repository

import (
	"errors"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// mapError converts GORM errors into application errors.
func mapError(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource)
	}
	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return models.NewInternalError(err)
}

// newestFirst is the default ordering for posts and comments; id breaks created_at ties.
func newestFirst(table string) string {
	return table + ".created_at DESC, " + table + ".id DESC"
}
