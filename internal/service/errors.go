package service

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation - некорректные параметры запроса, движок не вызывается
	ErrValidation = errors.New("validation error")
	// ErrRouteNotFound - маршрут не найден или принадлежит другому пользователю
	ErrRouteNotFound = errors.New("route not found")
	// ErrRouteHistoryDisabled - история маршрутов не настроена (нет DATABASE_URL)
	ErrRouteHistoryDisabled = errors.New("route history is disabled")
)

// ValidationError описывает отклоненный параметр запроса
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}
