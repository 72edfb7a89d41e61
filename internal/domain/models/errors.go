package models

import (
	"errors"

	"photofolio/internal/storage"
)

var (
	ErrEventNotFound = errors.New("event metadata not found")
	ErrUnauthorized  = errors.New("unauthorized")
)

type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindValidation
	KindNotFound
	KindUnauthorized
	KindTransient
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindUnauthorized:
		return "unauthorized"
	}

	return "transient"
}

// ValidationError ошибка входных данных, обнаруженная до обращения к хранилищу
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// KindOf classifies err for the transport layer.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var verr *ValidationError
	switch {
	case errors.As(err, &verr),
		errors.Is(err, storage.ErrInvalidFileType),
		errors.Is(err, storage.ErrFileTooLarge),
		errors.Is(err, storage.ErrFolderEmpty):
		return KindValidation
	case errors.Is(err, ErrEventNotFound), errors.Is(err, storage.ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	}

	return KindTransient
}
