package apperrors

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"github.com/lib/pq"
	mssql "github.com/microsoft/go-mssqldb"
	"gorm.io/gorm"
)

// Kind classifies an Error. Callers branch on the kind, never on the message.
type Kind string

const (
	NotFound                Kind = "NotFound"
	Conflict                Kind = "Conflict"
	Unauthorized            Kind = "Unauthorized"
	ValidationFailed        Kind = "ValidationFailed"
	TransientInfrastructure Kind = "TransientInfrastructure"
	Internal                Kind = "Internal"
)

// Error is the single error type shared by repositories, services and proxies.
// StatusCode and Body are only set when the error came back from a remote call
// or when a handler needs a status other than the kind's default.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Body       string
	Err        error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error of the same kind, so errors.Is(err, apperrors.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Message == "" && t.Kind == e.Kind
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Kind: NotFound}
	ErrConflict     = &Error{Kind: Conflict}
	ErrUnauthorized = &Error{Kind: Unauthorized}
	ErrValidation   = &Error{Kind: ValidationFailed}
	ErrTransient    = &Error{Kind: TransientInfrastructure}
	ErrInternal     = &Error{Kind: Internal}
)

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func NewNotFound(format string, args ...any) *Error {
	return New(NotFound, format, args...)
}

func NewConflict(format string, args ...any) *Error {
	return New(Conflict, format, args...)
}

func NewUnauthorized(format string, args ...any) *Error {
	return New(Unauthorized, format, args...)
}

// NewForbidden is an Unauthorized error reported as 403: the caller is known but
// may not act on the resource.
func NewForbidden(format string, args ...any) *Error {
	e := New(Unauthorized, format, args...)
	e.StatusCode = http.StatusForbidden
	return e
}

func NewValidation(format string, args ...any) *Error {
	return New(ValidationFailed, format, args...)
}

func NewTransient(err error, format string, args ...any) *Error {
	return Wrap(TransientInfrastructure, err, format, args...)
}

func NewInternal(err error, format string, args ...any) *Error {
	return Wrap(Internal, err, format, args...)
}

// KindOf returns the kind of err, or Internal for foreign errors.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return Internal
}

func IsNotFound(err error) bool     { return KindOf(err) == NotFound }
func IsConflict(err error) bool     { return KindOf(err) == Conflict }
func IsUnauthorized(err error) bool { return KindOf(err) == Unauthorized }
func IsValidation(err error) bool   { return KindOf(err) == ValidationFailed }
func IsTransient(err error) bool    { return KindOf(err) == TransientInfrastructure }

// HTTPStatus maps an error to the status code the REST API answers with.
func HTTPStatus(err error) int {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError
	}
	if appErr.StatusCode >= 400 && appErr.Kind != Internal && appErr.Kind != TransientInfrastructure {
		return appErr.StatusCode
	}
	switch appErr.Kind {
	case NotFound:
		return http.StatusNotFound
	case Conflict:
		return http.StatusConflict
	case Unauthorized:
		return http.StatusUnauthorized
	case ValidationFailed:
		return http.StatusBadRequest
	case TransientInfrastructure:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// FromStatus builds the error for a non-success HTTP response from the API.
func FromStatus(status int, message, body string) *Error {
	var kind Kind
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		kind = Unauthorized
	case http.StatusNotFound:
		kind = NotFound
	case http.StatusConflict:
		kind = Conflict
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		kind = ValidationFailed
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		kind = TransientInfrastructure
	default:
		kind = Internal
	}
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Kind: kind, Message: message, StatusCode: status, Body: body}
}

// FromDB classifies a database error. what names the entity for the message.
// Errors that are already classified pass through untouched.
func FromDB(err error, what string) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NewNotFound("%s not found", what)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Wrap(Conflict, err, "%s already exists", what)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return Wrap(ValidationFailed, err, "%s references a missing record", what)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return NewTransient(err, "%s operation interrupted", what)
	case errors.Is(err, driver.ErrBadConn):
		return NewTransient(err, "database connection lost")
	}

	// lib/pq errors are not translated by gorm because the connection is opened outside the dialector
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case "23505":
			return Wrap(Conflict, err, "%s already exists", what)
		case "23503":
			return Wrap(ValidationFailed, err, "%s references a missing record", what)
		case "57P01", "08000", "08003", "08006":
			return NewTransient(err, "database unavailable")
		}
	}

	var msErr mssql.Error
	if errors.As(err, &msErr) {
		switch msErr.SQLErrorNumber() {
		case 2627, 2601:
			return Wrap(Conflict, err, "%s already exists", what)
		case 547:
			return Wrap(ValidationFailed, err, "%s references a missing record", what)
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return NewTransient(err, "database unreachable")
	}

	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return Wrap(Conflict, err, "%s already exists", what)
	}

	return NewInternal(err, "%s operation failed", what)
}
