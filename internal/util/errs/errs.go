package errs

import "errors"

// Kinds. Every domain error wraps exactly one of them, which decides
// the HTTP status it is reported with.
var (
	ErrAuthentication = errors.New("authentication failed")
	ErrForbidden      = errors.New("forbidden")
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
)

type kindError struct {
	kind    error
	message string
}

func (e *kindError) Error() string {
	return e.message
}

func (e *kindError) Unwrap() error {
	return e.kind
}

// New returns an error with the given message that matches kind under errors.Is.
func New(kind error, message string) error {
	return &kindError{kind: kind, message: message}
}

func Forbidden(message string) error {
	return New(ErrForbidden, message)
}

func Validation(message string) error {
	return New(ErrValidation, message)
}

func NotFound(message string) error {
	return New(ErrNotFound, message)
}

func Authentication(message string) error {
	return New(ErrAuthentication, message)
}
