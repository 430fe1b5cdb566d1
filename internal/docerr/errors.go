// Package docerr provides a structured error type for category-based
// classification and retry decisions in the driver, CLI and HTTP adapters.
package docerr

import (
	stdErrors "errors"
	"fmt"
)

// Category classifies an Error.
type Category string

const (
	CategoryConfig   Category = "config"
	CategoryModel    Category = "model"
	CategoryResource Category = "resource"
	CategoryOutput   Category = "output"
	CategoryContract Category = "contract"
	CategoryInternal Category = "internal"
)

// Sentinels usable with errors.Is.
var (
	ErrContractViolation = stdErrors.New("contract violation")
	ErrOutputFailure     = stdErrors.New("document output failure")
)

// Error is a structured error with category, retryability, and context.
type Error struct {
	Category  Category       `json:"category"`
	Message   string         `json:"message"`
	Cause     error          `json:"cause,omitempty"`
	Retryable bool           `json:"retryable"`
	Context   map[string]any `json:"context,omitempty"`
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches the category sentinels.
func (e *Error) Is(target error) bool {
	switch target {
	case ErrContractViolation:
		return e.Category == CategoryContract
	case ErrOutputFailure:
		return e.Category == CategoryOutput
	}
	return false
}

// WithContext adds context information to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

func New(category Category, message string) *Error {
	return &Error{Category: category, Message: message}
}

func Wrap(err error, category Category, message string) *Error {
	return &Error{Category: category, Message: message, Cause: err}
}

// IsCategory checks if any error in err's chain belongs to category.
func IsCategory(err error, category Category) bool {
	var e *Error
	return stdErrors.As(err, &e) && e.Category == category
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	var e *Error
	return stdErrors.As(err, &e) && e.Retryable
}

// GetCategory extracts the category from an error, or CategoryInternal.
func GetCategory(err error) Category {
	var e *Error
	if stdErrors.As(err, &e) {
		return e.Category
	}
	return CategoryInternal
}
