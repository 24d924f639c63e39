package aceql

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nao1215/aceql/domain/model"
)

// Standard error values. Classification errors are never transient:
// they report a value the caller must not send.
var (
	// ErrUnsupportedType indicates a value with no SQL wire type
	ErrUnsupportedType = model.ErrUnsupportedType

	// ErrMissingNullTypeHint indicates a null bound without a SQLNullType
	ErrMissingNullTypeHint = model.ErrMissingNullTypeHint

	// ErrInvalidValue indicates a malformed value of a supported kind
	ErrInvalidValue = model.ErrInvalidValue

	// ErrUnknownNullTypeHint indicates a SQLNullType outside the known set
	ErrUnknownNullTypeHint = model.ErrUnknownNullTypeHint

	// ErrRowOutOfRange indicates a row index outside an Arrow record
	ErrRowOutOfRange = errors.New("aceql: row index out of range")
)

// ErrorContext provides context for where an error occurred
type ErrorContext struct {
	Operation string
	// Index is the 1-based parameter position, 0 when not applicable
	Index   int
	Column  string
	Details string
}

// NewErrorContext creates a new error context
func NewErrorContext(operation string) *ErrorContext {
	return &ErrorContext{Operation: operation}
}

// WithIndex adds the 1-based parameter position to the error context
func (ec *ErrorContext) WithIndex(index int) *ErrorContext {
	ec.Index = index
	return ec
}

// WithColumn adds the Arrow column name to the error context
func (ec *ErrorContext) WithColumn(column string) *ErrorContext {
	ec.Column = column
	return ec
}

// WithDetails adds details to the error context
func (ec *ErrorContext) WithDetails(details string) *ErrorContext {
	ec.Details = details
	return ec
}

// Error creates a formatted error with context
func (ec *ErrorContext) Error(baseErr error) error {
	var parts []string
	parts = append(parts, fmt.Sprintf("aceql: %s failed", ec.Operation))

	if ec.Index > 0 {
		parts = append(parts, "parameter: "+strconv.Itoa(ec.Index))
	}

	if ec.Column != "" {
		parts = append(parts, "column: "+ec.Column)
	}

	if ec.Details != "" {
		parts = append(parts, "details: "+ec.Details)
	}

	context := strings.Join(parts, ", ")
	if baseErr != nil {
		return fmt.Errorf("%s: %w", context, baseErr)
	}
	return fmt.Errorf("%s", context)
}
