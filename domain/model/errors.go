// Package model provides domain model for aceql
package model

import "errors"

var (
	// ErrUnsupportedType is returned when a value has no SQL wire type
	ErrUnsupportedType = errors.New("unsupported parameter type")

	// ErrMissingNullTypeHint is returned when a null value is bound without a SQLNullType
	ErrMissingNullTypeHint = errors.New("null parameter requires a SQL null type hint")

	// ErrInvalidValue is returned when a value of a supported kind is malformed, e.g. February 30
	ErrInvalidValue = errors.New("invalid parameter value")

	// ErrUnknownNullTypeHint is returned when a SQLNullType is outside the known set
	ErrUnknownNullTypeHint = errors.New("unknown SQL null type hint")
)
