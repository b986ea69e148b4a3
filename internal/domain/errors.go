package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinate   = errors.New("invalid coordinate")
	ErrInvalidHeading      = errors.New("invalid heading")
	ErrInvalidLedgerField  = errors.New("invalid ledger field")
	ErrInvalidPrice        = errors.New("invalid price")
	ErrUnknownKarat        = errors.New("unknown karat")
	ErrUnsupportedCurrency = errors.New("unsupported currency")
	ErrUnknownDhikr        = errors.New("unknown dhikr")
	ErrInvalidCount        = errors.New("invalid count")
	ErrInvalidTarget       = errors.New("invalid target")
	ErrAmountOverflow      = errors.New("amount overflows")
)

// InvalidCoordinateError names the out-of-range or non-finite component.
type InvalidCoordinateError struct {
	Field string
	Value float64
}

func (e *InvalidCoordinateError) Error() string {
	return fmt.Sprintf("invalid coordinate: %s=%v", e.Field, e.Value)
}

func (e *InvalidCoordinateError) Unwrap() error { return ErrInvalidCoordinate }

// InvalidLedgerFieldError names the ledger field that is negative, non-finite or missing.
type InvalidLedgerFieldError struct {
	Field  string
	Reason string
}

func (e *InvalidLedgerFieldError) Error() string {
	return fmt.Sprintf("invalid ledger field %q: %s", e.Field, e.Reason)
}

func (e *InvalidLedgerFieldError) Unwrap() error { return ErrInvalidLedgerField }

type InvalidPriceError struct {
	Field string
	Value float64
}

func (e *InvalidPriceError) Error() string {
	return fmt.Sprintf("invalid price %s=%v", e.Field, e.Value)
}

func (e *InvalidPriceError) Unwrap() error { return ErrInvalidPrice }

// UnknownKaratError is returned when a karat has no entry in the price table.
type UnknownKaratError struct {
	Karat Karat
}

func (e *UnknownKaratError) Error() string {
	return fmt.Sprintf("unknown karat %s", e.Karat)
}

func (e *UnknownKaratError) Unwrap() error { return ErrUnknownKarat }
