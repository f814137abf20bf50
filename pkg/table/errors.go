package table

import (
	"errors"
	"fmt"
)

var (
	ErrColumnNotFound  = errors.New("column not found")
	ErrDuplicateColumn = errors.New("duplicate column")
	ErrLengthMismatch  = errors.New("column length mismatch")
	ErrKindMismatch    = errors.New("column kind mismatch")
)

// MismatchError reports a column used with the wrong kind.
type MismatchError struct {
	Column string
	Want   Kind
	Got    Kind
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("column %q is %s, want %s", e.Column, e.Got, e.Want)
}

func (e *MismatchError) Unwrap() error { return ErrKindMismatch }

// KindError reports an unknown kind name.
type KindError struct {
	Value string
}

func (e *KindError) Error() string {
	return fmt.Sprintf("unknown column kind %q", e.Value)
}
