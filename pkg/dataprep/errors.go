package dataprep

import (
	"errors"

	"dskit/pkg/stats"
)

var (
	// ErrUnfittedColumn is returned by ApplyScaler for a column the scaler
	// never saw.
	ErrUnfittedColumn = stats.ErrUnfittedColumn
	// ErrParse is returned when a datetime value cannot be parsed.
	ErrParse = errors.New("cannot parse datetime")
)
