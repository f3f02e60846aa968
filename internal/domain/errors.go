package domain

import "errors"

var (
	ErrInvalidPeriod       = errors.New("invalid period; expected YYYY-MM")
	ErrSnapshotUnavailable = errors.New("accounting snapshot unavailable")
	ErrUnsupportedFormat   = errors.New("unsupported export format")
)
