package types

import "errors"

var (
	ErrNegativeHours    = errors.New("session has negative hours worked")
	ErrNegativeEarnings = errors.New("session has negative earnings")
	ErrUnknownPeriod    = errors.New("unknown aggregation period")
)
