package entity

import "errors"

// ErrNotFound is returned by every store when the keyed record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrUnableToGetToken is returned when the CRM OAuth exchange fails.
var ErrUnableToGetToken = errors.New("Unable to get access token") //nolint:staticcheck // surfaced to clients verbatim
