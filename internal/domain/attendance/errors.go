package attendance

import "errors"

var (
	ErrExtractionDisabled    = errors.New("attendance extraction is not configured")
	ErrExtractionUnavailable = errors.New("attendance extraction is temporarily unavailable")
)
