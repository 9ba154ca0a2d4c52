package moc

import (
	"fmt"
)

// ConfigurationError reports an invalid solver configuration or misuse of
// the driver API, detected before any numerics run.
type ConfigurationError struct {
	msg string
}

func (e *ConfigurationError) Error() string { return e.msg }

func configErrf(format string, args ...interface{}) error {
	return &ConfigurationError{fmt.Sprintf(format, args...)}
}

// GeometryError reports that ray tracing over the geometry failed: a track
// could not be segmented within the iteration cap, or a track end could
// not be matched to a boundary partner.
type GeometryError struct {
	msg string
}

func (e *GeometryError) Error() string { return e.msg }

func geomErrf(format string, args ...interface{}) error {
	return &GeometryError{fmt.Sprintf(format, args...)}
}
