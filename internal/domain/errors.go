package domain

import "fmt"

// UnknownHazardCodeError is returned when a feed hazard code falls outside
// the catalog. It is not retried: it means either the report pattern or the
// provider format changed.
type UnknownHazardCodeError struct {
	Code string
}

func (e *UnknownHazardCodeError) Error() string {
	return fmt.Sprintf("unknown hazard code %q", e.Code)
}

// MalformedReportError is returned when a report line cannot be parsed into
// an event. Each line's outcome is independent; the caller logs and skips.
type MalformedReportError struct {
	Reason string
	Err    error
}

func (e *MalformedReportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed report: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed report: %s", e.Reason)
}

func (e *MalformedReportError) Unwrap() error { return e.Err }
