package logging

import "log/slog"

// Field names shared across the service so log lines stay greppable.
const (
	FieldService   = "service"
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldError     = "error"
)

// Service returns the service name attribute set once at startup.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Component tags a logger with the subsystem it belongs to.
func Component(name string) slog.Attr {
	return slog.String(FieldComponent, name)
}

// Error renders err as a string attribute.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}
