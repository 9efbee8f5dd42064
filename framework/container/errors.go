package container

import (
	"errors"
	"fmt"
)

var (
	// ErrServiceNotFound matches any *ServiceNotFoundError.
	ErrServiceNotFound = errors.New("service not found")

	// ErrParameterNotFound matches any *ParameterNotFoundError.
	ErrParameterNotFound = errors.New("parameter not found")

	// ErrConfig matches any *ConfigError.
	ErrConfig = errors.New("container configuration error")

	// ErrCircularReference is wrapped by the ConfigError returned when a
	// definition is revisited while it is still under construction.
	ErrCircularReference = errors.New("circular reference")
)

// ServiceNotFoundError is returned by Get when no definition exists for ID.
type ServiceNotFoundError struct {
	ID string
}

func (e *ServiceNotFoundError) Error() string {
	return fmt.Sprintf("container: service %q is not defined", e.ID)
}

func (e *ServiceNotFoundError) Is(target error) bool { return target == ErrServiceNotFound }

// ParameterNotFoundError carries the full dotted path that was requested,
// not the segment at which the lookup stopped.
type ParameterNotFoundError struct {
	Path string
}

func (e *ParameterNotFoundError) Error() string {
	return fmt.Sprintf("container: parameter %q is not defined", e.Path)
}

func (e *ParameterNotFoundError) Is(target error) bool { return target == ErrParameterNotFound }

// ConfigError reports a malformed definition, an unconstructible class, an
// uninvocable setter or a circular reference. It is raised on first use of
// the offending service, never at container creation.
type ConfigError struct {
	ID     string
	Reason string
	Err    error
}

func (e *ConfigError) Error() string {
	msg := fmt.Sprintf("container: service %q: %s", e.ID, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

func configError(id, reason string, err error) *ConfigError {
	return &ConfigError{ID: id, Reason: reason, Err: err}
}
