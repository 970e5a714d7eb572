package models

import (
	"errors"
	"strings"
)

// ErrorKind says why the server could not start.
type ErrorKind string

const (
	KindNotFound      ErrorKind = "not_found"      // root directory or executable missing
	KindInvalidConfig ErrorKind = "invalid_config" // PORT, LOG_*, .env or STATIC_ROOT rejected
	KindBind          ErrorKind = "bind"           // listen address unavailable
)

// StartupError is returned by config loading and listener setup. Stage names
// the step that failed ("config.port", "server.listen"); Target is the file
// or address involved, if any.
type StartupError struct {
	Stage  string
	Kind   ErrorKind
	Target string
	Err    error
}

func (e *StartupError) Error() string {
	if e == nil {
		return "<nil>"
	}

	var b strings.Builder
	b.WriteString(e.Stage)
	b.WriteString(" [")
	b.WriteString(string(e.Kind))
	b.WriteString("]")
	if e.Target != "" {
		b.WriteString(" ")
		b.WriteString(e.Target)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *StartupError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind reports whether err wraps a StartupError of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	var se *StartupError
	return errors.As(err, &se) && se.Kind == kind
}
