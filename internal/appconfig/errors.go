package appconfig

import (
	"errors"
	"fmt"
)

// Error reports an invalid or internally inconsistent application
// configuration. Every validation failure shares this type and is
// distinguished only by its message; resolution aborts on the first one.
type Error struct {
	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func errorf(format string, args ...any) error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

// asConfigError converts plumbing errors (descriptor read/parse failures)
// into the single configuration error kind, passing existing ones through.
func asConfigError(err error) error {
	var cfgErr *Error
	if errors.As(err, &cfgErr) {
		return err
	}
	return &Error{msg: err.Error()}
}
