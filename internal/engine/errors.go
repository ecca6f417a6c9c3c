package engine

import (
	"errors"
	"fmt"
)

// ParseError reports that a URL or upstream document could not be
// interpreted by a service. It is the caller-correctable category of
// extraction failure; transport and rate-limit failures stay plain
// errors.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// ParseErrorf builds a ParseError with a formatted message.
func ParseErrorf(format string, args ...any) *ParseError {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// IsParseError reports whether err is (or wraps) a ParseError.
func IsParseError(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
