// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying pipeline failures. Callers match them with
// errors.Is and react per class: fix a flag, retry with a password, free
// disk space, and so on.
var (
	ErrInvalidParameter  = errors.New("invalid parameter")
	ErrDocumentNotFound  = errors.New("document not found")
	ErrDocumentCorrupt   = errors.New("document corrupt")
	ErrDocumentEncrypted = errors.New("document encrypted")
	ErrFileExists        = errors.New("file exists")
	ErrWriteFailure      = errors.New("write failure")
)

// Error is a classified pipeline error. Kind is one of the sentinels above.
// Field names the offending request field for parameter errors; Page is the
// 1-based page index for per-page failures. Both are zero when not
// applicable.
type Error struct {
	Kind  error
	Field string
	Page  int
	Err   error
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Field != "" {
		msg += ": " + e.Field
	}
	if e.Page > 0 {
		msg = fmt.Sprintf("%s: page %d", msg, e.Page)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

// ParameterError builds a classified invalid-parameter error naming the
// offending field.
func ParameterError(field, format string, args ...any) error {
	return &Error{Kind: ErrInvalidParameter, Field: field, Err: fmt.Errorf(format, args...)}
}
