// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorClassification(t *testing.T) {
	err := &Error{Kind: ErrFileExists, Page: 3, Err: errors.New("out.jpg already exists")}

	if !errors.Is(err, ErrFileExists) {
		t.Error("should match its own kind")
	}
	if errors.Is(err, ErrWriteFailure) {
		t.Error("should not match a different kind")
	}
}

func TestErrorMessage(t *testing.T) {
	err := &Error{Kind: ErrInvalidParameter, Field: "dpi", Err: errors.New("must be positive, got -1")}
	msg := err.Error()
	for _, part := range []string{"invalid parameter", "dpi", "must be positive"} {
		if !strings.Contains(msg, part) {
			t.Errorf("message %q missing %q", msg, part)
		}
	}

	pageErr := &Error{Kind: ErrFileExists, Page: 7}
	if !strings.Contains(pageErr.Error(), "page 7") {
		t.Errorf("message %q missing page number", pageErr.Error())
	}
}

func TestErrorUnwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := &Error{Kind: ErrWriteFailure, Err: fmt.Errorf("writing image: %w", cause)}

	if !errors.Is(err, cause) {
		t.Error("cause should be reachable through Unwrap")
	}
}

func TestParameterError(t *testing.T) {
	err := ParameterError("quality", "must be in [1,100], got %d", 400)

	if !errors.Is(err, ErrInvalidParameter) {
		t.Error("should classify as ErrInvalidParameter")
	}
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.Field != "quality" {
		t.Errorf("field = %q, want quality", cerr.Field)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("message %q missing formatted value", err.Error())
	}
}
