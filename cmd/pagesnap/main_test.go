// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/pagesnap/internal/convert"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid parameter", convert.ParameterError("dpi", "must be positive"), exitInvalidParameter},
		{"document not found", &convert.Error{Kind: convert.ErrDocumentNotFound}, exitDocument},
		{"document corrupt", &convert.Error{Kind: convert.ErrDocumentCorrupt}, exitDocument},
		{"document encrypted", &convert.Error{Kind: convert.ErrDocumentEncrypted}, exitDocument},
		{"file exists", &convert.Error{Kind: convert.ErrFileExists, Page: 2}, exitOutput},
		{"write failure", &convert.Error{Kind: convert.ErrWriteFailure, Page: 1}, exitOutput},
		{"wrapped classified error", fmt.Errorf("converting: %w", &convert.Error{Kind: convert.ErrFileExists}), exitOutput},
		{"unclassified error", errors.New("boom"), exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode = %d, want %d", got, tt.want)
			}
		})
	}
}
