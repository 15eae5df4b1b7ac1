// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"strings"
	"testing"
)

func TestTemplateRender(t *testing.T) {
	tests := []struct {
		name string
		tmpl string
		stem string
		page int
		want string
	}{
		{"default template", "{stem}_p{page:03d}", "report", 7, "report_p007"},
		{"default template three digits", "{stem}_p{page:03d}", "report", 123, "report_p123"},
		{"padding overflow keeps digits", "{stem}_p{page:02d}", "report", 123, "report_p123"},
		{"unpadded page", "{stem}-{page}", "doc", 7, "doc-7"},
		{"page only", "{page:04d}", "doc", 12, "0012"},
		{"literal text", "scan_{page}_of_{stem}", "book", 3, "scan_3_of_book"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			toks, _, err := parseTemplate(tt.tmpl)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if got := renderTokens(toks, tt.stem, tt.page); got != tt.want {
				t.Errorf("render = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateHasPage(t *testing.T) {
	_, hasPage, err := parseTemplate("{stem}_p{page:03d}")
	if err != nil || !hasPage {
		t.Errorf("hasPage = %v, err = %v; want true, nil", hasPage, err)
	}

	_, hasPage, err = parseTemplate("{stem}")
	if err != nil || hasPage {
		t.Errorf("hasPage = %v, err = %v; want false, nil", hasPage, err)
	}
}

func TestTemplateParseErrors(t *testing.T) {
	tests := []struct {
		name    string
		tmpl    string
		wantMsg string
	}{
		{"empty", "", "empty"},
		{"unbalanced open", "{stem_p{page}", "unknown template token"},
		{"dangling open", "{stem}_{page", "unbalanced '{'"},
		{"dangling close", "stem}_p", "unbalanced '}'"},
		{"unknown token", "{chapter}", "unknown template token"},
		{"bad page spec", "{page:x}", "unsupported format spec"},
		{"spec on stem", "{stem:03d}", "format spec not supported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := parseTemplate(tt.tmpl)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("err = %q, want substring %q", err, tt.wantMsg)
			}
		})
	}
}
