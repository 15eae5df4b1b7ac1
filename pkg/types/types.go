// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the request and result types shared between the CLI
// and the conversion pipeline.
package types

import "strings"

// Format identifies an output image encoding.
type Format string

const (
	FormatJPG  Format = "jpg"
	FormatPNG  Format = "png"
	FormatWEBP Format = "webp"
)

// ParseFormat normalizes a user-supplied format name. "jpeg" is accepted as
// an alias for "jpg". ok is false for anything unrecognized.
func ParseFormat(s string) (f Format, ok bool) {
	switch strings.ToLower(s) {
	case "jpg", "jpeg":
		return FormatJPG, true
	case "png":
		return FormatPNG, true
	case "webp":
		return FormatWEBP, true
	}
	return "", false
}

// Defaults shared between the CLI flags and the programmatic interface.
const (
	// DefaultDPI is the render resolution used when none is given.
	DefaultDPI = 300

	// DefaultQuality is the jpg/webp quality used when none is given.
	DefaultQuality = 92

	// DefaultTemplate is the filename template used when none is given,
	// e.g. "report_p007" for page 7 of report.pdf.
	DefaultTemplate = "{stem}_p{page:03d}"
)

// Request describes a single conversion run. It is built once, validated
// once, and never mutated by the pipeline.
type Request struct {
	// PDFPath is the input document.
	PDFPath string

	// OutDir is the directory for output images. Empty means a directory
	// named after the document stem, next to the input file.
	OutDir string

	// DPI is the render resolution (default 300).
	DPI int

	// Format selects the output encoding: jpg, png, or webp.
	Format Format

	// Quality is the jpg/webp quality in [1,100]; png ignores it.
	Quality int

	// Start and End bound the converted page range, 1-based inclusive.
	// Zero means "unset": the range defaults to the whole document.
	Start int
	End   int

	// Overwrite allows replacing existing output files. When false, an
	// existing target file is a per-page error.
	Overwrite bool

	// Template names output files from the document stem and page number,
	// e.g. "{stem}_p{page:03d}".
	Template string

	// Password decrypts protected documents.
	Password string

	// Grayscale reduces output images to single-channel luminance.
	Grayscale bool

	// MaxDim, when positive, caps the longest output side in pixels.
	MaxDim int
}

// NewRequest returns a Request for pdfPath with all defaults applied.
func NewRequest(pdfPath string) Request {
	return Request{
		PDFPath:   pdfPath,
		DPI:       DefaultDPI,
		Format:    FormatJPG,
		Quality:   DefaultQuality,
		Overwrite: true,
		Template:  DefaultTemplate,
	}
}

// PageResult records one converted page.
type PageResult struct {
	// Page is the 1-based page index.
	Page int

	// Path is the written image file.
	Path string
}

// Outcome is the result of a successful conversion run. Pages is ordered by
// ascending page index.
type Outcome struct {
	OutDir string
	Pages  []PageResult
}
