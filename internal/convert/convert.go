// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the PDF-to-image conversion pipeline: validate
// the request, open the document, rasterize the selected page range, post-
// process and encode each page, and report the written files.
//
// The pipeline is fail-fast: the first per-page error aborts the run and is
// returned classified (see errors.go). Pages are processed strictly in
// ascending order because the document handle is not safe for concurrent
// page access.
package convert

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/pdiddy/pagesnap/internal/imgenc"
	"github.com/pdiddy/pagesnap/internal/pdfdoc"
	"github.com/pdiddy/pagesnap/pkg/types"
)

// openDocument is swappable in tests so the pipeline can run against fake
// documents without MuPDF.
var openDocument = pdfdoc.Open

// Progress is notified after each page is written, with the number of pages
// completed so far and the total selected. It may be nil.
type Progress func(done, total int)

// Convert runs the full pipeline for req and returns the written files in
// ascending page order. The document handle is released on every path.
func Convert(req types.Request, logger *logrus.Logger, progress Progress) (*types.Outcome, error) {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	toks, hasPage, err := validate(req)
	if err != nil {
		return nil, err
	}

	outDir := req.OutDir
	if outDir == "" {
		outDir = strings.TrimSuffix(req.PDFPath, filepath.Ext(req.PDFPath))
	}
	stem := strings.TrimSuffix(filepath.Base(req.PDFPath), filepath.Ext(req.PDFPath))

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, &Error{Kind: ErrWriteFailure, Err: fmt.Errorf("creating output directory %s: %w", outDir, err)}
	}

	doc, err := openDocument(req.PDFPath, req.Password)
	if err != nil {
		return nil, classifyOpen(err)
	}
	defer doc.Close()

	start, end, err := resolveRange(req.Start, req.End, doc.NumPage(), hasPage)
	if err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"pdf":     req.PDFPath,
		"out_dir": outDir,
		"start":   start,
		"end":     end,
		"dpi":     req.DPI,
		"format":  req.Format,
	}).Debug("starting conversion")

	outcome := &types.Outcome{OutDir: outDir}
	total := end - start + 1
	for page := start; page <= end; page++ {
		path, err := convertPage(doc, req, toks, stem, outDir, page, logger)
		if err != nil {
			return nil, err
		}
		outcome.Pages = append(outcome.Pages, types.PageResult{Page: page, Path: path})
		if progress != nil {
			progress(len(outcome.Pages), total)
		}
	}

	return outcome, nil
}

// validate checks every request field against its invariants and parses the
// filename template. Failures name the offending field.
func validate(req types.Request) (toks []tmplToken, hasPage bool, err error) {
	if req.PDFPath == "" {
		return nil, false, ParameterError("pdf_path", "input path is required")
	}
	switch req.Format {
	case types.FormatJPG, types.FormatPNG, types.FormatWEBP:
	default:
		return nil, false, ParameterError("format", "unsupported format %q: choose jpg, png, or webp", string(req.Format))
	}
	if req.DPI <= 0 {
		return nil, false, ParameterError("dpi", "must be positive, got %d", req.DPI)
	}
	if req.Format != types.FormatPNG && (req.Quality < 1 || req.Quality > 100) {
		return nil, false, ParameterError("quality", "must be in [1,100], got %d", req.Quality)
	}
	if req.MaxDim < 0 {
		return nil, false, ParameterError("max_dim", "must be positive, got %d", req.MaxDim)
	}
	if req.Start < 0 {
		return nil, false, ParameterError("start", "must be a positive page number, got %d", req.Start)
	}
	if req.End < 0 {
		return nil, false, ParameterError("end", "must be a positive page number, got %d", req.End)
	}
	if req.Start > 0 && req.End > 0 && req.Start > req.End {
		return nil, false, ParameterError("start", "start %d is after end %d", req.Start, req.End)
	}

	toks, hasPage, err = parseTemplate(req.Template)
	if err != nil {
		return nil, false, ParameterError("template", "%v", err)
	}
	return toks, hasPage, nil
}

// resolveRange applies the whole-document defaults and checks the bounds
// against the actual page count. Out-of-range values are an error, never
// clamped: clamping would hide user mistakes about document length.
func resolveRange(reqStart, reqEnd, pageCount int, hasPage bool) (start, end int, err error) {
	start = reqStart
	if start == 0 {
		start = 1
	}
	end = reqEnd
	if end == 0 {
		end = pageCount
	}

	if start > pageCount {
		return 0, 0, ParameterError("start", "page %d out of range: document has %d page(s)", start, pageCount)
	}
	if end > pageCount {
		return 0, 0, ParameterError("end", "page %d out of range: document has %d page(s)", end, pageCount)
	}
	if start > end {
		return 0, 0, ParameterError("start", "start %d is after end %d", start, end)
	}
	if !hasPage && end > start {
		return 0, 0, ParameterError("template", "no {page} token: output names would collide across pages %d-%d", start, end)
	}
	return start, end, nil
}

// convertPage rasterizes one page, applies post-processing, and writes the
// encoded image. page is 1-based.
func convertPage(doc pdfdoc.Document, req types.Request, toks []tmplToken, stem, outDir string, page int, logger *logrus.Logger) (string, error) {
	img, err := doc.ImageDPI(page-1, float64(req.DPI))
	if err != nil {
		return "", &Error{Kind: ErrDocumentCorrupt, Page: page, Err: fmt.Errorf("rendering page: %w", err)}
	}

	if req.MaxDim > 0 {
		img = imgenc.Downscale(img, req.MaxDim)
	}
	// Grayscale last: Lanczos resampling returns a four-channel image and
	// would undo the single-channel reduction.
	if req.Grayscale {
		img = imgenc.Grayscale(img)
	}

	name := renderTokens(toks, stem, page) + imgenc.Ext(req.Format)
	path := filepath.Join(outDir, name)

	if !req.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return "", &Error{Kind: ErrFileExists, Page: page, Err: fmt.Errorf("%s already exists", path)}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return "", &Error{Kind: ErrWriteFailure, Page: page, Err: fmt.Errorf("creating %s: %w", path, err)}
	}
	if err := imgenc.Encode(f, img, req.Format, req.Quality); err != nil {
		f.Close()
		os.Remove(path)
		return "", &Error{Kind: ErrWriteFailure, Page: page, Err: fmt.Errorf("encoding %s: %w", path, err)}
	}
	if err := f.Close(); err != nil {
		return "", &Error{Kind: ErrWriteFailure, Page: page, Err: fmt.Errorf("closing %s: %w", path, err)}
	}

	logger.WithFields(logrus.Fields{"page": page, "path": path}).Debug("page written")
	return path, nil
}

// classifyOpen maps document-open failures onto the pipeline error taxonomy.
func classifyOpen(err error) error {
	switch {
	case errors.Is(err, pdfdoc.ErrNotFound):
		return &Error{Kind: ErrDocumentNotFound, Err: err}
	case errors.Is(err, pdfdoc.ErrEncrypted):
		return &Error{Kind: ErrDocumentEncrypted, Err: err}
	default:
		return &Error{Kind: ErrDocumentCorrupt, Err: err}
	}
}
