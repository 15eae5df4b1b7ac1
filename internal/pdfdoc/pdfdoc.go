// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdfdoc opens PDF documents for rasterization. pdfcpu handles
// probing and decryption, go-fitz (MuPDF) handles page rendering. Both are
// needed because the MuPDF bindings expose no authenticate call: an
// encrypted document is decrypted to a temporary copy before rendering.
package pdfdoc

import (
	"errors"
	"fmt"
	"image"
	"os"

	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Open failures fall into three classes a caller reacts to differently:
// fix the path, give up on the file, or retry with a password.
var (
	// ErrNotFound reports that the input path is not a readable file.
	ErrNotFound = errors.New("pdf file not found")

	// ErrCorrupt reports that the file exists but is not a parseable PDF.
	ErrCorrupt = errors.New("pdf file corrupt")

	// ErrEncrypted reports a missing or wrong password for a protected PDF.
	ErrEncrypted = errors.New("pdf encrypted")
)

// Document is the subset of go-fitz the conversion pipeline uses.
// Page numbers are 0-based, matching MuPDF.
type Document interface {
	NumPage() int
	ImageDPI(pageNumber int, dpi float64) (image.Image, error)
	Close() error
}

// document wraps a fitz document plus the decrypted temp copy, if any.
type document struct {
	*fitz.Document
	tempPath string
}

func (d *document) ImageDPI(pageNumber int, dpi float64) (image.Image, error) {
	return d.Document.ImageDPI(pageNumber, dpi)
}

func (d *document) Close() error {
	err := d.Document.Close()
	if d.tempPath != "" {
		if rmErr := os.Remove(d.tempPath); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	return err
}

// Open opens the PDF at path, decrypting it with password when protected.
// Returned errors wrap ErrNotFound, ErrEncrypted, or ErrCorrupt.
func Open(path, password string) (Document, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}

	encrypted, err := probe(path, password)
	if err != nil {
		return nil, err
	}

	renderPath := path
	tempPath := ""
	if encrypted {
		tempPath, err = decryptToTemp(path, password)
		if err != nil {
			return nil, err
		}
		renderPath = tempPath
	}

	doc, err := fitz.New(renderPath)
	if err != nil {
		removeIfSet(tempPath)
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.NumPage() == 0 {
		doc.Close()
		removeIfSet(tempPath)
		return nil, fmt.Errorf("%w: document has no pages", ErrCorrupt)
	}

	return &document{Document: doc, tempPath: tempPath}, nil
}

// probe parses the document with pdfcpu and reports whether it is encrypted.
func probe(path, password string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	defer f.Close()

	ctx, err := api.ReadContext(f, configuration(password))
	if err != nil {
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			if password == "" {
				return false, fmt.Errorf("%w: password required", ErrEncrypted)
			}
			return false, fmt.Errorf("%w: wrong password", ErrEncrypted)
		}
		return false, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return ctx.Encrypt != nil, nil
}

// decryptToTemp writes a decrypted copy of path to a temp file and returns
// its location. The caller owns the file.
func decryptToTemp(path, password string) (string, error) {
	tmp, err := os.CreateTemp("", "pagesnap-*.pdf")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmp.Close()

	if err := api.DecryptFile(path, tmp.Name(), configuration(password)); err != nil {
		os.Remove(tmp.Name())
		if errors.Is(err, pdfcpu.ErrWrongPassword) {
			return "", fmt.Errorf("%w: wrong password", ErrEncrypted)
		}
		return "", fmt.Errorf("%w: %v", ErrCorrupt, err)
	}

	return tmp.Name(), nil
}

func configuration(password string) *model.Configuration {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	conf.UserPW = password
	conf.OwnerPW = password
	return conf
}

func removeIfSet(path string) {
	if path != "" {
		os.Remove(path)
	}
}
