// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package imgenc post-processes rasterized pages and encodes them: jpg and
// png through disintegration/imaging, webp through the libwebp bindings.
package imgenc

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/disintegration/imaging"
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"

	"github.com/pdiddy/pagesnap/pkg/types"
)

// Grayscale reduces img to a single-channel image using the standard
// perceptual luma weights (29.9% red, 58.7% green, 11.4% blue).
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	gray := image.NewGray(b)
	draw.Draw(gray, b, img, b.Min, draw.Src)
	return gray
}

// Downscale shrinks img so its longest side equals maxDim, preserving the
// aspect ratio, using Lanczos resampling. Images already within the cap are
// returned unchanged.
func Downscale(img image.Image, maxDim int) image.Image {
	b := img.Bounds()
	if b.Dx() <= maxDim && b.Dy() <= maxDim {
		return img
	}
	return imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
}

// Encode writes img to w in the given format. Quality applies to jpg and
// webp; png ignores it.
func Encode(w io.Writer, img image.Image, format types.Format, quality int) error {
	switch format {
	case types.FormatJPG:
		return imaging.Encode(w, img, imaging.JPEG, imaging.JPEGQuality(quality))
	case types.FormatPNG:
		return imaging.Encode(w, img, imaging.PNG)
	case types.FormatWEBP:
		opts, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, float32(quality))
		if err != nil {
			return fmt.Errorf("webp encoder options: %w", err)
		}
		// libwebp takes RGB input; normalize grayscale and other color
		// models first.
		return webp.Encode(w, imaging.Clone(img), opts)
	}
	return fmt.Errorf("unsupported format %q", format)
}

// Ext returns the filename extension for format, including the dot.
func Ext(format types.Format) string {
	return "." + string(format)
}
