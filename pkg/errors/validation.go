package errors

import (
	"math"
	"strings"
)

// Output formats understood by the pipeline.
const (
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

var validFormats = map[string]bool{FormatSVG: true, FormatPNG: true, FormatPDF: true}

// ValidateFormat checks that format is one of svg, png or pdf.
func ValidateFormat(format string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	if !validFormats[strings.ToLower(format)] {
		return New(ErrCodeInvalidFormat, "invalid format: %s (must be 'svg', 'png', or 'pdf')", format)
	}
	return nil
}

// ValidateFormats checks every entry with [ValidateFormat].
func ValidateFormats(formats []string) error {
	if len(formats) == 0 {
		return New(ErrCodeInvalidFormat, "at least one format is required")
	}
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateScale checks a raster scale factor.
//
// Validation rules:
//   - Must be a finite number
//   - Must be greater than zero
//   - Maximum of 16
func ValidateScale(scale float64) error {
	const maxScale = 16
	if math.IsNaN(scale) || math.IsInf(scale, 0) {
		return New(ErrCodeInvalidInput, "scale must be a finite number")
	}
	if scale <= 0 {
		return New(ErrCodeInvalidInput, "scale must be positive, got %v", scale)
	}
	if scale > maxScale {
		return New(ErrCodeInvalidInput, "scale too large (max %d)", maxScale)
	}
	return nil
}

// ValidateCanvas checks document dimensions.
func ValidateCanvas(width, height float64) error {
	const maxSide = 100000
	for _, v := range []float64{width, height} {
		if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return New(ErrCodeInvalidDocument, "canvas size must be positive, got %vx%v", width, height)
		}
		if v > maxSide {
			return New(ErrCodeInvalidDocument, "canvas side too large (max %d)", maxSide)
		}
	}
	return nil
}
