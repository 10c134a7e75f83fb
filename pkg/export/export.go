// Package export converts serialized SVG into raster and print formats.
//
// [ToPNG] and [ToPDF] shell out to rsvg-convert from librsvg, which renders
// the full SVG feature set. [RasterPNG] renders in-process with oksvg and
// needs no external tools, at the cost of partial SVG support.
package export

import (
	"bytes"
	"fmt"
	"os/exec"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
)

var rsvgBinary = "rsvg-convert"

// Available reports whether rsvg-convert is on PATH.
func Available() bool {
	_, err := exec.LookPath(rsvgBinary)
	return err == nil
}

// ToPDF converts SVG bytes to PDF.
func ToPDF(svg []byte) ([]byte, error) {
	return rsvgConvert(svg, "pdf")
}

// ToPNG converts SVG bytes to PNG. A scale of 2 doubles the pixel size.
func ToPNG(svg []byte, scale float64) ([]byte, error) {
	if err := errors.ValidateScale(scale); err != nil {
		return nil, err
	}
	return rsvgConvert(svg, "png", "-z", fmt.Sprintf("%.2f", scale))
}

func rsvgConvert(svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeUnsupported,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.Command(rsvgBinary, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "rsvg-convert: %s", bytes.TrimSpace(errBuf.Bytes()))
	}
	return out.Bytes(), nil
}
