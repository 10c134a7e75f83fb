package export

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
)

// MaxRasterPixels bounds the in-process raster size (about 256 MiB of RGBA).
const MaxRasterPixels = 64 << 20

// RasterPNG renders svg to PNG without external tools. The image is the
// viewBox size multiplied by scale and may hold at most MaxRasterPixels.
//
// Unsupported SVG features are skipped rather than reported.
func RasterPNG(svg []byte, scale float64) ([]byte, error) {
	if err := errors.ValidateScale(scale); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(bytes.NewReader(svg), oksvg.IgnoreErrorMode)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse svg")
	}
	fw := math.Ceil(icon.ViewBox.W * scale)
	fh := math.Ceil(icon.ViewBox.H * scale)
	if !(fw > 0 && fh > 0) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "svg has no usable viewBox")
	}
	if fw*fh > MaxRasterPixels {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"raster size %.0fx%.0f exceeds %d pixels; lower the scale or canvas", fw, fh, MaxRasterPixels)
	}
	w, h := int(fw), int(fh)

	icon.SetTarget(0, 0, float64(w), float64(h))
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}
