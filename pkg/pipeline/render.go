package pipeline

import (
	"github.com/MrZhangFengfeng/dataVisualization/pkg/errors"
	"github.com/MrZhangFengfeng/dataVisualization/pkg/export"
)

// Export converts serialized SVG into format.
func Export(svg []byte, format string, scale float64, native bool) ([]byte, error) {
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatPNG:
		if native {
			return export.RasterPNG(svg, scale)
		}
		return export.ToPNG(svg, scale)
	case FormatPDF:
		return export.ToPDF(svg)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
	}
}
