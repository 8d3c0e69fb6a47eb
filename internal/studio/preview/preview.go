package preview

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"

	"plotbed/internal/studio/models"
	"plotbed/internal/studio/placement"
)

// ============================================================
// Bed Preview Renderer
// ============================================================

const gridSpacingMm = 10.0

const (
	fitsColor    = "#4caf50"
	overrunColor = "#f44336"
)

// Render draws the bed layout for one drawing as an SVG string: a
// 10 mm grid, the bed border, and — when the drawing's size is known —
// the drawing itself at its offset with a dashed footprint outline
// colored by whether it fits the bed.
func Render(d *models.Drawing, bed placement.Bed) (string, error) {
	if bed.WidthMm <= 0 || bed.HeightMm <= 0 {
		return "", fmt.Errorf("render preview: bed size must be positive")
	}

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s">`,
		formatFloat(bed.WidthMm), formatFloat(bed.HeightMm)))
	b.WriteString("\n")

	for _, elem := range gridLines(bed) {
		b.WriteString("  ")
		b.WriteString(elem)
		b.WriteString("\n")
	}

	// Bed border.
	b.WriteString(fmt.Sprintf(`  <rect x="0" y="0" width="%s" height="%s" fill="none" stroke="#333" stroke-width="1"/>`,
		formatFloat(bed.WidthMm), formatFloat(bed.HeightMm)))
	b.WriteString("\n")

	if size, ok := d.ResolveSize(); ok {
		footprint := d.Placement.Footprint(size)
		offset := d.Placement.Offset

		color := fitsColor
		if !bed.Fits(footprint) {
			color = overrunColor
		}

		encoded := base64.StdEncoding.EncodeToString(d.Content)
		b.WriteString(fmt.Sprintf(`  <image href="data:image/svg+xml;base64,%s" x="%s" y="%s" width="%s" height="%s" preserveAspectRatio="xMinYMin meet"/>`,
			encoded,
			formatFloat(offset.X), formatFloat(offset.Y),
			formatFloat(footprint.WidthMm), formatFloat(footprint.HeightMm)))
		b.WriteString("\n")

		b.WriteString(fmt.Sprintf(`  <rect x="%s" y="%s" width="%s" height="%s" fill="none" stroke="%s" stroke-width="1" stroke-dasharray="5,5"/>`,
			formatFloat(offset.X), formatFloat(offset.Y),
			formatFloat(footprint.WidthMm), formatFloat(footprint.HeightMm),
			color))
		b.WriteString("\n")
	}

	b.WriteString(`</svg>`)
	return b.String(), nil
}

// gridLines рисует сетку с шагом 10 мм.
func gridLines(bed placement.Bed) []string {
	var elements []string
	elements = append(elements, `<g stroke="#e0e0e0" stroke-width="0.5">`)

	for i := 0; float64(i)*gridSpacingMm <= bed.WidthMm; i++ {
		x := formatFloat(float64(i) * gridSpacingMm)
		elements = append(elements, fmt.Sprintf(`  <line x1="%s" y1="0" x2="%s" y2="%s"/>`,
			x, x, formatFloat(bed.HeightMm)))
	}
	for i := 0; float64(i)*gridSpacingMm <= bed.HeightMm; i++ {
		y := formatFloat(float64(i) * gridSpacingMm)
		elements = append(elements, fmt.Sprintf(`  <line x1="0" y1="%s" x2="%s" y2="%s"/>`,
			y, formatFloat(bed.WidthMm), y))
	}

	elements = append(elements, `</g>`)
	return elements
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
