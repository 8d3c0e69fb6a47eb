package convert

import (
	"fmt"

	"plotbed/internal/studio/gcode"
	"plotbed/internal/studio/svg"
)

// ============================================================
// SVG → G-code Conversion
// ============================================================

// Options are the per-drawing conversion parameters. DPI maps user
// units to millimeters (higher DPI shrinks the output); Origin is an
// optional bed-space translation per axis.
type Options struct {
	DPI           float64
	OriginX       *float64
	OriginY       *float64
	FeedrateMmMin float64
	ToleranceMm   float64
}

// Convert turns a parsed document into a toolpath program using the
// shared machine description. Drawings are processed in document
// order; the tool is off for travel moves and on for feed moves.
func Convert(doc *svg.Document, opts Options, machine gcode.Machine) (*gcode.Program, error) {
	if doc == nil {
		return nil, fmt.Errorf("convert: document is nil")
	}
	if opts.DPI <= 0 {
		return nil, fmt.Errorf("convert: dpi must be positive, got %v", opts.DPI)
	}

	polylines, err := flatten(doc, opts)
	if err != nil {
		return nil, err
	}

	// px → mm, then bed-space translation.
	factor := 25.4 / opts.DPI
	originX, originY := 0.0, 0.0
	if opts.OriginX != nil {
		originX = *opts.OriginX
	}
	if opts.OriginY != nil {
		originY = *opts.OriginY
	}

	program := &gcode.Program{}
	program.Append(machine.Begin...)
	program.Append(
		gcode.Block{Words: []gcode.Word{{Letter: 'G', Value: 21}}, Comment: "millimeters"},
		gcode.Block{Words: []gcode.Word{{Letter: 'G', Value: 90}}, Comment: "absolute"},
	)

	for _, polyline := range polylines {
		if len(polyline) < 2 {
			continue
		}

		program.Append(machine.ToolOff...)

		first := polyline[0]
		program.Append(gcode.Block{Words: []gcode.Word{
			{Letter: 'G', Value: 0},
			{Letter: 'X', Value: first.X*factor + originX},
			{Letter: 'Y', Value: first.Y*factor + originY},
		}})

		program.Append(machine.ToolOn...)

		for _, p := range polyline[1:] {
			program.Append(gcode.Block{Words: []gcode.Word{
				{Letter: 'G', Value: 1},
				{Letter: 'X', Value: p.X*factor + originX},
				{Letter: 'Y', Value: p.Y*factor + originY},
				{Letter: 'F', Value: opts.FeedrateMmMin},
			}})
		}
	}

	program.Append(machine.ToolOff...)
	program.Append(machine.End...)

	return program, nil
}

// flatten собирает все контуры документа в ломаные с допуском,
// переведённым из миллиметров в пользовательские единицы.
func flatten(doc *svg.Document, opts Options) ([][]svg.Point, error) {
	tolerancePx := opts.ToleranceMm * opts.DPI / 25.4

	polylines := make([][]svg.Point, 0, len(doc.Paths)+len(doc.Polygons))
	for i, d := range doc.Paths {
		points, err := svg.FlattenPath(d, tolerancePx)
		if err != nil {
			return nil, fmt.Errorf("convert: path %d: %w", i, err)
		}
		polylines = append(polylines, points)
	}
	polylines = append(polylines, doc.Polygons...)

	return polylines, nil
}
