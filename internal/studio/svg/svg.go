package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// ============================================================
// SVG Document Handle
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Document is the parsed markup handle the converter consumes: the
// root sizing attributes plus the drawable geometry in user units
// (pixels). Path data stays raw so the converter can flatten curves
// at its own tolerance.
type Document struct {
	Width   string
	Height  string
	ViewBox string

	Paths    []string  // raw path data ("d" attributes)
	Polygons [][]Point // rects and other pre-flattened shapes
}

// Parse разбирает SVG в permissive-режиме: внутренний DTD и прочие
// нестрогости источника не должны ронять разбор.
func Parse(data []byte) (*Document, error) {
	decoder := xml.NewDecoder(bytes.NewReader(data))
	decoder.Strict = false

	doc := &Document{}
	sawRoot := false

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse svg: %w", err)
		}

		start, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		if !sawRoot {
			if start.Name.Local != "svg" {
				return nil, fmt.Errorf("parse svg: root element is <%s>, not <svg>", start.Name.Local)
			}
			doc.Width = attr(start, "width")
			doc.Height = attr(start, "height")
			doc.ViewBox = attr(start, "viewBox")
			sawRoot = true
			continue
		}

		switch start.Name.Local {
		case "path":
			if d := attr(start, "d"); d != "" {
				doc.Paths = append(doc.Paths, d)
			}
		case "rect":
			if points, ok := rectPoints(start); ok {
				doc.Polygons = append(doc.Polygons, points)
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("parse svg: no root element")
	}

	return doc, nil
}

func attr(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// rectPoints превращает rect в замкнутый четырёхугольник.
func rectPoints(start xml.StartElement) ([]Point, bool) {
	x := floatAttr(start, "x")
	y := floatAttr(start, "y")
	w := floatAttr(start, "width")
	h := floatAttr(start, "height")
	if w <= 0 || h <= 0 {
		return nil, false
	}

	return []Point{
		{X: x, Y: y},
		{X: x + w, Y: y},
		{X: x + w, Y: y + h},
		{X: x, Y: y + h},
		{X: x, Y: y},
	}, true
}

func floatAttr(start xml.StartElement, name string) float64 {
	val, err := strconv.ParseFloat(attr(start, name), 64)
	if err != nil {
		return 0
	}
	return val
}
