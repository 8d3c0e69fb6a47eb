package svg

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ============================================================
// Path Data
// ============================================================

// defaultTolerancePx is the max chord deviation when flattening
// curves, in user units.
const defaultTolerancePx = 0.25

var pathCommandRe = regexp.MustCompile(`([MmLlHhVvCcZz])([^MmLlHhVvCcZz]*)`)

// FlattenPath парсит path data (M, L, H, V, C, Z в обеих регистрах)
// в ломаную. Кривые Безье разворачиваются с заданным допуском.
func FlattenPath(d string, tolerance float64) ([]Point, error) {
	d = strings.TrimSpace(d)
	if d == "" {
		return nil, fmt.Errorf("empty path")
	}
	if tolerance <= 0 {
		tolerance = defaultTolerancePx
	}

	var points []Point
	var current, start Point

	matches := pathCommandRe.FindAllStringSubmatch(d, -1)
	if len(matches) == 0 {
		return nil, fmt.Errorf("no path commands in %q", d)
	}

	for _, match := range matches {
		cmd := match[1]
		coords := parseCoords(match[2])

		switch cmd {
		case "M", "m", "L", "l":
			relative := cmd == "m" || cmd == "l"
			for i := 0; i+1 < len(coords); i += 2 {
				if relative {
					current.X += coords[i]
					current.Y += coords[i+1]
				} else {
					current = Point{X: coords[i], Y: coords[i+1]}
				}
				points = append(points, current)
				// Первая точка после MoveTo — начало контура.
				if (cmd == "M" || cmd == "m") && i == 0 {
					start = current
				}
			}

		case "H", "h":
			for _, c := range coords {
				if cmd == "h" {
					current.X += c
				} else {
					current.X = c
				}
				points = append(points, current)
			}

		case "V", "v":
			for _, c := range coords {
				if cmd == "v" {
					current.Y += c
				} else {
					current.Y = c
				}
				points = append(points, current)
			}

		case "C", "c":
			for i := 0; i+5 < len(coords); i += 6 {
				c1 := Point{X: coords[i], Y: coords[i+1]}
				c2 := Point{X: coords[i+2], Y: coords[i+3]}
				end := Point{X: coords[i+4], Y: coords[i+5]}
				if cmd == "c" {
					c1 = Point{X: current.X + c1.X, Y: current.Y + c1.Y}
					c2 = Point{X: current.X + c2.X, Y: current.Y + c2.Y}
					end = Point{X: current.X + end.X, Y: current.Y + end.Y}
				}
				points = flattenCubic(points, current, c1, c2, end, tolerance, 0)
				current = end
			}

		case "Z", "z":
			if len(points) > 0 {
				current = start
				points = append(points, current)
			}
		}
	}

	return points, nil
}

// flattenCubic рекурсивно делит кривую, пока хорда не уложится в допуск.
func flattenCubic(points []Point, p0, p1, p2, p3 Point, tolerance float64, depth int) []Point {
	if depth >= 16 || chordDeviation(p0, p1, p2, p3) <= tolerance {
		return append(points, p3)
	}

	// de Casteljau split at t=0.5
	m01 := midpoint(p0, p1)
	m12 := midpoint(p1, p2)
	m23 := midpoint(p2, p3)
	m012 := midpoint(m01, m12)
	m123 := midpoint(m12, m23)
	mid := midpoint(m012, m123)

	points = flattenCubic(points, p0, m01, m012, mid, tolerance, depth+1)
	return flattenCubic(points, mid, m123, m23, p3, tolerance, depth+1)
}

func chordDeviation(p0, p1, p2, p3 Point) float64 {
	d1 := pointToSegment(p1, p0, p3)
	d2 := pointToSegment(p2, p0, p3)
	return math.Max(d1, d2)
}

func pointToSegment(p, a, b Point) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}

	t := ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / lenSq
	t = math.Max(0, math.Min(1, t))
	return math.Hypot(p.X-(a.X+t*dx), p.Y-(a.Y+t*dy))
}

func midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

func parseCoords(s string) []float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", " ")
	parts := strings.Fields(s)

	var coords []float64
	for _, part := range parts {
		val, err := strconv.ParseFloat(part, 64)
		if err == nil {
			coords = append(coords, val)
		}
	}
	return coords
}
