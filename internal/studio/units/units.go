package units

import (
	"strconv"
	"strings"
)

// ============================================================
// Physical Lengths
// ============================================================

// Unit is a supported SVG length unit.
type Unit int

const (
	UnitNone Unit = iota // unit-less, treated as pixels
	UnitPx
	UnitMm
	UnitCm
	UnitIn
	UnitPt
	UnitPc
)

// ReferenceDPI is the pixel density assumed for px and unit-less lengths.
const ReferenceDPI = 96.0

type Length struct {
	Number float64
	Unit   Unit
}

// Size is a physical size in millimeters.
type Size struct {
	WidthMm  float64 `json:"width_mm"`
	HeightMm float64 `json:"height_mm"`
}

// ParseLength парсит значение вида "20cm", "215.9mm", "8.5in", "120".
// Unsupported units (em, ex, %) are rejected.
func ParseLength(s string) (Length, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Length{}, false
	}

	suffix := ""
	numEnd := len(s)
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E' {
			continue
		}
		numEnd = i
		suffix = strings.TrimSpace(s[i:])
		break
	}

	number, err := strconv.ParseFloat(s[:numEnd], 64)
	if err != nil {
		return Length{}, false
	}

	unit, ok := parseUnit(suffix)
	if !ok {
		return Length{}, false
	}

	return Length{Number: number, Unit: unit}, true
}

func parseUnit(s string) (Unit, bool) {
	switch strings.ToLower(s) {
	case "":
		return UnitNone, true
	case "px":
		return UnitPx, true
	case "mm":
		return UnitMm, true
	case "cm":
		return UnitCm, true
	case "in":
		return UnitIn, true
	case "pt":
		return UnitPt, true
	case "pc":
		return UnitPc, true
	}
	return UnitNone, false
}

// Millimeters converts the length to millimeters.
func (l Length) Millimeters() float64 {
	switch l.Unit {
	case UnitMm:
		return l.Number
	case UnitCm:
		return l.Number * 10.0
	case UnitIn:
		return l.Number * 25.4
	case UnitPt:
		return l.Number * 25.4 / 72.0
	case UnitPc:
		return l.Number * 25.4 / 6.0
	default: // px / unit-less at the reference density
		return l.Number * 25.4 / ReferenceDPI
	}
}

// ============================================================
// Size Resolution
// ============================================================

// ResolveSize determines a drawing's physical size in millimeters.
//
// Precedence:
//  1. both overrides supplied — they win together;
//  2. width/height root attributes, each falling back to its override;
//  3. viewBox width/height interpreted as pixels;
//  4. unknown size (ok=false).
func ResolveSize(widthAttr, heightAttr, viewBox string, overrideW, overrideH *Length) (Size, bool) {
	if overrideW != nil && overrideH != nil {
		return Size{WidthMm: overrideW.Millimeters(), HeightMm: overrideH.Millimeters()}, true
	}

	width := parseAttr(widthAttr)
	if width == nil {
		width = overrideW
	}
	height := parseAttr(heightAttr)
	if height == nil {
		height = overrideH
	}

	if width != nil && height != nil {
		return Size{WidthMm: width.Millimeters(), HeightMm: height.Millimeters()}, true
	}

	if w, h, ok := parseViewBox(viewBox); ok {
		px := Length{Unit: UnitPx}
		px.Number = w
		widthMm := px.Millimeters()
		px.Number = h
		return Size{WidthMm: widthMm, HeightMm: px.Millimeters()}, true
	}

	return Size{}, false
}

func parseAttr(attr string) *Length {
	if attr == "" {
		return nil
	}
	l, ok := ParseLength(attr)
	if !ok {
		return nil
	}
	return &l
}

// parseViewBox разбирает "minX minY width height".
func parseViewBox(s string) (width, height float64, ok bool) {
	parts := strings.Fields(strings.ReplaceAll(s, ",", " "))
	if len(parts) != 4 {
		return 0, 0, false
	}

	var nums [4]float64
	for i, part := range parts {
		val, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, 0, false
		}
		nums[i] = val
	}

	return nums[2], nums[3], true
}
