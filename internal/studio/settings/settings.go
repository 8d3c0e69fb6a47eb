package settings

import (
	"fmt"

	"plotbed/internal/studio/gcode"
	"plotbed/internal/studio/placement"
)

// ============================================================
// Settings Record
// ============================================================

// SchemaVersion is the current settings schema version.
const SchemaVersion = 2

// MachineSettings describe device capability and the optional
// control-sequence snippets (raw, compiled at export time).
type MachineSettings struct {
	SupportsCircularInterpolation bool   `json:"supports_circular_interpolation"`
	ToolOnSequence                string `json:"tool_on_sequence"`
	ToolOffSequence               string `json:"tool_off_sequence"`
	BeginSequence                 string `json:"begin_sequence"`
	EndSequence                   string `json:"end_sequence"`
}

// ConversionSettings are the conversion defaults every export starts
// from.
type ConversionSettings struct {
	DPI           float64 `json:"dpi"`
	FeedrateMmMin float64 `json:"feedrate_mm_min"`
	ToleranceMm   float64 `json:"tolerance_mm"`
	BedWidthMm    float64 `json:"bed_width_mm"`
	BedHeightMm   float64 `json:"bed_height_mm"`
}

// Record — versioned configuration, the single source of truth for a
// session. Mutations replace the whole record.
type Record struct {
	Version     int                 `json:"version"`
	Machine     MachineSettings     `json:"machine"`
	Conversion  ConversionSettings  `json:"conversion"`
	Postprocess gcode.FormatOptions `json:"postprocess"`
}

// Default returns a record at the current schema version.
func Default() Record {
	return Record{
		Version: SchemaVersion,
		Machine: MachineSettings{
			ToolOnSequence:  "M3 S1000",
			ToolOffSequence: "M5",
		},
		Conversion: ConversionSettings{
			DPI:           96,
			FeedrateMmMin: 3000,
			ToleranceMm:   0.1,
			BedWidthMm:    300,
			BedHeightMm:   200,
		},
	}
}

// Bed returns the work surface geometry.
func (r Record) Bed() placement.Bed {
	return placement.Bed{WidthMm: r.Conversion.BedWidthMm, HeightMm: r.Conversion.BedHeightMm}
}

// ============================================================
// Schema Upgrade
// ============================================================

// Upgrade lifts a loaded record to the current schema version.
// Idempotent: a current record comes back unchanged. An unknown or
// future version is unrecoverable by design — no best-effort
// migration.
func (r Record) Upgrade() (Record, error) {
	switch {
	case r.Version < 0 || r.Version > SchemaVersion:
		return Record{}, fmt.Errorf("unsupported settings schema version %d (current %d)", r.Version, SchemaVersion)

	case r.Version == SchemaVersion:
		return r, nil
	}

	// v0/v1 → v2: feedrate and flattening tolerance were introduced
	// in v2; older records get the defaults.
	if r.Conversion.FeedrateMmMin <= 0 {
		r.Conversion.FeedrateMmMin = Default().Conversion.FeedrateMmMin
	}
	if r.Conversion.ToleranceMm <= 0 {
		r.Conversion.ToleranceMm = Default().Conversion.ToleranceMm
	}
	r.Version = SchemaVersion

	return r, nil
}

// Validate проверяет инварианты записи перед заменой.
func (r Record) Validate() error {
	if r.Conversion.DPI <= 0 {
		return fmt.Errorf("dpi must be positive")
	}
	if r.Conversion.BedWidthMm <= 0 || r.Conversion.BedHeightMm <= 0 {
		return fmt.Errorf("bed size must be positive")
	}
	if r.Conversion.FeedrateMmMin <= 0 {
		return fmt.Errorf("feedrate must be positive")
	}
	if r.Conversion.ToleranceMm <= 0 {
		return fmt.Errorf("tolerance must be positive")
	}
	return nil
}
