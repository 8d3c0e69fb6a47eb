package export

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"path"
	"sync/atomic"
	"time"

	"plotbed/internal/studio/convert"
	"plotbed/internal/studio/gcode"
	"plotbed/internal/studio/models"
	"plotbed/internal/studio/settings"
	"plotbed/internal/studio/svg"
)

// ============================================================
// Export Orchestrator
// ============================================================

const (
	// ToolName is embedded in batch filenames and archive comments.
	ToolName        = "plotbed"
	toolDescription = "SVG placement and G-code export studio"

	gcodeExtension = ".gcode"
	outputFolder   = ToolName + "_output"
)

// ErrBusy reports that an export is already in flight. A concurrent
// attempt is refused, never queued.
var ErrBusy = errors.New("an export is already in progress")

// Artifact is the finished payload handed to the delivery boundary.
type Artifact struct {
	Filename    string
	ContentType string
	Data        []byte
}

// Exporter runs the whole batch sequentially: shared machine first,
// then one conversion per drawing in order, then packaging. Any
// failure aborts the batch; nothing partial is ever delivered.
type Exporter struct {
	busy atomic.Bool
	now  func() time.Time
}

func New() *Exporter {
	return &Exporter{now: time.Now}
}

// InProgress reports whether an export is currently running.
func (e *Exporter) InProgress() bool {
	return e.busy.Load()
}

// Export конвертирует партию и упаковывает результат: один рисунок —
// один .gcode файл, несколько — zip-архив с общей папкой.
func (e *Exporter) Export(drawings []models.Drawing, rec settings.Record) (*Artifact, error) {
	if len(drawings) == 0 {
		// Caller-side precondition; reaching this is a programming error.
		return nil, fmt.Errorf("export invoked with no drawings")
	}

	if !e.busy.CompareAndSwap(false, true) {
		return nil, ErrBusy
	}
	defer e.busy.Store(false)

	// The machine description is shared: a snippet compile failure is
	// fatal before any conversion begins.
	machine, err := gcode.NewMachine(
		rec.Machine.SupportsCircularInterpolation,
		rec.Machine.ToolOnSequence,
		rec.Machine.ToolOffSequence,
		rec.Machine.BeginSequence,
		rec.Machine.EndSequence,
	)
	if err != nil {
		return nil, fmt.Errorf("compile machine sequences: %w", err)
	}

	type converted struct {
		filename string
		program  *gcode.Program
	}

	results := make([]converted, 0, len(drawings))
	for _, d := range drawings {
		doc, err := svg.Parse(d.Content)
		if err != nil {
			return nil, fmt.Errorf("drawing %q: %w", d.Filename, err)
		}

		program, err := convert.Convert(doc, conversionParameters(d, rec), machine)
		if err != nil {
			return nil, fmt.Errorf("drawing %q: %w", d.Filename, err)
		}

		results = append(results, converted{filename: gcodeName(d.Filename), program: program})
	}

	if len(results) == 1 {
		data, err := gcode.Format(results[0].program, rec.Postprocess)
		if err != nil {
			return nil, fmt.Errorf("format %q: %w", results[0].filename, err)
		}
		return &Artifact{
			Filename:    results[0].filename,
			ContentType: "text/plain; charset=utf-8",
			Data:        data,
		}, nil
	}

	// Batch: everything goes into one shared folder inside the archive.
	var buf bytes.Buffer
	archive := zip.NewWriter(&buf)

	if _, err := archive.CreateHeader(&zip.FileHeader{
		Name:   outputFolder + "/",
		Method: zip.Store,
	}); err != nil {
		return nil, fmt.Errorf("create archive folder: %w", err)
	}

	for _, res := range results {
		entry, err := archive.CreateHeader(&zip.FileHeader{
			Name:     path.Join(outputFolder, res.filename),
			Method:   zip.Store,
			Modified: e.now(),
		})
		if err != nil {
			return nil, fmt.Errorf("create archive entry %q: %w", res.filename, err)
		}

		data, err := gcode.Format(res.program, rec.Postprocess)
		if err != nil {
			return nil, fmt.Errorf("format %q: %w", res.filename, err)
		}
		if _, err := entry.Write(data); err != nil {
			return nil, fmt.Errorf("write archive entry %q: %w", res.filename, err)
		}
	}

	if err := archive.SetComment(fmt.Sprintf("Created with %s: %s", ToolName, toolDescription)); err != nil {
		return nil, fmt.Errorf("set archive comment: %w", err)
	}
	if err := archive.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	date := e.now().UTC().Format("2006-01-02")
	return &Artifact{
		Filename:    fmt.Sprintf("%s_bulk_download_%s.zip", ToolName, date),
		ContentType: "application/zip",
		Data:        buf.Bytes(),
	}, nil
}

// conversionParameters derives the per-drawing parameters from the
// global settings and the drawing's placement: the resolution scales
// inversely with the user scale, the origin is the bed offset.
func conversionParameters(d models.Drawing, rec settings.Record) convert.Options {
	originX := d.Placement.Offset.X
	originY := d.Placement.Offset.Y

	return convert.Options{
		DPI:           rec.Conversion.DPI / d.Placement.Scale,
		OriginX:       &originX,
		OriginY:       &originY,
		FeedrateMmMin: rec.Conversion.FeedrateMmMin,
		ToleranceMm:   rec.Conversion.ToleranceMm,
	}
}

// gcodeName заменяет расширение файла на .gcode.
func gcodeName(filename string) string {
	base := path.Base(filename)
	ext := path.Ext(base)
	return base[:len(base)-len(ext)] + gcodeExtension
}
