package gcode

import (
	"bytes"
	"fmt"
)

// ============================================================
// Formatter
// ============================================================

// FormatOptions are the post-processing flags applied when a program
// is serialized.
type FormatOptions struct {
	Checksums            bool `json:"checksums"`
	LineNumbers          bool `json:"line_numbers"`
	NewlineBeforeComment bool `json:"newline_before_comment"`
}

// Format serializes a program to bytes.
//
// Line numbers are emitted as N<k> words; checksums are the RepRap
// XOR of every byte before the '*'.
func Format(program *Program, opts FormatOptions) ([]byte, error) {
	if program == nil {
		return nil, fmt.Errorf("format: program is nil")
	}

	var buf bytes.Buffer
	lineNumber := 0

	for _, blk := range program.Blocks {
		text := blk.Text()
		if text == "" {
			continue
		}

		if opts.NewlineBeforeComment && blk.IsComment() && buf.Len() > 0 {
			buf.WriteByte('\n')
		}

		line := text
		if opts.LineNumbers && !blk.IsComment() {
			line = fmt.Sprintf("N%d %s", lineNumber, text)
			lineNumber++
		}
		if opts.Checksums && !blk.IsComment() {
			line = fmt.Sprintf("%s*%d", line, checksum(line))
		}

		buf.WriteString(line)
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func checksum(line string) byte {
	var cs byte
	for i := 0; i < len(line); i++ {
		cs ^= line[i]
	}
	return cs
}
