package gcode

import (
	"math"
	"strconv"
	"strings"
)

// ============================================================
// G-code Program Model
// ============================================================

// Word is a single field: a command letter plus its number.
type Word struct {
	Letter byte
	Value  float64
}

// Block is one line of G-code: words and/or a trailing comment.
type Block struct {
	Words   []Word
	Comment string
}

// Program is the abstract toolpath prior to text formatting.
type Program struct {
	Blocks []Block
}

func (p *Program) Append(blocks ...Block) {
	p.Blocks = append(p.Blocks, blocks...)
}

// IsComment reports whether the block carries only a comment.
func (b Block) IsComment() bool {
	return len(b.Words) == 0 && b.Comment != ""
}

// Text renders the block without line number or checksum.
func (b Block) Text() string {
	var sb strings.Builder
	for i, w := range b.Words {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(w.Letter)
		sb.WriteString(formatValue(w.Value))
	}
	if b.Comment != "" {
		if len(b.Words) > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString("; ")
		sb.WriteString(b.Comment)
	}
	return sb.String()
}

// formatValue prints numbers with at most 4 decimals, trailing zeros
// stripped.
func formatValue(v float64) string {
	rounded := math.Round(v*10000) / 10000
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

// ============================================================
// Block helpers
// ============================================================

func block(words ...Word) Block {
	return Block{Words: words}
}

func comment(text string) Block {
	return Block{Comment: text}
}
