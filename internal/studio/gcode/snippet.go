package gcode

import (
	"fmt"
	"strconv"
	"strings"
)

// ============================================================
// Snippet Parser
// ============================================================

// ParseSnippet компилирует пользовательский фрагмент G-code
// (tool-on/off, begin/end) в блоки. Любой мусор — ошибка: фрагменты
// общие для всей партии и должны быть валидны до начала экспорта.
func ParseSnippet(text string) ([]Block, error) {
	var blocks []Block

	for lineNo, line := range strings.Split(text, "\n") {
		blk, err := parseSnippetLine(line)
		if err != nil {
			return nil, fmt.Errorf("snippet line %d: %w", lineNo+1, err)
		}
		if len(blk.Words) == 0 && blk.Comment == "" {
			continue
		}
		blocks = append(blocks, blk)
	}

	if len(blocks) == 0 {
		return nil, fmt.Errorf("snippet is empty")
	}
	return blocks, nil
}

func parseSnippetLine(line string) (Block, error) {
	var blk Block

	// Trailing ;-comment.
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		blk.Comment = strings.TrimSpace(line[idx+1:])
		line = line[:idx]
	}

	// Parenthesized comments are dropped.
	for {
		open := strings.IndexByte(line, '(')
		if open < 0 {
			break
		}
		closing := strings.IndexByte(line[open:], ')')
		if closing < 0 {
			return Block{}, fmt.Errorf("unterminated comment")
		}
		line = line[:open] + line[open+closing+1:]
	}

	rest := strings.TrimSpace(line)
	for rest != "" {
		letter := rest[0]
		if !isWordLetter(letter) {
			return Block{}, fmt.Errorf("unexpected character %q", letter)
		}

		numEnd := 1
		for numEnd < len(rest) && isNumberByte(rest[numEnd]) {
			numEnd++
		}
		value, err := strconv.ParseFloat(rest[1:numEnd], 64)
		if err != nil {
			return Block{}, fmt.Errorf("word %c: bad number %q", letter, rest[1:numEnd])
		}

		blk.Words = append(blk.Words, Word{Letter: upper(letter), Value: value})
		rest = strings.TrimLeft(rest[numEnd:], " \t\r")
	}

	return blk, nil
}

func isWordLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isNumberByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == '-' || b == '+'
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
