package gcode

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSnippet(t *testing.T) {
	blocks, err := ParseSnippet("M3 S1000\nG4 P0.5 ; spin up")
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Equal(t, []Word{{'M', 3}, {'S', 1000}}, blocks[0].Words)
	assert.Equal(t, []Word{{'G', 4}, {'P', 0.5}}, blocks[1].Words)
	assert.Equal(t, "spin up", blocks[1].Comment)
}

func TestParseSnippet_LowercaseAndParens(t *testing.T) {
	blocks, err := ParseSnippet("g0 x1 (rapid) y2")
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, []Word{{'G', 0}, {'X', 1}, {'Y', 2}}, blocks[0].Words)
}

func TestParseSnippet_Invalid(t *testing.T) {
	cases := []string{
		"",
		"   \n  ",
		"M3 %%",
		"G",
		"M3 (unterminated",
		"X abc",
	}
	for _, src := range cases {
		_, err := ParseSnippet(src)
		assert.Error(t, err, "snippet %q must fail", src)
	}
}

func TestBlockText(t *testing.T) {
	b := Block{Words: []Word{{'G', 1}, {'X', 10.12345}, {'F', 3000}}}
	assert.Equal(t, "G1 X10.1235 F3000", b.Text())

	assert.Equal(t, "; just a comment", Block{Comment: "just a comment"}.Text())
	assert.Equal(t, "G0 X1 ; rapid", Block{Words: []Word{{'G', 0}, {'X', 1}}, Comment: "rapid"}.Text())
}

func TestFormat_Plain(t *testing.T) {
	p := &Program{}
	p.Append(
		comment("header"),
		block(Word{'G', 21}),
		block(Word{'G', 1}, Word{'X', 5}),
	)

	out, err := Format(p, FormatOptions{})
	require.NoError(t, err)
	assert.Equal(t, "; header\nG21\nG1 X5\n", string(out))
}

func TestFormat_LineNumbersAndChecksums(t *testing.T) {
	p := &Program{}
	p.Append(block(Word{'G', 21}), block(Word{'G', 90}))

	out, err := Format(p, FormatOptions{LineNumbers: true, Checksums: true})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)

	// "N0 G21" XORs to 26.
	assert.Equal(t, "N0 G21*26", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "N1 G90*"))
}

func TestFormat_NewlineBeforeComment(t *testing.T) {
	p := &Program{}
	p.Append(block(Word{'G', 21}), comment("next section"), block(Word{'G', 90}))

	out, err := Format(p, FormatOptions{NewlineBeforeComment: true})
	require.NoError(t, err)
	assert.Equal(t, "G21\n\n; next section\nG90\n", string(out))
}

func TestNewMachine(t *testing.T) {
	m, err := NewMachine(true, "M3 S1000", "M5", "G21\nG90", "M2")
	require.NoError(t, err)
	assert.True(t, m.SupportsCircularInterpolation)
	assert.Len(t, m.Begin, 2)
	assert.Len(t, m.ToolOff, 1)

	// Empty sequences are simply absent.
	m, err = NewMachine(false, "", "", "", "")
	require.NoError(t, err)
	assert.Nil(t, m.ToolOn)

	// A bad snippet is fatal.
	_, err = NewMachine(false, "M3 $$", "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tool-on")
}
