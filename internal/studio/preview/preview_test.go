package preview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plotbed/internal/studio/models"
	"plotbed/internal/studio/placement"
)

var testBed = placement.Bed{WidthMm: 300, HeightMm: 200}

func TestRender_KnownSize(t *testing.T) {
	d := &models.Drawing{
		Filename: "a.svg",
		Content:  []byte(`<svg xmlns="http://www.w3.org/2000/svg" width="100mm" height="50mm"><path d="M 0 0 L 10 10"/></svg>`),
	}
	d.Placement.SetScale(1)
	d.Placement.SetOffset(20, 10)

	out, err := Render(d, testBed)
	require.NoError(t, err)

	assert.Contains(t, out, `viewBox="0 0 300 200"`)
	assert.Contains(t, out, "data:image/svg+xml;base64,")
	assert.Contains(t, out, `x="20" y="10" width="100" height="50"`)
	assert.Contains(t, out, "#4caf50", "a fitting drawing gets the fits color")
	assert.NotContains(t, out, "#f44336")
}

func TestRender_Overrun(t *testing.T) {
	d := &models.Drawing{
		Content: []byte(`<svg width="400mm" height="50mm"></svg>`),
	}
	d.Placement.SetScale(1)

	out, err := Render(d, testBed)
	require.NoError(t, err)
	assert.Contains(t, out, "#f44336", "an oversized drawing gets the warning color")
}

func TestRender_UnknownSize(t *testing.T) {
	d := &models.Drawing{Content: []byte(`<svg></svg>`)}
	d.Placement.SetScale(1)

	out, err := Render(d, testBed)
	require.NoError(t, err)

	// Grid and bed only; no image, no outline.
	assert.NotContains(t, out, "<image")
	assert.Contains(t, out, "stroke=\"#333\"")
}

func TestRender_GridDensity(t *testing.T) {
	d := &models.Drawing{Content: []byte(`<svg></svg>`)}
	out, err := Render(d, testBed)
	require.NoError(t, err)

	// 31 vertical + 21 horizontal lines for a 300x200 bed.
	assert.Equal(t, 52, strings.Count(out, "<line "))
}

func TestRender_BadBed(t *testing.T) {
	d := &models.Drawing{Content: []byte(`<svg></svg>`)}
	_, err := Render(d, placement.Bed{})
	assert.Error(t, err)
}
