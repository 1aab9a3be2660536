package requestdoc

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorAcceptsStringArrayAndAlphaArray(t *testing.T) {
	var named Color
	require.NoError(t, json.Unmarshal([]byte(`"red"`), &named))
	assert.Equal(t, "red", named.ToSVG().String())

	var rgb Color
	require.NoError(t, json.Unmarshal([]byte(`[255, 0, 0]`), &rgb))
	assert.Equal(t, "rgb(255,0,0)", rgb.ToSVG().String())

	var rgba Color
	require.NoError(t, json.Unmarshal([]byte(`[255, 0, 0, 0.5]`), &rgba))
	assert.Equal(t, "rgba(255,0,0,0.5)", rgba.ToSVG().String())
}

func TestColorRejectsMalformedArray(t *testing.T) {
	var c Color
	err := json.Unmarshal([]byte(`[1, 2]`), &c)
	assert.Error(t, err)
}

func TestColorPaletteMixedShapes(t *testing.T) {
	var palette []Color
	require.NoError(t, json.Unmarshal([]byte(`["green", [0,0,255], [1,2,3,0.25]]`), &palette))
	require.Len(t, palette, 3)
	assert.Equal(t, "green", palette[0].ToSVG().String())
	assert.Equal(t, "rgb(0,0,255)", palette[1].ToSVG().String())
	assert.Equal(t, "rgba(1,2,3,0.25)", palette[2].ToSVG().String())
}
