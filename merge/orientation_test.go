package merge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOrientation(t *testing.T) {
	for input, want := range map[string]Orientation{
		"":          OrientationAuto,
		"auto":      OrientationAuto,
		"portrait":  OrientationPortrait,
		"landscape": OrientationLandscape,
	} {
		got, err := ParseOrientation(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseOrientation("sideways")
	assert.ErrorContains(t, err, "sideways")
}

func TestResolveOrientation_Precedence(t *testing.T) {
	// Document override beats everything.
	assert.Equal(t, OrientationPortrait,
		resolveOrientation(OrientationPortrait, OrientationLandscape, 800, 600))
	// Global override beats dimensions.
	assert.Equal(t, OrientationLandscape,
		resolveOrientation(OrientationAuto, OrientationLandscape, 600, 800))
	// Dimensions decide when both are auto; square counts as portrait.
	assert.Equal(t, OrientationLandscape,
		resolveOrientation(OrientationAuto, OrientationAuto, 800, 600))
	assert.Equal(t, OrientationPortrait,
		resolveOrientation(OrientationAuto, OrientationAuto, 600, 800))
	assert.Equal(t, OrientationPortrait,
		resolveOrientation(OrientationAuto, OrientationAuto, 600, 600))
}
