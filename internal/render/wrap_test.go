package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrapDescriptionDisabledReturnsSingleLine(t *testing.T) {
	lines := wrapDescription("a long description that would otherwise wrap", 10, false)
	assert.Equal(t, []string{"a long description that would otherwise wrap"}, lines)
}

func TestWrapDescriptionBreaksOnWordBoundaries(t *testing.T) {
	lines := wrapDescription("one two three four five", 11, true)
	assert.Equal(t, []string{"one two", "three four", "five"}, lines)
}

func TestWrapDescriptionEmptyYieldsOneEmptyLine(t *testing.T) {
	assert.Equal(t, []string{""}, wrapDescription("", 40, true))
}

func TestDescriptionWidthWithoutTTYDisablesWrapping(t *testing.T) {
	width, wrap := descriptionWidth(1000)
	assert.False(t, wrap)
	assert.Equal(t, 0, width)
}
