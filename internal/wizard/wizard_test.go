package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"empty", "", nil},
		{"single path", "/tmp/a.png", []string{"/tmp/a.png"}},
		{"trims and drops blanks", "  /tmp/a.png \n\n\t/tmp/b.png\n", []string{"/tmp/a.png", "/tmp/b.png"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitLines(tt.in))
		})
	}
}

func TestScalePointLabelShowsPolesAtEnds(t *testing.T) {
	assert.Equal(t, "1 · cold", scalePointLabel(1, "cold", "warm"))
	assert.Equal(t, "7 · warm", scalePointLabel(7, "cold", "warm"))
	assert.Equal(t, "4", scalePointLabel(4, "cold", "warm"))
}

func TestPointOptions(t *testing.T) {
	points := []catalog.ScalePoint{
		{Value: 1, Label: "Not at all"},
		{Value: 2},
		{Value: 3, Label: "Very"},
	}

	opts := pointOptions(points)
	require.Len(t, opts, 3)
	assert.Equal(t, "1 · Not at all", opts[0].Key)
	assert.Equal(t, 1, opts[0].Value)
	assert.Equal(t, "2", opts[1].Key)
	assert.Equal(t, "3 · Very", opts[2].Key)
}
