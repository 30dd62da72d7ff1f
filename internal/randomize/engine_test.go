package randomize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philhmdresearch-afk/trust-ai-study/internal/catalog"
)

func TestSeededEnginesAreDeterministic(t *testing.T) {
	agents := catalog.Default().Agents

	a := NewSeeded(42)
	b := NewSeeded(42)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.CoinFlip(), b.CoinFlip())
	}
	assert.Equal(t, a.PickAgent(agents), b.PickAgent(agents))
	assert.Equal(t, a.PickTaskOrder(), b.PickTaskOrder())
}

func TestPickTaskOrderIsPermutation(t *testing.T) {
	e := NewSeeded(7)
	for i := 0; i < 50; i++ {
		order := e.PickTaskOrder()
		require.Len(t, order, 2)
		assert.NotEqual(t, order[0], order[1])
		assert.True(t, order[0].Valid())
		assert.True(t, order[1].Valid())
	}
}

func TestShuffleItemsLeavesInputUntouched(t *testing.T) {
	cat := catalog.Default()
	original := cat.CombinedScaleItems()
	snapshot := append([]catalog.ScaleItem(nil), original...)

	e := NewSeeded(99)
	shuffled := e.ShuffleItems(original)

	assert.Equal(t, snapshot, original, "input slice must not be reordered")
	require.Len(t, shuffled, len(original))

	seen := map[string]bool{}
	for _, it := range shuffled {
		seen[it.ID] = true
	}
	for _, it := range original {
		assert.True(t, seen[it.ID], "shuffle must be a permutation, missing %s", it.ID)
	}
}

func TestCanonicalValue(t *testing.T) {
	tests := []struct {
		position int
		reversed bool
		want     int
	}{
		{1, false, 1},
		{4, false, 4},
		{7, false, 7},
		{1, true, 7},
		{2, true, 6},
		{4, true, 4},
		{7, true, 1},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanonicalValue(tt.position, tt.reversed),
			"position %d reversed=%t", tt.position, tt.reversed)
	}
}

func TestDisplayPoles(t *testing.T) {
	item := catalog.ScaleItem{ID: "func_1", NegPole: "unreliable", PosPole: "reliable"}

	left, right := DisplayPoles(item, false)
	assert.Equal(t, "unreliable", left)
	assert.Equal(t, "reliable", right)

	left, right = DisplayPoles(item, true)
	assert.Equal(t, "reliable", left)
	assert.Equal(t, "unreliable", right)
}
