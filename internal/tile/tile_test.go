package tile

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/glyphword/internal/rng"
)

func TestValueTable(t *testing.T) {
	testCases := []struct {
		letter Letter
		want   int
	}{
		{"A", 1}, {"D", 2}, {"C", 3}, {"Y", 4}, {"K", 5}, {"X", 8}, {"Q", 10},
		{Anchor, 0}, {Mirror, 0}, {Exclamation, 0}, {Wildcard, 0},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, Value(tc.letter), "letter %s", tc.letter)
	}
}

func TestNewNormalisesCase(t *testing.T) {
	tl, err := New("q")
	require.NoError(t, err)
	assert.Equal(t, Letter("Q"), tl.Letter)
	assert.Equal(t, 10, tl.PointValue())
}

func TestNewRejectsUnknown(t *testing.T) {
	_, err := New("7")
	var te *InvalidTileError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, "unknown letter", te.Reason)
}

func TestFromWordMirror(t *testing.T) {
	ts, err := FromWord("a||b")
	require.NoError(t, err)
	require.Len(t, ts, 3)
	assert.True(t, ts[1].IsMirror())
	assert.Equal(t, 2, ts[2].Position)
}

func TestPointValueIncludesAdditiveBonus(t *testing.T) {
	tl := Tile{Letter: "A", BaseValue: 1, AdditiveBonus: 4}
	assert.Equal(t, 5, tl.PointValue())
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name string
		tile Tile
		ok   bool
	}{
		{"plain", Tile{Letter: "A", BaseValue: 1}, true},
		{"special", Tile{Letter: Mirror}, true},
		{"decorated", Tile{Letter: "Z", BaseValue: 10, Enhancement: EnhGlassTile, Edition: EditionFoil, Stamp: StampRed}, true},
		{"missing letter", Tile{}, false},
		{"lowercase", Tile{Letter: "a"}, false},
		{"negative value", Tile{Letter: "A", BaseValue: -1}, false},
		{"negative mult", Tile{Letter: "A", MultiplicativeBonus: -2}, false},
		{"bad enhancement", Tile{Letter: "A", Enhancement: "wood"}, false},
		{"bad edition", Tile{Letter: "A", Edition: "negative"}, false},
		{"bad stamp", Tile{Letter: "A", Stamp: "green"}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.tile.Validate()
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			var te *InvalidTileError
			assert.True(t, errors.As(err, &te))
		})
	}
}

func TestBagDrawAndReturn(t *testing.T) {
	b := NewBag(rng.New(1))
	total := b.Len()
	assert.Equal(t, 103, total)

	drawn := b.Draw(12)
	require.Len(t, drawn, 12)
	assert.Equal(t, total-12, b.Len())

	b.Return(drawn[:2]...)
	assert.Equal(t, total-10, b.Len())

	rest := b.Draw(1000)
	assert.Len(t, rest, total-10)
	assert.Equal(t, 0, b.Len())
	assert.Nil(t, b.Draw(1))
}

func TestBagSeededIsReproducible(t *testing.T) {
	a := NewBag(rng.New(42)).Draw(12)
	b := NewBag(rng.New(42)).Draw(12)
	assert.Equal(t, a, b)
}
