package scoring

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/rng"
	"github.com/robalobadob/glyphword/internal/tile"
)

// word builds plain tiles from a string, failing the test on bad letters.
func word(t *testing.T, w string) []tile.Tile {
	t.Helper()
	ts, err := tile.FromWord(w)
	require.NoError(t, err)
	return ts
}

func props(ts []tile.Tile) glyph.WordProperties {
	return glyph.WordProperties{Length: len(ts)}
}

func calc(t *testing.T, e *Engine, in Input) Result {
	t.Helper()
	res, err := e.Calculate(in)
	require.NoError(t, err)
	return res
}

func TestPlainWordScoresSumOfValues(t *testing.T) {
	e := NewEngine(Options{})
	for _, w := range []string{"CAT", "QUIZ", "JAZZY", "A"} {
		played := word(t, w)
		want := 0
		for _, tl := range played {
			want += tl.PointValue()
		}
		res := calc(t, e, Input{Played: played, Props: props(played)})
		assert.Equal(t, int64(want), res.FinalScore, w)
		assert.Equal(t, 1.0, res.Mult, w)
		assert.Equal(t, 1.0, res.Xmult, w)
	}
}

func TestCatEndToEnd(t *testing.T) {
	played := []tile.Tile{
		{Letter: "C", BaseValue: 3},
		{Letter: "A", BaseValue: 1},
		{Letter: "T", BaseValue: 1},
	}
	res := calc(t, NewEngine(Options{}), Input{
		Played: played,
		Props:  glyph.WordProperties{Length: 3},
	})
	assert.Equal(t, Result{FinalScore: 5, GoldBonus: 0, Points: 5, Mult: 1, Xmult: 1}, res)
}

func TestAnchorTriplesNextTile(t *testing.T) {
	e := NewEngine(Options{})

	played := word(t, "#A")
	res := calc(t, e, Input{Played: played, Props: props(played)})
	assert.Equal(t, 3.0, res.Points)

	played = word(t, "#AT")
	res = calc(t, e, Input{Played: played, Props: props(played)})
	assert.Equal(t, 4.0, res.Points)
	assert.Equal(t, int64(4), res.FinalScore)

	// Enhancements re-trigger on every run.
	played = word(t, "#A")
	played[1].Enhancement = tile.EnhMultTile
	res = calc(t, e, Input{Played: played, Props: props(played)})
	assert.Equal(t, 13.0, res.Mult)
}

func TestRedStampDoublesRuns(t *testing.T) {
	e := NewEngine(Options{})
	red := tile.Tile{Letter: "K", BaseValue: 5, Stamp: tile.StampRed}

	res := calc(t, e, Input{Played: []tile.Tile{red}, Props: glyph.WordProperties{Length: 1}})
	assert.Equal(t, 10.0, res.Points)

	played := []tile.Tile{tile.MustNew("#"), red}
	res = calc(t, e, Input{Played: played, Props: props(played)})
	assert.Equal(t, 30.0, res.Points, "red after anchor runs six times")
}

func TestGoldStamp(t *testing.T) {
	e := NewEngine(Options{})

	played := word(t, "AT")
	played[0].Stamp = tile.StampGold
	played[1].Stamp = tile.StampGold
	res := calc(t, e, Input{Played: played, Props: props(played)})
	assert.Equal(t, int64(2), res.FinalScore)
	assert.Equal(t, 6, res.GoldBonus)

	// A single gold stamp pays exactly once.
	played = word(t, "A")
	played[0].Stamp = tile.StampGold
	res = calc(t, e, Input{Played: played, Props: props(played)})
	assert.Equal(t, 3, res.GoldBonus)

	// Zero-score word forfeits the gold.
	played = word(t, "#||")
	played[0].Stamp = tile.StampGold
	played[1].Stamp = tile.StampGold
	res = calc(t, e, Input{Played: played, Props: props(played)})
	assert.Equal(t, int64(0), res.FinalScore)
	assert.Equal(t, 0, res.GoldBonus)
}

func TestEnhancements(t *testing.T) {
	testCases := []struct {
		enh        tile.Enhancement
		wantPoints float64
		wantMult   float64
	}{
		{tile.EnhNone, 1, 1},
		{tile.EnhBonusPoints, 31, 1},
		{tile.EnhMultTile, 1, 5},
		{tile.EnhGlassTile, 1, 2},
		{tile.EnhSteelTile, 1, 1},
		{tile.EnhGoldTile, 1, 1},
	}
	e := NewEngine(Options{})
	for _, tc := range testCases {
		played := []tile.Tile{{Letter: "A", BaseValue: 1, Enhancement: tc.enh}}
		res := calc(t, e, Input{Played: played, Props: props(played)})
		assert.Equal(t, tc.wantPoints, res.Points, "enhancement %q", tc.enh)
		assert.Equal(t, tc.wantMult, res.Mult, "enhancement %q", tc.enh)
	}
}

func TestEditions(t *testing.T) {
	testCases := []struct {
		ed         tile.Edition
		wantPoints float64
		wantMult   float64
	}{
		{tile.EditionBase, 1, 1},
		{tile.EditionFoil, 51, 1},
		{tile.EditionHolographic, 1, 11},
		{tile.EditionPolychrome, 1, 1.5},
	}
	e := NewEngine(Options{})
	for _, tc := range testCases {
		played := []tile.Tile{{Letter: "A", BaseValue: 1, Edition: tc.ed}}
		res := calc(t, e, Input{Played: played, Props: props(played)})
		assert.Equal(t, tc.wantPoints, res.Points, "edition %q", tc.ed)
		assert.Equal(t, tc.wantMult, res.Mult, "edition %q", tc.ed)
	}
}

func TestMirrorReplaysNeighbourEnhancements(t *testing.T) {
	played := word(t, "A||T")
	played[0].Enhancement = tile.EnhBonusPoints
	played[2].Enhancement = tile.EnhMultTile

	res := calc(t, NewEngine(Options{}), Input{Played: played, Props: props(played)})
	// A: 1+30. Mirror: +30, +4 mult. T: +1, +4 mult.
	assert.Equal(t, 62.0, res.Points)
	assert.Equal(t, 9.0, res.Mult)
	assert.Equal(t, int64(558), res.FinalScore)
}

func TestMirrorLegacyDiscard(t *testing.T) {
	played := word(t, "A||T")
	played[0].Enhancement = tile.EnhBonusPoints
	played[2].Enhancement = tile.EnhMultTile

	res := calc(t, NewEngine(Options{LegacyMirrorDiscard: true}), Input{Played: played, Props: props(played)})
	assert.Equal(t, 32.0, res.Points)
	assert.Equal(t, 5.0, res.Mult)
	assert.Equal(t, int64(160), res.FinalScore)
}

func TestMirrorAfterAnchorReplaysPerRun(t *testing.T) {
	played := word(t, "#||A")
	played[2].Enhancement = tile.EnhGlassTile

	res := calc(t, NewEngine(Options{}), Input{Played: played, Props: props(played)})
	// Mirror runs 3 times, doubling mult each time; A doubles once more.
	assert.Equal(t, 16.0, res.Mult)
	assert.Equal(t, 1.0, res.Points)
}

func TestLuckyTileUsesInjectedSource(t *testing.T) {
	lucky := tile.Tile{Letter: "A", BaseValue: 1, Flags: tile.Flags{Lucky: true}}
	in := Input{Played: []tile.Tile{lucky}, Props: glyph.WordProperties{Length: 1}}

	hit := calc(t, NewEngine(Options{Rand: rng.NewFixed(0.1)}), in)
	assert.Equal(t, 21.0, hit.Mult)

	miss := calc(t, NewEngine(Options{Rand: rng.NewFixed(0.2)}), in)
	assert.Equal(t, 1.0, miss.Mult)

	// One roll per run.
	lucky.Stamp = tile.StampRed
	in.Played = []tile.Tile{lucky}
	res := calc(t, NewEngine(Options{Rand: rng.NewFixed(0.1, 0.9)}), in)
	assert.Equal(t, 21.0, res.Mult)
}

func TestExclamationAddsAvailableTiles(t *testing.T) {
	e := NewEngine(Options{})

	played := word(t, "A!")
	res := calc(t, e, Input{Played: played, Props: props(played), AvailableTiles: 40})
	assert.Equal(t, 41.0, res.Points)

	played = word(t, "!A")
	res = calc(t, e, Input{Played: played, Props: props(played), AvailableTiles: 40})
	assert.Equal(t, 1.0, res.Points, "only a trailing exclamation counts")
}

func TestHeldSteelTiles(t *testing.T) {
	played := []tile.Tile{{Letter: "A", BaseValue: 1, Enhancement: tile.EnhMultTile}}
	steel := tile.Tile{Letter: "E", BaseValue: 1, Flags: tile.Flags{Steel: true}}
	plain := tile.Tile{Letter: "O", BaseValue: 1}

	res := calc(t, NewEngine(Options{}), Input{
		Played: played,
		Held:   []tile.Tile{steel, plain, steel},
		Props:  props(played),
	})
	assert.InDelta(t, 7.2, res.Mult, 1e-9)
	assert.Equal(t, int64(7), res.FinalScore)
}

func TestPermanentGlyphs(t *testing.T) {
	played := word(t, "CAT")
	glyphs := []glyph.Glyph{
		{ID: "pts", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddPoints, Value: 10},
		{ID: "add", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddMult, Value: 3},
		{ID: "mul", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectMultMult, Value: 2},
		{ID: "xadd", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddXmult, Value: 0.5},
		{ID: "xmul", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectMultXmult, Value: 2},
	}
	res := calc(t, NewEngine(Options{}), Input{Played: played, Glyphs: glyphs, Props: props(played)})
	assert.Equal(t, 15.0, res.Points)
	assert.Equal(t, 8.0, res.Mult)
	assert.Equal(t, 3.0, res.Xmult)
	assert.Equal(t, int64(15*8*3), res.FinalScore)
}

func TestGlyphOrderMatters(t *testing.T) {
	played := word(t, "CAT")
	add := glyph.Glyph{ID: "add", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddMult, Value: 3}
	mul := glyph.Glyph{ID: "mul", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectMultMult, Value: 2}
	e := NewEngine(Options{})

	a := calc(t, e, Input{Played: played, Glyphs: []glyph.Glyph{add, mul}, Props: props(played)})
	b := calc(t, e, Input{Played: played, Glyphs: []glyph.Glyph{mul, add}, Props: props(played)})
	assert.Equal(t, 8.0, a.Mult)
	assert.Equal(t, 5.0, b.Mult)
}

func TestGlyphEditionAppliesRegardlessOfTrigger(t *testing.T) {
	played := word(t, "CAT")
	glyphs := []glyph.Glyph{
		{ID: "scribe", Trigger: glyph.TriggerPerLetter, Effect: glyph.EffectAddPoints, Value: 1, Edition: tile.EditionFoil},
		{ID: "dormant", Trigger: glyph.TriggerOnWordCondition, Effect: glyph.EffectAddMult, Value: 99,
			Edition: tile.EditionHolographic, Condition: glyph.Condition{Kind: glyph.CondWordLongerThan, Threshold: 6}},
	}
	res := calc(t, NewEngine(Options{}), Input{Played: played, Glyphs: glyphs, Props: props(played)})
	assert.Equal(t, 55.0, res.Points)
	assert.Equal(t, 11.0, res.Mult)
}

func TestConditionalGlyphs(t *testing.T) {
	longWinded := glyph.Glyph{ID: "long_winded", Trigger: glyph.TriggerOnWordCondition, Effect: glyph.EffectMultXmult,
		Value: 3, Condition: glyph.Condition{Kind: glyph.CondWordLongerThan, Threshold: 6}}
	crossroads := glyph.Glyph{ID: "crossroads", Trigger: glyph.TriggerOnGridCondition, Effect: glyph.EffectAddPoints,
		Value: 7, Condition: glyph.Condition{Kind: glyph.CondCrossedDoubleWord}}
	e := NewEngine(Options{})

	seven := word(t, "AAAAAAA")
	res := calc(t, e, Input{Played: seven, Glyphs: []glyph.Glyph{longWinded, crossroads}, Props: props(seven)})
	assert.Equal(t, 6.0, res.Xmult)
	assert.Equal(t, 7.0, res.Points)

	res = calc(t, e, Input{Played: seven, Glyphs: []glyph.Glyph{longWinded, crossroads}, Props: props(seven),
		Grid: glyph.GridState{CrossedDoubleWord: true}})
	assert.Equal(t, 12.0, res.Xmult)
	assert.Equal(t, 14.0, res.Points)

	six := word(t, "AAAAAA")
	res = calc(t, e, Input{Played: six, Glyphs: []glyph.Glyph{longWinded}, Props: props(six)})
	assert.Equal(t, 1.0, res.Xmult)
}

func TestXmultPhase(t *testing.T) {
	testCases := []struct {
		name string
		in   Input
		want float64
	}{
		{"plain", Input{Props: glyph.WordProperties{Length: 3}}, 1},
		{"long palindrome", Input{Props: glyph.WordProperties{Length: 7, IsPalindrome: true}}, 3},
		{"double word", Input{Grid: glyph.GridState{CrossedDoubleWord: true}}, 2},
		{"black stamp last", Input{Played: []tile.Tile{{Letter: "A"}, {Letter: "B", Stamp: tile.StampBlack}}}, 2},
		{"black stamp not last", Input{Played: []tile.Tile{{Letter: "A", Stamp: tile.StampBlack}, {Letter: "B"}}}, 1},
		{"everything", Input{
			Played: []tile.Tile{{Letter: "A", Stamp: tile.StampBlack}},
			Props:  glyph.WordProperties{Length: 9, IsPalindrome: true},
			Grid:   glyph.GridState{CrossedDoubleWord: true},
		}, 12},
	}
	for _, tc := range testCases {
		assert.Equal(t, tc.want, xmultPhase(tc.in), tc.name)
	}
}

func TestRoundingIsPerChannel(t *testing.T) {
	glyphs := []glyph.Glyph{
		{ID: "p", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddPoints, Value: 10.4},
		{ID: "m", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddMult, Value: 1.4},
	}
	res := calc(t, NewEngine(Options{}), Input{Glyphs: glyphs})
	assert.InDelta(t, 10.4, res.Points, 1e-9)
	assert.InDelta(t, 2.4, res.Mult, 1e-9)
	assert.Equal(t, int64(20), res.FinalScore)
}

func TestCombineRoundsHalfUp(t *testing.T) {
	res, err := combine(Accumulator{Points: 2.5, Mult: 1.5}, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(6), res.FinalScore)

	res, err = combine(Accumulator{Points: -4, Mult: 2}, 1, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(0), res.FinalScore)
	assert.Equal(t, 0, res.GoldBonus)
}

func TestCombineRejectsUnrepresentableScores(t *testing.T) {
	testCases := []struct {
		name  string
		acc   Accumulator
		x     float64
		field string
	}{
		{"nan mult", Accumulator{Points: 4, Mult: math.NaN()}, 1, "mult"},
		{"infinite points", Accumulator{Points: math.Inf(1), Mult: 1}, 1, "points"},
		{"huge xmult", Accumulator{Points: 1, Mult: 1}, 1e19, "xmult"},
		{"product overflow", Accumulator{Points: 1e10, Mult: 1e10}, 1, "finalScore"},
		{"negative overflow", Accumulator{Points: -1e10, Mult: 1e10}, 1, "finalScore"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := combine(tc.acc, tc.x, 3)
			var ie *InvalidInputError
			require.True(t, errors.As(err, &ie), "got %v", err)
			assert.Equal(t, tc.field, ie.Field)
		})
	}
}

func TestCalculateRejectsOverflowingGlyphs(t *testing.T) {
	glyphs := []glyph.Glyph{
		{ID: "p", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddPoints, Value: 1e10},
		{ID: "m", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectAddMult, Value: 1e10},
	}
	res, err := NewEngine(Options{}).Calculate(Input{Played: word(t, "CAT"), Glyphs: glyphs})
	var ie *InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, Result{}, res)
}

func TestCalculateRejectsNonFiniteGlyphValues(t *testing.T) {
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		g := glyph.Glyph{ID: "bad", Trigger: glyph.TriggerPermanent, Effect: glyph.EffectMultMult, Value: v}
		_, err := NewEngine(Options{}).Calculate(Input{Played: word(t, "CAT"), Glyphs: []glyph.Glyph{g}})
		var me *glyph.InvalidModifierError
		assert.True(t, errors.As(err, &me), "value %g", v)
	}
}

func TestEmptyWord(t *testing.T) {
	res := calc(t, NewEngine(Options{}), Input{})
	assert.Equal(t, int64(0), res.FinalScore)
	assert.Equal(t, 0, res.GoldBonus)
}

func TestIdempotent(t *testing.T) {
	played := word(t, "#L||UCK!")
	played[2].Flags.Lucky = true
	played[3].Flags.Lucky = true
	played[4].Enhancement = tile.EnhGlassTile
	played[1].Stamp = tile.StampGold
	in := Input{
		Played:         played,
		Held:           []tile.Tile{{Letter: "S", BaseValue: 1, Flags: tile.Flags{Steel: true}}},
		Glyphs:         glyph.DefaultCatalog().All(),
		Props:          props(played),
		AvailableTiles: 17,
	}
	a := calc(t, NewEngine(Options{Rand: rng.New(7)}), in)
	b := calc(t, NewEngine(Options{Rand: rng.New(7)}), in)
	assert.Equal(t, a, b)
}

func TestCalculateDoesNotMutateInputs(t *testing.T) {
	played := word(t, "A||T")
	played[0].Enhancement = tile.EnhBonusPoints
	before := append([]tile.Tile(nil), played...)
	_ = calc(t, NewEngine(Options{}), Input{Played: played, Props: props(played)})
	assert.Equal(t, before, played)
}

func TestValidationErrors(t *testing.T) {
	e := NewEngine(Options{})

	_, err := e.Calculate(Input{AvailableTiles: -1})
	var ie *InvalidInputError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "availableTiles", ie.Field)

	_, err = e.Calculate(Input{Played: []tile.Tile{{Letter: "?"}}})
	var te *tile.InvalidTileError
	assert.True(t, errors.As(err, &te))

	_, err = e.Calculate(Input{Held: []tile.Tile{{Letter: "A", Stamp: "plaid"}}})
	assert.True(t, errors.As(err, &te))

	_, err = e.Calculate(Input{Glyphs: []glyph.Glyph{{ID: "bogus", Trigger: glyph.TriggerPermanent, Effect: "divide"}}})
	var me *glyph.InvalidModifierError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, "bogus", me.ID)
	assert.Contains(t, err.Error(), "bogus")
}

func TestApplyEnhancementIsPure(t *testing.T) {
	acc := Accumulator{Points: 10, Mult: 3}
	got := ApplyEnhancement(tile.EnhGlassTile, acc)
	assert.Equal(t, Accumulator{Points: 10, Mult: 6}, got)
	assert.Equal(t, Accumulator{Points: 10, Mult: 3}, acc)
}

func BenchmarkCalculate(b *testing.B) {
	played, _ := tile.FromWord("#QU||ZZ!CAL")
	in := Input{
		Played: played,
		Held:   []tile.Tile{{Letter: "E", BaseValue: 1, Flags: tile.Flags{Steel: true}}},
		Glyphs: glyph.DefaultCatalog().All(),
		Props:  glyph.WordProperties{Length: len(played)},
	}
	e := NewEngine(Options{Rand: rng.New(1)})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		_, _ = e.Calculate(in)
	}
}
