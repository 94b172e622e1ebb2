// internal/scoring/engine.go
//
// Scoring engine for a played word.
// Responsibilities:
//   - Validate tiles, glyphs and scalar inputs before touching any number.
//   - Phase A: accumulate points and mult left to right over the played tiles
//     (stamps, anchor/mirror/exclamation rules, enhancements, lucky rolls,
//     editions), then held steel tiles, then glyph effects and glyph editions.
//   - Phase B: accumulate xmult from word/grid facts, the black stamp and
//     xmult glyphs.
//   - Phase C: round each channel independently and multiply.
//
// Notes:
//   - The engine performs no I/O and keeps no state between calls.
//   - The only source of nondeterminism is Options.Rand (lucky tiles).

package scoring

import (
	"fmt"
	"math"

	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/rng"
	"github.com/robalobadob/glyphword/internal/tile"
)

const (
	goldStampBonus = 3
	redStampRuns   = 2
	anchorRuns     = 3

	luckyChance = 0.20
	luckyMult   = 20

	heldSteelFactor = 1.2

	longWordLength  = 6 // words longer than this double xmult
	longWordXmult   = 2
	doubleWordXmult = 2
	palindromeXmult = 1.5
	blackStampXmult = 2
)

// RandomSource yields values in [0, 1) for probabilistic effects.
type RandomSource = rng.Source

// Options configures an Engine.
type Options struct {
	// Rand drives lucky-tile rolls. Nil uses the process-wide generator.
	Rand RandomSource
	// LegacyMirrorDiscard reproduces the original client, where a Mirror's
	// replayed neighbour enhancements were computed and then thrown away.
	LegacyMirrorDiscard bool
}

// Engine scores words. It is safe for concurrent use when its RandomSource is.
type Engine struct {
	rand         RandomSource
	legacyMirror bool
}

// NewEngine constructs an Engine from opts.
func NewEngine(opts Options) *Engine {
	r := opts.Rand
	if r == nil {
		r = rng.Global()
	}
	return &Engine{rand: r, legacyMirror: opts.LegacyMirrorDiscard}
}

// Input is everything a scoring pass reads.
type Input struct {
	Played         []tile.Tile          `json:"played"`
	Held           []tile.Tile          `json:"held"`
	Glyphs         []glyph.Glyph        `json:"glyphs"`
	Props          glyph.WordProperties `json:"props"`
	Grid           glyph.GridState      `json:"grid"`
	AvailableTiles int                  `json:"availableTiles"` // undrawn tiles, read by '!'
}

// Result is the outcome of a scoring pass. Points, Mult and Xmult are the
// unrounded channel totals.
type Result struct {
	FinalScore int64   `json:"finalScore"`
	GoldBonus  int     `json:"goldBonus"`
	Points     float64 `json:"points"`
	Mult       float64 `json:"mult"`
	Xmult      float64 `json:"xmult"`
}

// InvalidInputError reports a malformed scalar input.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// Calculate scores one played word.
// Errors are *tile.InvalidTileError, *glyph.InvalidModifierError or
// *InvalidInputError; no partial result is returned with an error.
func (e *Engine) Calculate(in Input) (Result, error) {
	if err := validate(in); err != nil {
		return Result{}, err
	}
	acc, gold := e.pointsPhase(in)
	x := xmultPhase(in)
	return combine(acc, x, gold)
}

func validate(in Input) error {
	if in.AvailableTiles < 0 {
		return &InvalidInputError{Field: "availableTiles", Reason: fmt.Sprintf("negative count %d", in.AvailableTiles)}
	}
	if in.Props.Length < 0 {
		return &InvalidInputError{Field: "props.length", Reason: fmt.Sprintf("negative length %d", in.Props.Length)}
	}
	for _, t := range in.Played {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, t := range in.Held {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	for _, g := range in.Glyphs {
		if err := g.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// pointsPhase is Phase A. It returns the points/mult totals and the gold
// stamp side payment.
func (e *Engine) pointsPhase(in Input) (Accumulator, int) {
	acc := Accumulator{Points: 0, Mult: 1}
	gold := 0
	played := in.Played

	for i, t := range played {
		if t.Stamp == tile.StampGold {
			gold += goldStampBonus
		}

		runs := 1
		if t.Stamp == tile.StampRed {
			runs *= redStampRuns
		}
		if i > 0 && played[i-1].IsAnchor() {
			runs *= anchorRuns
		}

		var mirrored [2]tile.Enhancement
		n := 0
		if t.IsMirror() {
			if i > 0 && played[i-1].Enhancement != tile.EnhNone {
				mirrored[n] = played[i-1].Enhancement
				n++
			}
			if i+1 < len(played) && played[i+1].Enhancement != tile.EnhNone {
				mirrored[n] = played[i+1].Enhancement
				n++
			}
		}

		for r := 0; r < runs; r++ {
			if !t.IsAnchor() && !t.IsMirror() {
				acc.Points += float64(t.PointValue())
			}
			for _, enh := range mirrored[:n] {
				replayed := ApplyEnhancement(enh, acc)
				if !e.legacyMirror {
					acc = replayed
				}
			}
			acc = ApplyEnhancement(t.Enhancement, acc)
			if t.Flags.Lucky && e.rand.Next() < luckyChance {
				acc.Mult += luckyMult
			}
			acc = ApplyEdition(t.Edition, acc)
			for _, g := range in.Glyphs {
				if g.Trigger == glyph.TriggerPerLetter {
					acc = applyPerLetter(g, t, acc)
				}
			}
		}
	}

	if len(played) > 0 && played[len(played)-1].IsExclamation() {
		acc.Points += float64(in.AvailableTiles)
	}

	for _, t := range in.Held {
		if t.Flags.Steel {
			acc.Mult *= heldSteelFactor
		}
	}

	for _, g := range in.Glyphs {
		if !g.Effect.Xmult() && g.Fires(in.Props, in.Grid) {
			acc = applyGlyph(g, acc)
		}
		acc = ApplyEdition(g.Edition, acc)
	}
	return acc, gold
}

// xmultPhase is Phase B.
func xmultPhase(in Input) float64 {
	x := 1.0
	if in.Props.Length > longWordLength {
		x *= longWordXmult
	}
	if in.Grid.CrossedDoubleWord {
		x *= doubleWordXmult
	}
	if in.Props.IsPalindrome {
		x *= palindromeXmult
	}
	if n := len(in.Played); n > 0 && in.Played[n-1].Stamp == tile.StampBlack {
		x *= blackStampXmult
	}
	for _, g := range in.Glyphs {
		if g.Effect.Xmult() && g.Fires(in.Props, in.Grid) {
			x = applyGlyphXmult(g, x)
		}
	}
	return x
}

// combine is Phase C: each channel is rounded on its own before multiplying.
// Negative products (possible only with penalty glyphs) clamp to zero.
// A channel or product that is not a finite int64 is an *InvalidInputError.
func combine(acc Accumulator, x float64, gold int) (Result, error) {
	p, err := channel("points", acc.Points)
	if err != nil {
		return Result{}, err
	}
	m, err := channel("mult", acc.Mult)
	if err != nil {
		return Result{}, err
	}
	xm, err := channel("xmult", x)
	if err != nil {
		return Result{}, err
	}
	score, ok := mulInt64(p, m)
	if ok {
		score, ok = mulInt64(score, xm)
	}
	if !ok {
		return Result{}, &InvalidInputError{Field: "finalScore", Reason: fmt.Sprintf("%d*%d*%d overflows int64", p, m, xm)}
	}
	if score < 0 {
		score = 0
	}
	res := Result{FinalScore: score, Points: acc.Points, Mult: acc.Mult, Xmult: x}
	if score > 0 {
		res.GoldBonus = gold
	}
	return res, nil
}

// channel rounds v half up and checks that it is a finite int64.
func channel(name string, v float64) (int64, error) {
	r := roundHalfUp(v)
	if math.IsNaN(r) || r < math.MinInt64 || r >= math.MaxInt64 {
		return 0, &InvalidInputError{Field: name, Reason: fmt.Sprintf("%g is not a finite int64", v)}
	}
	return int64(r), nil
}

// mulInt64 multiplies a and b, reporting false on overflow.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	c := a * b
	if c/b != a || (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, false
	}
	return c, true
}

// roundHalfUp rounds to the nearest integer with halves going toward +Inf.
func roundHalfUp(v float64) float64 { return math.Floor(v + 0.5) }
