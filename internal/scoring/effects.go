// internal/scoring/effects.go
//
// Effect resolution helpers shared by every path that applies a tile or
// glyph bonus to the running accumulator. A tile's own enhancement and a
// Mirror's replay of a neighbour's enhancement go through ApplyEnhancement;
// tile editions and glyph editions go through ApplyEdition.

package scoring

import (
	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/tile"
)

// Enhancement and edition magnitudes.
const (
	bonusTilePoints = 30
	multTileMult    = 4
	glassTileFactor = 2

	foilPoints       = 50
	holographicMult  = 10
	polychromeFactor = 1.5
)

// Accumulator is the running points/mult pair for Phase A.
type Accumulator struct {
	Points float64 `json:"points"`
	Mult   float64 `json:"mult"`
}

// ApplyEnhancement returns acc with enh applied.
// Steel and Gold enhancements belong to other subsystems and leave acc as is.
func ApplyEnhancement(enh tile.Enhancement, acc Accumulator) Accumulator {
	switch enh {
	case tile.EnhBonusPoints:
		acc.Points += bonusTilePoints
	case tile.EnhMultTile:
		acc.Mult += multTileMult
	case tile.EnhGlassTile:
		acc.Mult *= glassTileFactor
	}
	return acc
}

// ApplyEdition returns acc with the edition bonus applied.
func ApplyEdition(ed tile.Edition, acc Accumulator) Accumulator {
	switch ed {
	case tile.EditionFoil:
		acc.Points += foilPoints
	case tile.EditionHolographic:
		acc.Mult += holographicMult
	case tile.EditionPolychrome:
		acc.Mult *= polychromeFactor
	}
	return acc
}

// applyGlyph applies a points/mult-channel glyph effect. Xmult effects are
// handled by the xmult phase and pass through untouched.
func applyGlyph(g glyph.Glyph, acc Accumulator) Accumulator {
	switch g.Effect {
	case glyph.EffectAddPoints:
		acc.Points += g.Value
	case glyph.EffectAddMult:
		acc.Mult += g.Value
	case glyph.EffectMultMult:
		acc.Mult *= g.Value
	}
	return acc
}

// applyGlyphXmult applies an xmult-channel glyph effect to x.
func applyGlyphXmult(g glyph.Glyph, x float64) float64 {
	switch g.Effect {
	case glyph.EffectAddXmult:
		x += g.Value
	case glyph.EffectMultXmult:
		x *= g.Value
	}
	return x
}

// applyPerLetter is the per-tile-run hook for PerLetter glyphs. No glyph
// defines a per-letter effect yet, so the accumulator is returned unchanged.
func applyPerLetter(_ glyph.Glyph, _ tile.Tile, acc Accumulator) Accumulator {
	return acc
}
