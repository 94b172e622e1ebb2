// internal/glyph/types.go
//
// Type definitions for glyphs, the passive scoring modifiers a player owns.
// Defines:
//   - Trigger:        when a glyph fires (permanent, per letter, on a word or grid condition).
//   - Effect:         which channel a glyph touches and how (+ or ×).
//   - Condition:      table-driven predicate id for conditional glyphs.
//   - WordProperties: read-only facts about the played word.
//   - GridState:      read-only facts about the board at scoring time.
//   - Glyph:          one catalogue entry.

package glyph

import "github.com/robalobadob/glyphword/internal/tile"

// Trigger selects when a glyph participates in scoring.
type Trigger string

const (
	TriggerPermanent       Trigger = "permanent"
	TriggerPerLetter       Trigger = "per_letter"
	TriggerOnWordCondition Trigger = "on_word_condition"
	TriggerOnGridCondition Trigger = "on_grid_condition"
)

// Effect names the channel a glyph's value applies to and the operator.
type Effect string

const (
	EffectAddPoints Effect = "add_points"
	EffectAddMult   Effect = "add_mult"
	EffectMultMult  Effect = "mult_mult"
	EffectAddXmult  Effect = "add_xmult"
	EffectMultXmult Effect = "mult_xmult"
)

// ConditionKind keys the predicate table.
type ConditionKind string

const (
	CondNone              ConditionKind = ""
	CondWordLongerThan    ConditionKind = "word_longer_than"
	CondWordAtLeast       ConditionKind = "word_at_least"
	CondPalindrome        ConditionKind = "palindrome"
	CondCrossedDoubleWord ConditionKind = "crossed_double_word"
)

// Condition is a predicate id plus its numeric parameter, if any.
type Condition struct {
	Kind      ConditionKind `json:"kind,omitempty" toml:"kind"`
	Threshold int           `json:"threshold,omitempty" toml:"threshold"`
}

// WordProperties are derived facts about the played tile sequence.
type WordProperties struct {
	Length       int  `json:"length"`
	IsPalindrome bool `json:"isPalindrome"`
}

// GridState holds board-level facts at scoring time.
type GridState struct {
	CrossedDoubleWord bool `json:"crossedDoubleWord"`
}

// Glyph is one passive modifier. Its fields are data; behaviour lives in
// the scoring engine's switch over Trigger and Effect.
type Glyph struct {
	ID          string       `json:"id" toml:"id"`
	Name        string       `json:"name" toml:"name"`
	Description string       `json:"description,omitempty" toml:"description"`
	Trigger     Trigger      `json:"trigger" toml:"trigger"`
	Effect      Effect       `json:"effect" toml:"effect"`
	Value       float64      `json:"value" toml:"value"`
	Edition     tile.Edition `json:"edition,omitempty" toml:"edition"`
	Condition   Condition    `json:"condition,omitempty" toml:"condition"`
	Price       int          `json:"price" toml:"price"`
}

// Xmult reports whether the glyph's effect belongs to the points/mult
// phase (false) or the xmult phase (true).
func (e Effect) Xmult() bool {
	return e == EffectAddXmult || e == EffectMultXmult
}
