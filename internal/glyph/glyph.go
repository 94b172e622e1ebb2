// internal/glyph/glyph.go
//
// Validation and condition evaluation for glyphs.
//
// Conditions are table-driven: each ConditionKind maps to a predicate and a
// scope (word or grid). Adding a condition is a new table row; the engine's
// control flow does not change.

package glyph

import (
	"fmt"
	"math"
)

// InvalidModifierError reports a glyph whose shape the engine cannot score.
type InvalidModifierError struct {
	ID     string
	Reason string
}

func (e *InvalidModifierError) Error() string {
	return fmt.Sprintf("invalid glyph %q: %s", e.ID, e.Reason)
}

type scope int

const (
	scopeWord scope = iota
	scopeGrid
)

type predicate struct {
	scope scope
	holds func(threshold int, p WordProperties, g GridState) bool
}

var conditions = map[ConditionKind]predicate{
	CondWordLongerThan: {scopeWord, func(n int, p WordProperties, _ GridState) bool { return p.Length > n }},
	CondWordAtLeast:    {scopeWord, func(n int, p WordProperties, _ GridState) bool { return p.Length >= n }},
	CondPalindrome:     {scopeWord, func(_ int, p WordProperties, _ GridState) bool { return p.IsPalindrome }},
	CondCrossedDoubleWord: {scopeGrid, func(_ int, _ WordProperties, g GridState) bool {
		return g.CrossedDoubleWord
	}},
}

// Holds evaluates c against the word and board. Unknown kinds never hold.
func Holds(c Condition, p WordProperties, g GridState) bool {
	pr, ok := conditions[c.Kind]
	if !ok {
		return false
	}
	return pr.holds(c.Threshold, p, g)
}

// Fires reports whether the glyph applies its effect at word level.
// PerLetter glyphs are evaluated per tile run and never fire here.
func (gl Glyph) Fires(p WordProperties, g GridState) bool {
	switch gl.Trigger {
	case TriggerPermanent:
		return true
	case TriggerOnWordCondition, TriggerOnGridCondition:
		return Holds(gl.Condition, p, g)
	}
	return false
}

// Validate checks that the engine knows how to score gl.
func (gl Glyph) Validate() error {
	fail := func(format string, args ...any) error {
		return &InvalidModifierError{ID: gl.ID, Reason: fmt.Sprintf(format, args...)}
	}
	if gl.ID == "" {
		return fail("missing id")
	}
	if math.IsNaN(gl.Value) || math.IsInf(gl.Value, 0) {
		return fail("value must be finite, got %g", gl.Value)
	}
	switch gl.Effect {
	case EffectAddPoints, EffectAddMult, EffectAddXmult:
	case EffectMultMult, EffectMultXmult:
		if gl.Value <= 0 {
			return fail("multiplicative effect %s needs a positive value, got %g", gl.Effect, gl.Value)
		}
	default:
		return fail("unknown effect %q", gl.Effect)
	}
	if !gl.Edition.Valid() {
		return fail("unknown edition %q", gl.Edition)
	}

	switch gl.Trigger {
	case TriggerPermanent, TriggerPerLetter:
		if gl.Condition.Kind != CondNone {
			return fail("trigger %s does not take a condition", gl.Trigger)
		}
	case TriggerOnWordCondition, TriggerOnGridCondition:
		pr, ok := conditions[gl.Condition.Kind]
		if !ok {
			return fail("trigger %s needs a known condition, got %q", gl.Trigger, gl.Condition.Kind)
		}
		want := scopeWord
		if gl.Trigger == TriggerOnGridCondition {
			want = scopeGrid
		}
		if pr.scope != want {
			return fail("condition %s does not match trigger %s", gl.Condition.Kind, gl.Trigger)
		}
	default:
		return fail("unknown trigger %q", gl.Trigger)
	}
	return nil
}
