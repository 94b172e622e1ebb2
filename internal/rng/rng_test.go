package rng

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeededSequencesRepeat(t *testing.T) {
	a, b, c := New(7), New(7), New(8)
	var sa, sb, sc []float64
	for i := 0; i < 10; i++ {
		sa = append(sa, a.Next())
		sb = append(sb, b.Next())
		sc = append(sc, c.Next())
	}
	assert.Equal(t, sa, sb)
	assert.NotEqual(t, sa, sc)
	for _, v := range sa {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

func TestFixedCycles(t *testing.T) {
	f := NewFixed(0.1, 0.9)
	assert.Equal(t, []float64{0.1, 0.9, 0.1}, []float64{f.Next(), f.Next(), f.Next()})
	assert.Equal(t, 0.0, NewFixed().Next())
}

