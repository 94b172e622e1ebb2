package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/glyphword/internal/glyph"
	"github.com/robalobadob/glyphword/internal/run"
	"github.com/robalobadob/glyphword/internal/words"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	st := NewMemoryStore()
	r := run.New(3, run.Deps{Dict: words.New(nil), Shop: glyph.DefaultCatalog()})

	_, err := st.Get(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, st.Save(ctx, r))
	got, err := st.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Same(t, r, got)

	require.NoError(t, st.Delete(ctx, r.ID))
	_, err = st.Get(ctx, r.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}
