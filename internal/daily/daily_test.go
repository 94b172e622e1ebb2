package daily

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/glyphword/internal/db"
)

func TestSeedIsStablePerDay(t *testing.T) {
	morning := time.Date(2026, 3, 14, 1, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 14, 23, 0, 0, 0, time.UTC)
	tomorrow := morning.Add(24 * time.Hour)

	assert.Equal(t, "2026-03-14", DateKey(morning))
	assert.Equal(t, Seed(morning, "s"), Seed(evening, "s"))
	assert.NotEqual(t, Seed(morning, "s"), Seed(tomorrow, "s"))
	assert.NotEqual(t, Seed(morning, "s"), Seed(morning, "other"))
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	sqlDB, err := db.Open(":memory:")
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, db.Migrate(sqlDB))
	st := NewStore(sqlDB)

	played, err := st.AlreadyPlayed(ctx, "ann", "2026-03-14")
	require.NoError(t, err)
	assert.False(t, played)

	require.NoError(t, st.InsertResult(ctx, Result{UserID: "ann", Date: "2026-03-14", Score: 500, Round: 3}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "bob", Date: "2026-03-14", Score: 900, Round: 4, Won: false}))
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "cat", Date: "2026-03-14", Score: 500, Round: 5}))
	// Duplicate is ignored.
	require.NoError(t, st.InsertResult(ctx, Result{UserID: "ann", Date: "2026-03-14", Score: 99999, Round: 8}))

	played, err = st.AlreadyPlayed(ctx, "ann", "2026-03-14")
	require.NoError(t, err)
	assert.True(t, played)

	top, err := st.Leaderboard(ctx, "2026-03-14", 0)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, []string{"bob", "cat", "ann"}, []string{top[0].UserID, top[1].UserID, top[2].UserID})
	assert.Equal(t, int64(500), top[2].Score)

	other, err := st.Leaderboard(ctx, "2026-03-15", 5)
	require.NoError(t, err)
	assert.Empty(t, other)
}
