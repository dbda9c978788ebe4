package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lol-tracker/internal/domain"
)

func TestValue(t *testing.T) {
	t.Run("standard ladder values", func(t *testing.T) {
		cases := []struct {
			tier     string
			division string
			lp       int
			want     int
		}{
			{"IRON", "IV", 0, 0},
			{"IRON", "IV", 99, 99},
			{"IRON", "I", 0, 300},
			{"BRONZE", "IV", 0, 400},
			{"GOLD", "II", 45, 1645},
			{"DIAMOND", "I", 99, 2799},
		}

		for _, c := range cases {
			got, err := Value(c.tier, c.division, c.lp)
			require.NoError(t, err)
			assert.Equal(t, c.want, got, "%s %s %d LP", c.tier, c.division, c.lp)
		}
	})

	t.Run("higher tier beats lower tier regardless of division and LP", func(t *testing.T) {
		worst, err := Value("SILVER", "IV", 0)
		require.NoError(t, err)
		best, err := Value("BRONZE", "I", 99)
		require.NoError(t, err)
		assert.Greater(t, worst, best)
	})

	t.Run("higher division beats lower division regardless of LP", func(t *testing.T) {
		worst, err := Value("GOLD", "III", 0)
		require.NoError(t, err)
		best, err := Value("GOLD", "IV", 99)
		require.NoError(t, err)
		assert.Greater(t, worst, best)
	})

	t.Run("value increases with LP within a division", func(t *testing.T) {
		lo, err := Value("PLATINUM", "II", 10)
		require.NoError(t, err)
		hi, err := Value("PLATINUM", "II", 11)
		require.NoError(t, err)
		assert.Greater(t, hi, lo)
	})

	t.Run("apex tiers outrank every standard value", func(t *testing.T) {
		maxStandard, err := Value("DIAMOND", "I", 99)
		require.NoError(t, err)
		assert.Equal(t, 2799, maxStandard)

		for _, tier := range []string{"MASTER", "GRANDMASTER", "CHALLENGER"} {
			got, err := Value(tier, "", 0)
			require.NoError(t, err)
			assert.Equal(t, 2800, got)
			assert.Greater(t, got, maxStandard)
		}

		got, err := Value("CHALLENGER", "", 1337)
		require.NoError(t, err)
		assert.Equal(t, 2800+1337, got)
	})

	t.Run("apex ignores division", func(t *testing.T) {
		a, err := Value("MASTER", "IV", 50)
		require.NoError(t, err)
		b, err := Value("MASTER", "", 50)
		require.NoError(t, err)
		assert.Equal(t, a, b)
	})

	t.Run("case and whitespace are normalized", func(t *testing.T) {
		got, err := Value(" gold ", "ii", 45)
		require.NoError(t, err)
		assert.Equal(t, 1645, got)
	})

	t.Run("unknown tier fails", func(t *testing.T) {
		_, err := Value("WOOD", "IV", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRank)
	})

	t.Run("unknown division on a standard tier fails", func(t *testing.T) {
		_, err := Value("GOLD", "V", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRank)

		_, err = Value("GOLD", "", 0)
		assert.ErrorIs(t, err, domain.ErrInvalidRank)
	})
}

func TestIsApex(t *testing.T) {
	assert.True(t, IsApex("MASTER"))
	assert.True(t, IsApex("grandmaster"))
	assert.True(t, IsApex("CHALLENGER"))
	assert.False(t, IsApex("DIAMOND"))
	assert.False(t, IsApex("IRON"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "GOLD II 45 LP", Format("GOLD", "II", 45))
	assert.Equal(t, "MASTER 210 LP", Format("master", "", 210))
}
