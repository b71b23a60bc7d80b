package pricing

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func tiers(basic, pro, premium string) Tiers {
	return Tiers{
		Basic:   decimal.RequireFromString(basic),
		Pro:     decimal.RequireFromString(pro),
		Premium: decimal.RequireFromString(premium),
	}
}

func TestValidateTiers(t *testing.T) {
	tests := []struct {
		name    string
		tiers   Tiers
		wantErr error
	}{
		{"valid ladder", tiers("4.99", "9.99", "19.99"), nil},
		{"basic exactly at floor", tiers("4.99", "5.00", "5.01"), nil},
		{"basic below floor", tiers("4.98", "9.99", "19.99"), ErrBasicTooLow},
		{"pro equals basic", tiers("4.99", "4.99", "19.99"), ErrNotAscending},
		{"premium equals pro", tiers("4.99", "9.99", "9.99"), ErrNotAscending},
		{"descending", tiers("19.99", "9.99", "4.99"), ErrNotAscending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTiers(tt.tiers)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestCheckWindow_UnderLimit(t *testing.T) {
	now := time.Now()

	assert.NoError(t, CheckWindow(now, nil))
	assert.NoError(t, CheckWindow(now, []time.Time{now.Add(-time.Hour)}))
}

func TestCheckWindow_AtLimit(t *testing.T) {
	now := time.Now()
	inWindow := []time.Time{
		now.Add(-3 * 24 * time.Hour),
		now.Add(-1 * 24 * time.Hour),
	}

	err := CheckWindow(now, inWindow)
	require.Error(t, err)

	var rl ErrRateLimited
	require.ErrorAs(t, err, &rl)
	// Oldest change was 3 days ago, so it leaves the 14-day window in 11 days.
	assert.Equal(t, 11, rl.DaysUntilNext)
}

func TestCheckWindow_PartialDayRoundsUp(t *testing.T) {
	now := time.Now()
	inWindow := []time.Time{
		now.Add(-13*24*time.Hour - 12*time.Hour),
		now.Add(-time.Hour),
	}

	var rl ErrRateLimited
	require.ErrorAs(t, CheckWindow(now, inWindow), &rl)
	assert.Equal(t, 1, rl.DaysUntilNext)
}

func TestPruneWindow(t *testing.T) {
	now := time.Now()
	changes := []time.Time{
		now.Add(-20 * 24 * time.Hour),
		now.Add(-15 * 24 * time.Hour),
		now.Add(-13 * 24 * time.Hour),
		now.Add(-time.Hour),
	}

	kept := PruneWindow(now, changes)
	require.Len(t, kept, 2)
	assert.Equal(t, changes[2], kept[0])
	assert.Equal(t, changes[3], kept[1])
}

// For any two in-window change timestamps, another change is denied and the
// wait is between 1 and 14 days.
func TestProperty_CheckWindow_DenialBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		now := time.Now()
		windowHours := int64(Window / time.Hour)

		ageHours1 := rapid.Int64Range(0, windowHours-1).Draw(t, "ageHours1")
		ageHours2 := rapid.Int64Range(0, windowHours-1).Draw(t, "ageHours2")
		inWindow := []time.Time{
			now.Add(-time.Duration(ageHours1) * time.Hour),
			now.Add(-time.Duration(ageHours2) * time.Hour),
		}

		err := CheckWindow(now, inWindow)
		var rl ErrRateLimited
		if !assert.ErrorAs(t, err, &rl) {
			return
		}
		assert.GreaterOrEqual(t, rl.DaysUntilNext, 1)
		assert.LessOrEqual(t, rl.DaysUntilNext, 14)
	})
}

// For any ladder that passes validation, the tiers are strictly ascending and
// basic never sits below the floor.
func TestProperty_ValidateTiers_Ordering(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		basicCents := rapid.Int64Range(1, 100000).Draw(t, "basicCents")
		proCents := rapid.Int64Range(1, 100000).Draw(t, "proCents")
		premiumCents := rapid.Int64Range(1, 100000).Draw(t, "premiumCents")

		tr := Tiers{
			Basic:   decimal.New(basicCents, -2),
			Pro:     decimal.New(proCents, -2),
			Premium: decimal.New(premiumCents, -2),
		}

		if ValidateTiers(tr) == nil {
			assert.True(t, tr.Basic.GreaterThanOrEqual(MinBasic))
			assert.True(t, tr.Pro.GreaterThan(tr.Basic))
			assert.True(t, tr.Premium.GreaterThan(tr.Pro))
		}
	})
}
