package pricing

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Rolling-window limits on pricing changes.
const (
	MaxChangesPerWindow = 2
	Window              = 14 * 24 * time.Hour
)

// MinBasic is the minimum allowed basic tier price in USD.
var MinBasic = decimal.RequireFromString("4.99")

var (
	ErrBasicTooLow  = fmt.Errorf("basic price must be at least $%s", MinBasic.StringFixed(2))
	ErrNotAscending = errors.New("prices must be ascending: basic < pro < premium")
)

// ErrRateLimited is returned when a creator has exhausted the rolling window.
type ErrRateLimited struct {
	DaysUntilNext int
}

func (e ErrRateLimited) Error() string {
	return fmt.Sprintf("pricing can only be changed %d times per %d days; next change allowed in %d day(s)",
		MaxChangesPerWindow, int(Window.Hours()/24), e.DaysUntilNext)
}

// Tiers is a creator's full price ladder in USD.
type Tiers struct {
	Basic   decimal.Decimal `json:"basic"`
	Pro     decimal.Decimal `json:"pro"`
	Premium decimal.Decimal `json:"premium"`
}

// ValidateTiers enforces the price floor and strict tier ordering.
func ValidateTiers(t Tiers) error {
	if t.Basic.LessThan(MinBasic) {
		return ErrBasicTooLow
	}
	if !t.Pro.GreaterThan(t.Basic) || !t.Premium.GreaterThan(t.Pro) {
		return ErrNotAscending
	}
	return nil
}

// PruneWindow drops timestamps that fell out of the rolling window.
func PruneWindow(now time.Time, changes []time.Time) []time.Time {
	cutoff := now.Add(-Window)
	kept := changes[:0]
	for _, ts := range changes {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	return kept
}

// CheckWindow decides whether another change is allowed given the in-window
// change timestamps. When the limit is hit it returns ErrRateLimited carrying
// ceil((window - (now - oldest)) / 1d).
func CheckWindow(now time.Time, inWindow []time.Time) error {
	if len(inWindow) < MaxChangesPerWindow {
		return nil
	}
	oldest := inWindow[0]
	for _, ts := range inWindow[1:] {
		if ts.Before(oldest) {
			oldest = ts
		}
	}
	remaining := Window - now.Sub(oldest)
	days := int(remaining / (24 * time.Hour))
	if remaining%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return ErrRateLimited{DaysUntilNext: days}
}
