package planner

import (
	"errors"
	"fmt"
)

const (
	DefaultDailyHours    = 4.0
	DefaultMaxEntryHours = 2.0

	// minChunkHours is the allocation unit. Remainders below it can never be
	// filled, so they are skipped wherever they appear.
	minChunkHours = 1.0
)

// ErrConfiguration marks settings that cannot produce a valid allocation.
// Callers treat it as fatal before any day is processed.
var ErrConfiguration = errors.New("configuration error")

// Settings bounds the allocation for a single day.
type Settings struct {
	DailyHours    float64
	MaxEntryHours float64
}

func DefaultSettings() Settings {
	return Settings{
		DailyHours:    DefaultDailyHours,
		MaxEntryHours: DefaultMaxEntryHours,
	}
}

func (s Settings) Validate() error {
	if s.DailyHours < minChunkHours {
		return fmt.Errorf("%w: daily hours must be >= 1, got %g", ErrConfiguration, s.DailyHours)
	}
	if s.MaxEntryHours < minChunkHours {
		return fmt.Errorf("%w: max entry hours must be >= 1, got %g", ErrConfiguration, s.MaxEntryHours)
	}
	if s.MaxEntryHours > s.DailyHours {
		return fmt.Errorf(
			"%w: max entry hours (%g) cannot exceed daily hours (%g)",
			ErrConfiguration,
			s.MaxEntryHours,
			s.DailyHours,
		)
	}
	return nil
}

// Remaining is the fillable remainder of a day after already-logged time.
func Remaining(target, logged float64) float64 {
	remaining := target - logged
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Skippable reports whether a remainder is too small to allocate.
func Skippable(remaining float64) bool {
	return remaining < minChunkHours
}
