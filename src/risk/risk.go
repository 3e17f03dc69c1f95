package risk

import (
	"fmt"
	"sync"
)

// DefaultFraction is the risk fraction assumed until the caller sets one.
const DefaultFraction = 0.02

// Settings holds the account-wide risk fraction: the share of the account a
// single trade may put at risk. It lives in memory only and resets on
// restart. Construct it once in process wiring and pass it to whatever
// consumes it; there is no package-level instance.
type Settings struct {
	mu       sync.RWMutex
	fraction float64
}

// NewSettings returns settings primed with the default fraction.
func NewSettings() *Settings {
	return &Settings{fraction: DefaultFraction}
}

// Fraction returns the current risk fraction.
func (s *Settings) Fraction() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fraction
}

// SetFraction validates and stores a new risk fraction. Valid values are in
// (0, 1].
func (s *Settings) SetFraction(fraction float64) error {
	if fraction <= 0 || fraction > 1 {
		return fmt.Errorf("risk percentage must be between 0 and 1, got %v", fraction)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.fraction = fraction
	return nil
}
