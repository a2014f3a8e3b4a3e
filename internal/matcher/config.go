// Package matcher implements the reconciliation matching engine: exact
// amount matching, fuzzy matching over amount/date/description, projection
// of match groups onto transaction collections, and reconciliation
// statistics.
//
// All operations are pure functions over value collections: inputs are never
// mutated and outputs never alias inputs. The engine processes bank
// transactions in caller order; tie-breaking and greedy consumption depend
// on it.
//
// Example usage:
//
//	engine := matcher.NewEngine(matcher.DefaultConfig())
//	exact := engine.FindExactMatches(bank, gl)
//	bank, gl = matcher.ApplyMatchGroups(bank, gl, exact)
//	potential := engine.FindPotentialMatches(bank, gl)
//	bank, gl = matcher.ApplyMatchGroups(bank, gl, potential)
//	stats := matcher.ComputeStats(bank, gl, append(exact, potential...))
package matcher

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Config holds the tolerances and thresholds for fuzzy matching. Exact
// matching is parameter-free beyond cent rounding; the balance tolerance is
// fixed at one cent for both.
type Config struct {
	// AmountTolerancePercent is the maximum relative amount difference for
	// a fuzzy candidate, as a percentage of the bank amount (0.0 to 100.0).
	AmountTolerancePercent float64 `json:"amount_tolerance_percent"`

	// DateToleranceDays is the preferred date-proximity window in calendar
	// days. Candidates outside the window are still considered when no
	// candidate inside it exists.
	DateToleranceDays int `json:"date_tolerance_days"`

	// DescriptionThreshold is the maximum description distance score for a
	// fuzzy match (0.0 exact to 1.0 unrelated); lower is stricter.
	DescriptionThreshold float64 `json:"description_threshold"`
}

// DefaultConfig returns the tolerances the original workspace ships with:
// 1% amount tolerance, a 5-day date window, and a 0.4 description threshold.
func DefaultConfig() *Config {
	return &Config{
		AmountTolerancePercent: 1.0,
		DateToleranceDays:      5,
		DescriptionThreshold:   0.4,
	}
}

// StrictConfig returns a configuration for tight, review-light matching.
func StrictConfig() *Config {
	return &Config{
		AmountTolerancePercent: 0.1,
		DateToleranceDays:      2,
		DescriptionThreshold:   0.25,
	}
}

// RelaxedConfig returns a configuration for exploratory matching of messy
// feeds.
func RelaxedConfig() *Config {
	return &Config{
		AmountTolerancePercent: 2.5,
		DateToleranceDays:      10,
		DescriptionThreshold:   0.55,
	}
}

// Validate checks if the matching configuration is valid
func (c *Config) Validate() error {
	if c.AmountTolerancePercent < 0.0 || c.AmountTolerancePercent > 100.0 {
		return fmt.Errorf("amount tolerance percent must be between 0.0 and 100.0: %f", c.AmountTolerancePercent)
	}
	if c.DateToleranceDays < 0 {
		return fmt.Errorf("date tolerance days cannot be negative: %d", c.DateToleranceDays)
	}
	if c.DescriptionThreshold < 0.0 || c.DescriptionThreshold > 1.0 {
		return fmt.Errorf("description threshold must be between 0.0 and 1.0: %f", c.DescriptionThreshold)
	}
	return nil
}

// Clone creates a copy of the configuration
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}
	out := *c
	return &out
}

// String returns a human-readable description of the configuration
func (c *Config) String() string {
	return fmt.Sprintf("Config{AmountTolerance: %.2f%%, DateTolerance: %d days, DescriptionThreshold: %.2f}",
		c.AmountTolerancePercent, c.DateToleranceDays, c.DescriptionThreshold)
}

// Engine runs the matching primitives with a fixed configuration. The clock
// and id generator are injectable for deterministic tests.
type Engine struct {
	config *Config

	now   func() time.Time
	newID func() string
}

// NewEngine creates a matching engine with the given configuration, falling
// back to defaults when config is nil.
func NewEngine(config *Config) *Engine {
	if config == nil {
		config = DefaultConfig()
	}
	return &Engine{
		config: config.Clone(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// WithClock overrides the engine's time source. Returns the engine for
// chaining.
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// WithIDGenerator overrides the engine's group id source. Returns the engine
// for chaining.
func (e *Engine) WithIDGenerator(newID func() string) *Engine {
	e.newID = newID
	return e
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}
