// Package settings holds the user-scoped display settings (currency code and
// time display mode) and the formatter that renders domain values with them.
//
// Settings load once at startup from a Store and are rewritten wholesale on
// every change. Absent or unparseable stored data falls back to defaults
// rather than failing.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
)

// StorageKey is the fixed key the serialized settings live under
const StorageKey = "projectSettings"

// Mode selects how durations are rendered
type Mode string

const (
	// ModeDecimal renders hours as a decimal quantity, e.g. "2.50h"
	ModeDecimal Mode = "decimal"
	// ModeHMS renders hours as "HH:MM:SS"
	ModeHMS Mode = "hms"
)

// Valid reports whether the mode is a known time display mode
func (m Mode) Valid() bool {
	return m == ModeDecimal || m == ModeHMS
}

// Settings is the persisted user configuration
type Settings struct {
	Currency   string `json:"currency"`
	TimeFormat Mode   `json:"timeFormat"`
}

// Default returns the settings used when nothing is stored yet
func Default() Settings {
	return Settings{Currency: "EUR", TimeFormat: ModeHMS}
}

// Partial carries an update; nil fields are left unchanged
type Partial struct {
	Currency   *string
	TimeFormat *Mode
}

// Validation errors
var (
	ErrInvalidCurrency   = errors.New("invalid currency code")
	ErrInvalidTimeFormat = errors.New("invalid time format mode")
)

// Service owns the current settings and their persistence. All formatter
// calls read through it, so an Update is visible to every call that follows.
type Service struct {
	mu      sync.RWMutex
	store   Store
	current Settings
	locale  language.Tag
}

// NewService loads settings from the store, defaulting when the key is
// absent or the stored document does not parse. The locale drives
// currency rendering only; it is app configuration, not a user setting.
func NewService(store Store, locale language.Tag) *Service {
	s := &Service{store: store, current: Default(), locale: locale}

	data, found, err := store.Get(StorageKey)
	if err != nil || !found {
		return s
	}

	// Merge over defaults so documents from older versions keep
	// unknown-at-the-time fields at their default values.
	loaded := Default()
	if err := json.Unmarshal(data, &loaded); err != nil {
		return s
	}
	if !loaded.TimeFormat.Valid() {
		loaded.TimeFormat = Default().TimeFormat
	}
	if loaded.Currency == "" {
		loaded.Currency = Default().Currency
	}
	s.current = loaded
	return s
}

// Current returns a snapshot of the active settings
func (s *Service) Current() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update merges the partial into the current settings, persists the full
// merged document, and makes the result visible to subsequent formatter
// calls. Validation happens before anything is written; on store failure
// the previous settings stay active.
func (s *Service) Update(p Partial) error {
	if p.Currency != nil {
		if _, err := currency.ParseISO(*p.Currency); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidCurrency, *p.Currency)
		}
	}
	if p.TimeFormat != nil && !p.TimeFormat.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, *p.TimeFormat)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := s.current
	if p.Currency != nil {
		merged.Currency = *p.Currency
	}
	if p.TimeFormat != nil {
		merged.TimeFormat = *p.TimeFormat
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := s.store.Set(StorageKey, data); err != nil {
		return fmt.Errorf("failed to persist settings: %w", err)
	}

	s.current = merged
	return nil
}
