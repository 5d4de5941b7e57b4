package settings

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
)

func newTestService(store Store) *Service {
	return NewService(store, language.MustParse("es-ES"))
}

func TestDefaultsWhenStoreEmpty(t *testing.T) {
	svc := newTestService(NewMemStore())

	got := svc.Current()
	if got.Currency != "EUR" {
		t.Errorf("default currency = %q, want EUR", got.Currency)
	}
	if got.TimeFormat != ModeHMS {
		t.Errorf("default time format = %q, want hms", got.TimeFormat)
	}
}

func TestDefaultsWhenStoreCorrupt(t *testing.T) {
	store := NewMemStore()
	if err := store.Set(StorageKey, []byte("{not json")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	svc := newTestService(store)
	if got := svc.Current(); got != Default() {
		t.Errorf("corrupt store should fall back to defaults, got %+v", got)
	}
}

func TestUpdatePersistsAndPreservesUntouchedFields(t *testing.T) {
	store := NewMemStore()
	svc := newTestService(store)

	usd := "USD"
	if err := svc.Update(Partial{Currency: &usd}); err != nil {
		t.Fatalf("Update: %v", err)
	}

	if got := svc.Current().Currency; got != "USD" {
		t.Errorf("currency after update = %q, want USD", got)
	}

	// A fresh load from the same store must see the merged document.
	fresh := newTestService(store)
	got := fresh.Current()
	if got.Currency != "USD" {
		t.Errorf("fresh load currency = %q, want USD", got.Currency)
	}
	if got.TimeFormat != ModeHMS {
		t.Errorf("fresh load time format = %q, want untouched hms", got.TimeFormat)
	}
}

func TestUpdateRejectsInvalidInput(t *testing.T) {
	svc := newTestService(NewMemStore())

	bad := "NOPE"
	if err := svc.Update(Partial{Currency: &bad}); err == nil {
		t.Error("expected error for unknown currency code")
	}

	badMode := Mode("binary")
	if err := svc.Update(Partial{TimeFormat: &badMode}); err == nil {
		t.Error("expected error for unknown time format")
	}

	// Neither rejection may leave a partial change behind.
	if got := svc.Current(); got != Default() {
		t.Errorf("settings mutated by rejected update: %+v", got)
	}
}

func TestFormatTime(t *testing.T) {
	svc := newTestService(NewMemStore())

	if got := svc.FormatTime(2.5); got != "02:30:00" {
		t.Errorf("hms format = %q, want 02:30:00", got)
	}

	decimal := ModeDecimal
	if err := svc.Update(Partial{TimeFormat: &decimal}); err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got := svc.FormatTime(2.5); got != "2.50h" {
		t.Errorf("decimal format = %q, want 2.50h", got)
	}
}

func TestFormatCurrency(t *testing.T) {
	svc := newTestService(NewMemStore())

	got := svc.FormatCurrency(1250)
	if !strings.Contains(got, "EUR") && !strings.Contains(got, "€") {
		t.Errorf("FormatCurrency(1250) = %q, want a EUR-marked amount", got)
	}

	neg := svc.FormatCurrency(-300)
	if !strings.HasPrefix(neg, "-") {
		t.Errorf("FormatCurrency(-300) = %q, want a signed amount", neg)
	}
}

func TestParseTime(t *testing.T) {
	svc := newTestService(NewMemStore())

	tests := []struct {
		input string
		want  float64
	}{
		{"02:30:00", 2.5},
		{"2.5", 2.5},
		{"2.5h", 2.5},
		{"", 0},
		{"abc", 0},
	}
	for _, tt := range tests {
		if got := svc.ParseTime(tt.input); got != tt.want {
			t.Errorf("ParseTime(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
