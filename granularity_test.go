package rating

import (
	"encoding/json"
	"errors"
	"math"
	"math/rand"
	"testing"

	"gopkg.in/yaml.v3"
)

func mustStep(t *testing.T, f float64) Granularity {
	t.Helper()
	g, err := Step(f)
	if err != nil {
		t.Fatalf("Step(%v) error = %v", f, err)
	}
	return g
}

func mustPlaces(t *testing.T, d int) Granularity {
	t.Helper()
	g, err := Places(d)
	if err != nil {
		t.Fatalf("Places(%d) error = %v", d, err)
	}
	return g
}

func TestClean_WholeUnits(t *testing.T) {
	cfg := DefaultConfig()
	if got := Clean(3.33, cfg); got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestClean_QuarterStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Granularity = mustStep(t, 0.25)
	if got := Clean(3.33, cfg); got != 3.25 {
		t.Errorf("expected 3.25, got %v", got)
	}
}

func TestClean_DecimalPlaces(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Granularity = mustPlaces(t, 2)
	if got := Clean(3.336, cfg); got != 3.34 {
		t.Errorf("expected 3.34, got %v", got)
	}
}

func TestClean_ReadonlyDoesNotRound(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Readonly = true
	if got := Clean(3.336, cfg); got != 3.336 {
		t.Errorf("expected 3.336, got %v", got)
	}
}

func TestClean_HalfRoundsAwayFromZero(t *testing.T) {
	cfg := DefaultConfig()
	if got := Clean(4.5, cfg); got != 5 {
		t.Errorf("expected 5, got %v", got)
	}
	if got := Clean(-2.5, cfg); got != -3 {
		t.Errorf("expected -3, got %v", got)
	}
	cfg.Granularity = mustStep(t, 0.5)
	if got := Clean(2.25, cfg); got != 2.5 {
		t.Errorf("expected 2.5, got %v", got)
	}
}

func TestClean_Idempotent(t *testing.T) {
	granularities := []Granularity{
		WholeUnits(),
		mustStep(t, 0.25),
		mustStep(t, 0.5),
		mustStep(t, 0.1),
	}
	for places := 1; places <= MaxGranularity; places++ {
		granularities = append(granularities, mustPlaces(t, places))
	}
	raws := []float64{0, 0.04, 0.49, 1.337, 2.5, 3.33, 3.336, 4.999, 5}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 20000; i++ {
		raws = append(raws, rng.Float64()*5)
	}

	for _, g := range granularities {
		cfg := DefaultConfig()
		cfg.Granularity = g
		for _, raw := range raws {
			once := Clean(raw, cfg)
			twice := Clean(once, cfg)
			if once != twice {
				t.Errorf("%s: clean(%v)=%v but clean(clean(%v))=%v", g, raw, once, raw, twice)
			}
		}
	}
}

func TestParseGranularity_Accepted(t *testing.T) {
	cases := []struct {
		in    any
		kind  GranularityKind
		value float64
	}{
		{nil, KindWholeUnits, 0},
		{0, KindWholeUnits, 0},
		{0.0, KindWholeUnits, 0},
		{0.25, KindStep, 0.25},
		{float32(0.5), KindStep, 0.5},
		{1, KindDecimalPlaces, 1},
		{2.0, KindDecimalPlaces, 2},
		{uint8(20), KindDecimalPlaces, 20},
		{json.Number("3"), KindDecimalPlaces, 3},
	}
	for _, tc := range cases {
		g, err := ParseGranularity(tc.in)
		if err != nil {
			t.Errorf("ParseGranularity(%v) unexpected error: %v", tc.in, err)
			continue
		}
		if g.Kind() != tc.kind {
			t.Errorf("ParseGranularity(%v): expected kind %s, got %s", tc.in, tc.kind, g.Kind())
		}
		if g.Setting() != tc.value {
			t.Errorf("ParseGranularity(%v): expected setting %v, got %v", tc.in, tc.value, g.Setting())
		}
		if g.Err() != nil {
			t.Errorf("ParseGranularity(%v): expected no retained error, got %v", tc.in, g.Err())
		}
	}
}

func TestParseGranularity_RejectsAboveTwenty(t *testing.T) {
	g, err := ParseGranularity(21)
	if !errors.Is(err, ErrInvalidGranularity) {
		t.Fatalf("expected ErrInvalidGranularity, got %v", err)
	}
	if g.Kind() != KindWholeUnits {
		t.Errorf("expected whole unit fallback, got %s", g.Kind())
	}
	if !errors.Is(g.Err(), ErrInvalidGranularity) {
		t.Errorf("expected fallback to retain the rejection, got %v", g.Err())
	}
}

func TestParseGranularity_RejectsNegative(t *testing.T) {
	if _, err := ParseGranularity(-1); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("expected ErrInvalidGranularity, got %v", err)
	}
}

func TestParseGranularity_RejectsNonIntegerAboveOne(t *testing.T) {
	if _, err := ParseGranularity(1.5); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("expected ErrInvalidGranularity, got %v", err)
	}
}

func TestParseGranularity_RejectsNaN(t *testing.T) {
	if _, err := ParseGranularity(math.NaN()); !errors.Is(err, ErrInvalidGranularity) {
		t.Errorf("expected ErrInvalidGranularity, got %v", err)
	}
}

func TestParseGranularity_RejectsNonNumeric(t *testing.T) {
	for _, in := range []any{"0", true, []int{1}} {
		g, err := ParseGranularity(in)
		if !errors.Is(err, ErrInvalidValueType) {
			t.Errorf("ParseGranularity(%#v): expected ErrInvalidValueType, got %v", in, err)
		}
		if g.Kind() != KindWholeUnits {
			t.Errorf("ParseGranularity(%#v): expected whole unit fallback, got %s", in, g.Kind())
		}
	}
}

func TestStep_Bounds(t *testing.T) {
	for _, f := range []float64{0, 1, -0.5, 1.5} {
		if _, err := Step(f); !errors.Is(err, ErrInvalidGranularity) {
			t.Errorf("Step(%v): expected ErrInvalidGranularity, got %v", f, err)
		}
	}
}

func TestPlaces_Bounds(t *testing.T) {
	for _, d := range []int{0, -1, 21} {
		if _, err := Places(d); !errors.Is(err, ErrInvalidGranularity) {
			t.Errorf("Places(%d): expected ErrInvalidGranularity, got %v", d, err)
		}
	}
}

func TestGranularity_String(t *testing.T) {
	if s := WholeUnits().String(); s != "whole" {
		t.Errorf("expected 'whole', got %q", s)
	}
	if s := mustStep(t, 0.25).String(); s != "step(0.25)" {
		t.Errorf("expected 'step(0.25)', got %q", s)
	}
	if s := mustPlaces(t, 2).String(); s != "decimal(2)" {
		t.Errorf("expected 'decimal(2)', got %q", s)
	}
}

func TestGranularity_JSON(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"granularity": 0.25}`), &cfg); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if cfg.Granularity.Kind() != KindStep {
		t.Errorf("expected step, got %s", cfg.Granularity.Kind())
	}

	data, err := json.Marshal(cfg.Granularity)
	if err != nil {
		t.Fatalf("marshal error = %v", err)
	}
	if string(data) != "0.25" {
		t.Errorf("expected 0.25, got %s", data)
	}
}

func TestGranularity_JSONRetainsRejection(t *testing.T) {
	var cfg Config
	if err := json.Unmarshal([]byte(`{"granularity": "0"}`), &cfg); err != nil {
		t.Fatalf("unmarshal should not fail on a non-numeric granularity: %v", err)
	}
	if !errors.Is(cfg.Granularity.Err(), ErrInvalidValueType) {
		t.Errorf("expected ErrInvalidValueType retained, got %v", cfg.Granularity.Err())
	}
}

func TestGranularity_YAML(t *testing.T) {
	var cfg Config
	if err := yaml.Unmarshal([]byte("granularity: 2\n"), &cfg); err != nil {
		t.Fatalf("unmarshal error = %v", err)
	}
	if cfg.Granularity.Kind() != KindDecimalPlaces || cfg.Granularity.Places() != 2 {
		t.Errorf("expected decimal(2), got %s", cfg.Granularity)
	}

	if err := yaml.Unmarshal([]byte("granularity: 21\n"), &cfg); err != nil {
		t.Fatalf("unmarshal should not fail on an out of range granularity: %v", err)
	}
	if !errors.Is(cfg.Granularity.Err(), ErrInvalidGranularity) {
		t.Errorf("expected ErrInvalidGranularity retained, got %v", cfg.Granularity.Err())
	}
}

func TestClean_BeyondFloatPrecision(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Granularity = mustPlaces(t, 17)

	if got := Clean(4.123456789012345, cfg); got != 4.123456789012345 {
		t.Errorf("expected raw value kept, got %v", got)
	}
	cfg.Granularity = mustPlaces(t, 15)
	if got := Clean(4.1234567890123456, cfg); got != 4.1234567890123456 {
		t.Errorf("expected raw value kept, got %v", got)
	}
}
