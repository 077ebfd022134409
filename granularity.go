package rating

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"gopkg.in/yaml.v3"
)

// MaxGranularity is the largest accepted granularity setting. Integer
// settings above 1 are decimal places, so this also bounds the precision.
const MaxGranularity = 20

// GranularityKind identifies the rounding policy of a Granularity.
type GranularityKind uint8

const (
	// KindWholeUnits rounds to whole units.
	KindWholeUnits GranularityKind = iota

	// KindStep rounds to the nearest multiple of a fractional step in (0, 1).
	KindStep

	// KindDecimalPlaces rounds to a fixed number of decimal places.
	KindDecimalPlaces
)

// String returns the string representation of the kind.
func (k GranularityKind) String() string {
	switch k {
	case KindWholeUnits:
		return "whole"
	case KindStep:
		return "step"
	case KindDecimalPlaces:
		return "decimal"
	default:
		return "unknown"
	}
}

// Granularity is the rounding resolution applied to values set by tap or
// drag. The zero value rounds to whole units.
//
// A Granularity produced from a rejected setting rounds to whole units and
// reports the rejection through Err, so a host document with a bad setting
// still yields a usable control.
type Granularity struct {
	kind   GranularityKind
	step   float64
	places int
	err    error
}

// WholeUnits returns a granularity that rounds to whole units.
func WholeUnits() Granularity {
	return Granularity{kind: KindWholeUnits}
}

// Step returns a granularity that rounds to the nearest multiple of f.
// f must lie in (0, 1).
func Step(f float64) (Granularity, error) {
	if math.IsNaN(f) || f <= 0 || f >= 1 {
		return reject(fmt.Errorf("%w: step %v must be between 0 and 1 exclusively", ErrInvalidGranularity, f))
	}
	return Granularity{kind: KindStep, step: f}, nil
}

// Places returns a granularity that rounds to d decimal places.
// d must lie in [1, MaxGranularity].
func Places(d int) (Granularity, error) {
	if d < 1 || d > MaxGranularity {
		return reject(fmt.Errorf("%w: decimal places %d must be between 1 and %d", ErrInvalidGranularity, d, MaxGranularity))
	}
	return Granularity{kind: KindDecimalPlaces, places: d}, nil
}

// ParseGranularity interprets a loosely typed granularity setting:
// nil or 0 rounds to whole units, a number in (0, 1) is a step, and an
// integer in [1, 20] is a count of decimal places. Anything else is
// rejected; the returned Granularity then rounds to whole units and carries
// the same error in Err.
func ParseGranularity(v any) (Granularity, error) {
	if v == nil {
		return WholeUnits(), nil
	}
	f, ok := numeric(v)
	if !ok {
		return reject(fmt.Errorf("%w: granularity must be a number, got %T", ErrInvalidValueType, v))
	}
	switch {
	case math.IsNaN(f) || f < 0 || f > MaxGranularity:
		return reject(fmt.Errorf("%w: %v must be between 0 and %d", ErrInvalidGranularity, f, MaxGranularity))
	case f == 0:
		return WholeUnits(), nil
	case f < 1:
		return Step(f)
	case f != math.Trunc(f):
		return reject(fmt.Errorf("%w: %v must be either a decimal between 0 and 1 or an integer", ErrInvalidGranularity, f))
	default:
		return Places(int(f))
	}
}

func reject(err error) (Granularity, error) {
	return Granularity{kind: KindWholeUnits, err: err}, err
}

// Kind returns the rounding policy.
func (g Granularity) Kind() GranularityKind {
	return g.kind
}

// Increment returns the step for KindStep, and 0 otherwise.
func (g Granularity) Increment() float64 {
	return g.step
}

// Places returns the decimal places for KindDecimalPlaces, and 0 otherwise.
func (g Granularity) Places() int {
	return g.places
}

// Err returns the rejection recorded when this granularity was parsed, or nil.
func (g Granularity) Err() error {
	return g.err
}

// Setting returns the numeric setting this granularity was built from.
func (g Granularity) Setting() float64 {
	switch g.kind {
	case KindStep:
		return g.step
	case KindDecimalPlaces:
		return float64(g.places)
	default:
		return 0
	}
}

// String returns a human readable form, e.g. "whole", "step(0.25)", "decimal(2)".
func (g Granularity) String() string {
	switch g.kind {
	case KindStep:
		return "step(" + strconv.FormatFloat(g.step, 'g', -1, 64) + ")"
	case KindDecimalPlaces:
		return "decimal(" + strconv.Itoa(g.places) + ")"
	default:
		return g.kind.String()
	}
}

// exactScaled bounds a scaled value for which rounding and scaling back is
// stable: below 2^51 the scale error stays under half a unit.
const exactScaled = 1 << 51

// Round applies the rounding policy to raw. Halves round away from zero.
// Decimal places finer than float64 can hold for raw leave it unchanged.
func (g Granularity) Round(raw float64) float64 {
	if g.kind == KindStep {
		return math.Round(raw/g.step) * g.step
	}
	p := math.Pow10(g.places)
	scaled := raw * p
	if math.Abs(scaled) >= exactScaled {
		return raw
	}
	return math.Round(scaled) / p
}

// Clean converts a raw value into a cleaned value under cfg. Readonly
// configurations never round.
func Clean(raw float64, cfg Config) float64 {
	if cfg.Readonly {
		return raw
	}
	return cfg.Granularity.Round(raw)
}

// MarshalJSON encodes the granularity as its numeric setting.
func (g Granularity) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Setting())
}

// UnmarshalJSON decodes a numeric setting. An out-of-range or non-numeric
// setting is not a decoding error; it is retained in Err.
func (g *Granularity) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g, _ = ParseGranularity(v) //nolint:errcheck // Retained in g.err
	return nil
}

// MarshalYAML encodes the granularity as its numeric setting.
func (g Granularity) MarshalYAML() (any, error) {
	return g.Setting(), nil
}

// UnmarshalYAML decodes a numeric setting. An out-of-range or non-numeric
// setting is not a decoding error; it is retained in Err.
func (g *Granularity) UnmarshalYAML(node *yaml.Node) error {
	var v any
	if err := node.Decode(&v); err != nil {
		return err
	}
	*g, _ = ParseGranularity(v) //nolint:errcheck // Retained in g.err
	return nil
}

// numeric reports the float64 form of v when v holds a Go number.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
