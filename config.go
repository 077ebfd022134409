package rating

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-playground/validator/v10"
)

// Defaults applied when a host leaves a setting out or supplies an invalid one.
const (
	DefaultMaxValue = 5.0
	DefaultIconSpan = 40.0
	DefaultValue    = 3.0

	// MaxScale is the largest accepted max value.
	MaxScale = 1000.0
)

// validate is the shared validator instance.
var validate = validator.New()

// Config is the per-render configuration of a Rating.
type Config struct {
	// MaxValue is the upper bound of the scale, at most MaxScale.
	MaxValue float64 `json:"max_value" yaml:"max_value" validate:"gt=0,lte=1000"`

	// Granularity is the rounding resolution for tapped and dragged values.
	Granularity Granularity `json:"granularity" yaml:"granularity"`

	// IconSpan is the number of pixels that represents one unit of value.
	IconSpan float64 `json:"icon_span" yaml:"icon_span" validate:"gt=0"`

	// Readonly suppresses value cleaning and all interaction.
	Readonly bool `json:"readonly" yaml:"readonly"`
}

// DefaultConfig returns a five icon, whole unit, interactive configuration.
func DefaultConfig() Config {
	return Config{
		MaxValue:    DefaultMaxValue,
		Granularity: WholeUnits(),
		IconSpan:    DefaultIconSpan,
	}
}

// Validate reports every rejected setting, joined.
func (c Config) Validate() error {
	var errs []error
	if err := c.Granularity.Err(); err != nil {
		errs = append(errs, err)
	}
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			for _, fe := range fieldErrs {
				errs = append(errs, fmt.Errorf("%w: %s must be %s %s", ErrInvalidConfig, fe.Field(), fe.Tag(), fe.Param()))
			}
		} else {
			errs = append(errs, fmt.Errorf("%w: %v", ErrInvalidConfig, err))
		}
	}
	if math.IsInf(c.IconSpan, 0) {
		errs = append(errs, fmt.Errorf("%w: icon span must be finite", ErrInvalidConfig))
	}
	return errors.Join(errs...)
}

// sanitize returns c with every rejected setting replaced by its default,
// together with the rejections.
func (c Config) sanitize() (Config, error) {
	err := c.Validate()
	if err == nil {
		return c, nil
	}
	out := c
	if c.Granularity.Err() != nil {
		out.Granularity = WholeUnits()
	}
	if !(c.MaxValue > 0) || c.MaxValue > MaxScale {
		out.MaxValue = DefaultMaxValue
	}
	if !(c.IconSpan > 0) || math.IsInf(c.IconSpan, 0) {
		out.IconSpan = DefaultIconSpan
	}
	return out, err
}

// Props is the host-facing document that configures a Rating and supplies
// its externally owned value. It is what a Binding decodes.
type Props struct {
	MaxValue    *float64    `json:"max_value,omitempty" yaml:"max_value,omitempty"`
	Granularity Granularity `json:"granularity" yaml:"granularity"`
	IconSpan    *float64    `json:"icon_span,omitempty" yaml:"icon_span,omitempty"`
	Readonly    bool        `json:"readonly" yaml:"readonly"`

	// Value is loosely typed so that a non-numeric value is reported
	// rather than failing the whole document.
	Value any `json:"value,omitempty" yaml:"value,omitempty"`
}

// Config returns the configuration described by p, with defaults for
// omitted settings.
func (p Props) Config() Config {
	cfg := DefaultConfig()
	if p.MaxValue != nil {
		cfg.MaxValue = *p.MaxValue
	}
	if p.IconSpan != nil {
		cfg.IconSpan = *p.IconSpan
	}
	cfg.Granularity = p.Granularity
	cfg.Readonly = p.Readonly
	return cfg
}

// ExternalValue returns the value supplied by p. An omitted value yields
// DefaultValue. A non-numeric value yields DefaultValue and an
// ErrInvalidValueType error.
func (p Props) ExternalValue() (float64, error) {
	if p.Value == nil {
		return DefaultValue, nil
	}
	f, ok := numeric(p.Value)
	if !ok || math.IsNaN(f) {
		return DefaultValue, fmt.Errorf("%w: value must be a number, got %T", ErrInvalidValueType, p.Value)
	}
	return f, nil
}
