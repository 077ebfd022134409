package rating

import "math"

// ValueDelta converts a horizontal drag displacement in pixels into a value
// displacement, given the pixels that represent one unit of value.
func ValueDelta(displacement, iconSpan float64) float64 {
	return displacement / iconSpan
}

// DragTarget returns the cleaned value a drag of displacement pixels from
// base would select under cfg, clamped to [0, cfg.MaxValue].
func DragTarget(base, displacement float64, cfg Config) float64 {
	return clamp(Clean(base+ValueDelta(displacement, cfg.IconSpan), cfg), cfg.MaxValue)
}

func clamp(v, maxValue float64) float64 {
	return math.Max(0, math.Min(v, maxValue))
}
