package rating

import "github.com/zoobzio/capitan"

// Field keys for Rating and Binding events.
var (
	// KeyValue is a committed, external or initial value.
	KeyValue = capitan.NewFloat64Key("value")

	// KeyTarget is the target sent to the preview driver.
	KeyTarget = capitan.NewFloat64Key("target")

	// KeyDisplacement is the horizontal drag displacement in pixels.
	KeyDisplacement = capitan.NewFloat64Key("displacement")

	// KeyIndex is the zero-based index of a tapped icon.
	KeyIndex = capitan.NewIntKey("index")

	// KeyReadonly reports whether the Rating is readonly.
	KeyReadonly = capitan.NewBoolKey("readonly")

	// KeyGranularity is the effective granularity.
	KeyGranularity = capitan.NewStringKey("granularity")

	// KeyState is the current state.
	KeyState = capitan.NewStringKey("state")

	// KeyOldState is the previous state before a transition.
	KeyOldState = capitan.NewStringKey("old_state")

	// KeyNewState is the new state after a transition.
	KeyNewState = capitan.NewStringKey("new_state")

	// KeyError is the error message when an operation fails.
	KeyError = capitan.NewStringKey("error")

	// KeyDebounce is the configured debounce duration.
	KeyDebounce = capitan.NewDurationKey("debounce")
)
