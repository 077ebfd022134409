package rating

import "github.com/zoobzio/capitan"

// Rating lifecycle signals.
var (
	// RatingMounted is emitted when a Rating is seeded with its initial value.
	RatingMounted = capitan.NewSignal(
		"rating.mounted",
		"Rating mounted with initial value",
	)

	// RatingExternalValue is emitted when the host replaces the value.
	RatingExternalValue = capitan.NewSignal(
		"rating.value.external",
		"External value applied",
	)

	// RatingStateChanged is emitted when a Rating moves between idle and dragging.
	RatingStateChanged = capitan.NewSignal(
		"rating.state.changed",
		"Rating interaction state transition",
	)

	// RatingConfigRejected is emitted when a configuration setting is
	// rejected and replaced by its default.
	RatingConfigRejected = capitan.NewSignal(
		"rating.config.rejected",
		"Configuration rejected, fallback applied",
	)
)

// Interaction signals.
var (
	// RatingIconTapped is emitted when an icon is tapped.
	RatingIconTapped = capitan.NewSignal(
		"rating.icon.tapped",
		"Icon tapped",
	)

	// RatingDragStarted is emitted when a drag gesture begins.
	RatingDragStarted = capitan.NewSignal(
		"rating.drag.started",
		"Drag gesture started",
	)

	// RatingDragMoved is emitted when a drag gesture moves the target.
	RatingDragMoved = capitan.NewSignal(
		"rating.drag.moved",
		"Drag gesture moved",
	)

	// RatingDragReleased is emitted when a drag gesture is released.
	RatingDragReleased = capitan.NewSignal(
		"rating.drag.released",
		"Drag gesture released",
	)

	// RatingPreviewRetargeted is emitted when the preview is sent a new target.
	RatingPreviewRetargeted = capitan.NewSignal(
		"rating.preview.retargeted",
		"Preview animation retargeted",
	)

	// RatingValueCommitted is emitted when a value is reported to the host.
	RatingValueCommitted = capitan.NewSignal(
		"rating.value.committed",
		"Value committed to host",
	)
)

// Binding signals.
var (
	// BindingStarted is emitted when a Binding begins watching.
	BindingStarted = capitan.NewSignal(
		"rating.binding.started",
		"Binding watching started",
	)

	// BindingStopped is emitted when a Binding stops watching.
	BindingStopped = capitan.NewSignal(
		"rating.binding.stopped",
		"Binding watching stopped",
	)

	// BindingStateChanged is emitted when a Binding transitions between states.
	BindingStateChanged = capitan.NewSignal(
		"rating.binding.state.changed",
		"Binding state transition",
	)

	// BindingChangeReceived is emitted when a raw props document arrives.
	BindingChangeReceived = capitan.NewSignal(
		"rating.binding.change.received",
		"Raw props received from watcher",
	)

	// BindingDecodeFailed is emitted when a props document cannot be decoded.
	BindingDecodeFailed = capitan.NewSignal(
		"rating.binding.decode.failed",
		"Props decode failed",
	)
)
