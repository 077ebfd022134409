// Package rating provides the value engine behind an interactive star-rating
// control.
//
// The core type is Rating, which turns taps and horizontal drags over a row
// of icons into rounded values, animates a live preview toward the selected
// value, and reports to the host only when the user commits a choice.
//
// # Values
//
// A Rating tracks three values:
//
//   - Committed: the value last acknowledged by the host or set externally
//   - Target: the value selected by the interaction in progress
//   - Preview: the value rendered right now, animated toward the target
//
// Taps and drag releases report to the host through the OnChange callback.
// Drag moves only update the target and preview.
//
// # Granularity
//
// Values are rounded by a Granularity: whole units, a step in (0, 1) such as
// 0.5, or a number of decimal places from 1 to 20. Invalid settings are
// rejected with a whole unit fallback so the control stays usable:
//
//	g, err := rating.ParseGranularity(0.25)  // step(0.25), nil
//	g, err = rating.ParseGranularity(21)     // whole, ErrInvalidGranularity
//
// Readonly ratings never round and ignore all interaction.
//
// # State Machine
//
// A Rating is either Idle or Dragging. A drag captures the committed value
// as its base when it starts, and an external value change abandons it.
//
// # Drivers
//
// The preview is animated by a Driver. Snap jumps straight to the target;
// Tween eases toward it frame by frame and can be redirected mid-flight.
//
// # Bindings
//
// A Binding applies a stream of props documents to a Rating, the way a host
// re-renders the control. Watchers supply the documents:
//
//   - ChannelWatcher: documents pushed by the host or a test
//   - FileWatcher: a JSON or YAML props file, via fsnotify
//
// # Example
//
//	r := rating.New(rating.DefaultConfig()).
//	    Driver(rating.NewTween(200 * time.Millisecond)).
//	    OnChange(func(ctx context.Context, v float64) {
//	        log.Printf("rated %.1f", v)
//	    })
//
//	r.Mount(ctx, 3)
//	r.TapIcon(ctx, 3)     // commits 4
//	r.DragMove(ctx, -40)  // target 3, not yet committed
//	r.DragRelease(ctx)    // commits 3
package rating
