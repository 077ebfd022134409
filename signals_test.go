package rating

import (
	"testing"

	"github.com/zoobzio/capitan"
)

func TestSignalNames(t *testing.T) {
	tests := []struct {
		signal capitan.Signal
		want   string
	}{
		{RatingMounted, "rating.mounted"},
		{RatingExternalValue, "rating.value.external"},
		{RatingStateChanged, "rating.state.changed"},
		{RatingConfigRejected, "rating.config.rejected"},
		{RatingIconTapped, "rating.icon.tapped"},
		{RatingDragStarted, "rating.drag.started"},
		{RatingDragMoved, "rating.drag.moved"},
		{RatingDragReleased, "rating.drag.released"},
		{RatingPreviewRetargeted, "rating.preview.retargeted"},
		{RatingValueCommitted, "rating.value.committed"},
		{BindingStarted, "rating.binding.started"},
		{BindingStopped, "rating.binding.stopped"},
		{BindingStateChanged, "rating.binding.state.changed"},
		{BindingChangeReceived, "rating.binding.change.received"},
		{BindingDecodeFailed, "rating.binding.decode.failed"},
	}

	for _, tt := range tests {
		if tt.signal.Name() != tt.want {
			t.Errorf("expected name %q, got %q", tt.want, tt.signal.Name())
		}
	}
}
