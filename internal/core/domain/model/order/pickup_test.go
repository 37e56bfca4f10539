package order_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool {
	return &b
}

func TestClassifyPickup(t *testing.T) {
	tests := []struct {
		name    string
		signals order.PickupSignals
		want    bool
	}{
		{
			name:    "explicit flag true",
			signals: order.PickupSignals{Explicit: boolPtr(true)},
			want:    true,
		},
		{
			name:    "explicit flag false wins over legacy true",
			signals: order.PickupSignals{Explicit: boolPtr(false), Legacy: boolPtr(true)},
			want:    false,
		},
		{
			name:    "explicit flag false wins over remarks marker",
			signals: order.PickupSignals{Explicit: boolPtr(false), Remarks: "[PICKUP] at branch"},
			want:    false,
		},
		{
			name:    "legacy flag true",
			signals: order.PickupSignals{Legacy: boolPtr(true)},
			want:    true,
		},
		{
			name:    "legacy flag false wins over remarks marker",
			signals: order.PickupSignals{Legacy: boolPtr(false), Remarks: "[pickup]"},
			want:    false,
		},
		{
			name:    "remarks marker uppercase",
			signals: order.PickupSignals{Remarks: "customer will collect [PICKUP]"},
			want:    true,
		},
		{
			name:    "remarks marker mixed case",
			signals: order.PickupSignals{Remarks: "note: [PiCkUp]"},
			want:    true,
		},
		{
			name:    "remarks without marker",
			signals: order.PickupSignals{Remarks: "leave at the door"},
			want:    false,
		},
		{
			name:    "no signals at all",
			signals: order.PickupSignals{},
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, order.ClassifyPickup(tt.signals))
		})
	}
}
