package services

import "fulfillment/internal/core/domain/model/order"

// IsPickup reports whether the order has no delivery leg.
//
// Classification of raw upstream signals (explicit flag, legacy flag,
// remarks marker) happens once at order ingestion; by the time settlement
// logic runs, the normalized flag on the aggregate is the single source of
// truth. A nil order yields false rather than panicking, matching the
// tolerant behavior of the legacy detector.
func IsPickup(o *order.Order) bool {
	if o == nil {
		return false
	}
	return o.IsPickup()
}
