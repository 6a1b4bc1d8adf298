package ordering

// SelectActive picks the order a buyer's dashboard should track.
// Delivered orders still inside their verification window take priority,
// most recently delivered first. Otherwise the most recently placed
// in-flight order wins. Returns nil when nothing needs attention.
func SelectActive(orders []*Order) *Order {
	var verifying *Order
	for _, o := range orders {
		if !o.InVerificationWindow() || o.DeliveredAt == nil {
			continue
		}
		if verifying == nil || o.DeliveredAt.After(*verifying.DeliveredAt) {
			verifying = o
		}
	}
	if verifying != nil {
		return verifying
	}

	var active *Order
	for _, o := range orders {
		if o.Status == OrderStatusDelivered {
			continue
		}
		if active == nil || o.CreatedAt.After(active.CreatedAt) {
			active = o
		}
	}
	return active
}
