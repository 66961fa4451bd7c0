package domain

// ChargeStatus mirrors the payment processor's charge status
type ChargeStatus string

const (
	ChargeStatusSucceeded ChargeStatus = "succeeded"
	ChargeStatusPending   ChargeStatus = "pending"
	ChargeStatusFailed    ChargeStatus = "failed"
)

// OrderStatus represents the fulfilment status of a storefront order
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCollected OrderStatus = "collected"
	OrderStatusShipped   OrderStatus = "shipped"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusCollected,
		OrderStatusShipped:
		return true
	default:
		return false
	}
}

// IsCompleted reports whether the order has left the shop
func (s OrderStatus) IsCompleted() bool {
	return s == OrderStatusCollected || s == OrderStatusShipped
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return newStatus == OrderStatusCollected ||
			newStatus == OrderStatusShipped
	case OrderStatusCollected, OrderStatusShipped:
		return false // Terminal states
	default:
		return false
	}
}

// CollectionMethod is how the buyer receives the order
type CollectionMethod string

const (
	CollectionMethodPickup   CollectionMethod = "pickup"
	CollectionMethodShipping CollectionMethod = "shipping"
)

// IsValid checks if the collection method is valid
func (m CollectionMethod) IsValid() bool {
	return m == CollectionMethodPickup || m == CollectionMethodShipping
}
