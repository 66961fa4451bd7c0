package service

// ListCustomersQuery is the admin customer list query string
type ListCustomersQuery struct {
	Search    string `form:"search"`
	Sort      string `form:"sort"`
	Direction string `form:"direction"`
}

// MaxItemQuantity bounds a single cart line
const MaxItemQuantity = 1000

// ShippingQuoteRequest represents the shipping quote payload
type ShippingQuoteRequest struct {
	Items []QuoteItem `json:"items" binding:"required,min=1,dive"`
}

type QuoteItem struct {
	Name     string `json:"name" binding:"required"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=1000"`
}

// CheckoutRequest represents the cart checkout payload
type CheckoutRequest struct {
	Items            []CheckoutItem `json:"items" binding:"required,min=1,dive"`
	CollectionMethod string         `json:"collection_method"`
}

type CheckoutItem struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	Price    int64  `json:"price" binding:"min=0"`
	Quantity int    `json:"quantity" binding:"required,min=1,max=1000"`
}

// UpdateOrderStatusRequest represents the admin order status change
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateRefundRequest represents the admin refund payload
type CreateRefundRequest struct {
	PaymentIntentID string `json:"payment_intent_id" binding:"required"`
	Amount          *int64 `json:"amount,omitempty" binding:"omitempty,min=1"`
}

// HerbSearchQuery is the herb search query string
type HerbSearchQuery struct {
	Query       string `form:"q"`
	Action      string `form:"action"`
	Preparation string `form:"preparation"`
	Indication  string `form:"indication"`
	Constituent string `form:"constituent"`
	Limit       int    `form:"limit"`
	Offset      int    `form:"offset"`
}
