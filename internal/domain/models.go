package domain

import (
	"time"

	"github.com/google/uuid"
)

// AdminKey is a hashed API key that grants access to the admin routes
type AdminKey struct {
	ID         uuid.UUID
	Name       string
	APIKeyHash string
	IsActive   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Address is a postal address attached to a customer, charge or order
type Address struct {
	Line1      string `json:"line1"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// Charge is one payment attempt as reported by the payment processor
type Charge struct {
	ID              string
	Amount          int64
	AmountRefunded  int64
	Status          ChargeStatus
	CustomerID      string // empty when the buyer checked out without an account
	PaymentIntentID string
	BillingEmail    string
	BillingPhone    string
	BillingName     string
	CardFingerprint string
	Created         time.Time
}

// IsGuest reports whether the charge has no linked customer
func (c Charge) IsGuest() bool {
	return c.CustomerID == ""
}

// RegisteredCustomer is an account-backed customer plus metrics derived
// from that customer's own charges
type RegisteredCustomer struct {
	ID                   string
	Email                string
	Name                 string
	Phone                string
	Created              time.Time
	DefaultPaymentMethod string
	Address              *Address

	TotalSpent    int64
	OrderCount    int
	TotalRefunded int64
}

// GuestGroup is an inferred identity clustering charges that have no
// linked customer
type GuestGroup struct {
	ID              string
	Key             string
	Email           string
	Phone           string
	CardFingerprint string
	BillingName     string
	Charges         []Charge
	TotalSpent      int64
	TotalRefunded   int64
	Created         time.Time
}

// CustomerRecord is the unified, display-ready shape for both registered
// customers and guest groups
type CustomerRecord struct {
	ID                   string
	Email                string
	Name                 string
	Phone                string
	Created              time.Time
	TotalSpent           int64
	OrderCount           int
	TotalRefunded        int64
	DefaultPaymentMethod string
	Address              *Address
	IsGuest              bool
}

// CartLine is the part of a cart entry shipping cares about
type CartLine struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// ShippingBand maps an inclusive volume range in mL to a flat cost in cents
type ShippingBand struct {
	MinVolumeML int
	MaxVolumeML int
	Cost        int64
	Description string
}

// ShippingQuote is the outcome of banding a cart's total volume
type ShippingQuote struct {
	Cost          int64
	Description   string
	Breakdown     []string
	TotalVolumeML int
	Unbanded      bool // total fell between two bands
}

// Product is a sellable catalog entry
type Product struct {
	ID          string
	Name        string
	Description string
	Images      []string
	Price       int64
	Currency    string
	Metadata    map[string]string
}

// OrderItem is one purchased line of an order
type OrderItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// Order is a paid checkout recorded for fulfilment
type Order struct {
	ID               string // checkout session ID
	CustomerEmail    string
	CustomerName     string
	CustomerPhone    string
	Items            []OrderItem
	TotalAmount      int64
	Status           OrderStatus
	PaymentIntentID  string
	CollectionMethod CollectionMethod
	ShippingCost     *int64
	ShippingAddress  *Address
	Notes            string
	CreatedAt        time.Time
}

// CheckoutSummary is what the storefront needs from a completed checkout session
type CheckoutSummary struct {
	ID              string
	PaymentStatus   string
	CustomerEmail   string
	CustomerName    string
	CustomerPhone   string
	AmountTotal     int64
	PaymentIntentID string
	ShippingAddress *Address
	Metadata        map[string]string
}

// Refund is a full or partial refund of a payment
type Refund struct {
	ID              string
	Amount          int64
	Currency        string
	Status          string
	Reason          string
	Created         time.Time
	ChargeID        string
	PaymentIntentID string
	CustomerEmail   string
}

// Herb is the full herbal monograph
type Herb struct {
	ID                     string
	CommonName             string
	LatinName              string
	Family                 string
	FolkUses               string
	Dosage                 string
	Safety                 string
	IsPriority             bool
	IsFeatured             bool
	PlantPartsUsed         []string
	MedicinalActions       []string
	Indications            []string
	BestPreparations       []string
	Interactions           []string
	Sources                []string
	Tags                   []string
	Constituents           []Constituent
	SolventRecommendations []SolventRecommendation
}

// HerbSummary is the listing shape of a herb
type HerbSummary struct {
	ID               string
	CommonName       string
	LatinName        string
	Family           string
	FolkUses         string
	IsPriority       bool
	IsFeatured       bool
	PlantPartsUsed   []string
	MedicinalActions []string
	Indications      []string
	BestPreparations []string
	Tags             []string
}

// Constituent is a chemical constituent of a herb with its solubility
type Constituent struct {
	Name         string
	Class        string
	WaterSoluble bool
	EthanolRange string
	Notes        string
}

// SolventRecommendation describes a menstruum for one preparation type
type SolventRecommendation struct {
	PreparationType string
	EthanolPercent  string
	Ratio           string
	Notes           string
}
