package handlers

import (
	"time"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/service"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/shipping"
)

// CustomerResponse is one row of the admin customer list. Created is unix seconds.
type CustomerResponse struct {
	ID                   string          `json:"id"`
	Email                string          `json:"email"`
	Name                 string          `json:"name"`
	Phone                string          `json:"phone,omitempty"`
	Created              int64           `json:"created"`
	TotalSpent           int64           `json:"total_spent"`
	OrderCount           int             `json:"order_count"`
	TotalRefunded        int64           `json:"total_refunded"`
	DefaultPaymentMethod string          `json:"default_payment_method,omitempty"`
	Address              *domain.Address `json:"address,omitempty"`
	IsGuest              bool            `json:"is_guest"`
}

type ProductResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Images      []string          `json:"images"`
	Price       int64             `json:"price"`
	Currency    string            `json:"currency"`
	Metadata    map[string]string `json:"metadata"`
	VolumeML    int               `json:"volume_ml"`
}

type ShippingQuoteResponse struct {
	Cost          int64    `json:"cost"`
	CostDisplay   string   `json:"cost_display"`
	Description   string   `json:"description"`
	Breakdown     []string `json:"breakdown"`
	TotalVolumeML int      `json:"total_volume_ml"`
}

// OrderResponse represents the order response
type OrderResponse struct {
	ID               string             `json:"id"`
	CustomerEmail    string             `json:"customer_email"`
	CustomerName     string             `json:"customer_name"`
	CustomerPhone    string             `json:"customer_phone,omitempty"`
	Items            []domain.OrderItem `json:"items"`
	TotalAmount      int64              `json:"total_amount"`
	Status           domain.OrderStatus `json:"status"`
	PaymentIntentID  string             `json:"payment_intent_id"`
	CollectionMethod string             `json:"collection_method"`
	ShippingCost     *int64             `json:"shipping_cost,omitempty"`
	ShippingAddress  *domain.Address    `json:"shipping_address,omitempty"`
	Notes            string             `json:"notes,omitempty"`
	CreatedAt        string             `json:"created_at"`
}

type RefundResponse struct {
	ID              string `json:"id"`
	Amount          int64  `json:"amount"`
	Currency        string `json:"currency"`
	Status          string `json:"status"`
	Reason          string `json:"reason,omitempty"`
	Created         int64  `json:"created"`
	ChargeID        string `json:"charge,omitempty"`
	PaymentIntentID string `json:"payment_intent"`
	CustomerEmail   string `json:"customer_email,omitempty"`
}

type HerbSummaryResponse struct {
	ID               string   `json:"id"`
	CommonName       string   `json:"common_name"`
	LatinName        string   `json:"latin_name"`
	Family           string   `json:"family,omitempty"`
	FolkUses         string   `json:"folk_uses,omitempty"`
	IsPriority       bool     `json:"is_priority"`
	IsFeatured       bool     `json:"is_featured"`
	PlantPartsUsed   []string `json:"plant_parts_used"`
	MedicinalActions []string `json:"medicinal_actions"`
	Indications      []string `json:"indications"`
	BestPreparations []string `json:"best_preparations"`
	Tags             []string `json:"tags"`
}

type ConstituentResponse struct {
	Name         string `json:"name"`
	Class        string `json:"class,omitempty"`
	WaterSoluble bool   `json:"water_soluble"`
	EthanolRange string `json:"ethanol_range,omitempty"`
	Notes        string `json:"notes,omitempty"`
}

type SolventRecommendationResponse struct {
	PreparationType string `json:"preparation_type"`
	EthanolPercent  string `json:"ethanol_percent,omitempty"`
	Ratio           string `json:"ratio,omitempty"`
	Notes           string `json:"notes,omitempty"`
}

type HerbResponse struct {
	HerbSummaryResponse
	Dosage                 string                          `json:"dosage,omitempty"`
	Safety                 string                          `json:"safety,omitempty"`
	Interactions           []string                        `json:"interactions"`
	Sources                []string                        `json:"sources"`
	Constituents           []ConstituentResponse           `json:"constituents"`
	SolventRecommendations []SolventRecommendationResponse `json:"solvent_recommendations"`
}

type PaginationResponse struct {
	Total   int  `json:"total"`
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	HasMore bool `json:"has_more"`
}

type HerbSearchResponse struct {
	Herbs      []HerbSummaryResponse `json:"herbs"`
	Pagination PaginationResponse    `json:"pagination"`
}

func toCustomerResponse(r domain.CustomerRecord) CustomerResponse {
	return CustomerResponse{
		ID:                   r.ID,
		Email:                r.Email,
		Name:                 r.Name,
		Phone:                r.Phone,
		Created:              r.Created.Unix(),
		TotalSpent:           r.TotalSpent,
		OrderCount:           r.OrderCount,
		TotalRefunded:        r.TotalRefunded,
		DefaultPaymentMethod: r.DefaultPaymentMethod,
		Address:              r.Address,
		IsGuest:              r.IsGuest,
	}
}

func toProductResponse(p service.ProductListing) ProductResponse {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Images:      images,
		Price:       p.Price,
		Currency:    p.Currency,
		Metadata:    p.Metadata,
		VolumeML:    p.VolumeML,
	}
}

func toShippingQuoteResponse(q domain.ShippingQuote) ShippingQuoteResponse {
	return ShippingQuoteResponse{
		Cost:          q.Cost,
		CostDisplay:   shipping.FormatCost(q.Cost),
		Description:   q.Description,
		Breakdown:     q.Breakdown,
		TotalVolumeML: q.TotalVolumeML,
	}
}

func toOrderResponse(o *domain.Order) OrderResponse {
	items := o.Items
	if items == nil {
		items = []domain.OrderItem{}
	}
	return OrderResponse{
		ID:               o.ID,
		CustomerEmail:    o.CustomerEmail,
		CustomerName:     o.CustomerName,
		CustomerPhone:    o.CustomerPhone,
		Items:            items,
		TotalAmount:      o.TotalAmount,
		Status:           o.Status,
		PaymentIntentID:  o.PaymentIntentID,
		CollectionMethod: string(o.CollectionMethod),
		ShippingCost:     o.ShippingCost,
		ShippingAddress:  o.ShippingAddress,
		Notes:            o.Notes,
		CreatedAt:        o.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func toRefundResponse(r domain.Refund) RefundResponse {
	return RefundResponse{
		ID:              r.ID,
		Amount:          r.Amount,
		Currency:        r.Currency,
		Status:          r.Status,
		Reason:          r.Reason,
		Created:         r.Created.Unix(),
		ChargeID:        r.ChargeID,
		PaymentIntentID: r.PaymentIntentID,
		CustomerEmail:   r.CustomerEmail,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func toHerbSummaryResponse(h *domain.HerbSummary) HerbSummaryResponse {
	return HerbSummaryResponse{
		ID:               h.ID,
		CommonName:       h.CommonName,
		LatinName:        h.LatinName,
		Family:           h.Family,
		FolkUses:         h.FolkUses,
		IsPriority:       h.IsPriority,
		IsFeatured:       h.IsFeatured,
		PlantPartsUsed:   nonNil(h.PlantPartsUsed),
		MedicinalActions: nonNil(h.MedicinalActions),
		Indications:      nonNil(h.Indications),
		BestPreparations: nonNil(h.BestPreparations),
		Tags:             nonNil(h.Tags),
	}
}

func toHerbResponse(h *domain.Herb) HerbResponse {
	resp := HerbResponse{
		HerbSummaryResponse: toHerbSummaryResponse(&domain.HerbSummary{
			ID:               h.ID,
			CommonName:       h.CommonName,
			LatinName:        h.LatinName,
			Family:           h.Family,
			FolkUses:         h.FolkUses,
			IsPriority:       h.IsPriority,
			IsFeatured:       h.IsFeatured,
			PlantPartsUsed:   h.PlantPartsUsed,
			MedicinalActions: h.MedicinalActions,
			Indications:      h.Indications,
			BestPreparations: h.BestPreparations,
			Tags:             h.Tags,
		}),
		Dosage:                 h.Dosage,
		Safety:                 h.Safety,
		Interactions:           nonNil(h.Interactions),
		Sources:                nonNil(h.Sources),
		Constituents:           make([]ConstituentResponse, 0, len(h.Constituents)),
		SolventRecommendations: make([]SolventRecommendationResponse, 0, len(h.SolventRecommendations)),
	}
	for _, c := range h.Constituents {
		resp.Constituents = append(resp.Constituents, ConstituentResponse(c))
	}
	for _, s := range h.SolventRecommendations {
		resp.SolventRecommendations = append(resp.SolventRecommendations, SolventRecommendationResponse(s))
	}
	return resp
}
