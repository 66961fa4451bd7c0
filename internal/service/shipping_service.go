package service

import (
	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/shipping"
)

type shippingService struct {
	logger *zap.Logger
}

// NewShippingService creates a new shipping service
func NewShippingService(logger *zap.Logger) *shippingService {
	return &shippingService{logger: logger}
}

// Quote bands the cart's total volume into a flat shipping cost
func (s *shippingService) Quote(lines []domain.CartLine) domain.ShippingQuote {
	quote := shipping.CalculateCost(lines)
	if quote.Unbanded {
		s.logger.Warn("Cart volume falls between shipping bands",
			zap.Int("total_volume_ml", quote.TotalVolumeML),
			zap.Strings("breakdown", quote.Breakdown),
		)
	}
	return quote
}

func quoteLines(items []QuoteItem) []domain.CartLine {
	lines := make([]domain.CartLine, 0, len(items))
	for _, item := range items {
		lines = append(lines, domain.CartLine{Name: item.Name, Quantity: item.Quantity})
	}
	return lines
}

// QuoteRequest quotes a shipping request payload
func (s *shippingService) QuoteRequest(req ShippingQuoteRequest) domain.ShippingQuote {
	return s.Quote(quoteLines(req.Items))
}
