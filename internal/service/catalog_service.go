package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/domain"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/repository"
	"github.com/Rynhardt5/Ethanol-Dilution-Calculator/internal/shipping"
)

// ProductListing is a catalog product with its parsed volume
type ProductListing struct {
	domain.Product
	VolumeML int
}

// HerbPage is one page of herb search results
type HerbPage struct {
	Herbs   []*domain.HerbSummary
	Total   int
	Limit   int
	Offset  int
	HasMore bool
}

type catalogService struct {
	gateway PaymentsGateway
	herbs   repository.HerbRepository
	logger  *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(gateway PaymentsGateway, herbs repository.HerbRepository, logger *zap.Logger) *catalogService {
	return &catalogService{
		gateway: gateway,
		herbs:   herbs,
		logger:  logger,
	}
}

// ListProducts returns active products annotated with their volume in mL
func (s *catalogService) ListProducts(ctx context.Context) ([]ProductListing, error) {
	products, err := s.gateway.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	listings := make([]ProductListing, 0, len(products))
	for _, p := range products {
		listings = append(listings, ProductListing{
			Product:  p,
			VolumeML: shipping.ExtractVolumeML(p.Name),
		})
	}
	return listings, nil
}

func (s *catalogService) SearchHerbs(ctx context.Context, q HerbSearchQuery) (HerbPage, error) {
	limit, offset := repository.NormalizeHerbPage(q.Limit, q.Offset)

	herbs, total, err := s.herbs.Search(ctx, repository.HerbFilter{
		Query:       q.Query,
		Action:      q.Action,
		Preparation: q.Preparation,
		Indication:  q.Indication,
		Constituent: q.Constituent,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return HerbPage{}, err
	}

	return HerbPage{
		Herbs:   herbs,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
		HasMore: offset+limit < total,
	}, nil
}

func (s *catalogService) GetHerb(ctx context.Context, id string) (*domain.Herb, error) {
	return s.herbs.GetByID(ctx, id)
}

func (s *catalogService) ListHerbActions(ctx context.Context) ([]string, error) {
	return s.herbs.ListActions(ctx)
}

func (s *catalogService) ListHerbPreparations(ctx context.Context) ([]string, error) {
	return s.herbs.ListPreparations(ctx)
}
