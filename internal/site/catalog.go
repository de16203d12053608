package site

import (
	"context"

	"github.com/voltrak-labs/showroom/internal/backend"
	"github.com/voltrak-labs/showroom/internal/tco"
	"github.com/voltrak-labs/showroom/pkg/api"
	"github.com/voltrak-labs/showroom/pkg/models"
)

// ProductPage is everything the product detail page shows.
type ProductPage struct {
	Product models.Product   `json:"product"`
	Related []models.Product `json:"related"`
	TCO     tco.Result       `json:"tco"`
}

// Products lists the catalog.
func (s *Site) Products(ctx context.Context) ([]models.Product, error) {
	var out []models.Product
	if _, err := s.client.Get(ctx, api.EndpointProducts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ProductDetail loads product id, up to RelatedCount other products picked
// at random, and the savings estimate for the given inputs.
func (s *Site) ProductDetail(ctx context.Context, id int64, in tco.Inputs) (*ProductPage, error) {
	page := &ProductPage{}
	if _, err := s.client.Get(ctx, backend.ItemPath(api.EndpointProducts, id), &page.Product); err != nil {
		return nil, err
	}

	all, err := s.Products(ctx)
	if err != nil {
		return nil, err
	}
	page.Related = pickRelated(s, all, func(p models.Product) bool { return sameID(p.ID, id) }, RelatedCount)
	page.TCO = tco.Calculate(in)
	return page, nil
}
