// Package catalog serves read-only product and branch queries.
package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/ordosuite/salesbridge/internal/erp"
	"github.com/ordosuite/salesbridge/internal/models"
)

// Service wraps the catalog lookups.
type Service struct {
	gw     erp.Gateway
	logger *zap.Logger
}

// New creates a catalog service.
func New(gw erp.Gateway, logger *zap.Logger) *Service {
	return &Service{gw: gw, logger: logger}
}

// Products returns the product with the given id, or all products when id
// is nil. An empty result is not an error; the handler decides the shape
// of the "nothing found" reply.
func (s *Service) Products(ctx context.Context, id *int64) ([]models.Product, error) {
	domain := erp.Domain{}
	if id != nil {
		domain = erp.Domain{{"id", "=", *id}}
	}

	var products []models.Product
	if err := s.gw.SearchRead(ctx, erp.ModelProductProduct, domain, models.ProductFields, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Branches returns the branch with the given id, or all branches when id
// is nil.
func (s *Service) Branches(ctx context.Context, id *int64) ([]models.Branch, error) {
	domain := erp.Domain{}
	if id != nil {
		domain = erp.Domain{{"id", "=", *id}}
	}

	var branches []models.Branch
	if err := s.gw.SearchRead(ctx, erp.ModelMultiBranch, domain, []string{"name"}, nil, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}
