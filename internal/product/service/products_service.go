package service

import (
	"context"

	"stockroom/internal/domain"
)

type Repository interface {
	FindStock(ctx context.Context, id string) (*domain.ProductStock, error)
	FindStockByIDs(ctx context.Context, ids []string) ([]domain.ProductStock, error)
}

type ProductService struct {
	repo Repository
}

func NewService(repo Repository) *ProductService {
	return &ProductService{repo: repo}
}

// GetProductsWithStock splits ids into the products found and the ids that
// matched nothing. Duplicate ids are looked up once.
func (s *ProductService) GetProductsWithStock(ctx context.Context, ids []string) ([]domain.ProductStock, []string, error) {
	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := s.repo.FindStockByIDs(ctx, unique)
	if err != nil {
		return nil, nil, err
	}

	foundSet := make(map[string]struct{}, len(found))
	for _, p := range found {
		foundSet[p.ID] = struct{}{}
	}

	var notFoundIDs []string
	for _, id := range unique {
		if _, ok := foundSet[id]; !ok {
			notFoundIDs = append(notFoundIDs, id)
		}
	}

	return found, notFoundIDs, nil
}

func (s *ProductService) GetStock(ctx context.Context, id string) (*domain.ProductStock, error) {
	return s.repo.FindStock(ctx, id)
}
