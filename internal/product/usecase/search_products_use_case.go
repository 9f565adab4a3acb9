package usecase

import (
	"context"

	"stockroom/internal/domain"
	"stockroom/internal/dto"
)

type Service interface {
	GetProductsWithStock(ctx context.Context, ids []string) (found []domain.ProductStock, notFoundIDs []string, err error)
	GetStock(ctx context.Context, id string) (*domain.ProductStock, error)
}

type SearchUseCase struct {
	service Service
}

func NewSearchUseCase(service Service) *SearchUseCase {
	return &SearchUseCase{service: service}
}

func (uc *SearchUseCase) SearchProducts(ctx context.Context, req dto.SearchProductsRequest) (*dto.SearchProductsResponse, error) {
	found, notFoundIDs, err := uc.service.GetProductsWithStock(ctx, req.ProductIDs)
	if err != nil {
		return nil, err
	}

	products := make([]dto.ProductDTO, 0, len(found))
	for _, p := range found {
		products = append(products, ToProductDTO(p))
	}

	if notFoundIDs == nil {
		notFoundIDs = []string{}
	}

	return &dto.SearchProductsResponse{
		Products: products,
		NotFound: notFoundIDs,
	}, nil
}

func (uc *SearchUseCase) GetStock(ctx context.Context, id string) (*dto.ProductDTO, error) {
	ps, err := uc.service.GetStock(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToProductDTO(*ps)
	return &out, nil
}

func ToProductDTO(p domain.ProductStock) dto.ProductDTO {
	return dto.ProductDTO{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		CostPrice:      p.CostPrice,
		SellingPrice:   p.SellingPrice,
		ReorderLevel:   p.ReorderLevel,
		ExpiryDate:     p.ExpiryDate,
		IsActive:       p.IsActive,
		TotalPurchased: p.TotalPurchased,
		TotalSold:      p.TotalSold,
		CurrentStock:   p.CurrentStock,
		StockStatus:    string(p.Status()),
	}
}
