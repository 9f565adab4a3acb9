package controller

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/api"
	"stockroom/internal/dto"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/validation"
)

type SearchUseCase interface {
	SearchProducts(ctx context.Context, req dto.SearchProductsRequest) (*dto.SearchProductsResponse, error)
	GetStock(ctx context.Context, id string) (*dto.ProductDTO, error)
}

type Controller struct {
	useCase SearchUseCase
	logger  *zap.Logger
}

func NewController(useCase SearchUseCase, logger *zap.Logger) *Controller {
	return &Controller{
		useCase: useCase,
		logger:  logger,
	}
}

func (c *Controller) HandleSearchProducts(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.SearchProductsRequest
	if err := validation.DecodeJSONBody(r, &req); err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	resp, err := c.useCase.SearchProducts(r.Context(), req)
	if err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	resp.TraceID = traceID
	api.WriteJSON(w, logger, http.StatusOK, resp)
}

func (c *Controller) HandleGetStock(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	logger := c.logger.With(zap.String("traceId", traceID))

	productID := chi.URLParam(r, "productId")
	if err := uuid.Validate(productID); err != nil {
		api.WriteError(w, logger, traceID, apperrors.NewValidationError("invalid productId", apperrors.ValidationDetail{
			Field:   "productId",
			Message: "must be a valid UUID",
		}))
		return
	}

	product, err := c.useCase.GetStock(r.Context(), productID)
	if err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	api.WriteJSON(w, logger, http.StatusOK, dto.ProductStockResponse{
		TraceID: traceID,
		Product: *product,
	})
}
