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
	"stockroom/internal/ledger/service"
	"stockroom/internal/ledger/usecase"
	"stockroom/internal/validation"
)

type TransactionRecorder interface {
	RecordPurchase(ctx context.Context, in dto.PurchaseInput) (*usecase.PurchaseOutcome, error)
	RecordSale(ctx context.Context, in dto.SaleInput) (*service.SaleResult, error)
	Reconcile(ctx context.Context, productID string) (*service.Reconciliation, error)
}

type LedgerController struct {
	recorder TransactionRecorder
	logger   *zap.Logger
}

func NewLedgerController(recorder TransactionRecorder, logger *zap.Logger) *LedgerController {
	return &LedgerController{
		recorder: recorder,
		logger:   logger,
	}
}

func (c *LedgerController) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreatePurchaseRequest
	if err := validation.DecodeJSONBody(r, &req); err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	out, err := c.recorder.RecordPurchase(r.Context(), dto.PurchaseInput{
		ProductID: req.ProductID,
		ShelfID:   req.ShelfID,
		Quantity:  req.Quantity,
		UnitCost:  *req.UnitCost,
		Notes:     req.Notes,
	})
	if err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	p := out.Purchase
	api.WriteJSON(w, logger, http.StatusCreated, dto.PurchaseResponse{
		TraceID: traceID,
		Purchase: dto.PurchaseDTO{
			ID:           p.ID,
			ProductID:    p.ProductID,
			ShelfID:      p.ShelfID,
			LocationCode: out.Location.Code(),
			Quantity:     p.Quantity,
			UnitCost:     p.UnitCost,
			TotalCost:    p.TotalCost,
			RecordedBy:   p.RecordedBy,
			Notes:        p.Notes,
			CreatedAt:    p.CreatedAt,
		},
		NewStockLevel:      out.NewStock,
		PreviousStockLevel: out.PreviousStock,
	})
}

func (c *LedgerController) CreateSale(w http.ResponseWriter, r *http.Request) {
	traceID := uuid.NewString()
	logger := c.logger.With(zap.String("traceId", traceID))

	var req dto.CreateSaleRequest
	if err := validation.DecodeJSONBody(r, &req); err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	res, err := c.recorder.RecordSale(r.Context(), dto.SaleInput{
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: *req.UnitPrice,
		Notes:     req.Notes,
	})
	if err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	s := res.Sale
	api.WriteJSON(w, logger, http.StatusCreated, dto.SaleResponse{
		TraceID: traceID,
		Sale: dto.SaleDTO{
			ID:          s.ID,
			ProductID:   s.ProductID,
			Quantity:    s.Quantity,
			UnitPrice:   s.UnitPrice,
			TotalAmount: s.TotalAmount,
			CostPrice:   s.CostPrice,
			RecordedBy:  s.RecordedBy,
			Notes:       s.Notes,
			CreatedAt:   s.CreatedAt,
		},
		NewStockLevel:      res.NewStock,
		PreviousStockLevel: res.PreviousStock,
	})
}

func (c *LedgerController) Reconcile(w http.ResponseWriter, r *http.Request) {
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

	rec, err := c.recorder.Reconcile(r.Context(), productID)
	if err != nil {
		api.WriteError(w, logger, traceID, err)
		return
	}

	api.WriteJSON(w, logger, http.StatusOK, dto.ReconciliationResponse{
		TraceID:           traceID,
		ProductID:         rec.ProductID,
		TotalPurchased:    rec.TotalPurchased,
		TotalSold:         rec.TotalSold,
		CurrentStock:      rec.CurrentStock,
		PurchasedInLedger: rec.PurchasedInLedger,
		SoldInLedger:      rec.SoldInLedger,
		Balanced:          rec.Balanced(),
	})
}
