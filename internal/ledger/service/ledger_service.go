package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"stockroom/internal/domain"
)

// LedgerService is the stock ledger engine. Each operation reads, checks and
// writes one product's stock level and appends its record in a single unit
// of work, so stock and history move together or not at all.
type LedgerService struct {
	tx        TxRunner
	logger    *zap.Logger
	txTimeout time.Duration
	now       func() time.Time
	newID     func() string
}

func NewLedgerService(tx TxRunner, logger *zap.Logger, txTimeout time.Duration) *LedgerService {
	return &LedgerService{
		tx:        tx,
		logger:    logger,
		txTimeout: txTimeout,
		now:       func() time.Time { return time.Now().UTC() },
		newID:     func() string { return uuid.NewString() },
	}
}

func (s *LedgerService) RecordPurchase(ctx context.Context, cmd PurchaseCommand) (*PurchaseResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var result *PurchaseResult
	err := s.tx.RunInTx(txCtx, func(ctx context.Context, repos Repositories) error {
		at := s.now()

		if err := repos.StockLevels.AddPurchased(ctx, cmd.ProductID, cmd.Quantity, at); err != nil {
			return err
		}

		level, err := repos.StockLevels.FindForUpdate(ctx, cmd.ProductID)
		if err != nil {
			return err
		}
		if level == nil {
			return fmt.Errorf("stock level for product %s missing after purchase", cmd.ProductID)
		}

		record := domain.PurchaseRecord{
			ID:         s.newID(),
			ProductID:  cmd.ProductID,
			ShelfID:    cmd.ShelfID,
			Quantity:   cmd.Quantity,
			UnitCost:   cmd.UnitCost,
			TotalCost:  domain.LineTotal(cmd.Quantity, cmd.UnitCost),
			RecordedBy: cmd.RecordedBy,
			Notes:      cmd.Notes,
			CreatedAt:  at,
		}
		if err := repos.Purchases.Insert(ctx, record); err != nil {
			return err
		}

		result = &PurchaseResult{
			Purchase:      record,
			PreviousStock: level.CurrentStock - cmd.Quantity,
			NewStock:      level.CurrentStock,
			Level:         *level,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("purchase recorded",
		zap.String("productId", cmd.ProductID),
		zap.String("shelfId", cmd.ShelfID),
		zap.Int("quantity", cmd.Quantity),
		zap.Int("newStock", result.NewStock),
	)
	return result, nil
}

func (s *LedgerService) RecordSale(ctx context.Context, cmd SaleCommand) (*SaleResult, error) {
	txCtx, cancel := context.WithTimeout(ctx, s.txTimeout)
	defer cancel()

	var result *SaleResult
	err := s.tx.RunInTx(txCtx, func(ctx context.Context, repos Repositories) error {
		at := s.now()

		level, err := repos.StockLevels.FindForUpdate(ctx, cmd.ProductID)
		if err != nil {
			return err
		}
		if level == nil {
			level = domain.NewStockLevel(cmd.ProductID)
		}

		previous := level.CurrentStock
		if err := level.ApplySale(cmd.Quantity, at); err != nil {
			return err
		}

		if err := repos.StockLevels.AddSold(ctx, cmd.ProductID, cmd.Quantity, at); err != nil {
			return err
		}

		record := domain.SaleRecord{
			ID:          s.newID(),
			ProductID:   cmd.ProductID,
			Quantity:    cmd.Quantity,
			UnitPrice:   cmd.UnitPrice,
			TotalAmount: domain.LineTotal(cmd.Quantity, cmd.UnitPrice),
			CostPrice:   cmd.CostPrice,
			RecordedBy:  cmd.RecordedBy,
			Notes:       cmd.Notes,
			CreatedAt:   at,
		}
		if err := repos.Sales.Insert(ctx, record); err != nil {
			return err
		}

		result = &SaleResult{
			Sale:          record,
			PreviousStock: previous,
			NewStock:      level.CurrentStock,
			Level:         *level,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("sale recorded",
		zap.String("productId", cmd.ProductID),
		zap.Int("quantity", cmd.Quantity),
		zap.Int("newStock", result.NewStock),
	)
	return result, nil
}

// CurrentStock returns zero for a product that was never purchased.
func (s *LedgerService) CurrentStock(ctx context.Context, productID string) (int, error) {
	var current int
	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		level, err := repos.StockLevels.Find(ctx, productID)
		if err != nil {
			return err
		}
		if level != nil {
			current = level.CurrentStock
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return current, nil
}

// Reconcile locks the stock level row and reads both ledger sums while
// holding it, so no writer of the product commits between the reads.
func (s *LedgerService) Reconcile(ctx context.Context, productID string) (*Reconciliation, error) {
	rec := &Reconciliation{ProductID: productID}
	err := s.tx.RunInTx(ctx, func(ctx context.Context, repos Repositories) error {
		level, err := repos.StockLevels.FindForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if level != nil {
			rec.TotalPurchased = level.TotalPurchased
			rec.TotalSold = level.TotalSold
			rec.CurrentStock = level.CurrentStock
		}

		if rec.PurchasedInLedger, err = repos.Purchases.SumQuantityByProduct(ctx, productID); err != nil {
			return err
		}
		if rec.SoldInLedger, err = repos.Sales.SumQuantityByProduct(ctx, productID); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !rec.Balanced() {
		s.logger.Error("stock ledger out of balance",
			zap.String("productId", productID),
			zap.Int("totalPurchased", rec.TotalPurchased),
			zap.Int("purchasedInLedger", rec.PurchasedInLedger),
			zap.Int("totalSold", rec.TotalSold),
			zap.Int("soldInLedger", rec.SoldInLedger),
			zap.Int("currentStock", rec.CurrentStock),
		)
	}
	return rec, nil
}
