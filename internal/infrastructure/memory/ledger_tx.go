package memory

import (
	"context"
	"fmt"
	"time"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
	"stockroom/internal/ledger/service"
)

// unitOfWork stages writes and holds row locks until commit or rollback.
type unitOfWork struct {
	store     *Store
	locked    map[string]bool
	levels    map[string]domain.StockLevel
	purchases []domain.PurchaseRecord
	sales     []domain.SaleRecord
}

// RunInTx gives fn repositories bound to a fresh unit of work. Staged writes
// become visible only when fn returns nil.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, repos service.Repositories) error) error {
	uow := &unitOfWork{
		store:  s,
		locked: make(map[string]bool),
		levels: make(map[string]domain.StockLevel),
	}
	defer uow.release()

	repos := service.Repositories{
		StockLevels: stockLevels{uow},
		Purchases:   purchases{uow},
		Sales:       sales{uow},
	}
	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewTransientError("unit of work expired before commit", err)
	}
	return uow.commit()
}

func (u *unitOfWork) lock(ctx context.Context, productID string) error {
	if u.locked[productID] {
		return nil
	}
	if err := u.store.lockRow(ctx, productID); err != nil {
		return err
	}
	u.locked[productID] = true
	return nil
}

func (u *unitOfWork) release() {
	for productID := range u.locked {
		u.store.unlockRow(productID)
	}
	u.locked = nil
}

func (u *unitOfWork) level(productID string) (domain.StockLevel, bool) {
	if l, ok := u.levels[productID]; ok {
		return l, true
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	l, ok := u.store.levels[productID]
	return l, ok
}

func (u *unitOfWork) commit() error {
	u.store.mu.Lock()
	defer u.store.mu.Unlock()

	for id, l := range u.levels {
		if err := l.Validate(); err != nil {
			return err
		}
		u.store.levels[id] = l
	}
	u.store.purchases = append(u.store.purchases, u.purchases...)
	u.store.sales = append(u.store.sales, u.sales...)
	return nil
}

func (u *unitOfWork) productExists(productID string) bool {
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	_, ok := u.store.products[productID]
	return ok
}

type stockLevels struct{ *unitOfWork }

func (r stockLevels) Find(_ context.Context, productID string) (*domain.StockLevel, error) {
	l, ok := r.level(productID)
	if !ok {
		return nil, nil
	}
	return l.Clone(), nil
}

func (r stockLevels) FindForUpdate(ctx context.Context, productID string) (*domain.StockLevel, error) {
	if err := r.lock(ctx, productID); err != nil {
		return nil, err
	}
	return r.Find(ctx, productID)
}

func (r stockLevels) AddPurchased(ctx context.Context, productID string, quantity int, at time.Time) error {
	if !r.productExists(productID) {
		return fmt.Errorf("stock level: product %s does not exist", productID)
	}
	if err := r.lock(ctx, productID); err != nil {
		return err
	}
	l, ok := r.level(productID)
	if !ok {
		l = *domain.NewStockLevel(productID)
	}
	if err := l.ApplyPurchase(quantity, at); err != nil {
		return err
	}
	r.levels[productID] = l
	return nil
}

func (r stockLevels) AddSold(_ context.Context, productID string, quantity int, at time.Time) error {
	if !r.locked[productID] {
		return fmt.Errorf("stock level %s updated without holding its lock", productID)
	}
	l, ok := r.level(productID)
	if !ok {
		return fmt.Errorf("stock level %s does not exist", productID)
	}
	if err := l.ApplySale(quantity, at); err != nil {
		return err
	}
	r.levels[productID] = l
	return nil
}

type purchases struct{ *unitOfWork }

func (r purchases) Insert(_ context.Context, record domain.PurchaseRecord) error {
	if record.Quantity <= 0 {
		return fmt.Errorf("purchase %s: quantity must be positive", record.ID)
	}
	r.purchases = append(r.purchases, record)
	return nil
}

func (r purchases) SumQuantityByProduct(_ context.Context, productID string) (int, error) {
	total := 0
	for _, p := range r.purchases {
		if p.ProductID == productID {
			total += p.Quantity
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, p := range r.store.purchases {
		if p.ProductID == productID {
			total += p.Quantity
		}
	}
	return total, nil
}

type sales struct{ *unitOfWork }

func (r sales) Insert(_ context.Context, record domain.SaleRecord) error {
	if record.Quantity <= 0 {
		return fmt.Errorf("sale %s: quantity must be positive", record.ID)
	}
	r.sales = append(r.sales, record)
	return nil
}

func (r sales) SumQuantityByProduct(_ context.Context, productID string) (int, error) {
	total := 0
	for _, s := range r.sales {
		if s.ProductID == productID {
			total += s.Quantity
		}
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	for _, s := range r.store.sales {
		if s.ProductID == productID {
			total += s.Quantity
		}
	}
	return total, nil
}

// Purchases returns a copy of the committed purchase rows.
func (s *Store) Purchases() []domain.PurchaseRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.PurchaseRecord(nil), s.purchases...)
}

func (s *Store) Sales() []domain.SaleRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.SaleRecord(nil), s.sales...)
}
