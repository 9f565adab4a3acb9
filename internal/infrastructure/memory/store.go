package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"stockroom/internal/domain"
	apperrors "stockroom/internal/errors"
)

// Store keeps the catalog, the location tree and the stock ledger in memory.
// It backs the development storage driver and the ledger tests.
type Store struct {
	mu         sync.RWMutex
	users      map[string]domain.User
	categories map[string]domain.Category
	products   map[string]domain.Product
	zones      map[string]domain.Zone
	chambers   map[string]domain.Chamber
	shelves    map[string]domain.Shelf
	levels     map[string]domain.StockLevel
	purchases  []domain.PurchaseRecord
	sales      []domain.SaleRecord

	lockMu   sync.Mutex
	rowLocks map[string]chan struct{}
}

func New() *Store {
	return &Store{
		users:      make(map[string]domain.User),
		categories: make(map[string]domain.Category),
		products:   make(map[string]domain.Product),
		zones:      make(map[string]domain.Zone),
		chambers:   make(map[string]domain.Chamber),
		shelves:    make(map[string]domain.Shelf),
		levels:     make(map[string]domain.StockLevel),
		rowLocks:   make(map[string]chan struct{}),
	}
}

func (s *Store) SaveUser(_ context.Context, u domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return nil
}

func (s *Store) SaveCategory(_ context.Context, c domain.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = c
	return nil
}

func (s *Store) SaveZone(_ context.Context, z domain.Zone) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.zones[z.ID] = z
	return nil
}

func (s *Store) SaveChamber(_ context.Context, c domain.Chamber) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.zones[c.ZoneID]; !ok {
		return fmt.Errorf("chamber %s: zone %s does not exist", c.ID, c.ZoneID)
	}
	s.chambers[c.ID] = c
	return nil
}

func (s *Store) SaveShelf(_ context.Context, sh domain.Shelf) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.chambers[sh.ChamberID]; !ok {
		return fmt.Errorf("shelf %s: chamber %s does not exist", sh.ID, sh.ChamberID)
	}
	s.shelves[sh.ID] = sh
	return nil
}

func (s *Store) SaveProduct(_ context.Context, p domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.CategoryID != nil {
		if _, ok := s.categories[*p.CategoryID]; !ok {
			return fmt.Errorf("product %s: category %s does not exist", p.ID, *p.CategoryID)
		}
	}
	s.products[p.ID] = p
	return nil
}

func (s *Store) FindUser(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user " + id + " not found")
	}
	return &u, nil
}

func (s *Store) FindByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NewProductNotFoundError(id)
	}
	return &p, nil
}

func (s *Store) FindStock(_ context.Context, id string) (*domain.ProductStock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.products[id]
	if !ok {
		return nil, apperrors.NewProductNotFoundError(id)
	}
	ps := s.productStockLocked(p)
	return &ps, nil
}

// FindStockByIDs skips unknown ids; results follow the order of ids.
func (s *Store) FindStockByIDs(_ context.Context, ids []string) ([]domain.ProductStock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.ProductStock
	for _, id := range ids {
		if p, ok := s.products[id]; ok {
			out = append(out, s.productStockLocked(p))
		}
	}
	return out, nil
}

func (s *Store) productStockLocked(p domain.Product) domain.ProductStock {
	ps := domain.ProductStock{Product: p}
	if level, ok := s.levels[p.ID]; ok {
		ps.TotalPurchased = level.TotalPurchased
		ps.TotalSold = level.TotalSold
		ps.CurrentStock = level.CurrentStock
	}
	return ps
}

// ResolveShelf treats an inactive shelf, chamber or zone as missing.
func (s *Store) ResolveShelf(_ context.Context, shelfID string) (*domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	loc, ok := s.resolveLocked(shelfID)
	if !ok {
		return nil, apperrors.NewShelfNotFoundError(shelfID)
	}
	return &loc, nil
}

func (s *Store) ListLocations(_ context.Context) ([]domain.Location, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type sortable struct {
		loc       domain.Location
		sortOrder int
	}
	var all []sortable
	for id := range s.shelves {
		if loc, ok := s.resolveLocked(id); ok {
			all = append(all, sortable{loc: loc, sortOrder: s.zones[s.chambers[s.shelves[id].ChamberID].ZoneID].SortOrder})
		}
	}
	sort.Slice(all, func(i, j int) bool {
		a, b := all[i], all[j]
		if a.sortOrder != b.sortOrder {
			return a.sortOrder < b.sortOrder
		}
		if a.loc.ZoneCode != b.loc.ZoneCode {
			return a.loc.ZoneCode < b.loc.ZoneCode
		}
		if a.loc.ChamberNumber != b.loc.ChamberNumber {
			return a.loc.ChamberNumber < b.loc.ChamberNumber
		}
		return a.loc.ShelfNumber < b.loc.ShelfNumber
	})

	out := make([]domain.Location, len(all))
	for i, a := range all {
		out[i] = a.loc
	}
	return out, nil
}

func (s *Store) resolveLocked(shelfID string) (domain.Location, bool) {
	shelf, ok := s.shelves[shelfID]
	if !ok || !shelf.IsActive {
		return domain.Location{}, false
	}
	chamber, ok := s.chambers[shelf.ChamberID]
	if !ok || !chamber.IsActive {
		return domain.Location{}, false
	}
	zone, ok := s.zones[chamber.ZoneID]
	if !ok || !zone.IsActive {
		return domain.Location{}, false
	}
	return domain.Location{
		ShelfID:       shelf.ID,
		ZoneCode:      zone.Code,
		ZoneName:      zone.Name,
		ChamberNumber: chamber.Number,
		ChamberName:   chamber.Name,
		ShelfNumber:   shelf.Number,
	}, true
}

// lockRow blocks until the stock level row of productID is free or ctx ends.
func (s *Store) lockRow(ctx context.Context, productID string) error {
	for {
		s.lockMu.Lock()
		held, busy := s.rowLocks[productID]
		if !busy {
			s.rowLocks[productID] = make(chan struct{})
			s.lockMu.Unlock()
			return nil
		}
		s.lockMu.Unlock()

		select {
		case <-held:
		case <-ctx.Done():
			return apperrors.NewTransientError("lock wait timeout on stock level "+productID, ctx.Err())
		}
	}
}

func (s *Store) unlockRow(productID string) {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()
	if held, ok := s.rowLocks[productID]; ok {
		close(held)
		delete(s.rowLocks, productID)
	}
}
