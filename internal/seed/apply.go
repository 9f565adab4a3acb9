package seed

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"stockroom/internal/domain"
	"stockroom/internal/ledger/service"
)

// Sink persists reference data. Saving a row that already exists must succeed
// so a fixture can be applied more than once.
type Sink interface {
	SaveUser(ctx context.Context, u domain.User) error
	SaveCategory(ctx context.Context, c domain.Category) error
	SaveZone(ctx context.Context, z domain.Zone) error
	SaveChamber(ctx context.Context, c domain.Chamber) error
	SaveShelf(ctx context.Context, s domain.Shelf) error
	SaveProduct(ctx context.Context, p domain.Product) error
}

// Stocker records opening stock through the ledger, keeping stock levels
// backed by purchase rows.
type Stocker interface {
	CurrentStock(ctx context.Context, productID string) (int, error)
	RecordPurchase(ctx context.Context, cmd service.PurchaseCommand) (*service.PurchaseResult, error)
}

type Result struct {
	Users            int
	Categories       int
	Zones            int
	Chambers         int
	Shelves          int
	Products         int
	OpeningPurchases int
}

type Seeder struct {
	sink    Sink
	stocker Stocker
	logger  *zap.Logger
	now     func() time.Time
}

// NewSeeder wires a sink and, optionally, a stocker. With a nil stocker the
// opening stock in the fixture is ignored.
func NewSeeder(sink Sink, stocker Stocker, logger *zap.Logger) *Seeder {
	return &Seeder{
		sink:    sink,
		stocker: stocker,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *Seeder) Apply(ctx context.Context, f *Fixture) (*Result, error) {
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("invalid fixture: %w", err)
	}

	now := s.now()
	res := &Result{}

	var openingActor string
	for _, u := range f.Users {
		user := domain.User{
			ID:        UserID(u.Email),
			Email:     u.Email,
			Name:      u.Name,
			Role:      u.Role,
			IsActive:  true,
			CreatedAt: now,
		}
		if err := s.sink.SaveUser(ctx, user); err != nil {
			return nil, fmt.Errorf("seeding user %s: %w", u.Email, err)
		}
		if openingActor == "" && u.Role == domain.RoleAdmin {
			openingActor = user.ID
		}
		res.Users++
	}

	for _, c := range f.Categories {
		category := domain.Category{
			ID:        CategoryID(c.Name),
			Name:      c.Name,
			IsActive:  true,
			CreatedAt: now,
		}
		if c.Description != "" {
			desc := c.Description
			category.Description = &desc
		}
		if err := s.sink.SaveCategory(ctx, category); err != nil {
			return nil, fmt.Errorf("seeding category %s: %w", c.Name, err)
		}
		res.Categories++
	}

	if err := s.applyZones(ctx, f.Zones, res); err != nil {
		return nil, err
	}

	for _, p := range f.Products {
		product, err := toProduct(p, now)
		if err != nil {
			return nil, err
		}
		if err := s.sink.SaveProduct(ctx, product); err != nil {
			return nil, fmt.Errorf("seeding product %s: %w", p.Code, err)
		}
		res.Products++

		if p.OpeningStock == 0 || s.stocker == nil {
			continue
		}
		if openingActor == "" {
			return nil, fmt.Errorf("product %s: opening stock needs an admin user in the fixture", p.Code)
		}
		recorded, err := s.recordOpeningStock(ctx, product, p, openingActor)
		if err != nil {
			return nil, err
		}
		if recorded {
			res.OpeningPurchases++
		}
	}

	s.logger.Info("fixture applied",
		zap.Int("users", res.Users),
		zap.Int("categories", res.Categories),
		zap.Int("zones", res.Zones),
		zap.Int("shelves", res.Shelves),
		zap.Int("products", res.Products),
		zap.Int("openingPurchases", res.OpeningPurchases),
	)
	return res, nil
}

func (s *Seeder) applyZones(ctx context.Context, zones []ZoneFixture, res *Result) error {
	for _, z := range zones {
		zone := domain.Zone{
			ID:        ZoneID(z.Code),
			Code:      z.Code,
			Name:      z.Name,
			SortOrder: z.SortOrder,
			IsActive:  true,
		}
		if err := s.sink.SaveZone(ctx, zone); err != nil {
			return fmt.Errorf("seeding zone %s: %w", z.Code, err)
		}
		res.Zones++

		for i, name := range z.Chambers {
			number := i + 1
			chamber := domain.Chamber{
				ID:       ChamberID(z.Code, number),
				ZoneID:   zone.ID,
				Number:   number,
				IsActive: true,
			}
			if name != "" {
				n := name
				chamber.Name = &n
			}
			if err := s.sink.SaveChamber(ctx, chamber); err != nil {
				return fmt.Errorf("seeding chamber %s-C%02d: %w", z.Code, number, err)
			}
			res.Chambers++

			for shelfNumber := 1; shelfNumber <= z.ShelvesPerChamber; shelfNumber++ {
				code := domain.FormatLocationCode(z.Code, number, shelfNumber)
				shelf := domain.Shelf{
					ID:        ShelfID(code),
					ChamberID: chamber.ID,
					Number:    shelfNumber,
					IsActive:  true,
				}
				if err := s.sink.SaveShelf(ctx, shelf); err != nil {
					return fmt.Errorf("seeding shelf %s: %w", code, err)
				}
				res.Shelves++
			}
		}
	}
	return nil
}

// recordOpeningStock skips products that already hold stock, so reapplying a
// fixture never doubles it.
func (s *Seeder) recordOpeningStock(ctx context.Context, product domain.Product, p ProductFixture, actor string) (bool, error) {
	current, err := s.stocker.CurrentStock(ctx, product.ID)
	if err != nil {
		return false, fmt.Errorf("reading stock of %s: %w", p.Code, err)
	}
	if current > 0 {
		s.logger.Debug("opening stock already present",
			zap.String("productCode", p.Code),
			zap.Int("currentStock", current),
		)
		return false, nil
	}

	notes := "opening stock"
	_, err = s.stocker.RecordPurchase(ctx, service.PurchaseCommand{
		ProductID:  product.ID,
		ShelfID:    ShelfID(p.OpeningShelf),
		Quantity:   p.OpeningStock,
		UnitCost:   product.CostPrice,
		RecordedBy: actor,
		Notes:      &notes,
	})
	if err != nil {
		return false, fmt.Errorf("recording opening stock of %s: %w", p.Code, err)
	}
	return true, nil
}

func toProduct(p ProductFixture, now time.Time) (domain.Product, error) {
	cost, err := parseMoney(p.CostPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: cost_price: %w", p.Code, err)
	}
	price, err := parseMoney(p.SellingPrice)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: selling_price: %w", p.Code, err)
	}

	product := domain.Product{
		ID:           ProductID(p.Code),
		Code:         p.Code,
		Name:         p.Name,
		CostPrice:    cost,
		SellingPrice: price,
		ReorderLevel: p.ReorderLevel,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.Category != "" {
		categoryID := CategoryID(p.Category)
		product.CategoryID = &categoryID
	}
	return product, nil
}
