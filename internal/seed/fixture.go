package seed

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockroom/internal/commons"
	"stockroom/internal/domain"
)

// namespace scopes the name-based ids so reseeding yields the same rows.
var namespace = uuid.MustParse("6f1c2a8e-3b4d-4e5f-9a6b-7c8d9e0f1a2b")

type Fixture struct {
	Users      []UserFixture     `yaml:"users"`
	Categories []CategoryFixture `yaml:"categories"`
	Zones      []ZoneFixture     `yaml:"zones"`
	Products   []ProductFixture  `yaml:"products"`
}

type UserFixture struct {
	Email string `yaml:"email"`
	Name  string `yaml:"name"`
	Role  string `yaml:"role"`
}

type CategoryFixture struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// ZoneFixture lists chamber names top to bottom; chamber n gets number n.
type ZoneFixture struct {
	Code              string   `yaml:"code"`
	Name              string   `yaml:"name"`
	SortOrder         int      `yaml:"sort_order"`
	Chambers          []string `yaml:"chambers"`
	ShelvesPerChamber int      `yaml:"shelves_per_chamber"`
}

// ProductFixture keeps money as strings so YAML floats never round a price.
// OpeningStock is recorded as a purchase onto OpeningShelf (a location code).
type ProductFixture struct {
	Code         string `yaml:"code"`
	Name         string `yaml:"name"`
	Category     string `yaml:"category"`
	CostPrice    string `yaml:"cost_price"`
	SellingPrice string `yaml:"selling_price"`
	ReorderLevel int    `yaml:"reorder_level"`
	OpeningStock int    `yaml:"opening_stock"`
	OpeningShelf string `yaml:"opening_shelf"`
}

func Load(path string) (*Fixture, error) {
	var f Fixture
	if err := commons.LoadYAML(path, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks references inside the fixture before anything is written.
func (f *Fixture) Validate() error {
	emails := make(map[string]bool)
	for _, u := range f.Users {
		if u.Email == "" || u.Name == "" {
			return fmt.Errorf("user %q: email and name are required", u.Email)
		}
		if u.Role != domain.RoleAdmin && u.Role != domain.RoleSalesperson {
			return fmt.Errorf("user %s: unknown role %q", u.Email, u.Role)
		}
		if emails[u.Email] {
			return fmt.Errorf("user %s: duplicate email", u.Email)
		}
		emails[u.Email] = true
	}

	categories := make(map[string]bool)
	for _, c := range f.Categories {
		if c.Name == "" {
			return fmt.Errorf("category name is required")
		}
		if categories[c.Name] {
			return fmt.Errorf("category %s: duplicate name", c.Name)
		}
		categories[c.Name] = true
	}

	shelves := make(map[string]bool)
	for _, z := range f.Zones {
		if _, _, _, ok := domain.ParseLocationCode(domain.FormatLocationCode(z.Code, 1, 1)); !ok {
			return fmt.Errorf("zone %q: code must be 1 to 10 uppercase letters", z.Code)
		}
		if len(z.Chambers) == 0 || z.ShelvesPerChamber <= 0 {
			return fmt.Errorf("zone %s: chambers and shelves_per_chamber are required", z.Code)
		}
		for c := range z.Chambers {
			for s := 1; s <= z.ShelvesPerChamber; s++ {
				code := domain.FormatLocationCode(z.Code, c+1, s)
				if shelves[code] {
					return fmt.Errorf("zone %s: duplicate location %s", z.Code, code)
				}
				shelves[code] = true
			}
		}
	}

	codes := make(map[string]bool)
	for _, p := range f.Products {
		if p.Code == "" || p.Name == "" {
			return fmt.Errorf("product %q: code and name are required", p.Code)
		}
		if codes[p.Code] {
			return fmt.Errorf("product %s: duplicate code", p.Code)
		}
		codes[p.Code] = true
		if p.Category != "" && !categories[p.Category] {
			return fmt.Errorf("product %s: unknown category %q", p.Code, p.Category)
		}
		if _, err := parseMoney(p.CostPrice); err != nil {
			return fmt.Errorf("product %s: cost_price: %w", p.Code, err)
		}
		if _, err := parseMoney(p.SellingPrice); err != nil {
			return fmt.Errorf("product %s: selling_price: %w", p.Code, err)
		}
		if p.ReorderLevel < 0 || p.OpeningStock < 0 {
			return fmt.Errorf("product %s: reorder_level and opening_stock must be non-negative", p.Code)
		}
		if p.OpeningStock > 0 && !shelves[p.OpeningShelf] {
			return fmt.Errorf("product %s: opening_shelf %q is not a seeded location", p.Code, p.OpeningShelf)
		}
	}
	return nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q", s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("amount %s must be non-negative", s)
	}
	return d, nil
}

func UserID(email string) string { return id("user", strings.ToLower(email)) }
func CategoryID(name string) string { return id("category", name) }
func ZoneID(code string) string { return id("zone", code) }
func ProductID(code string) string { return id("product", code) }
func ShelfID(locationCode string) string { return id("shelf", locationCode) }

func ChamberID(zoneCode string, number int) string {
	return id("chamber", fmt.Sprintf("%s-C%02d", zoneCode, number))
}

func id(kind, key string) string {
	return uuid.NewSHA1(namespace, []byte(kind+":"+key)).String()
}
