package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"stockroom/internal/infrastructure/migrate"
)

const defaultDSN = "root:@tcp(localhost:3306)/stockroom_test?parseTime=true&loc=UTC"

// Tables in foreign key order, children last.
var tables = []string{"users", "categories", "products", "zones", "chambers", "shelves", "stock_levels", "purchases", "sales"}

// SetupTestDB opens the MySQL test database named by TEST_MYSQL_DSN and
// migrates it. The test is skipped when the database is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		dsn = defaultDSN
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("test database not available: %v", err)
	}

	if err := migrate.Up(context.Background(), db); err != nil {
		db.Close()
		t.Fatalf("failed to migrate test database: %v", err)
	}

	truncateAll(t, db)
	return db
}

// CleanupTestDB empties every table and closes db. The ledger tables reject
// DELETE, so they are truncated with foreign key checks disabled on a single
// connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}
	truncateAll(t, db)
	db.Close()
}

func truncateAll(t *testing.T, db *sql.DB) {
	ctx := context.Background()
	conn, err := db.Conn(ctx)
	if err != nil {
		t.Logf("failed to get connection for cleanup: %v", err)
		return
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		t.Logf("failed to disable foreign key checks: %v", err)
		return
	}
	for i := len(tables) - 1; i >= 0; i-- {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("TRUNCATE TABLE %s", tables[i])); err != nil {
			t.Logf("failed to truncate table %s: %v", tables[i], err)
		}
	}
	if _, err := conn.ExecContext(ctx, "SET FOREIGN_KEY_CHECKS = 1"); err != nil {
		t.Logf("failed to enable foreign key checks: %v", err)
	}
}

// Fixture holds the ids of the rows inserted by SeedLedgerFixture.
type Fixture struct {
	UserID    string
	ProductID string
	ShelfID   string
}

// SeedLedgerFixture inserts one user, one active product and one active
// shelf, the minimum the ledger foreign keys need.
func SeedLedgerFixture(t *testing.T, db *sql.DB, reorderLevel int) Fixture {
	t.Helper()

	f := Fixture{
		UserID:    uuid.NewString(),
		ProductID: uuid.NewString(),
		ShelfID:   uuid.NewString(),
	}
	zoneID := uuid.NewString()
	chamberID := uuid.NewString()

	stmts := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO users (id, email, name, role) VALUES (?, ?, 'Test User', 'admin')`,
			[]any{f.UserID, f.UserID + "@example.com"}},
		{`INSERT INTO products (id, code, name, cost_price, selling_price, reorder_level) VALUES (?, ?, 'Test Product', ?, ?, ?)`,
			[]any{f.ProductID, "SKU-" + f.ProductID[:8], decimal.RequireFromString("1.20"), decimal.RequireFromString("1.80"), reorderLevel}},
		{`INSERT INTO zones (id, code, name) VALUES (?, ?, 'Right')`,
			[]any{zoneID, "R"}},
		{`INSERT INTO chambers (id, zone_id, chamber_number) VALUES (?, ?, 1)`,
			[]any{chamberID, zoneID}},
		{`INSERT INTO shelves (id, chamber_id, shelf_number) VALUES (?, ?, 1)`,
			[]any{f.ShelfID, chamberID}},
	}
	for _, s := range stmts {
		if _, err := db.Exec(s.query, s.args...); err != nil {
			t.Fatalf("failed to seed ledger fixture: %v", err)
		}
	}
	return f
}
