package domain

import "time"

const (
	RoleAdmin       = "admin"
	RoleSalesperson = "salesperson"
)

// User is the actor recorded on purchases and sales. Users are managed
// outside this service.
type User struct {
	ID        string
	Email     string
	Name      string
	Role      string
	IsActive  bool
	CreatedAt time.Time
}

type Category struct {
	ID          string
	Name        string
	Description *string
	IsActive    bool
	CreatedAt   time.Time
}

type Zone struct {
	ID        string
	Code      string
	Name      string
	SortOrder int
	IsActive  bool
}

type Chamber struct {
	ID       string
	ZoneID   string
	Number   int
	Name     *string
	IsActive bool
}

type Shelf struct {
	ID        string
	ChamberID string
	Number    int
	IsActive  bool
}
