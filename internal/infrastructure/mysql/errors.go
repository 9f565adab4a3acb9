package mysql

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
)

const (
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
	errDuplicateEntry  = 1062
	errOutOfRange      = 1264
	errValueOutOfRange = 1690
)

// IsRetryable reports whether err is a lock conflict after which InnoDB rolled
// back the statement or the transaction and the unit of work can be replayed.
func IsRetryable(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errDeadlock || mysqlErr.Number == errLockWaitTimeout
	}
	return false
}

func IsDuplicateEntry(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errDuplicateEntry
	}
	return false
}

// IsOutOfRange reports whether a written value did not fit its column, as
// when a counter increment passes the INT maximum.
func IsOutOfRange(err error) bool {
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number == errOutOfRange || mysqlErr.Number == errValueOutOfRange
	}
	return false
}

// IsUnavailable reports whether err means the database could not be reached
// or did not answer in time. No statement of the transaction was committed.
func IsUnavailable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, driver.ErrBadConn) ||
		errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
