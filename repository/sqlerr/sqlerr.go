// Package sqlerr classifies driver errors so the application layer can map them
// to client-facing outcomes.
package sqlerr

import (
	"context"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/go-sql-driver/mysql"
	"github.com/muhammadheryan/marketplace/constant"
	cerr "github.com/muhammadheryan/marketplace/utils/errors"
)

const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// IsDuplicate reports a unique-key violation.
func IsDuplicate(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateEntry
}

// IsForeignKeyViolation reports an insert or update pointing at a missing parent row.
func IsForeignKeyViolation(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlNoReferencedRow
}

// IsUnavailable reports errors caused by losing the connection to the store
// rather than by the query itself.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// AsCustomError maps a failed store call to the outcome reported to clients.
func AsCustomError(err error) cerr.CustomError {
	if IsUnavailable(err) {
		return cerr.SetCustomError(constant.ErrServiceUnavailable).WithCause(err)
	}
	return cerr.SetCustomError(constant.ErrInternal).WithCause(err)
}
