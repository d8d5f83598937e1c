package retry

import (
	"database/sql/driver"
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/go-sql-driver/mysql"
)

// MySQL server error numbers for transient conditions.
// See: https://dev.mysql.com/doc/mysql-errors/8.0/en/server-error-reference.html
const (
	erConCountError     = 1040 // Too many connections
	erServerShutdown    = 1053 // Server shutdown in progress
	erTooManyUserConns  = 1203 // User already has more than max_user_connections
	erLockWaitTimeout   = 1205 // Lock wait timeout exceeded
	erLockDeadlock      = 1213 // Deadlock found when trying to get lock
	erQueryInterrupted  = 1317 // Query execution was interrupted
	erClientInteraction = 4031 // Disconnected by the server because of inactivity
)

// MySQLErrorClassifier implements wp2csv.ErrorClassifier for MySQL errors.
type MySQLErrorClassifier struct{}

// NewMySQLErrorClassifier creates a new MySQL error classifier.
func NewMySQLErrorClassifier() *MySQLErrorClassifier {
	return &MySQLErrorClassifier{}
}

// IsTransient determines if an error is temporary and retryable.
// Authentication and syntax errors are never transient.
func (c *MySQLErrorClassifier) IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case erConCountError, erServerShutdown, erTooManyUserConns,
			erLockWaitTimeout, erLockDeadlock, erQueryInterrupted, erClientInteraction:
			return true
		}
		return false
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) {
		return true
	}

	if c.isNetworkError(err) {
		return true
	}

	return c.isConnectionMessage(err)
}

func (c *MySQLErrorClassifier) isNetworkError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return dnsErr.IsTemporary || dnsErr.IsTimeout
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		if opErr.Timeout() {
			return true
		}
		return errors.Is(opErr.Err, syscall.ECONNREFUSED) ||
			errors.Is(opErr.Err, syscall.ECONNRESET) ||
			errors.Is(opErr.Err, syscall.ENETUNREACH) ||
			errors.Is(opErr.Err, syscall.EHOSTUNREACH)
	}

	return false
}

var transientPatterns = []string{
	"connection refused",
	"connection reset",
	"i/o timeout",
	"broken pipe",
	"network is unreachable",
	"unexpected eof",
}

func (c *MySQLErrorClassifier) isConnectionMessage(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, p := range transientPatterns {
		if strings.Contains(msg, p) {
			return true
		}
	}
	return false
}
