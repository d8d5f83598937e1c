package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/wp2csv/wp2csv/internal/retry"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

const (
	// DefaultConnectTimeout bounds the TCP dial and handshake.
	DefaultConnectTimeout = 10 * time.Second

	// DefaultMaxOpenConns keeps the run on a single connection.
	DefaultMaxOpenConns = 1
)

// Options tunes connection establishment.
type Options struct {
	// Retries is the number of extra connect attempts on transient failures.
	Retries int

	// OnRetry is called before each retry wait. Optional.
	OnRetry func(attempt int, err error, delay time.Duration)

	// Warn receives non-fatal notices such as short token lifetimes. Optional.
	Warn func(format string, args ...any)
}

func newRetrier(opts Options) retry.Retrier {
	return retry.ForConnect(opts.Retries, opts.OnRetry)
}

// DriverConfig translates a ConnectionConfig into a go-sql-driver/mysql config.
// Raw column values come back as text, which is what the CSV writer needs.
func DriverConfig(cfg *wp2csv.ConnectionConfig) (*mysql.Config, error) {
	mc := mysql.NewConfig()
	mc.User = cfg.Username
	mc.Passwd = cfg.Password
	mc.Net = "tcp"
	mc.Addr = cfg.Address()
	mc.DBName = cfg.Database
	mc.Timeout = cfg.ConnectTimeout
	if mc.Timeout == 0 {
		mc.Timeout = DefaultConnectTimeout
	}
	mc.ParseTime = false
	if cfg.TLS != "" {
		mc.TLSConfig = cfg.TLS
	}
	if cfg.TLSCAFile != "" {
		if err := cfg.CheckTLSCA(); err != nil {
			return nil, err
		}
		tlsCfg, err := caTLSConfig(cfg.TLSCAFile, cfg.Host)
		if err != nil {
			return nil, err
		}
		mc.TLS = tlsCfg
	}
	mc.Params = map[string]string{"charset": "utf8mb4"}
	return mc, nil
}

func configurePool(db *sql.DB) {
	db.SetMaxOpenConns(DefaultMaxOpenConns)
	db.SetMaxIdleConns(DefaultMaxOpenConns)
}

// openAndPing opens a handle for mc and verifies it with a ping.
// The handle is closed again if the ping fails.
func openAndPing(ctx context.Context, mc *mysql.Config) (*sql.DB, error) {
	connector, err := mysql.NewConnector(mc)
	if err != nil {
		return nil, fmt.Errorf("invalid driver config: %w", err)
	}
	db := sql.OpenDB(connector)
	configurePool(db)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// StandardConnector connects with username and password.
type StandardConnector struct {
	config  *wp2csv.ConnectionConfig
	retrier retry.Retrier
}

// NewStandardConnector creates a StandardConnector.
func NewStandardConnector(config *wp2csv.ConnectionConfig, opts Options) *StandardConnector {
	return &StandardConnector{
		config:  config,
		retrier: newRetrier(opts),
	}
}

// Connect opens and pings the database, retrying transient failures if configured.
func (c *StandardConnector) Connect(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB
	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		mc, err := DriverConfig(c.config)
		if err != nil {
			return err
		}
		db, err = openAndPing(ctx, mc)
		return err
	})
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Address(), c.config.Username, c.config.Database)
	}
	return db, nil
}

// NewConnector creates the Connector matching config.AuthMethod.
func NewConnector(config *wp2csv.ConnectionConfig, opts Options) (wp2csv.Connector, error) {
	switch config.AuthMethod {
	case wp2csv.AuthMethodStandard:
		return NewStandardConnector(config, opts), nil
	case wp2csv.AuthMethodAWSIAM:
		return newAWSConnector(config, opts)
	case wp2csv.AuthMethodAzureEntraID:
		return newAzureConnector(config, opts)
	case wp2csv.AuthMethodGoogleIAM:
		return NewGoogleCloudSQLConnector(config, opts), nil
	default:
		return nil, fmt.Errorf("auth method %v: %w", config.AuthMethod, wp2csv.ErrUnsupportedAuthMethod)
	}
}

// wrapConnectionError adds actionable guidance to raw driver errors.
// The result always wraps wp2csv.ErrConnectionFailed.
func wrapConnectionError(err error, addr, user, database string) error {
	errStr := strings.ToLower(err.Error())

	switch {
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "actively refused"):
		return fmt.Errorf(`%w: connection refused to %s

Possible causes:
  - MySQL is not running (check: mysqladmin ping -h <host>)
  - Wrong DB_HOST or DB_PORT
  - Firewall blocking the connection

Original error: %w`, wp2csv.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "no such host"):
		return fmt.Errorf(`%w: cannot resolve host of %s

Possible causes:
  - DB_HOST is misspelled
  - DNS is not configured or reachable

Original error: %w`, wp2csv.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "access denied"):
		return fmt.Errorf(`%w: access denied for user "%s"

Possible causes:
  - Wrong DB_PASSWORD
  - User is not allowed to connect from this host
  - User has no privileges on database "%s"

Original error: %w`, wp2csv.ErrConnectionFailed, user, database, err)

	case strings.Contains(errStr, "unknown database"):
		return fmt.Errorf(`%w: database "%s" does not exist

Check DB_NAME against: SHOW DATABASES;

Original error: %w`, wp2csv.ErrConnectionFailed, database, err)

	case strings.Contains(errStr, "timeout") || strings.Contains(errStr, "timed out"):
		return fmt.Errorf(`%w: connection timed out to %s

Possible causes:
  - Server is overloaded or unresponsive
  - Firewall silently dropping packets

Original error: %w`, wp2csv.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "tls") || strings.Contains(errStr, "x509"):
		return fmt.Errorf(`%w: TLS handshake with %s failed

Original error: %w`, wp2csv.ErrConnectionFailed, addr, err)

	case strings.Contains(errStr, "too many connections"):
		return fmt.Errorf(`%w: too many connections to %s

The server's max_connections limit is reached; retry later or raise --connect-retries.

Original error: %w`, wp2csv.ErrConnectionFailed, addr, err)

	default:
		return fmt.Errorf("%w: %w", wp2csv.ErrConnectionFailed, err)
	}
}
