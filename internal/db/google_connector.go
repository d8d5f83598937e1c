package db

import (
	"context"
	"database/sql"
	"fmt"
	"net"

	"cloud.google.com/go/cloudsqlconn"
	"github.com/go-sql-driver/mysql"

	"github.com/wp2csv/wp2csv/internal/retry"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// cloudSQLNetwork is the driver network name routed through the Cloud SQL dialer.
const cloudSQLNetwork = "cloudsql-wp2csv"

// GoogleCloudSQLConnector connects to Cloud SQL for MySQL with automatic IAM
// database authentication via the Cloud SQL Go Connector.
//
// Implements io.Closer: call Close() after the *sql.DB is closed to release
// the dialer.
type GoogleCloudSQLConnector struct {
	config  *wp2csv.ConnectionConfig
	retrier retry.Retrier
	dialer  *cloudsqlconn.Dialer
}

// NewGoogleCloudSQLConnector creates a connector for config.GoogleInstance
// (project:region:instance).
func NewGoogleCloudSQLConnector(config *wp2csv.ConnectionConfig, opts Options) *GoogleCloudSQLConnector {
	return &GoogleCloudSQLConnector{config: config, retrier: newRetrier(opts)}
}

// Connect creates the dialer, routes the driver through it and pings.
// Only the open and ping are retried; the dialer is created once.
func (c *GoogleCloudSQLConnector) Connect(ctx context.Context) (*sql.DB, error) {
	dialer, err := cloudsqlconn.NewDialer(ctx, cloudsqlconn.WithIAMAuthN())
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Cloud SQL dialer: %w", wp2csv.ErrConnectionFailed, err)
	}

	mysql.RegisterDialContext(cloudSQLNetwork, func(ctx context.Context, addr string) (net.Conn, error) {
		return dialer.Dial(ctx, addr)
	})

	// The dialer already encrypts the link and injects the IAM token.
	direct := *c.config
	direct.TLS = ""
	direct.TLSCAFile = ""
	mc, err := DriverConfig(&direct)
	if err != nil {
		dialer.Close()
		return nil, err
	}
	mc.Net = cloudSQLNetwork
	mc.Addr = c.config.GoogleInstance
	mc.Passwd = ""
	mc.AllowCleartextPasswords = true

	var db *sql.DB
	err = c.retrier.Do(ctx, func(ctx context.Context) error {
		var err error
		db, err = openAndPing(ctx, mc)
		return err
	})
	if err != nil {
		dialer.Close()
		return nil, wrapConnectionError(err, c.config.GoogleInstance, c.config.Username, c.config.Database)
	}

	c.dialer = dialer
	return db, nil
}

// Close releases the Cloud SQL dialer.
func (c *GoogleCloudSQLConnector) Close() error {
	if c.dialer != nil {
		err := c.dialer.Close()
		c.dialer = nil
		return err
	}
	return nil
}
