package testinfra

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/mysql"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

const (
	MySQLImage    = "mysql:8.0"
	MySQLUser     = "wp"
	MySQLPassword = "wp"
	MySQLDatabase = "wordpress"

	// EnvTestHost points integration tests at an existing server instead of a container.
	// The server must accept MySQLUser/MySQLPassword and the init scripts must already be applied.
	EnvTestHost = "WP2CSV_TEST_HOST"
)

// MySQLContainer is a disposable MySQL server.
type MySQLContainer struct {
	*mysql.MySQLContainer
	Config *wp2csv.ConnectionConfig
}

// StartMySQL starts a MySQL container and runs the given init scripts.
func StartMySQL(ctx context.Context, scripts ...string) (*MySQLContainer, error) {
	ctr, err := mysql.Run(ctx,
		MySQLImage,
		mysql.WithUsername(MySQLUser),
		mysql.WithPassword(MySQLPassword),
		mysql.WithDatabase(MySQLDatabase),
		mysql.WithScripts(scripts...),
	)
	if err != nil {
		return nil, fmt.Errorf("start mysql: %w", err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		testcontainers.TerminateContainer(ctr) //nolint:errcheck
		return nil, fmt.Errorf("get host: %w", err)
	}
	port, err := ctr.MappedPort(ctx, "3306/tcp")
	if err != nil {
		testcontainers.TerminateContainer(ctr) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		Config: &wp2csv.ConnectionConfig{
			Host:     host,
			Port:     port.Int(),
			Username: MySQLUser,
			Password: MySQLPassword,
			Database: MySQLDatabase,
		},
	}, nil
}

// RequireMySQL returns a connection config for a database loaded with scripts.
// It skips the test in -short mode and fails it if the container cannot start.
// When WP2CSV_TEST_HOST is set, that server is used as is.
func RequireMySQL(t *testing.T, scripts ...string) *wp2csv.ConnectionConfig {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MySQL integration test in short mode")
	}

	if host := os.Getenv(EnvTestHost); host != "" {
		port := wp2csv.DefaultPort
		if raw := os.Getenv("WP2CSV_TEST_PORT"); raw != "" {
			p, err := strconv.Atoi(raw)
			if err != nil {
				t.Fatalf("WP2CSV_TEST_PORT: %v", err)
			}
			port = p
		}
		return &wp2csv.ConnectionConfig{
			Host:     host,
			Port:     port,
			Username: MySQLUser,
			Password: MySQLPassword,
			Database: MySQLDatabase,
		}
	}

	ctx := context.Background()
	ctr, err := StartMySQL(ctx, scripts...)
	if err != nil {
		t.Fatalf("MySQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate mysql: %v", err)
		}
	})
	return ctr.Config
}

// Script returns the absolute path of a file under the calling package's testdata directory.
func Script(t *testing.T, name string) string {
	t.Helper()
	path, err := filepath.Abs(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("resolve %s: %v", name, err)
	}
	return path
}
