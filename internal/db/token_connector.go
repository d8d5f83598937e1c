package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wp2csv/wp2csv/internal/retry"
	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// tokenExpiryWarning is the remaining lifetime below which a token is reported.
const tokenExpiryWarning = 5 * time.Minute

// TokenBasedConnector authenticates with a short-lived cloud token
// (AWS RDS IAM, Azure Entra ID) used as the password.
type TokenBasedConnector struct {
	config       *wp2csv.ConnectionConfig
	tokens       TokenSource
	retrier      retry.Retrier
	providerName string
	warn         func(format string, args ...any)
}

// NewTokenBasedConnector creates a connector that authenticates with tokens.
// providerName is used in error and warning messages (e.g. "AWS IAM").
func NewTokenBasedConnector(config *wp2csv.ConnectionConfig, tokens TokenSource, providerName string, opts Options) *TokenBasedConnector {
	return &TokenBasedConnector{
		config:       config,
		tokens:       tokens,
		retrier:      newRetrier(opts),
		providerName: providerName,
		warn:         opts.Warn,
	}
}

// Connect acquires a fresh token for every attempt and connects with it.
func (c *TokenBasedConnector) Connect(ctx context.Context) (*sql.DB, error) {
	var db *sql.DB

	err := c.retrier.Do(ctx, func(ctx context.Context) error {
		token, err := c.tokens(ctx)
		if err != nil {
			return fmt.Errorf("failed to acquire %s token: %w", c.providerName, err)
		}

		if remaining := time.Until(token.Expires); remaining < tokenExpiryWarning && c.warn != nil {
			c.warn("%s token expires in %v", c.providerName, remaining.Round(time.Second))
		}

		withToken := *c.config
		withToken.Password = token.Value
		if withToken.TLS == "" {
			withToken.TLS = "true"
		}

		mc, err := DriverConfig(&withToken)
		if err != nil {
			return err
		}
		mc.AllowCleartextPasswords = true

		db, err = openAndPing(ctx, mc)
		return err
	})
	if err != nil {
		return nil, wrapConnectionError(err, c.config.Address(), c.config.Username, c.config.Database)
	}
	return db, nil
}

// newAWSConnector authenticates against RDS/Aurora with IAM tokens.
func newAWSConnector(config *wp2csv.ConnectionConfig, opts Options) (wp2csv.Connector, error) {
	tokens, err := rdsTokenSource(config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", wp2csv.ErrInvalidConfig, err)
	}
	return NewTokenBasedConnector(config, tokens, "AWS IAM", opts), nil
}

// newAzureConnector authenticates against Azure Database for MySQL with Entra ID tokens.
func newAzureConnector(config *wp2csv.ConnectionConfig, opts Options) (wp2csv.Connector, error) {
	tokens, err := azureTokenSource(config)
	if err != nil {
		return nil, err
	}
	return NewTokenBasedConnector(config, tokens, "Azure", opts), nil
}
