package wp2csv

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"
)

// AuthMethod represents the type of authentication to use.
type AuthMethod int

const (
	AuthMethodStandard     AuthMethod = iota // Username/Password
	AuthMethodAWSIAM                         // AWS RDS IAM Database Authentication
	AuthMethodGoogleIAM                      // Google Cloud SQL IAM
	AuthMethodAzureEntraID                   // Azure Database for MySQL with Entra ID
)

// String returns a human-readable string representation of the AuthMethod.
func (a AuthMethod) String() string {
	switch a {
	case AuthMethodStandard:
		return "Standard"
	case AuthMethodAWSIAM:
		return "AWS IAM"
	case AuthMethodGoogleIAM:
		return "Google IAM"
	case AuthMethodAzureEntraID:
		return "Azure Entra ID"
	default:
		return fmt.Sprintf("Unknown(%d)", a)
	}
}

// ParseAuthMethod converts the WP2CSV_AUTH value into an AuthMethod.
// An empty value selects AuthMethodStandard.
func ParseAuthMethod(s string) (AuthMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "standard", "password":
		return AuthMethodStandard, nil
	case "aws-iam", "aws":
		return AuthMethodAWSIAM, nil
	case "google-iam", "google", "gcp":
		return AuthMethodGoogleIAM, nil
	case "azure-entra", "azure":
		return AuthMethodAzureEntraID, nil
	default:
		return AuthMethodStandard, fmt.Errorf("auth method %q: %w", s, ErrUnsupportedAuthMethod)
	}
}

// ConnectionConfig holds the parameters for one database connection.
// It is read once at startup and held for the duration of a run.
type ConnectionConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Database string

	// AuthMethod indicates the authentication mechanism to use
	AuthMethod AuthMethod

	ConnectTimeout time.Duration

	// TLS is the driver TLS mode: "true", "false", "skip-verify" or "preferred".
	// Empty leaves the driver default for password auth and means "true" for token auth.
	TLS string

	// TLSCAFile is a PEM bundle of CA certificates used to verify the server.
	// Setting it enables verified TLS regardless of TLS.
	TLSCAFile string

	// AWS RDS IAM (AuthMethodAWSIAM)
	AWSRegion string

	// Azure Entra ID (AuthMethodAzureEntraID).
	// If all three are provided, Service Principal authentication is used;
	// otherwise the DefaultAzureCredential chain.
	AzureTenantID     string
	AzureClientID     string
	AzureClientSecret string

	// Google Cloud SQL instance connection name: project:region:instance
	GoogleInstance string
}

// Address returns host:port for TCP dialing.
func (c *ConnectionConfig) Address() string {
	port := c.Port
	if port == 0 {
		port = DefaultPort
	}
	return net.JoinHostPort(c.Host, strconv.Itoa(port))
}

// Validate checks that the fields required by the selected auth method are present.
// It returns a multi-error if multiple validation failures occur.
func (c *ConnectionConfig) Validate() error {
	var errs []error

	if c.Username == "" {
		errs = append(errs, fmt.Errorf("database user is required: %w", ErrInvalidConfig))
	}
	if c.Database == "" {
		errs = append(errs, fmt.Errorf("database name is required: %w", ErrInvalidConfig))
	}
	switch c.TLS {
	case "", "true", "false", "skip-verify", "preferred":
	default:
		errs = append(errs, fmt.Errorf("TLS mode %q is not one of true, false, skip-verify, preferred: %w", c.TLS, ErrInvalidConfig))
	}
	if err := c.CheckTLSCA(); err != nil {
		errs = append(errs, err)
	}
	if c.Port < 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d out of range: %w", c.Port, ErrInvalidConfig))
	}

	switch c.AuthMethod {
	case AuthMethodGoogleIAM:
		if c.GoogleInstance == "" {
			errs = append(errs, fmt.Errorf("google IAM auth requires an instance connection name: %w", ErrInvalidConfig))
		}
	case AuthMethodAWSIAM:
		if c.Host == "" {
			errs = append(errs, fmt.Errorf("database host is required: %w", ErrInvalidConfig))
		}
		if c.AWSRegion == "" {
			errs = append(errs, fmt.Errorf("AWS IAM auth requires a region: %w", ErrInvalidConfig))
		}
	default:
		if c.Host == "" {
			errs = append(errs, fmt.Errorf("database host is required: %w", ErrInvalidConfig))
		}
	}

	return errors.Join(errs...)
}

// CheckTLSCA rejects a CA file combined with a TLS mode it would override.
// A CA file always means verified TLS, so only "" and "true" are compatible.
func (c *ConnectionConfig) CheckTLSCA() error {
	if c.TLSCAFile == "" {
		return nil
	}
	switch c.TLS {
	case "", "true":
		return nil
	default:
		return fmt.Errorf("a TLS CA file requires verified TLS, not DB_TLS=%s: %w", c.TLS, ErrInvalidConfig)
	}
}

// String describes the connection without the password.
func (c *ConnectionConfig) String() string {
	if c.AuthMethod == AuthMethodGoogleIAM {
		return fmt.Sprintf("%s@%s/%s (%s)", c.Username, c.GoogleInstance, c.Database, c.AuthMethod)
	}
	return fmt.Sprintf("%s@%s/%s (%s)", c.Username, c.Address(), c.Database, c.AuthMethod)
}
