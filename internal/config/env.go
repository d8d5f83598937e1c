package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

// LookupFunc matches os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// LoadEnvFiles loads .env files into the process environment without
// overriding variables that are already set. With no paths it loads ./.env
// if present; explicitly named files must exist.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		_ = godotenv.Load()
		return nil
	}
	if err := godotenv.Load(paths...); err != nil {
		return fmt.Errorf("load env file: %w: %w", wp2csv.ErrInvalidConfig, err)
	}
	return nil
}

// FromEnvironment reads the connection config from the process environment.
func FromEnvironment() (*wp2csv.ConnectionConfig, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup builds a ConnectionConfig from lookup. Every absent required
// variable is reported in one error wrapping wp2csv.ErrInvalidConfig.
// DB_PASSWORD must be present for password auth but may be empty.
func FromLookup(lookup LookupFunc) (*wp2csv.ConnectionConfig, error) {
	get := func(key string) string {
		v, _ := lookup(key)
		return strings.TrimSpace(v)
	}

	method, err := wp2csv.ParseAuthMethod(get(wp2csv.EnvAuthMethod))
	if err != nil {
		return nil, err
	}

	required := []string{wp2csv.EnvUser, wp2csv.EnvDatabase}
	if method != wp2csv.AuthMethodGoogleIAM {
		required = append([]string{wp2csv.EnvHost}, required...)
	}

	var missing []string
	for _, key := range required {
		if get(key) == "" {
			missing = append(missing, key)
		}
	}
	password, hasPassword := lookup(wp2csv.EnvPassword)
	if method == wp2csv.AuthMethodStandard && !hasPassword {
		missing = append(missing, wp2csv.EnvPassword)
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing environment variables %s: %w",
			strings.Join(missing, ", "), wp2csv.ErrInvalidConfig)
	}

	port := wp2csv.DefaultPort
	if raw := get(wp2csv.EnvPort); raw != "" {
		port, err = strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("%s=%q is not a number: %w", wp2csv.EnvPort, raw, wp2csv.ErrInvalidConfig)
		}
	}

	cfg := &wp2csv.ConnectionConfig{
		Host:              get(wp2csv.EnvHost),
		Port:              port,
		Username:          get(wp2csv.EnvUser),
		Password:          password,
		Database:          get(wp2csv.EnvDatabase),
		AuthMethod:        method,
		TLS:               get(wp2csv.EnvTLS),
		TLSCAFile:         get(wp2csv.EnvTLSCA),
		AWSRegion:         get("AWS_REGION"),
		AzureTenantID:     get("AZURE_TENANT_ID"),
		AzureClientID:     get("AZURE_CLIENT_ID"),
		AzureClientSecret: get("AZURE_CLIENT_SECRET"),
		GoogleInstance:    get(wp2csv.EnvGoogleInstance),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
