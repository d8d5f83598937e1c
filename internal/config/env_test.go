package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wp2csv/wp2csv/pkg/wp2csv"
)

func mapLookup(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestFromLookup_AllVariables(t *testing.T) {
	cfg, err := FromLookup(mapLookup(map[string]string{
		"DB_HOST":     "db.internal",
		"DB_USER":     "wp",
		"DB_PASSWORD": "secret",
		"DB_NAME":     "wordpress",
	}))
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Host)
	assert.Equal(t, wp2csv.DefaultPort, cfg.Port)
	assert.Equal(t, "wp", cfg.Username)
	assert.Equal(t, "secret", cfg.Password)
	assert.Equal(t, "wordpress", cfg.Database)
	assert.Equal(t, wp2csv.AuthMethodStandard, cfg.AuthMethod)
}

func TestFromLookup_MissingVariablesListed(t *testing.T) {
	_, err := FromLookup(mapLookup(map[string]string{"DB_USER": "wp"}))
	require.Error(t, err)
	assert.ErrorIs(t, err, wp2csv.ErrInvalidConfig)
	assert.Contains(t, err.Error(), "DB_HOST")
	assert.Contains(t, err.Error(), "DB_NAME")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.NotContains(t, err.Error(), "DB_USER")
}

func TestFromLookup_EmptyPasswordAllowed(t *testing.T) {
	cfg, err := FromLookup(mapLookup(map[string]string{
		"DB_HOST":     "localhost",
		"DB_USER":     "root",
		"DB_PASSWORD": "",
		"DB_NAME":     "wordpress",
	}))
	require.NoError(t, err)
	assert.Equal(t, "", cfg.Password)
}

func TestFromLookup_Port(t *testing.T) {
	env := map[string]string{
		"DB_HOST": "localhost", "DB_USER": "wp", "DB_PASSWORD": "x", "DB_NAME": "wordpress",
		"DB_PORT": "3307",
	}
	cfg, err := FromLookup(mapLookup(env))
	require.NoError(t, err)
	assert.Equal(t, 3307, cfg.Port)

	env["DB_PORT"] = "mysql"
	_, err = FromLookup(mapLookup(env))
	assert.ErrorIs(t, err, wp2csv.ErrInvalidConfig)
}

func TestFromLookup_GoogleIAMNeedsNoHostOrPassword(t *testing.T) {
	cfg, err := FromLookup(mapLookup(map[string]string{
		"WP2CSV_AUTH":            "google-iam",
		"WP2CSV_GOOGLE_INSTANCE": "proj:us-central1:wp",
		"DB_USER":                "wp-sa",
		"DB_NAME":                "wordpress",
	}))
	require.NoError(t, err)
	assert.Equal(t, wp2csv.AuthMethodGoogleIAM, cfg.AuthMethod)
	assert.Equal(t, "proj:us-central1:wp", cfg.GoogleInstance)
}

func TestFromLookup_UnsupportedAuth(t *testing.T) {
	_, err := FromLookup(mapLookup(map[string]string{"WP2CSV_AUTH": "ldap"}))
	assert.ErrorIs(t, err, wp2csv.ErrUnsupportedAuthMethod)
}

func TestLoadEnvFiles_DoesNotOverrideExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST=from-file\nWP2CSV_TEST_ONLY=loaded\n"), 0600))

	t.Setenv("DB_HOST", "from-env")
	t.Setenv("WP2CSV_TEST_ONLY", "")
	os.Unsetenv("WP2CSV_TEST_ONLY")

	require.NoError(t, LoadEnvFiles(path))
	assert.Equal(t, "from-env", os.Getenv("DB_HOST"))
	assert.Equal(t, "loaded", os.Getenv("WP2CSV_TEST_ONLY"))
}

func TestLoadEnvFiles_MissingExplicitFile(t *testing.T) {
	err := LoadEnvFiles(filepath.Join(t.TempDir(), "nope.env"))
	assert.ErrorIs(t, err, wp2csv.ErrInvalidConfig)
}
