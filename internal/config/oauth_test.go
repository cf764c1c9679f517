package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validOAuthClient = `{
  "installed": {
    "client_id": "test-client-id.apps.googleusercontent.com",
    "project_id": "test-project",
    "auth_uri": "https://accounts.google.com/o/oauth2/auth",
    "token_uri": "https://oauth2.googleapis.com/token",
    "auth_provider_x509_cert_url": "https://www.googleapis.com/oauth2/v1/certs",
    "client_secret": "test-secret",
    "redirect_uris": ["http://localhost"]
  }
}`

func TestLoadOAuthClientFromPath(t *testing.T) {
	t.Run("valid client", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "oauthClient.json")
		require.NoError(t, os.WriteFile(path, []byte(validOAuthClient), 0600))

		cfg, err := LoadOAuthClientFromPath(path)
		require.NoError(t, err)

		assert.Equal(t, "test-client-id.apps.googleusercontent.com", cfg.Installed.ClientID)
		assert.Equal(t, []string{"http://localhost"}, cfg.Installed.RedirectURIs)
	})

	t.Run("missing client id", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "oauthClient.json")
		content := `{"installed": {"project_id": "p", "auth_uri": "https://a.example", "token_uri": "https://t.example",
			"auth_provider_x509_cert_url": "https://c.example", "client_secret": "s", "redirect_uris": ["http://localhost"]}}`
		require.NoError(t, os.WriteFile(path, []byte(content), 0600))

		_, err := LoadOAuthClientFromPath(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "oauthClient.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0600))

		_, err := LoadOAuthClientFromPath(path)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse oauth client file")
	})
}

func TestLoadOAuthClientWithEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	require.NoError(t, os.WriteFile("oauthClient.test.json", []byte(validOAuthClient), 0600))

	cfg, err := LoadOAuthClientWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "test-project", cfg.Installed.ProjectID)

	_, err = LoadOAuthClientWithEnv("prod")
	assert.Error(t, err)
}
