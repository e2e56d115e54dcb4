package secrets

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docverify/internal/config"
)

func TestEnvProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("present", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", " test-key ")
		key, err := EnvProvider{Key: "TEST_API_KEY"}.APIKey(ctx)
		require.NoError(t, err)
		assert.Equal(t, "test-key", key)
	})

	t.Run("missing", func(t *testing.T) {
		t.Setenv("TEST_API_KEY", "")
		_, err := EnvProvider{Key: "TEST_API_KEY"}.APIKey(ctx)
		assert.ErrorIs(t, err, ErrMissingCredential)
	})
}

func TestFileProvider(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	tests := []struct {
		name       string
		path       string
		want       string
		wantErr    error
		wantErrMsg string
	}{
		{name: "valid", path: write("ok.yaml", "api_key: local-development-api-key\n"), want: "local-development-api-key"},
		{name: "missing key", path: write("empty.yaml", "other: value\n"), wantErr: ErrMissingCredential},
		{name: "empty path", path: "", wantErr: ErrMissingCredential},
		{name: "no such file", path: filepath.Join(dir, "nope.yaml"), wantErrMsg: "read secrets file"},
		{name: "bad yaml", path: write("bad.yaml", "api_key: [unterminated\n"), wantErrMsg: "parse secrets file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FileProvider{Path: tt.path}.APIKey(ctx)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrMsg != "":
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErrMsg)
			default:
				assert.NoError(t, err)
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestNew(t *testing.T) {
	p, err := New(config.SecretsConfig{Provider: "env", APIKeyEnv: "X_KEY"})
	require.NoError(t, err)
	assert.Equal(t, EnvProvider{Key: "X_KEY"}, p)

	p, err = New(config.SecretsConfig{})
	require.NoError(t, err)
	assert.Equal(t, EnvProvider{Key: "VERIFICATION_API_KEY"}, p)

	p, err = New(config.SecretsConfig{Provider: "file", File: "/tmp/s.yaml"})
	require.NoError(t, err)
	assert.Equal(t, FileProvider{Path: "/tmp/s.yaml"}, p)

	_, err = New(config.SecretsConfig{Provider: "vault"})
	assert.Error(t, err)
}
