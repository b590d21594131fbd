package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append(args, "--env-file", ""))
	err := rootCmd.ExecuteContext(context.Background())
	logger = zap.NewNop()
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":21,"userId":3,"title":"asperiores ea ipsam","body":"dolorem dolore est"}]`))
	}))
	t.Cleanup(api.Close)
	t.Setenv("POSTS_API_URL", api.URL)
	t.Setenv("POSTS_STORAGE", "bolt")
	t.Setenv("POSTS_STORAGE_PATH", filepath.Join(t.TempDir(), "posts.db"))
	t.Setenv("POSTS_LOG_LEVEL", "error")
}

func TestCLI_FetchShowClear(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "fetch", "--user-id", "3", "--remember")
	require.NoError(t, err)
	assert.Contains(t, out, "status: Success! Loaded 1 posts.")
	assert.Contains(t, out, "asperiores ea ipsam")

	out, err = execute(t, "show")
	require.NoError(t, err)
	assert.Contains(t, out, "remembered user: 3")
	assert.Contains(t, out, "status: Posts loaded from storage.")
	assert.Contains(t, out, "dolorem dolore est")

	out, err = execute(t, "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "status: No request has been made yet.")

	out, err = execute(t, "show")
	require.NoError(t, err)
	assert.NotContains(t, out, "asperiores ea ipsam")
	assert.Contains(t, out, "remembered user: 3")
}

func TestCLI_FetchInvalidUserID(t *testing.T) {
	setupEnv(t)

	out, err := execute(t, "fetch", "--user-id", "0")
	require.Error(t, err)
	assert.Contains(t, out, "status: Please enter a valid user ID (1-10).")
}

func TestCLI_BadStorage(t *testing.T) {
	setupEnv(t)
	t.Setenv("POSTS_STORAGE", "tape")

	_, err := execute(t, "show")
	require.ErrorContains(t, err, "unknown POSTS_STORAGE")
}
