package cli

import (
	"archive/zip"
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newCatalogServer serves a minimal catalog with one English repository at
// version 7.0 plus its zipball.
func newCatalogServer(t *testing.T) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/catalog/search", func(w http.ResponseWriter, r *http.Request) {
		if lang := r.URL.Query().Get("lang"); lang != "" && lang != "en" {
			_, _ = fmt.Fprint(w, `{"data":[]}`)
			return
		}
		_, _ = fmt.Fprintf(w, `{"data":[{
			"name": "obs",
			"owner": "unfoldingword",
			"language": "en",
			"title": "Open Bible Stories",
			"repo": {"description": "50 key stories"},
			"release": {"tag_name": "v7.0", "published_at": "2024-05-01T00:00:00Z"}
		}]}`)
	})
	mux.HandleFunc("/catalog/entry/unfoldingword/obs/master", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprintf(w, `{"zipball_url": %q}`, server.URL+"/archive/obs.zip")
	})
	mux.HandleFunc("/archive/obs.zip", func(w http.ResponseWriter, _ *http.Request) {
		var buf bytes.Buffer
		zw := zip.NewWriter(&buf)
		f, err := zw.Create("obs-master/content/01.md")
		require.NoError(t, err)
		_, _ = f.Write([]byte("# The Creation"))
		require.NoError(t, zw.Close())
		w.Header().Set("Content-Type", "application/zip")
		_, _ = w.Write(buf.Bytes())
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		// Probe target and thumbnail requests.
		w.WriteHeader(http.StatusNotFound)
	})

	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

// setupCLI points the package-level flag variables at a config file wired to
// the test server and returns the content directory.
func setupCLI(t *testing.T, serverURL string) string {
	t.Helper()

	root := t.TempDir()
	contentDir := filepath.Join(root, "content")
	configPath := filepath.Join(root, "config.yaml")
	configYAML := fmt.Sprintf(`
catalog:
  base_url: %s
settings:
  state_dir: %s
  content_dir: %s
  thumbnails_dir: %s
  hooks_dir: %s
  probe_url: %s
  log_level: error
`, serverURL,
		filepath.Join(root, "state"), contentDir,
		filepath.Join(root, "thumbnails"), filepath.Join(root, "hooks"),
		serverURL)
	require.NoError(t, os.WriteFile(configPath, []byte(configYAML), 0o644))

	empty := ""
	off := false
	ConfigPath = &configPath
	Verbose = &off
	OutputFormat = &empty
	t.Cleanup(func() {
		ConfigPath = nil
		Verbose = nil
		OutputFormat = nil
	})

	return contentDir
}

func execute(t *testing.T, cmd *cobra.Command, args ...string) error {
	t.Helper()
	cmd.SetArgs(args)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	return cmd.Execute()
}

func TestDownloadListRemoveCycle(t *testing.T) {
	server := newCatalogServer(t)
	contentDir := setupCLI(t, server.URL)

	require.NoError(t, execute(t, NewDownloadCmd(), "unfoldingword/en/obs"))
	assert.FileExists(t, filepath.Join(contentDir, "unfoldingword", "en", "obs", "content", "01.md"))

	require.NoError(t, execute(t, NewListCmd()))
	require.NoError(t, execute(t, NewCheckUpdatesCmd()))
	require.NoError(t, execute(t, NewInfoCmd(), "unfoldingword/en/obs"))

	require.NoError(t, execute(t, NewRemoveCmd(), "unfoldingword/en/obs"))
	assert.NoDirExists(t, filepath.Join(contentDir, "unfoldingword", "en", "obs"))

	// Removing again is still fine.
	require.NoError(t, execute(t, NewRemoveCmd(), "unfoldingword/en/obs"))
}

func TestDownload_MalformedKey(t *testing.T) {
	server := newCatalogServer(t)
	setupCLI(t, server.URL)

	err := execute(t, NewDownloadCmd(), "not-a-key")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "OWNER/LANGUAGE/ID")
}

func TestSearchCmd(t *testing.T) {
	server := newCatalogServer(t)
	setupCLI(t, server.URL)

	require.NoError(t, execute(t, NewSearchCmd()))
	require.NoError(t, execute(t, NewSearchCmd(), "--lang", "fr"))
}

func TestConfigCmd(t *testing.T) {
	server := newCatalogServer(t)
	setupCLI(t, server.URL)

	require.NoError(t, execute(t, NewConfigCmd(), "get", "catalog.base_url"))
	require.NoError(t, execute(t, NewConfigCmd(), "set", "retry_attempts", "5"))
	require.NoError(t, execute(t, NewConfigCmd(), "show"))

	err := execute(t, NewConfigCmd(), "get", "nope")
	require.Error(t, err)
}

func TestCacheCmd(t *testing.T) {
	server := newCatalogServer(t)
	contentDir := setupCLI(t, server.URL)

	require.NoError(t, execute(t, NewDownloadCmd(), "unfoldingword/en/obs"))
	require.NoError(t, execute(t, NewCacheCmd(), "info"))
	require.NoError(t, execute(t, NewCacheCmd(), "clean"))

	entries, err := os.ReadDir(contentDir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
