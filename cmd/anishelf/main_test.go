package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

// writeTestConfig writes a config pointing every path at temp directories and
// the source at baseURL. Returns the config file path.
func writeTestConfig(t *testing.T, baseURL string) string {
	t.Helper()

	base := t.TempDir()
	content := fmt.Sprintf(`[paths]
data_dir = %q
log_dir = %q
api_bind = "127.0.0.1:0"

[source]
base_url = %q
cdn_url = %q
timeout_seconds = 5
`,
		filepath.Join(base, "data"),
		filepath.Join(base, "logs"),
		baseURL,
		baseURL,
	)
	path := filepath.Join(base, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}

func TestConfigInitAndValidate(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	out, err := runCLI(t, "config", "validate")
	if err != nil {
		t.Fatalf("config validate: %v", err)
	}
	requireContains(t, out, "Configuration valid")

	target := filepath.Join(t.TempDir(), "config.toml")
	out, err = runCLI(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")

	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}
}

func TestCatalogImportAndShow(t *testing.T) {
	cfgPath := writeTestConfig(t, "http://127.0.0.1:1")

	report := filepath.Join(t.TempDir(), "report.xml")
	reportXML := `<report>
  <item>
    <id>4658</id>
    <name>Fullmetal Alchemist: Brotherhood</name>
    <type>anime</type>
    <precision>TV</precision>
  </item>
</report>`
	if err := os.WriteFile(report, []byte(reportXML), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := runCLI(t, "--config", cfgPath, "catalog", "import", report)
	if err != nil {
		t.Fatalf("catalog import: %v", err)
	}
	requireContains(t, out, "Imported 1 catalog entries")

	out, err = runCLI(t, "--config", cfgPath, "catalog", "show", "4658")
	if err != nil {
		t.Fatalf("catalog show: %v", err)
	}
	requireContains(t, out, "Fullmetal Alchemist: Brotherhood")
}

func TestResolveCommand(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ann>
  <anime id="4658" name="Fullmetal Alchemist: Brotherhood">
    <release href="/encyclopedia/releases.php?id=4321" date="2010-05-25">Fullmetal Alchemist: Brotherhood - Part 1 (BD)</release>
  </anime>
</ann>`)
	}))
	defer srv.Close()

	cfgPath := writeTestConfig(t, srv.URL)

	out, err := runCLI(t, "--config", cfgPath, "resolve", "4658")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	requireContains(t, out, "4321")
	requireContains(t, out, "BD")
}

func TestResolveCommand_InvalidID(t *testing.T) {
	cfgPath := writeTestConfig(t, "http://127.0.0.1:1")

	if _, err := runCLI(t, "--config", cfgPath, "resolve", "abc"); err == nil {
		t.Fatal("expected error for invalid anime id")
	}
}

func TestCollectionFlow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ann>
  <anime id="4658" name="Fullmetal Alchemist: Brotherhood">
    <release href="/encyclopedia/releases.php?id=4321" date="2010-05-25">Fullmetal Alchemist: Brotherhood - Part 1 (BD)</release>
  </anime>
</ann>`)
	}))
	defer srv.Close()

	cfgPath := writeTestConfig(t, srv.URL)

	out, err := runCLI(t, "--config", cfgPath, "collection", "add", "4658", "4321")
	if err != nil {
		t.Fatalf("collection add: %v", err)
	}
	requireContains(t, out, "Added release 4321")

	out, err = runCLI(t, "--config", cfgPath, "collection", "list")
	if err != nil {
		t.Fatalf("collection list: %v", err)
	}
	requireContains(t, out, "4321")

	out, err = runCLI(t, "--config", cfgPath, "collection", "remove", "4321")
	if err != nil {
		t.Fatalf("collection remove: %v", err)
	}
	requireContains(t, out, "Removed release 4321")

	out, err = runCLI(t, "--config", cfgPath, "collection", "list")
	if err != nil {
		t.Fatalf("collection list: %v", err)
	}
	requireContains(t, out, "Collection is empty")
}

func TestCollectionAdd_UnknownRelease(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<ann><anime id="4658" name="Test"></anime></ann>`)
	}))
	defer srv.Close()

	cfgPath := writeTestConfig(t, srv.URL)

	if _, err := runCLI(t, "--config", cfgPath, "collection", "add", "4658", "999"); err == nil {
		t.Fatal("expected error for unknown release")
	}
}
