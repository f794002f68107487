package preflight

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sys/unix"

	"anishelf/internal/library"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckSource verifies that the encyclopedia host answers HTTP requests.
// Any response counts as reachable; the check is about connectivity, not
// endpoint semantics.
func CheckSource(ctx context.Context, baseURL string) Result {
	const name = "Metadata source"

	base := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if base == "" {
		return Result{Name: name, Detail: "missing base url"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := &http.Client{Timeout: 5 * time.Second}
	req, err := http.NewRequestWithContext(checkCtx, http.MethodGet, base+"/", nil)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("reachability check failed (%v)", err)}
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("unreachable (%v)", err)}
	}
	defer resp.Body.Close()

	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("reachable (%d)", resp.StatusCode)}
}

// CheckDatabase verifies that the library database opens and passes SQLite's
// integrity check.
func CheckDatabase(ctx context.Context, store *library.Store) Result {
	const name = "Database"

	if store == nil {
		return Result{Name: name, Detail: "store unavailable"}
	}

	checkCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	ok, err := store.IntegrityCheck(checkCtx)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("integrity check failed (%v)", err)}
	}
	if !ok {
		return Result{Name: name, Detail: fmt.Sprintf("%s (integrity check reported corruption)", store.Path())}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (integrity ok)", store.Path())}
}
