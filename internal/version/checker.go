// Package version holds the release number and compares it with the backend's.
package version

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Current is the release of this build
const Current = "0.1.0"

const checkTimeout = 5 * time.Second

// CheckBackend asks baseURL for its release (GET /api/v1/version) and reports
// whether it is ahead of current. The returned version has no "v" prefix.
func CheckBackend(ctx context.Context, baseURL, current string) (bool, string, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	url := strings.TrimRight(baseURL, "/") + "/api/v1/version"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("backend version: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("backend version: %s", resp.Status)
	}

	var body struct {
		Version string `json:"version"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return false, "", fmt.Errorf("backend version: %w", err)
	}

	backend := strings.TrimPrefix(body.Version, "v")
	if backend == "" {
		return false, "", nil
	}
	return IsNewer(backend, current), backend, nil
}

// IsNewer reports whether release a is ahead of release b
func IsNewer(a, b string) bool {
	return Compare(a, b) > 0
}

// Compare orders two dotted releases numerically: -1, 0 or 1.
// Missing components count as 0; "-pre" and "+build" suffixes are ignored.
func Compare(a, b string) int {
	x, y := components(a), components(b)
	for i := 0; i < max(len(x), len(y)); i++ {
		var p, q int
		if i < len(x) {
			p = x[i]
		}
		if i < len(y) {
			q = y[i]
		}
		switch {
		case p > q:
			return 1
		case p < q:
			return -1
		}
	}
	return 0
}

func components(release string) []int {
	release = strings.TrimPrefix(release, "v")
	if i := strings.IndexAny(release, "-+"); i >= 0 {
		release = release[:i]
	}

	var out []int
	for _, field := range strings.Split(release, ".") {
		n, err := strconv.Atoi(field)
		if err != nil {
			n = 0
		}
		out = append(out, n)
	}
	return out
}
