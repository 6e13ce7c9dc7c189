// Package version holds the build version and the update check.
package version

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Version is the running build, set with -ldflags "-X ...version.Version=..."
var Version = "0.1.0-dev"

// CrateName is the name this program is published under on the registry
const CrateName = "crateview"

const checkTimeout = 5 * time.Second

// Source returns the newest published version of a crate
type Source interface {
	LatestVersion(ctx context.Context, name string) (string, error)
}

// Update describes the result of an update check
type Update struct {
	Available bool
	Current   string
	Latest    string
	URL       string
}

// CheckForUpdate asks the registry for the newest published version
func CheckForUpdate(ctx context.Context, src Source, currentVersion string) (Update, error) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	latest, err := src.LatestVersion(ctx, CrateName)
	if err != nil {
		return Update{}, fmt.Errorf("failed to fetch latest version: %w", err)
	}

	u := Update{
		Current: strings.TrimPrefix(currentVersion, "v"),
		Latest:  strings.TrimPrefix(latest, "v"),
		URL:     "https://crates.io/crates/" + CrateName,
	}
	u.Available = u.Latest != "" && isNewerVersion(u.Latest, u.Current)
	return u, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "0.0.28", "1.2.3", "0.0.29-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	// Pad shorter version with zeros
	maxLen := len(latestParts)
	if len(currentParts) > maxLen {
		maxLen = len(currentParts)
	}

	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	// Compare each part
	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	// Strip pre-release and build metadata (everything after - or +)
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			// If we can't parse a number, skip it
			continue
		}
		result = append(result, num)
	}

	return result
}
