// Package config resolves the runtime settings the units CLI reads from
// its environment: which database file to load, which per-user overlay to
// layer on top of it, and which locale to select.
package config

import (
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"
)

// DefaultLocale is used when the LOCALE environment variable is unset.
const DefaultLocale = "en_US"

// defaultDatabaseName is the system-wide database file searched for
// along PATH-adjacent directories when UNITSFILE is not set.
const defaultDatabaseName = "definitions.units"

// userOverlayName is the per-user overlay file loaded, if present,
// after the system database.
const userOverlayName = ".units.dat"

// Settings is the resolved set of sources and locale a run should use.
type Settings struct {
	// DatabasePath is the primary database file to load.
	DatabasePath string
	// OverlayPath is an optional per-user file layered on top of
	// DatabasePath; empty if none was found.
	OverlayPath string
	Locale      string
}

// Resolve builds Settings from the process environment, honoring an
// explicit --units-file override (empty string means "none given").
func Resolve(explicitPath string) (Settings, error) {
	s := Settings{Locale: DefaultLocale}

	if loc := os.Getenv("LOCALE"); loc != "" {
		s.Locale = loc
	}

	switch {
	case explicitPath != "":
		s.DatabasePath = explicitPath
	case os.Getenv("UNITSFILE") != "":
		s.DatabasePath = os.Getenv("UNITSFILE")
	default:
		path, err := findSystemDatabase()
		if err != nil {
			return s, err
		}
		s.DatabasePath = path
	}

	if overlay, ok := findUserOverlay(); ok {
		s.OverlayPath = overlay
	}

	return s, nil
}

// findSystemDatabase searches PATH-adjacent directories (".." from each
// entry, then "/usr/share/units", then the working directory) for
// defaultDatabaseName.
func findSystemDatabase() (string, error) {
	candidates := []string{}
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		candidates = append(candidates, filepath.Join(filepath.Dir(dir), "share", "units", defaultDatabaseName))
	}
	candidates = append(candidates, filepath.Join("/usr", "share", "units", defaultDatabaseName))
	candidates = append(candidates, defaultDatabaseName)

	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, nil
		}
	}
	return defaultDatabaseName, nil
}

// findUserOverlay looks for ~/.units.dat using go-homedir so it works
// the same on platforms without a HOME environment variable.
func findUserOverlay() (string, bool) {
	home, err := homedir.Dir()
	if err != nil {
		return "", false
	}
	path := filepath.Join(home, userOverlayName)
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		return path, true
	}
	return "", false
}
