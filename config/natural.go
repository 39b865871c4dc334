package config

import (
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"

	"github.com/aeroswipe/aeroswipe/utils"
)

// naturalScrollKey is the macOS global preference toggled by
// System Settings > Trackpad > Natural Scrolling.
const naturalScrollKey = "com.apple.swipescrolldirection"

// systemNaturalScroll resolves the default swipe polarity from the user's
// system preference. When the preference cannot be read (non-macOS hosts,
// missing key) natural scrolling is assumed, matching the macOS default.
func systemNaturalScroll() bool {
	path, err := globalPreferencesPath()
	if err != nil {
		return true
	}
	natural, err := readNaturalScroll(path)
	if err != nil {
		utils.Verbose("natural scroll preference unavailable, assuming natural: %v", err)
		return true
	}
	return natural
}

func globalPreferencesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "Library", "Preferences", ".GlobalPreferences.plist"), nil
}

// readNaturalScroll decodes the global preferences plist and returns the
// swipe-scroll-direction flag.
func readNaturalScroll(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}

	var prefs map[string]interface{}
	if _, err := plist.Unmarshal(data, &prefs); err != nil {
		return false, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	natural, ok := prefs[naturalScrollKey].(bool)
	if !ok {
		return false, fmt.Errorf("%s not present in %s", naturalScrollKey, path)
	}
	return natural, nil
}
