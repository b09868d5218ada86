// Package paths provides the well-known filesystem locations and configuration keys
// shared by the home views components.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// Theme descriptor locations
const (
	// CurrentThemeDir is the directory of the currently selected theme
	CurrentThemeDir = "/etc/hildon/theme"

	// DefaultThemeDir is the directory of the stock theme shipped with the system
	DefaultThemeDir = "/usr/share/themes/default"

	// CurrentThemeBackgrounds lists per-view backgrounds of the current theme
	CurrentThemeBackgrounds = CurrentThemeDir + "/backgrounds/theme_bg.desktop"

	// DefaultThemeBackgrounds lists per-view backgrounds of the default theme
	DefaultThemeBackgrounds = DefaultThemeDir + "/backgrounds/theme_bg.desktop"
)

// Process state
const (
	StampDir  = "/tmp/osso-appl-states/hildon-desktop"
	StampFile = StampDir + "/hildon-home.stamp"
)

// Configuration keys
const (
	keyRoot = "/apps/osso/hildon-desktop"

	// ActiveViewsKey holds the ordered integer list of active views
	ActiveViewsKey = keyRoot + "/views/active"
)

// MaxViews is the number of home views
const MaxViews = 4

// BackgroundKey returns the override key for a view's background image
func BackgroundKey(view int) string {
	return fmt.Sprintf("%s/views/%d/bg-image", keyRoot, view)
}

// DescriptorKey returns the theme descriptor key naming a view's background
func DescriptorKey(view int) string {
	return fmt.Sprintf("X-File%d", view)
}

// ValidView reports whether view is a 1-based index in range
func ValidView(view int) bool {
	return view > 0 && view <= MaxViews
}

// UserConfigDir returns the per-user hildon-desktop configuration directory
func UserConfigDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		dir = filepath.Join(os.TempDir(), ".config")
	}
	return filepath.Join(dir, "hildon-desktop")
}

// DefaultStorePath returns the default location of the views configuration file
func DefaultStorePath() string {
	return filepath.Join(UserConfigDir(), "views.toml")
}
