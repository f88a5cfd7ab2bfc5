package hal

import (
	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/pkg/options"
)

// Default screen geometry of the cluster's 5" panel.
const (
	DefaultWidth  = 800
	DefaultHeight = 480
)

// Display modes, as accepted by --display.mode.
const (
	ModeAuto       = options.DisplayModeAuto
	ModeFullscreen = options.DisplayModeFullscreen
	ModeWindowed   = options.DisplayModeWindowed
)

// ResolveMode turns "auto" into a concrete mode for the detected platform.
// Embedded boards run as a fullscreen kiosk, everything else windowed.
func ResolveMode(mode string, h core.HAL) string {
	if mode != ModeAuto {
		return mode
	}
	if h.Embedded() {
		return ModeFullscreen
	}
	return ModeWindowed
}
