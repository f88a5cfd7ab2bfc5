package options

import (
	"fmt"

	"github.com/spf13/pflag"
	"k8s.io/apimachinery/pkg/util/sets"
)

var _ IOptions = (*DisplayOptions)(nil)

// Display modes.
const (
	DisplayModeAuto       = "auto"
	DisplayModeFullscreen = "fullscreen"
	DisplayModeWindowed   = "windowed"
)

var displayModes = sets.New(DisplayModeAuto, DisplayModeFullscreen, DisplayModeWindowed)

// DisplayOptions controls the local rendering surfaces.
type DisplayOptions struct {
	// Mode is auto, fullscreen or windowed. Auto picks fullscreen on embedded boards.
	Mode string `json:"mode" mapstructure:"mode"`

	// Console prints the indicator table on stdout.
	Console bool `json:"console" mapstructure:"console"`

	// Keyboard reads Q/W/E key presses from stdin.
	Keyboard bool `json:"keyboard" mapstructure:"keyboard"`

	// WebsocketBuffer is how many frames a websocket client may lag behind.
	WebsocketBuffer int `json:"websocket-buffer" mapstructure:"websocket-buffer"`
}

// NewDisplayOptions returns the default display options.
func NewDisplayOptions() *DisplayOptions {
	return &DisplayOptions{
		Mode:            DisplayModeAuto,
		Console:         true,
		WebsocketBuffer: 16,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *DisplayOptions) Validate() []error {
	if o == nil {
		return nil
	}

	var errs []error

	if !displayModes.Has(o.Mode) {
		errs = append(errs, fmt.Errorf("--display.mode must be one of %v, got %q", sets.List(displayModes), o.Mode))
	}
	if o.WebsocketBuffer < 1 {
		errs = append(errs, fmt.Errorf("--display.websocket-buffer must be at least 1, got %d", o.WebsocketBuffer))
	}

	return errs
}

// AddFlags adds flags for DisplayOptions to the specified FlagSet.
func (o *DisplayOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.StringVar(&o.Mode, "display.mode", o.Mode, "Window mode: auto, fullscreen or windowed.")
	fs.BoolVar(&o.Console, "display.console", o.Console, "Draw the indicators as a table on stdout.")
	fs.BoolVar(&o.Keyboard, "display.keyboard", o.Keyboard, "Read Q (close), W (show) and E (hide) from stdin.")
	fs.IntVar(&o.WebsocketBuffer, "display.websocket-buffer", o.WebsocketBuffer, "Frames a websocket client may lag behind before it is dropped.")
}
