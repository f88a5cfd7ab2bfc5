package core

// HAL describes the platform the dashboard runs on. It is the outbound port
// used to choose between kiosk (fullscreen) and windowed rendering.
type HAL interface {
	// Model returns a human readable board or host model.
	Model() string

	// Embedded reports whether this is the in-vehicle single-board computer.
	Embedded() bool

	// ScreenSize returns the framebuffer size in pixels.
	ScreenSize() (width, height int)
}
