//go:build !linux

package hal

import (
	"os"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
)

// MockHAL is the development desktop. It never reports an embedded board.
type MockHAL struct{}

func NewHAL() core.HAL {
	return &MockHAL{}
}

func (h *MockHAL) Model() string {
	if m := os.Getenv("CPEER_DISPLAY_MODEL"); m != "" {
		return m
	}
	return "desktop-dev"
}

func (h *MockHAL) Embedded() bool {
	return false
}

func (h *MockHAL) ScreenSize() (int, int) {
	return DefaultWidth, DefaultHeight
}
