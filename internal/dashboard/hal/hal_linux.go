//go:build linux

package hal

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/pkg/log"
)

// LinuxHAL reads board information from procfs and sysfs.
type LinuxHAL struct {
	root string
}

func NewHAL() core.HAL {
	return newLinuxHAL("/")
}

func newLinuxHAL(root string) *LinuxHAL {
	return &LinuxHAL{root: root}
}

func (h *LinuxHAL) Model() string {
	data, err := os.ReadFile(filepath.Join(h.root, "proc/device-tree/model"))
	if err != nil {
		return "generic-linux"
	}
	// device-tree strings are NUL terminated
	return strings.TrimRight(strings.TrimSpace(string(data)), "\x00")
}

func (h *LinuxHAL) Embedded() bool {
	return strings.Contains(h.Model(), "Raspberry Pi")
}

func (h *LinuxHAL) ScreenSize() (int, int) {
	data, err := os.ReadFile(filepath.Join(h.root, "sys/class/graphics/fb0/virtual_size"))
	if err != nil {
		return DefaultWidth, DefaultHeight
	}

	w, hgt, ok := parseVirtualSize(string(data))
	if !ok {
		log.Warn("Unparseable framebuffer size, using default", "raw", strings.TrimSpace(string(data)))
		return DefaultWidth, DefaultHeight
	}
	return w, hgt
}

// parseVirtualSize parses the "800,480" format of fb0/virtual_size.
func parseVirtualSize(s string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	w, err1 := strconv.Atoi(parts[0])
	h, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || w <= 0 || h <= 0 {
		return 0, 0, false
	}
	return w, h, true
}
