// Package testutil provides test doubles shared by the dashboard packages.
package testutil

import (
	"fmt"
	"sync"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

var _ core.IndicatorSink = (*CapturingSink)(nil)

// CapturingSink records every indicator call in order.
type CapturingSink struct {
	mu    sync.Mutex
	calls []string
}

func NewCapturingSink() *CapturingSink { return &CapturingSink{} }

func (s *CapturingSink) SetGaugeValue(name telemetry.Channel, value int) {
	s.record(fmt.Sprintf("gauge %s=%d", name, value))
}

func (s *CapturingSink) SetBarValue(name telemetry.Channel, value int) {
	s.record(fmt.Sprintf("bar %s=%d", name, value))
}

func (s *CapturingSink) SetLabelText(name telemetry.Channel, text string) {
	s.record(fmt.Sprintf("label %s=%s", name, text))
}

func (s *CapturingSink) RequestRedraw() {
	s.record("redraw")
}

// Calls returns a copy of the recorded calls.
func (s *CapturingSink) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.calls))
	copy(out, s.calls)
	return out
}

// Redraws counts RequestRedraw calls.
func (s *CapturingSink) Redraws() int {
	n := 0
	for _, c := range s.Calls() {
		if c == "redraw" {
			n++
		}
	}
	return n
}

// Reset forgets all recorded calls.
func (s *CapturingSink) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = nil
}

func (s *CapturingSink) record(call string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, call)
}
