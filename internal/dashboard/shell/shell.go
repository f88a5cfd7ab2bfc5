// Package shell models the dashboard window lifecycle: the main view can be
// shown, hidden or closed from the keyboard or the HTTP API.
package shell

import (
	"context"
	"sync"

	"github.com/looplab/fsm"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	fsmutil "github.com/autopeer-io/dashboard/internal/pkg/util/fsm"
	"github.com/autopeer-io/dashboard/pkg/log"
)

const (
	StateVisible = "visible"
	StateHidden  = "hidden"
	StateClosed  = "closed"

	EventShow  = "show"
	EventHide  = "hide"
	EventClose = "close"
)

// KeyBindings maps key presses to shell events: Q quits, W shows the main
// view and E hides it.
var KeyBindings = map[rune]string{
	'q': EventClose,
	'w': EventShow,
	'e': EventHide,
}

// Repaint pushes the complete indicator state to sink and ends with one
// redraw. It must not interleave with a running update cycle.
type Repaint func(sink core.IndicatorSink)

// Shell owns the lifecycle state machine and the redraw gates.
type Shell struct {
	fsm *fsm.FSM

	mu      sync.Mutex
	gates   []*gate
	onClose func()
	repaint Repaint
}

// New returns a shell in the visible state. onClose runs once when the
// shell enters the closed state. repaint refreshes each gated sink when
// the view is shown again; without it the sink is only asked to redraw.
// Both may be nil.
func New(onClose func(), repaint Repaint) *Shell {
	if repaint == nil {
		repaint = func(sink core.IndicatorSink) { sink.RequestRedraw() }
	}
	s := &Shell{onClose: onClose, repaint: repaint}

	events := fsm.Events{
		{Name: EventShow, Src: []string{StateVisible, StateHidden}, Dst: StateVisible},
		{Name: EventHide, Src: []string{StateVisible, StateHidden}, Dst: StateHidden},
		{Name: EventClose, Src: []string{StateVisible, StateHidden}, Dst: StateClosed},
	}

	callbacks := fsm.Callbacks{
		"enter_" + StateVisible: fsmutil.WrapEvent(s.actionEnterVisible),
		"enter_" + StateHidden:  fsmutil.WrapEvent(s.actionEnterHidden),
		"enter_" + StateClosed:  fsmutil.WrapEvent(s.actionEnterClosed),
	}

	s.fsm = fsm.NewFSM(StateVisible, events, callbacks)
	return s
}

// Fire triggers event. Re-entering the current state is not an error;
// events after close are rejected with a looplab/fsm error.
func (s *Shell) Fire(ctx context.Context, event string) error {
	err := s.fsm.Event(ctx, event)
	if err != nil && fsmutil.IsNoop(err) {
		return nil
	}
	return err
}

// State returns the current lifecycle state.
func (s *Shell) State() string {
	return s.fsm.Current()
}

// Visible reports whether the main view is shown.
func (s *Shell) Visible() bool {
	return s.fsm.Is(StateVisible)
}

// Gate wraps sink so that redraws only reach it while the view is visible.
// Indicator values always pass through, so the view is current when shown.
func (s *Shell) Gate(sink core.IndicatorSink) core.IndicatorSink {
	g := &gate{shell: s, IndicatorSink: sink}
	s.mu.Lock()
	s.gates = append(s.gates, g)
	s.mu.Unlock()
	return g
}

func (s *Shell) actionEnterVisible(_ context.Context, e *fsm.Event) error {
	log.Info("Main view shown", "from", e.Src)
	s.mu.Lock()
	gates := append([]*gate(nil), s.gates...)
	s.mu.Unlock()

	for _, g := range gates {
		s.repaint(g.IndicatorSink)
	}
	return nil
}

func (s *Shell) actionEnterHidden(_ context.Context, e *fsm.Event) error {
	log.Info("Main view hidden", "from", e.Src)
	return nil
}

func (s *Shell) actionEnterClosed(_ context.Context, e *fsm.Event) error {
	log.Info("Dashboard window closed", "from", e.Src)
	if s.onClose != nil {
		s.onClose()
	}
	return nil
}

type gate struct {
	shell *Shell
	core.IndicatorSink
}

func (g *gate) RequestRedraw() {
	if g.shell.Visible() {
		g.IndicatorSink.RequestRedraw()
	}
}
