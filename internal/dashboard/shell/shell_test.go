package shell

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/dashboard/internal/dashboard/controller"
	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	"github.com/autopeer-io/dashboard/internal/dashboard/testutil"
)

func TestLifecycle(t *testing.T) {
	ctx := context.Background()
	closed := 0
	s := New(func() { closed++ }, nil)

	assert.Equal(t, StateVisible, s.State())

	require.NoError(t, s.Fire(ctx, EventHide))
	assert.Equal(t, StateHidden, s.State())
	assert.False(t, s.Visible())

	require.NoError(t, s.Fire(ctx, EventHide), "hiding twice is a no-op")

	require.NoError(t, s.Fire(ctx, EventShow))
	assert.True(t, s.Visible())

	require.NoError(t, s.Fire(ctx, EventClose))
	assert.Equal(t, StateClosed, s.State())
	assert.Equal(t, 1, closed)

	assert.Error(t, s.Fire(ctx, EventShow))
	assert.Error(t, s.Fire(ctx, EventClose))
	assert.Equal(t, 1, closed)
}

func TestGateSuppressesRedrawWhileHidden(t *testing.T) {
	ctx := context.Background()
	s := New(nil, nil)
	sink := testutil.NewCapturingSink()
	g := s.Gate(sink)

	require.NoError(t, s.Fire(ctx, EventHide))
	g.SetGaugeValue(telemetry.Velocity, 40)
	g.RequestRedraw()

	assert.Equal(t, []string{"gauge velocity=40"}, sink.Calls())

	require.NoError(t, s.Fire(ctx, EventShow))
	assert.Equal(t, []string{"gauge velocity=40", "redraw"}, sink.Calls(), "showing repaints once")

	g.RequestRedraw()
	assert.Equal(t, 2, sink.Redraws())
}

func TestShowWhenVisibleDoesNotRepaint(t *testing.T) {
	s := New(nil, nil)
	sink := testutil.NewCapturingSink()
	s.Gate(sink)

	require.NoError(t, s.Fire(context.Background(), EventShow))
	assert.Empty(t, sink.Calls())
}

func TestReadKeys(t *testing.T) {
	closed := false
	s := New(func() { closed = true }, nil)

	err := s.ReadKeys(context.Background(), strings.NewReader("e\nxW\nQ\nw\n"))
	require.NoError(t, err)

	assert.True(t, closed)
	assert.Equal(t, StateClosed, s.State(), "keys after close are not read")
}

func TestReadKeysStopsAtEOF(t *testing.T) {
	s := New(nil, nil)
	require.NoError(t, s.ReadKeys(context.Background(), strings.NewReader("e")))
	assert.Equal(t, StateHidden, s.State())
}

func TestShowRepaintsThroughHook(t *testing.T) {
	ctx := context.Background()
	var painted []core.IndicatorSink
	s := New(nil, func(sink core.IndicatorSink) { painted = append(painted, sink) })

	inner := testutil.NewCapturingSink()
	s.Gate(inner)

	require.NoError(t, s.Fire(ctx, EventHide))
	require.NoError(t, s.Fire(ctx, EventShow))

	require.Len(t, painted, 1)
	assert.Same(t, inner, painted[0], "the hook gets the wrapped sink, not the gate")
	assert.Empty(t, inner.Calls())
}

// pairSink flags redraws that see velocity and motor speed from different
// update cycles.
type pairSink struct {
	mu       sync.Mutex
	velocity int
	motor    int
	redraws  int
	torn     []string
}

func (p *pairSink) SetGaugeValue(name telemetry.Channel, value int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch name {
	case telemetry.Velocity:
		p.velocity = value
	case telemetry.MotorSpeed:
		p.motor = value
	}
}

func (p *pairSink) SetBarValue(telemetry.Channel, int) {}

func (p *pairSink) SetLabelText(telemetry.Channel, string) {}

func (p *pairSink) RequestRedraw() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.redraws++
	if p.velocity != p.motor {
		p.torn = append(p.torn, fmt.Sprintf("velocity=%d motor_speed=%d", p.velocity, p.motor))
	}
}

func TestShowNeverDrawsHalfAppliedCycle(t *testing.T) {
	ctx := context.Background()
	sink := &pairSink{}

	var ctrl *controller.Controller
	s := New(nil, func(gated core.IndicatorSink) { ctrl.Replay(gated) })
	ctrl = controller.New(s.Gate(sink))

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := range 5000 {
			n := i % 50
			ctrl.Update(telemetry.Reading{telemetry.Velocity: n, telemetry.MotorSpeed: n})
		}
	}()
	go func() {
		defer wg.Done()
		for range 1000 {
			assert.NoError(t, s.Fire(ctx, EventHide))
			assert.NoError(t, s.Fire(ctx, EventShow))
		}
	}()
	wg.Wait()

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Positive(t, sink.redraws)
	assert.Empty(t, sink.torn)
}
