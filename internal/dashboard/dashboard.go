// Package dashboard assembles the instrument cluster: telemetry sources feed
// the controller, which drives the renderers behind the display shell.
package dashboard

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/autopeer-io/dashboard/internal/dashboard/controller"
	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/render/ws"
	"github.com/autopeer-io/dashboard/internal/dashboard/server"
	"github.com/autopeer-io/dashboard/internal/dashboard/shell"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	"github.com/autopeer-io/dashboard/internal/pkg/metrics"
	"github.com/autopeer-io/dashboard/pkg/log"
)

// unknownChannel labels rejections of keys that name no channel.
const unknownChannel = "unknown"

// Dashboard is one running cluster display.
type Dashboard struct {
	ctrl        *controller.Controller
	sink        core.IndicatorSink
	shell       *shell.Shell
	broadcaster *ws.Broadcaster
	sources     []core.Source
	servers     *server.Manager
	keys        io.Reader

	ready     atomic.Bool
	closed    chan struct{}
	closeOnce sync.Once
}

// Ingest applies one reading and records what was rejected. It never fails:
// invalid channel values simply keep their previous state.
func (d *Dashboard) Ingest(source string, r telemetry.Reading) controller.RenderInstruction {
	start := time.Now()
	ri := d.ctrl.Update(r)
	metrics.UpdateLatency.Observe(time.Since(start).Seconds())
	metrics.ReadingsTotal.WithLabelValues(source).Inc()

	rejected := ri.Rejected(r)
	if len(rejected) == 0 {
		return ri
	}
	for _, ch := range rejected {
		label := unknownChannel
		if ch.Known() {
			label = ch.String()
		}
		metrics.ChannelRejectedTotal.WithLabelValues(label).Inc()
	}
	log.Debug("Channel values rejected", "source", source, "channels", rejected)
	return ri
}

// Snapshot returns a copy of the current indicator state.
func (d *Dashboard) Snapshot() telemetry.Snapshot {
	return d.ctrl.Current()
}

// Display fires a shell event and returns the state it led to.
func (d *Dashboard) Display(ctx context.Context, event string) (string, error) {
	err := d.shell.Fire(ctx, event)
	return d.shell.State(), err
}

// Ready reports whether Run has started every component.
func (d *Dashboard) Ready() bool {
	return d.ready.Load()
}

// Run paints the initial state, then serves until ctx is done or the shell
// is closed. A source that fails is logged and the others keep running.
func (d *Dashboard) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer d.broadcaster.Close()

	d.ctrl.Replay(d.sink)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		select {
		case <-d.closed:
			log.Info("Display closed, shutting down")
			cancel()
		case <-ctx.Done():
		}
		return nil
	})

	g.Go(func() error {
		return d.servers.Start(ctx)
	})

	for _, src := range d.sources {
		g.Go(func() error {
			if err := src.Run(ctx, d.ingest); err != nil && !errors.Is(err, context.Canceled) {
				log.Error(err, "Telemetry source stopped", "source", src.Name())
			}
			return nil
		})
	}

	if d.keys != nil {
		g.Go(func() error {
			return d.shell.ReadKeys(ctx, d.keys)
		})
	}

	d.ready.Store(true)
	defer d.ready.Store(false)
	log.Info("Dashboard running", "sources", len(d.sources))

	return g.Wait()
}

func (d *Dashboard) ingest(source string, r telemetry.Reading) {
	d.Ingest(source, r)
}

// repaint refreshes a renderer under the controller lock, so a view shown
// mid-update still draws whole cycles only.
func (d *Dashboard) repaint(sink core.IndicatorSink) {
	d.ctrl.Replay(sink)
}

func (d *Dashboard) requestClose() {
	d.closeOnce.Do(func() { close(d.closed) })
}
