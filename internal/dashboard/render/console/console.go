// Package console draws the indicators as a text table, for kiosks without a
// compositor and for development terminals.
package console

import (
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/gosuri/uitable"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	"github.com/autopeer-io/dashboard/internal/pkg/metrics"
)

// clearScreen moves the cursor home and erases the terminal.
const clearScreen = "\033[H\033[2J"

const placeholder = "-"

var _ core.IndicatorSink = (*Renderer)(nil)

// Renderer keeps the last value of every indicator and prints the whole
// table on each redraw.
type Renderer struct {
	mu     sync.Mutex
	out    io.Writer
	clear  bool
	values map[telemetry.Channel]string
	frames int
}

// New returns a renderer writing to out. With clear set every frame replaces
// the previous one, as on a fullscreen kiosk; otherwise frames are appended.
func New(out io.Writer, clear bool) *Renderer {
	return &Renderer{
		out:    out,
		clear:  clear,
		values: make(map[telemetry.Channel]string, len(telemetry.Channels)),
	}
}

func (r *Renderer) SetGaugeValue(name telemetry.Channel, value int) {
	r.set(name, strconv.Itoa(value))
}

func (r *Renderer) SetBarValue(name telemetry.Channel, value int) {
	r.set(name, strconv.Itoa(value)+"%")
}

func (r *Renderer) SetLabelText(name telemetry.Channel, text string) {
	r.set(name, text)
}

func (r *Renderer) RequestRedraw() {
	r.mu.Lock()
	defer r.mu.Unlock()

	table := uitable.New()
	table.MaxColWidth = 24
	table.AddRow("INDICATOR", "KIND", "VALUE")
	for _, ch := range telemetry.Channels {
		v, ok := r.values[ch]
		if !ok {
			v = placeholder
		}
		table.AddRow(ch.String(), ch.Kind().String(), v)
	}

	r.frames++
	if r.clear {
		fmt.Fprint(r.out, clearScreen)
	}
	fmt.Fprintln(r.out, table.String())
	metrics.RedrawsTotal.WithLabelValues("console").Inc()
}

// frameCount returns the number of tables printed so far.
func (r *Renderer) frameCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.frames
}

func (r *Renderer) set(name telemetry.Channel, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[name] = text
}
