// Package ws streams indicator frames to browser dashboards over websockets.
package ws

import (
	"encoding/json"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/autopeer-io/dashboard/internal/dashboard/core"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	"github.com/autopeer-io/dashboard/internal/pkg/metrics"
	"github.com/autopeer-io/dashboard/pkg/log"
)

const (
	defaultBufferSize = 16
	writeWait         = 5 * time.Second
)

var _ core.IndicatorSink = (*Broadcaster)(nil)

// Frame is the JSON document pushed to clients. Gauge and bar values are
// numbers, label values are their display text.
type Frame struct {
	Seq        uint64                    `json:"seq"`
	Indicators map[telemetry.Channel]any `json:"indicators"`
}

// Broadcaster collects the indicator updates of one cycle and sends them as
// a single frame when the redraw is requested.
type Broadcaster struct {
	upgrader websocket.Upgrader
	bufSize  int

	mu      sync.Mutex
	seq     uint64
	pending map[telemetry.Channel]any
	state   map[telemetry.Channel]any
	clients map[string]*client
}

type client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

// NewBroadcaster returns a broadcaster whose clients may lag bufSize frames
// behind before they are dropped. A non-positive size picks the default.
func NewBroadcaster(bufSize int) *Broadcaster {
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}
	return &Broadcaster{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
		bufSize: bufSize,
		pending: make(map[telemetry.Channel]any),
		state:   make(map[telemetry.Channel]any),
		clients: make(map[string]*client),
	}
}

func (b *Broadcaster) SetGaugeValue(name telemetry.Channel, value int) { b.set(name, value) }

func (b *Broadcaster) SetBarValue(name telemetry.Channel, value int) { b.set(name, value) }

func (b *Broadcaster) SetLabelText(name telemetry.Channel, text string) { b.set(name, text) }

// RequestRedraw broadcasts the pending updates. Cycles that changed nothing
// send no frame.
func (b *Broadcaster) RequestRedraw() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.pending) == 0 {
		return
	}

	b.seq++
	payload, err := json.Marshal(Frame{Seq: b.seq, Indicators: b.pending})
	b.pending = make(map[telemetry.Channel]any)
	if err != nil {
		log.Error(err, "Failed to encode websocket frame")
		return
	}

	for id, c := range b.clients {
		select {
		case c.send <- payload:
		default:
			log.Warn("Dropping slow websocket client", "client", id)
			b.removeLocked(c)
		}
	}
	metrics.RedrawsTotal.WithLabelValues("websocket").Inc()
}

// ServeHTTP upgrades the request and registers the connection. The first
// frame a client receives holds every known indicator.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("Websocket upgrade failed", "remote", r.RemoteAddr, "error", err.Error())
		return
	}

	c := &client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, b.bufSize),
	}

	b.mu.Lock()
	payload, err := json.Marshal(Frame{Seq: b.seq, Indicators: maps.Clone(b.state)})
	if err != nil {
		b.mu.Unlock()
		log.Error(err, "Failed to encode websocket frame")
		_ = conn.Close()
		return
	}
	c.send <- payload
	b.clients[c.id] = c
	n := len(b.clients)
	b.mu.Unlock()

	metrics.WebsocketClients.Inc()
	log.Info("Websocket client attached", "client", c.id, "remote", r.RemoteAddr, "clients", n)

	go b.writePump(c)
	go b.readPump(c)
}

// clientCount returns the number of attached clients.
func (b *Broadcaster) clientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every client.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, c := range b.clients {
		b.removeLocked(c)
	}
}

func (b *Broadcaster) set(name telemetry.Channel, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending[name] = v
	b.state[name] = v
}

func (b *Broadcaster) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removeLocked(c)
}

func (b *Broadcaster) removeLocked(c *client) {
	if _, ok := b.clients[c.id]; !ok {
		return
	}
	delete(b.clients, c.id)
	c.once.Do(func() { close(c.send) })
	metrics.WebsocketClients.Dec()
	log.Info("Websocket client detached", "client", c.id)
}

func (b *Broadcaster) writePump(c *client) {
	defer c.conn.Close()

	for payload := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Debug("Websocket write failed", "client", c.id, "error", err.Error())
			b.remove(c)
			return
		}
	}

	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

// readPump discards inbound messages and notices when the peer goes away.
func (b *Broadcaster) readPump(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			b.remove(c)
			return
		}
	}
}
