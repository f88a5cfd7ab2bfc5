package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/autopeer-io/dashboard/internal/dashboard/controller"
	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
	"github.com/autopeer-io/dashboard/pkg/options"
)

type fakeBackend struct {
	ctrl    *controller.Controller
	ready   bool
	sources []string
	state   string
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{ctrl: controller.New(nil), ready: true, state: "visible"}
}

func (b *fakeBackend) Ingest(source string, r telemetry.Reading) controller.RenderInstruction {
	b.sources = append(b.sources, source)
	return b.ctrl.Update(r)
}

func (b *fakeBackend) Snapshot() telemetry.Snapshot { return b.ctrl.Current() }

func (b *fakeBackend) Display(_ context.Context, event string) (string, error) {
	if b.state == "closed" {
		return b.state, errors.New(`event ` + event + ` inappropriate in current state closed`)
	}
	switch event {
	case "hide":
		b.state = "hidden"
	case "show":
		b.state = "visible"
	case "close":
		b.state = "closed"
	}
	return b.state, nil
}

func (b *fakeBackend) Ready() bool { return b.ready }

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, strings.NewReader(body)))
	return rec
}

func TestProbes(t *testing.T) {
	b := newFakeBackend()
	r := NewRouter(b, nil, time.Second)

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, do(t, r, http.MethodGet, "/readyz", "").Code)

	b.ready = false
	assert.Equal(t, http.StatusServiceUnavailable, do(t, r, http.MethodGet, "/readyz", "").Code)

	rec := do(t, r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestPostReadings(t *testing.T) {
	b := newFakeBackend()
	r := NewRouter(b, nil, time.Second)

	rec := do(t, r, http.MethodPost, "/api/v1/readings", `{"velocity":120,"gearbox_state":"3","fuel_level":200}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"velocity":120,"gearbox_state":"3"}`, rec.Body.String())
	assert.Equal(t, []string{SourceName}, b.sources)

	rec = do(t, r, http.MethodGet, "/api/v1/snapshot", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"velocity":120,"motor_speed":0,"gearbox_state":"3","fuel_level":0,"throttle_level":0,"brake_level":0,"tcs_state":1}`, rec.Body.String())
}

func TestPostMalformedReading(t *testing.T) {
	b := newFakeBackend()
	r := NewRouter(b, nil, time.Second)

	rec := do(t, r, http.MethodPost, "/api/v1/readings", `[1,2,3]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, b.sources)

	rec = do(t, r, http.MethodPost, "/api/v1/readings", `{"velocity":`+strings.Repeat("1", maxPayloadBytes)+`}`)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestDisplayActions(t *testing.T) {
	b := newFakeBackend()
	r := NewRouter(b, nil, time.Second)

	rec := do(t, r, http.MethodPost, "/api/v1/display/hide", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"state":"hidden"}`, rec.Body.String())

	assert.Equal(t, http.StatusOK, do(t, r, http.MethodPost, "/api/v1/display/close", "").Code)
	assert.Equal(t, http.StatusConflict, do(t, r, http.MethodPost, "/api/v1/display/show", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, r, http.MethodPost, "/api/v1/display/minimize", "").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(t, r, http.MethodGet, "/api/v1/display/show", "").Code)
}

func TestWebsocketMount(t *testing.T) {
	called := false
	ws := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		called = true
		w.WriteHeader(http.StatusSwitchingProtocols)
	})
	r := NewRouter(newFakeBackend(), ws, time.Second)

	do(t, r, http.MethodGet, "/ws", "")
	assert.True(t, called)
}

func TestServeStopsOnCancel(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewServer(&options.HttpOptions{Network: "tcp", Addr: lis.Addr().String(), Timeout: time.Second}, newFakeBackend(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, lis) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + lis.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.NoError(t, <-done)
}
