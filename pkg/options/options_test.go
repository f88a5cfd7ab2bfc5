package options

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		addr    string
		wantErr bool
	}{
		{"0.0.0.0:8080", false},
		{":8080", false},
		{"localhost:8091", false},
		{"[::1]:9000", false},
		{"8080", true},
		{"example:8080", true},
		{"0.0.0.0:http", true},
		{"0.0.0.0:70000", true},
	}
	for _, tt := range tests {
		err := ValidateAddress(tt.addr)
		if tt.wantErr {
			assert.Error(t, err, tt.addr)
		} else {
			assert.NoError(t, err, tt.addr)
		}
	}
}

func TestDefaultsAreValid(t *testing.T) {
	groups := []IOptions{
		NewMqttOptions(),
		NewHttpOptions(),
		NewGrpcOptions(),
		NewRedisOptions(),
		NewDisplayOptions(),
	}
	for _, o := range groups {
		assert.Empty(t, o.Validate(), "%T", o)
	}

	r := NewRedisOptions()
	r.Enabled = true
	assert.Empty(t, r.Validate())
}

func TestMqttOptionsValidate(t *testing.T) {
	o := NewMqttOptions()
	o.Broker = "localhost"
	o.QoS = 3
	o.KeepAlive = 0
	o.TopicRoot = ""
	assert.Len(t, o.Validate(), 4)

	o.Enabled = false
	assert.Empty(t, o.Validate(), "disabled groups are not validated")
}

func TestRedisOptionsValidate(t *testing.T) {
	o := NewRedisOptions()
	o.Enabled = true
	o.URL = "http://127.0.0.1:6379"
	o.Channel = ""
	o.PoolSize = 0
	assert.Len(t, o.Validate(), 3)
}

func TestDisplayOptionsValidate(t *testing.T) {
	o := NewDisplayOptions()
	o.Mode = "borderless"
	o.WebsocketBuffer = 0
	assert.Len(t, o.Validate(), 2)
}

func TestAddFlags(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	m, h, g, r, d := NewMqttOptions(), NewHttpOptions(), NewGrpcOptions(), NewRedisOptions(), NewDisplayOptions()
	for _, o := range []IOptions{m, h, g, r, d} {
		o.AddFlags(fs)
	}

	require.NoError(t, fs.Parse([]string{
		"--mqtt.broker=ssl://broker:8883",
		"--mqtt.keep-alive=30s",
		"--http.addr=127.0.0.1:9090",
		"--grpc.enabled=false",
		"--redis.enabled",
		"--redis.channel=cluster",
		"--display.mode=fullscreen",
		"--display.keyboard",
	}))

	assert.Equal(t, "ssl://broker:8883", m.Broker)
	assert.Equal(t, 30*time.Second, m.KeepAlive)
	assert.Equal(t, "127.0.0.1:9090", h.Addr)
	assert.False(t, g.Enabled)
	assert.True(t, r.Enabled)
	assert.Equal(t, "cluster", r.Channel)
	assert.Equal(t, DisplayModeFullscreen, d.Mode)
	assert.True(t, d.Keyboard)

	cfg := m.ToClientConfig()
	assert.EqualValues(t, 30, cfg.KeepAlive)
	assert.Equal(t, "ssl://broker:8883", cfg.BrokerURL)
}
