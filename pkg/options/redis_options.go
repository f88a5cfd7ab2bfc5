package options

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/pflag"
)

var _ IOptions = (*RedisOptions)(nil)

// RedisOptions configures the Redis pub/sub telemetry source.
type RedisOptions struct {
	Enabled  bool   `json:"enabled" mapstructure:"enabled"`
	URL      string `json:"url" mapstructure:"url"`
	Channel  string `json:"channel" mapstructure:"channel"`
	PoolSize int    `json:"pool-size" mapstructure:"pool-size"`
}

// NewRedisOptions returns disabled Redis options with local defaults.
func NewRedisOptions() *RedisOptions {
	return &RedisOptions{
		URL:      "redis://127.0.0.1:6379/0",
		Channel:  "dashboard:telemetry",
		PoolSize: 4,
	}
}

// Validate is used to parse and validate the parameters entered by the user at
// the command line when the program starts.
func (o *RedisOptions) Validate() []error {
	if o == nil || !o.Enabled {
		return nil
	}

	errs := []error{}

	u, err := url.Parse(o.URL)
	switch {
	case err != nil:
		errs = append(errs, fmt.Errorf("--redis.url: %w", err))
	case u.Scheme != "redis" && u.Scheme != "rediss" && u.Scheme != "unix":
		errs = append(errs, fmt.Errorf("--redis.url: unsupported scheme %q", u.Scheme))
	}
	if o.Channel == "" {
		errs = append(errs, errors.New("--redis.channel must not be empty"))
	}
	if o.PoolSize < 1 {
		errs = append(errs, errors.New("--redis.pool-size must be at least 1"))
	}

	return errs
}

// AddFlags adds flags for RedisOptions to the specified FlagSet.
func (o *RedisOptions) AddFlags(fs *pflag.FlagSet, prefixes ...string) {
	fs.BoolVar(&o.Enabled, "redis.enabled", o.Enabled, "Read telemetry from a Redis pub/sub channel.")
	fs.StringVar(&o.URL, "redis.url", o.URL, "Redis connection URL.")
	fs.StringVar(&o.Channel, "redis.channel", o.Channel, "Pub/sub channel carrying telemetry readings.")
	fs.IntVar(&o.PoolSize, "redis.pool-size", o.PoolSize, "Maximum number of Redis connections.")
}
