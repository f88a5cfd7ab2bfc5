package core

import (
	"context"

	"github.com/autopeer-io/dashboard/internal/dashboard/telemetry"
)

// IngestFunc hands one decoded reading to the dashboard.
// source identifies the adapter for metrics and logs.
type IngestFunc func(source string, r telemetry.Reading)

// Source is an adapter that turns external telemetry messages into readings.
type Source interface {
	Name() string

	// Run delivers readings to ingest until ctx is cancelled.
	// A nil error is returned on cancellation.
	Run(ctx context.Context, ingest IngestFunc) error
}
