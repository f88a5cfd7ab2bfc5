package grpc

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadlineOf(ctx context.Context, _ any) (any, error) {
	d, ok := ctx.Deadline()
	if !ok {
		return nil, nil
	}
	return time.Until(d), nil
}

func TestUnaryServerTimeoutAddsDeadline(t *testing.T) {
	got, err := UnaryServerTimeoutInterceptor(time.Minute)(context.Background(), nil, nil, deadlineOf)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.InDelta(t, time.Minute, got.(time.Duration), float64(time.Second))
}

func TestUnaryServerTimeoutKeepsCallerDeadline(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	got, err := UnaryServerTimeoutInterceptor(time.Hour)(ctx, nil, nil, deadlineOf)
	require.NoError(t, err)
	assert.LessOrEqual(t, got.(time.Duration), time.Second)
}

func TestUnaryServerTimeoutDefault(t *testing.T) {
	got, err := UnaryServerTimeoutInterceptor(0)(context.Background(), nil, nil, deadlineOf)
	require.NoError(t, err)
	assert.InDelta(t, DefaultRPCTimeout, got.(time.Duration), float64(time.Second))
}
