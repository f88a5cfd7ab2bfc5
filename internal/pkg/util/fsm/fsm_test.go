package fsm

import (
	"context"
	"errors"
	"testing"

	"github.com/looplab/fsm"
	"github.com/stretchr/testify/assert"
)

func TestWrapEventStoresError(t *testing.T) {
	boom := errors.New("boom")
	f := fsm.NewFSM("a",
		fsm.Events{{Name: "go", Src: []string{"a"}, Dst: "b"}},
		fsm.Callbacks{
			"enter_b": WrapEvent(func(context.Context, *fsm.Event) error { return boom }),
		},
	)

	err := f.Event(context.Background(), "go")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "b", f.Current())
}

func TestIsNoop(t *testing.T) {
	f := fsm.NewFSM("a", fsm.Events{{Name: "stay", Src: []string{"a"}, Dst: "a"}}, nil)

	assert.True(t, IsNoop(f.Event(context.Background(), "stay")))
	assert.False(t, IsNoop(f.Event(context.Background(), "missing")))
	assert.False(t, IsNoop(nil))
}
