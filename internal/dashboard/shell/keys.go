package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"unicode"

	"github.com/autopeer-io/dashboard/pkg/log"
)

// ReadKeys consumes key presses from r and fires the bound events until ctx
// is done, r is exhausted or the shell is closed. Unbound keys are ignored.
func (s *Shell) ReadKeys(ctx context.Context, r io.Reader) error {
	keys := make(chan rune)
	errCh := make(chan error, 1)

	go func() {
		br := bufio.NewReader(r)
		for {
			k, _, err := br.ReadRune()
			if err != nil {
				errCh <- err
				return
			}
			select {
			case keys <- k:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-errCh:
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		case k := <-keys:
			event, ok := KeyBindings[unicode.ToLower(k)]
			if !ok {
				continue
			}
			if err := s.Fire(ctx, event); err != nil {
				log.Warn("Key ignored", "key", string(k), "state", s.State(), "error", err.Error())
				continue
			}
			if s.State() == StateClosed {
				return nil
			}
		}
	}
}
