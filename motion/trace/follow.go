package trace

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fsnotify/fsnotify"

	"github.com/lguimbarda/min-motion/motion/core"
)

type followConfig struct {
	onError func(error)
}

// FollowOption configures Follow.
type FollowOption func(*followConfig)

// OnError sets the callback for failures while following: the file cannot
// be watched or read, or a line is not a valid record. By default failures
// are ignored.
func OnError(fn func(error)) FollowOption {
	return func(c *followConfig) { c.onError = fn }
}

// Follow streams the records of a JSON-lines trace file and then every
// record appended to it, like tail -f. Each subscription opens the file and
// a watcher of its own; both are released on unsubscribe. Records are
// delivered on a goroutine owned by the subscription.
func Follow(path string, opts ...FollowOption) core.Stream[Record] {
	cfg := followConfig{onError: func(error) {}}
	for _, opt := range opts {
		opt(&cfg)
	}

	return core.Create(func(dispatch core.Dispatch[Record]) func() {
		f, err := os.Open(path)
		if err != nil {
			cfg.onError(fmt.Errorf("follow %s: %w", path, err))
			return nil
		}
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			f.Close()
			cfg.onError(fmt.Errorf("follow %s: %w", path, err))
			return nil
		}
		if err := watcher.Add(path); err != nil {
			watcher.Close()
			f.Close()
			cfg.onError(fmt.Errorf("follow %s: %w", path, err))
			return nil
		}

		done := make(chan struct{})
		t := &tail{path: path, r: bufio.NewReader(f), dispatch: dispatch, onError: cfg.onError}

		go func() {
			defer f.Close()
			t.drain()
			for {
				select {
				case <-done:
					return
				case ev, ok := <-watcher.Events:
					if !ok {
						return
					}
					if ev.Op&fsnotify.Write == fsnotify.Write {
						t.drain()
					}
				case err, ok := <-watcher.Errors:
					if !ok {
						return
					}
					cfg.onError(fmt.Errorf("follow %s: %w", path, err))
				}
			}
		}()

		return func() {
			close(done)
			watcher.Close()
		}
	})
}

type tail struct {
	path     string
	r        *bufio.Reader
	partial  []byte
	line     int
	dispatch core.Dispatch[Record]
	onError  func(error)
}

// drain dispatches every complete line that has been appended since the
// last call. An incomplete last line is kept until its newline arrives.
func (t *tail) drain() {
	for {
		chunk, err := t.r.ReadBytes('\n')
		t.partial = append(t.partial, chunk...)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				t.onError(fmt.Errorf("follow %s: %w", t.path, err))
			}
			return
		}

		line := bytes.TrimSpace(t.partial)
		t.partial = t.partial[:0]
		t.line++
		if len(line) == 0 {
			continue
		}
		var rec Record
		if err := json.Unmarshal(line, &rec); err != nil {
			t.onError(fmt.Errorf("follow %s line %d: %w", t.path, t.line, err))
			continue
		}
		t.dispatch(rec)
	}
}
