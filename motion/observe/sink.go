// Package observe provides operators that watch a motion stream without
// changing it: diagnostic logging, lifecycle hooks and metrics.
package observe

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/go-logr/logr"
	"k8s.io/klog/v2"
)

// Sink receives diagnostic writes from the Log operator.
type Sink interface {
	Write(label string, v any)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(label string, v any)

func (f SinkFunc) Write(label string, v any) { f(label, v) }

type consoleSink struct {
	mu sync.Mutex
	w  io.Writer
}

// ConsoleSink prints "label value" lines to w.
func ConsoleSink(w io.Writer) Sink {
	return &consoleSink{w: w}
}

func (s *consoleSink) Write(label string, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if label == "" {
		fmt.Fprintln(s.w, v)
		return
	}
	fmt.Fprintln(s.w, label, v)
}

// DefaultSink prints to standard error.
func DefaultSink() Sink {
	return ConsoleSink(os.Stderr)
}

type logrSink struct {
	logger logr.Logger
}

// LogrSink writes each value as a structured info entry with "label" and
// "value" keys.
func LogrSink(logger logr.Logger) Sink {
	return logrSink{logger: logger}
}

func (s logrSink) Write(label string, v any) {
	s.logger.Info("stream value", "label", label, "value", v)
}

// KlogSink is LogrSink over klog's global logger.
func KlogSink() Sink {
	return LogrSink(klog.Background().WithName("motion"))
}
