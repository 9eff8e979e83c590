package core

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrInvalidConfig matches every ConfigError.
var ErrInvalidConfig = errors.New("invalid operator configuration")

// ErrContractViolation matches every ContractError.
var ErrContractViolation = errors.New("stream contract violation")

// ConfigError reports an invalid operator parameter. Operators raise it with
// panic while the chain is being composed, never at first emission.
type ConfigError struct {
	Op     string
	Reason string
}

// NewConfigError creates a ConfigError for the named operator.
func NewConfigError(op, reason string) *ConfigError {
	return &ConfigError{Op: op, Reason: reason}
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// ContractError reports a value whose type an operator cannot handle.
type ContractError struct {
	Op    string
	Value any
	Want  string
}

func (e *ContractError) Error() string {
	return fmt.Sprintf("%s: got %T (%v), want %s", e.Op, e.Value, e.Value, e.Want)
}

func (e *ContractError) Is(target error) bool {
	return target == ErrContractViolation
}

// ErrPanic wraps a recovered panic value as an error.
// It includes a cleaned-up stack trace that excludes internal min-motion frames.
type ErrPanic struct {
	Value any
	Stack string // Cleaned stack trace
}

func (e ErrPanic) Error() string {
	if e.Stack != "" {
		return fmt.Sprintf("panic: %v\n%s", e.Value, e.Stack)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it is itself an error.
func (e ErrPanic) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// NewPanicError creates an ErrPanic from a recovered value with a cleaned stack trace.
// It must be called from the deferred function that recovered the value.
func NewPanicError(recovered any) ErrPanic {
	return ErrPanic{
		Value: recovered,
		Stack: cleanStack(captureStack(4)), // skip: runtime.Callers, captureStack, NewPanicError, defer func
	}
}

// captureStack returns the current stack trace as a string.
func captureStack(skip int) string {
	const maxFrames = 32
	var pcs [maxFrames]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return ""
	}

	frames := runtime.CallersFrames(pcs[:n])
	var sb strings.Builder

	for {
		frame, more := frames.Next()
		fmt.Fprintf(&sb, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}

	return sb.String()
}

// cleanStack removes internal min-motion frames from a stack trace.
func cleanStack(stack string) string {
	lines := strings.Split(stack, "\n")
	var result []string
	var skipNext bool

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}

		if !strings.HasPrefix(line, "\t") {
			if strings.Contains(line, "github.com/lguimbarda/min-motion/motion/") {
				skipNext = true
				continue
			}
			skipNext = false
		} else if skipNext {
			continue
		}

		result = append(result, line)
	}

	return strings.Join(result, "\n")
}
