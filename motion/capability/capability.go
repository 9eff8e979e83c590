// Package capability describes which operators a motion stream exposes.
//
// Operators are installed into a Set one capability at a time. Installing
// is a closure: the result has exactly the previous capabilities plus the
// new one, installing twice changes nothing, and a capability can only be
// installed once the capabilities it builds on are present.
package capability

import (
	"fmt"
	"strings"

	"github.com/lguimbarda/min-motion/motion/core"
)

// Capability names a single operator.
type Capability uint8

const (
	Foundation Capability = iota
	Pluck
	Timestamp
	SlidingWindow
	Velocity
	IgnoreUntil
	StartWith
	DistanceFrom
	DelayBy
	ScaledBy
	OffsetBy
	LowerBound
	UpperBound
	Log
	Dedupe
	Inverted
	Merge
	Rewrite
	RewriteTo
	RewriteRange
	Threshold
	ThresholdRange

	numCapabilities
)

var names = [numCapabilities]string{
	"foundation", "pluck", "timestamp", "slidingWindow", "velocity",
	"ignoreUntil", "startWith", "distanceFrom", "delayBy", "scaledBy",
	"offsetBy", "lowerBound", "upperBound", "log", "dedupe", "inverted",
	"merge", "rewrite", "rewriteTo", "rewriteRange", "threshold",
	"thresholdRange",
}

func (c Capability) String() string {
	if c < numCapabilities {
		return names[c]
	}
	return fmt.Sprintf("capability(%d)", uint8(c))
}

// AssemblyOrder lists every capability in the order the full stream installs
// them. Each capability appears after its prerequisites.
func AssemblyOrder() []Capability {
	order := make([]Capability, numCapabilities)
	for c := range order {
		order[c] = Capability(c)
	}
	return order
}

// Requires returns the capabilities c must be installed after.
func Requires(c Capability) []Capability {
	switch c {
	case Foundation:
		return nil
	case Velocity:
		return []Capability{Foundation, Timestamp, SlidingWindow}
	case Log:
		return []Capability{Foundation, Pluck}
	}
	return []Capability{Foundation}
}

// Set is an immutable set of capabilities.
type Set struct {
	bits uint32
}

// None returns the empty Set.
func None() Set {
	return Set{}
}

// Base returns the Set holding only Foundation.
func Base() Set {
	return Set{bits: 1 << Foundation}
}

// Full returns the Set holding every capability.
func Full() Set {
	return Set{bits: 1<<numCapabilities - 1}
}

// Has reports whether c is installed.
func (s Set) Has(c Capability) bool {
	return c < numCapabilities && s.bits&(1<<c) != 0
}

// With returns s plus c. Installing a capability that is already present
// returns s unchanged. A missing prerequisite is reported as a
// *core.ConfigError.
func (s Set) With(c Capability) (Set, error) {
	if c >= numCapabilities {
		return s, core.NewConfigError("capability", fmt.Sprintf("unknown %s", c))
	}
	if s.Has(c) {
		return s, nil
	}
	var missing []string
	for _, req := range Requires(c) {
		if !s.Has(req) {
			missing = append(missing, req.String())
		}
	}
	if len(missing) > 0 {
		return s, core.NewConfigError(c.String(), "requires "+strings.Join(missing, ", "))
	}
	return Set{bits: s.bits | 1<<c}, nil
}

// MustWith is like With but panics on error.
func (s Set) MustWith(c Capability) Set {
	next, err := s.With(c)
	if err != nil {
		panic(err)
	}
	return next
}

// Compose installs cs into s in the given order.
func (s Set) Compose(cs ...Capability) (Set, error) {
	var err error
	for _, c := range cs {
		if s, err = s.With(c); err != nil {
			return s, err
		}
	}
	return s, nil
}

// Of builds a Set from Foundation plus cs, installing cs in assembly order so
// that the argument order does not matter.
func Of(cs ...Capability) (Set, error) {
	var want Set
	for _, c := range cs {
		if c >= numCapabilities {
			return Set{}, core.NewConfigError("capability", fmt.Sprintf("unknown %s", c))
		}
		want.bits |= 1 << c
	}
	s := Base()
	for _, c := range AssemblyOrder() {
		if !want.Has(c) {
			continue
		}
		var err error
		if s, err = s.With(c); err != nil {
			return Set{}, err
		}
	}
	return s, nil
}

// Require panics with a *core.ConfigError if c is not installed. Operator
// methods call it before building their stage.
func (s Set) Require(c Capability) {
	if !s.Has(c) {
		panic(core.NewConfigError(c.String(), "capability not installed on this stream"))
	}
}

// List returns the installed capabilities in assembly order.
func (s Set) List() []Capability {
	var out []Capability
	for _, c := range AssemblyOrder() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// Len returns the number of installed capabilities.
func (s Set) Len() int {
	n := 0
	for b := s.bits; b != 0; b &= b - 1 {
		n++
	}
	return n
}

func (s Set) String() string {
	list := s.List()
	parts := make([]string, len(list))
	for i, c := range list {
		parts[i] = c.String()
	}
	return "{" + strings.Join(parts, " ") + "}"
}
