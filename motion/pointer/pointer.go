// Package pointer defines the producer contract for pointer input: the
// events a host delivers, the Source that delivers them, and the bundle of
// streams gesture code consumes.
package pointer

import (
	"time"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/geom"
)

// Kind is the name of an input event.
type Kind string

const (
	PointerDown Kind = "pointerdown"
	PointerMove Kind = "pointermove"
	PointerUp   Kind = "pointerup"
	MouseDown   Kind = "mousedown"
	MouseMove   Kind = "mousemove"
	MouseUp     Kind = "mouseup"
	TouchStart  Kind = "touchstart"
	TouchMove   Kind = "touchmove"
	TouchEnd    Kind = "touchend"
	Click       Kind = "click"
	DragStart   Kind = "dragstart"
)

const (
	// MousePointerID is the pointer id given to synthesized mouse events.
	MousePointerID = 1
	// TouchPointerBase is added to a touch identifier to form its pointer id.
	TouchPointerBase = 2
)

// Touch is one contact point of a touch event.
type Touch struct {
	ID int     `json:"id"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
}

// Event is a pointer, mouse or touch event. Touch events carry the
// contacts that changed in Touches.
type Event struct {
	Type      Kind      `json:"type"`
	PointerID int       `json:"pointerId"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Time      time.Time `json:"time"`
	Touches   []Touch   `json:"touches,omitempty"`
}

// Position returns the event coordinates as a point.
func (e Event) Position() geom.Point {
	return geom.Pt(e.X, e.Y)
}

// ListenOptions mirror the options a host uses to register a listener.
// Listeners that may cancel the default action must not be passive.
type ListenOptions struct {
	Passive bool
	Capture bool
}

var (
	passive     = ListenOptions{Passive: true}
	preventable = ListenOptions{Passive: false, Capture: true}
)

// Source delivers input events of a given kind.
type Source interface {
	// Supports reports whether the host produces events of kind.
	Supports(kind Kind) bool
	// Listen returns the stream of events of kind.
	Listen(kind Kind, opts ListenOptions) core.Stream[Event]
}

// Streams is the bundle of pointer streams for one input surface.
type Streams struct {
	Down      core.Stream[Event]
	Move      core.Stream[Event]
	Up        core.Stream[Event]
	Click     core.Stream[Event]
	DragStart core.Stream[Event]
}

// NewStreams builds the bundle for src. Native pointer events are used when
// src supports them; otherwise each pointer stream merges the mouse stream
// with the touch stream converted by FromTouches. Click and drag-start are
// listened to with capture and without passive so that consumers may cancel
// them.
func NewStreams(src Source) Streams {
	if src == nil {
		panic(core.NewConfigError("pointer", "source cannot be nil"))
	}
	s := Streams{
		Click:     src.Listen(Click, preventable),
		DragStart: src.Listen(DragStart, preventable),
	}

	if src.Supports(PointerDown) {
		s.Down = src.Listen(PointerDown, passive)
		s.Move = src.Listen(PointerMove, passive)
		s.Up = src.Listen(PointerUp, passive)
		return s
	}

	synthesize := func(mouse, touch, as Kind) core.Stream[Event] {
		return core.Merge(
			FromMouse(as).Apply(src.Listen(mouse, passive)),
			FromTouches().Apply(src.Listen(touch, passive)),
		)
	}
	s.Down = synthesize(MouseDown, TouchStart, PointerDown)
	s.Move = synthesize(MouseMove, TouchMove, PointerMove)
	s.Up = synthesize(MouseUp, TouchEnd, PointerUp)
	return s
}

var touchToPointer = map[Kind]Kind{
	TouchStart: PointerDown,
	TouchMove:  PointerMove,
	TouchEnd:   PointerUp,
}

// FromTouches creates a Transformer that emits one pointer event per
// changed touch, in order. Touch identifiers are offset by
// TouchPointerBase so they never collide with the mouse pointer.
func FromTouches() core.Transformer[Event, Event] {
	return core.Transform(func(e Event, out core.Dispatch[Event]) {
		kind, ok := touchToPointer[e.Type]
		if !ok {
			return
		}
		for _, t := range e.Touches {
			out(Event{
				Type:      kind,
				PointerID: TouchPointerBase + t.ID,
				X:         t.X,
				Y:         t.Y,
				Time:      e.Time,
			})
		}
	})
}

// FromMouse creates a Transformer that relabels mouse events as pointer
// events of kind as with MousePointerID.
func FromMouse(as Kind) core.Transformer[Event, Event] {
	return core.Map(func(e Event) Event {
		e.Type = as
		e.PointerID = MousePointerID
		e.Touches = nil
		return e
	})
}
