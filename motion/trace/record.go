// Package trace records and replays pointer input. A trace is a list of
// Records; it can be stored as CSV, JSON lines or in an SQL database, and
// replayed through a Player, which is a pointer.Source.
package trace

import (
	"time"

	"github.com/lguimbarda/min-motion/motion/pointer"
)

// Record is one input event of a trace. Offset is measured from the start
// of the trace. For touch kinds PointerID holds the touch identifier.
type Record struct {
	Offset    time.Duration `json:"offset"`
	Kind      pointer.Kind  `json:"kind"`
	PointerID int           `json:"pointerId"`
	X         float64       `json:"x"`
	Y         float64       `json:"y"`
}

func isTouch(kind pointer.Kind) bool {
	switch kind {
	case pointer.TouchStart, pointer.TouchMove, pointer.TouchEnd:
		return true
	}
	return false
}

// Event converts r to the event a host would have delivered for a trace
// that started at start.
func (r Record) Event(start time.Time) pointer.Event {
	e := pointer.Event{
		Type:      r.Kind,
		PointerID: r.PointerID,
		X:         r.X,
		Y:         r.Y,
		Time:      start.Add(r.Offset),
	}
	if isTouch(r.Kind) {
		e.Touches = []pointer.Touch{{ID: r.PointerID, X: r.X, Y: r.Y}}
	}
	return e
}

// FromEvent converts an event observed at e.Time into records of a trace
// that started at start. A touch event yields one record per touch.
func FromEvent(e pointer.Event, start time.Time) []Record {
	offset := e.Time.Sub(start)
	if isTouch(e.Type) {
		records := make([]Record, len(e.Touches))
		for i, t := range e.Touches {
			records[i] = Record{Offset: offset, Kind: e.Type, PointerID: t.ID, X: t.X, Y: t.Y}
		}
		return records
	}
	return []Record{{Offset: offset, Kind: e.Type, PointerID: e.PointerID, X: e.X, Y: e.Y}}
}
