package trace_test

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/lguimbarda/min-motion/motion/core"
	"github.com/lguimbarda/min-motion/motion/pointer"
	"github.com/lguimbarda/min-motion/motion/timing/timingtest"
	"github.com/lguimbarda/min-motion/motion/trace"
)

var sample = []trace.Record{
	{Offset: 0, Kind: pointer.PointerDown, PointerID: 1, X: 10, Y: 20},
	{Offset: 16 * time.Millisecond, Kind: pointer.PointerMove, PointerID: 1, X: 12.5, Y: 21},
	{Offset: 32 * time.Millisecond, Kind: pointer.PointerUp, PointerID: 1, X: 15, Y: 22},
}

func TestCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := trace.WriteCSV(&buf, sample); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "offset_ns,kind,pointer_id,x,y\n0,pointerdown,1,10,20\n") {
		t.Errorf("csv output = %q", buf.String())
	}

	got, err := trace.ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if !slices.Equal(got, sample) {
		t.Errorf("ReadCSV = %v, want %v", got, sample)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"wrong header", "a,b,c,d,e\n"},
		{"bad offset", "offset_ns,kind,pointer_id,x,y\nsoon,pointerdown,1,0,0\n"},
		{"missing field", "offset_ns,kind,pointer_id,x,y\n0,pointerdown,1,0\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := trace.ReadCSV(strings.NewReader(tt.content)); err == nil {
				t.Error("ReadCSV succeeded, want error")
			}
		})
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := trace.WriteJSON(&buf, sample); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if got := strings.Count(buf.String(), "\n"); got != len(sample) {
		t.Errorf("wrote %d lines, want %d", got, len(sample))
	}
	got, err := trace.ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if !slices.Equal(got, sample) {
		t.Errorf("ReadJSON = %v, want %v", got, sample)
	}
}

func TestFromEventSplitsTouches(t *testing.T) {
	start := time.Unix(0, 0)
	e := pointer.Event{
		Type:    pointer.TouchMove,
		Time:    start.Add(5 * time.Millisecond),
		Touches: []pointer.Touch{{ID: 0, X: 1, Y: 2}, {ID: 1, X: 3, Y: 4}},
	}
	want := []trace.Record{
		{Offset: 5 * time.Millisecond, Kind: pointer.TouchMove, PointerID: 0, X: 1, Y: 2},
		{Offset: 5 * time.Millisecond, Kind: pointer.TouchMove, PointerID: 1, X: 3, Y: 4},
	}
	if got := trace.FromEvent(e, start); !slices.Equal(got, want) {
		t.Errorf("FromEvent = %v, want %v", got, want)
	}
}

func TestPlayerStep(t *testing.T) {
	start := time.Unix(0, 0)
	player := trace.NewPlayer([]trace.Record{sample[2], sample[0], sample[1]}, start)
	streams := pointer.NewStreams(player)

	var kinds []pointer.Kind
	sub := core.Merge(streams.Down, streams.Move, streams.Up).Subscribe(func(e pointer.Event) {
		kinds = append(kinds, e.Type)
	})
	defer sub.Unsubscribe()

	for player.Step() {
	}

	want := []pointer.Kind{pointer.PointerDown, pointer.PointerMove, pointer.PointerUp}
	if !slices.Equal(kinds, want) {
		t.Errorf("replayed kinds = %v, want %v", kinds, want)
	}
	if got := player.Remaining(); got != 0 {
		t.Errorf("Remaining() = %d, want 0", got)
	}
}

func TestPlayerSynthesizesFromTouches(t *testing.T) {
	player := trace.NewPlayer([]trace.Record{
		{Kind: pointer.TouchStart, PointerID: 0, X: 1, Y: 1},
		{Offset: time.Millisecond, Kind: pointer.MouseDown, X: 2, Y: 2},
	}, time.Unix(0, 0))
	if player.Supports(pointer.PointerDown) {
		t.Fatal("Supports(pointerdown) = true for a trace without pointer events")
	}

	rec := core.Record(pointer.NewStreams(player).Down)
	defer rec.Unsubscribe()
	for player.Step() {
	}

	var ids []int
	for _, e := range rec.Values() {
		ids = append(ids, e.PointerID)
	}
	if want := []int{pointer.TouchPointerBase, pointer.MousePointerID}; !slices.Equal(ids, want) {
		t.Errorf("pointer ids = %v, want %v", ids, want)
	}
}

func TestPlayerPlay(t *testing.T) {
	clk := timingtest.NewClock(time.Unix(0, 0))
	player := trace.NewPlayer(sample, clk.Now())
	rec := core.Record(pointer.NewStreams(player).Move)
	defer rec.Unsubscribe()

	playback := player.Play(clk)
	clk.Advance(20 * time.Millisecond)

	if got := player.Remaining(); got != 1 {
		t.Errorf("Remaining() after 20ms = %d, want 1", got)
	}
	if got := rec.Len(); got != 1 {
		t.Errorf("move events after 20ms = %d, want 1", got)
	}

	playback.Unsubscribe()
	clk.Advance(time.Second)
	if got := player.Remaining(); got != 1 {
		t.Errorf("Remaining() after pause = %d, want 1", got)
	}
}

func openStore(t *testing.T) *trace.Store {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	store := trace.NewStore(db)
	if err := store.Migrate(context.Background()); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return store
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	if err := store.Save(ctx, "drag", sample); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := store.Save(ctx, "drag", sample[:2]); err != nil {
		t.Fatalf("Save again: %v", err)
	}
	if err := store.Append(ctx, "tap", sample[0]); err != nil {
		t.Fatalf("Append: %v", err)
	}
	if err := store.Append(ctx, "tap", sample[2]); err != nil {
		t.Fatalf("Append: %v", err)
	}

	got, err := store.Load(ctx, "drag")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got, sample[:2]) {
		t.Errorf("Load(drag) = %v, want %v", got, sample[:2])
	}

	got, err = store.Load(ctx, "tap")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if want := []trace.Record{sample[0], sample[2]}; !slices.Equal(got, want) {
		t.Errorf("Load(tap) = %v, want %v", got, want)
	}

	sessions, err := store.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions: %v", err)
	}
	if want := []string{"drag", "tap"}; !slices.Equal(sessions, want) {
		t.Errorf("Sessions() = %v, want %v", sessions, want)
	}
}

func TestRecorder(t *testing.T) {
	ctx := context.Background()
	store := openStore(t)

	start := time.Unix(50, 0)
	player := trace.NewPlayer(sample, start)
	recorder := trace.NewRecorder(store, "replay")
	sub := recorder.Attach(pointer.NewStreams(player))
	for player.Step() {
	}
	sub.Unsubscribe()

	if err := recorder.Err(); err != nil {
		t.Fatalf("recorder error: %v", err)
	}
	got, err := store.Load(ctx, "replay")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !slices.Equal(got, sample) {
		t.Errorf("recorded = %v, want %v", got, sample)
	}
}

func TestFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	var buf bytes.Buffer
	if err := trace.WriteJSON(&buf, sample[:2]); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatalf("failed to create trace file: %v", err)
	}

	var (
		mu   sync.Mutex
		errs []error
	)
	rec := core.Record(trace.Follow(path, trace.OnError(func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	})))
	defer rec.Unsubscribe()

	waitFor(t, func() bool { return rec.Len() == 2 })

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0)
	if err != nil {
		t.Fatal(err)
	}
	buf.Reset()
	trace.WriteJSON(&buf, sample[2:])
	f.WriteString("not json\n")
	f.Write(buf.Bytes())
	f.Close()

	waitFor(t, func() bool { return rec.Len() == 3 })
	if got := rec.Values(); !slices.Equal(got, sample) {
		t.Errorf("Follow = %v, want %v", got, sample)
	}

	mu.Lock()
	defer mu.Unlock()
	if len(errs) != 1 {
		t.Errorf("reported %d errors, want 1 for the malformed line", len(errs))
	}
}

func TestFollowMissingFile(t *testing.T) {
	var got error
	rec := core.Record(trace.Follow(filepath.Join(t.TempDir(), "missing.jsonl"), trace.OnError(func(err error) { got = err })))
	defer rec.Unsubscribe()

	if !errors.Is(got, fs.ErrNotExist) {
		t.Errorf("OnError = %v, want a not-exist error", got)
	}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(10 * time.Millisecond)
	}
}
