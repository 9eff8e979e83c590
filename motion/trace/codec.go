package trace

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"time"

	"github.com/lguimbarda/min-motion/motion/pointer"
)

var csvHeader = []string{"offset_ns", "kind", "pointer_id", "x", "y"}

// WriteCSV writes records as CSV with a header row.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, r := range records {
		row := []string{
			strconv.FormatInt(int64(r.Offset), 10),
			string(r.Kind),
			strconv.Itoa(r.PointerID),
			strconv.FormatFloat(r.X, 'g', -1, 64),
			strconv.FormatFloat(r.Y, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV reads records written by WriteCSV.
func ReadCSV(r io.Reader) ([]Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	if !slices.Equal(header, csvHeader) {
		return nil, fmt.Errorf("read csv header: got %v, want %v", header, csvHeader)
	}

	var records []Record
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}
		rec, err := parseRow(row)
		if err != nil {
			line, _ := cr.FieldPos(0)
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		records = append(records, rec)
	}
}

func parseRow(row []string) (Record, error) {
	offset, err := strconv.ParseInt(row[0], 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("offset: %w", err)
	}
	id, err := strconv.Atoi(row[2])
	if err != nil {
		return Record{}, fmt.Errorf("pointer id: %w", err)
	}
	x, err := strconv.ParseFloat(row[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("x: %w", err)
	}
	y, err := strconv.ParseFloat(row[4], 64)
	if err != nil {
		return Record{}, fmt.Errorf("y: %w", err)
	}
	return Record{
		Offset:    time.Duration(offset),
		Kind:      pointer.Kind(row[1]),
		PointerID: id,
		X:         x,
		Y:         y,
	}, nil
}

// WriteJSON writes records as JSON lines, one object per line.
func WriteJSON(w io.Writer, records []Record) error {
	enc := json.NewEncoder(w)
	for _, r := range records {
		if err := enc.Encode(r); err != nil {
			return fmt.Errorf("write json record: %w", err)
		}
	}
	return nil
}

// ReadJSON reads JSON lines written by WriteJSON.
func ReadJSON(r io.Reader) ([]Record, error) {
	dec := json.NewDecoder(r)
	var records []Record
	for {
		var rec Record
		err := dec.Decode(&rec)
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read json record %d: %w", len(records)+1, err)
		}
		records = append(records, rec)
	}
}
