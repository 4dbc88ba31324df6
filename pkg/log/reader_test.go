package log

import (
	"io"
	"path/filepath"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.mlog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create test log: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestReaderIteratesEvents(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), TraceID: "conn-1", Direction: DirectionIn, Layer: LayerSocket, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-2", Direction: DirectionOut, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-3", Direction: DirectionIn, Layer: LayerService, Category: CategoryState},
	}

	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 3 {
		t.Fatalf("got %d events, want 3", len(read))
	}

	// Verify order
	if read[0].TraceID != "conn-1" {
		t.Errorf("first event TraceID = %q, want %q", read[0].TraceID, "conn-1")
	}
	if read[2].TraceID != "conn-3" {
		t.Errorf("last event TraceID = %q, want %q", read[2].TraceID, "conn-3")
	}
}

func TestReaderHandlesEmptyFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.mlog")

	// Create empty file
	logger, _ := NewFileLogger(path)
	logger.Close()

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	event, err := reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF, got err=%v, event=%+v", err, event)
	}
}

func TestReaderHandlesTruncatedFile(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), TraceID: "conn-1", Direction: DirectionIn, Layer: LayerSocket, Category: CategoryCommand},
	}

	path := createTestLogFile(t, events)

	reader, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	// Read first event
	_, err = reader.Next()
	if err != nil {
		t.Fatalf("first Next failed: %v", err)
	}

	// Second read should return EOF
	_, err = reader.Next()
	if err != io.EOF {
		t.Errorf("expected io.EOF after all events, got %v", err)
	}
}

func TestReaderFilterByTraceID(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), TraceID: "conn-A", Direction: DirectionIn, Layer: LayerSocket, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-B", Direction: DirectionOut, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-A", Direction: DirectionIn, Layer: LayerService, Category: CategoryState},
		{Timestamp: time.Now(), TraceID: "conn-C", Direction: DirectionOut, Layer: LayerSocket, Category: CategoryCommand},
	}

	path := createTestLogFile(t, events)

	filter := Filter{TraceID: "conn-A"}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.TraceID != "conn-A" {
			t.Errorf("event has TraceID=%q, want %q", e.TraceID, "conn-A")
		}
	}
}

func TestReaderFilterByLayer(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), TraceID: "conn-1", Direction: DirectionIn, Layer: LayerSocket, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-2", Direction: DirectionOut, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-3", Direction: DirectionIn, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-4", Direction: DirectionOut, Layer: LayerService, Category: CategoryState},
	}

	path := createTestLogFile(t, events)

	layer := LayerWire
	filter := Filter{Layer: &layer}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Layer != LayerWire {
			t.Errorf("event has Layer=%v, want %v", e.Layer, LayerWire)
		}
	}
}

func TestReaderFilterByTimeRange(t *testing.T) {
	baseTime := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)

	events := []Event{
		{Timestamp: baseTime.Add(-1 * time.Hour), TraceID: "conn-1", Direction: DirectionIn, Layer: LayerSocket, Category: CategoryCommand},
		{Timestamp: baseTime, TraceID: "conn-2", Direction: DirectionOut, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: baseTime.Add(30 * time.Minute), TraceID: "conn-3", Direction: DirectionIn, Layer: LayerService, Category: CategoryState},
		{Timestamp: baseTime.Add(2 * time.Hour), TraceID: "conn-4", Direction: DirectionOut, Layer: LayerSocket, Category: CategoryCommand},
	}

	path := createTestLogFile(t, events)

	start := baseTime.Add(-5 * time.Minute)
	end := baseTime.Add(1 * time.Hour)
	filter := Filter{
		TimeStart: &start,
		TimeEnd:   &end,
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2 (events within time range)", len(read))
	}

	// Verify it's the middle two events
	if read[0].TraceID != "conn-2" {
		t.Errorf("first event TraceID = %q, want %q", read[0].TraceID, "conn-2")
	}
	if read[1].TraceID != "conn-3" {
		t.Errorf("second event TraceID = %q, want %q", read[1].TraceID, "conn-3")
	}
}

func TestReaderFilterByDirection(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), TraceID: "conn-1", Direction: DirectionIn, Layer: LayerSocket, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-2", Direction: DirectionOut, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-3", Direction: DirectionIn, Layer: LayerService, Category: CategoryState},
		{Timestamp: time.Now(), TraceID: "conn-4", Direction: DirectionOut, Layer: LayerSocket, Category: CategoryState},
	}

	path := createTestLogFile(t, events)

	dir := DirectionOut
	filter := Filter{Direction: &dir}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	if len(read) != 2 {
		t.Fatalf("got %d events, want 2", len(read))
	}

	for _, e := range read {
		if e.Direction != DirectionOut {
			t.Errorf("event has Direction=%v, want %v", e.Direction, DirectionOut)
		}
	}
}

func TestReaderCombinedFilters(t *testing.T) {
	events := []Event{
		{Timestamp: time.Now(), TraceID: "conn-A", Direction: DirectionIn, Layer: LayerSocket, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-A", Direction: DirectionOut, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-B", Direction: DirectionIn, Layer: LayerWire, Category: CategoryCommand},
		{Timestamp: time.Now(), TraceID: "conn-A", Direction: DirectionIn, Layer: LayerWire, Category: CategoryCommand},
	}

	path := createTestLogFile(t, events)

	layer := LayerWire
	dir := DirectionIn
	filter := Filter{
		TraceID: "conn-A",
		Layer:        &layer,
		Direction:    &dir,
	}
	reader, err := NewFilteredReader(path, filter)
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer reader.Close()

	var read []Event
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		read = append(read, event)
	}

	// Only the last event matches all criteria
	if len(read) != 1 {
		t.Fatalf("got %d events, want 1", len(read))
	}

	if read[0].TraceID != "conn-A" || read[0].Layer != LayerWire || read[0].Direction != DirectionIn {
		t.Error("event doesn't match all filter criteria")
	}
}
