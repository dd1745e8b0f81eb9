package checkpoint

import (
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteReadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "step-42.cdf")

	want := State{
		Time:           12.5,
		NInterstitial:  3.0,
		PreviousIFlux:  1.5,
		NHelium:        7.0,
		PreviousHeFlux: 0.25,
		NDeuterium:     2.0,
		PreviousDFlux:  0.1,
		NTritium:       1.0,
		PreviousTFlux:  0.05,
		GridX:          []float64{0, 1e-9, 2e-9, 3e-9},
		SurfacePos:     1,
		EntryXi:        []int32{2, 2, 3},
		EntryID:        []int32{0, 3, 1},
		EntryValue:     []float64{10.0, 4.5, 2.25},
	}

	w := NewWriter()
	if err := w.Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}

	r := NewReader()
	got, err := r.Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.Time != want.Time || got.SurfacePos != want.SurfacePos {
		t.Errorf("scalars: got %+v, want Time=%v SurfacePos=%v", got, want.Time, want.SurfacePos)
	}
	if got.NInterstitial != want.NInterstitial || got.PreviousIFlux != want.PreviousIFlux {
		t.Errorf("interstitial counters mismatch: got %+v", got)
	}
	if got.NHelium != want.NHelium || got.PreviousHeFlux != want.PreviousHeFlux {
		t.Errorf("helium counters mismatch: got %+v", got)
	}
	if !reflect.DeepEqual(got.GridX, want.GridX) {
		t.Errorf("GridX = %v, want %v", got.GridX, want.GridX)
	}
	if !reflect.DeepEqual(got.EntryXi, want.EntryXi) {
		t.Errorf("EntryXi = %v, want %v", got.EntryXi, want.EntryXi)
	}
	if !reflect.DeepEqual(got.EntryID, want.EntryID) {
		t.Errorf("EntryID = %v, want %v", got.EntryID, want.EntryID)
	}
	if !reflect.DeepEqual(got.EntryValue, want.EntryValue) {
		t.Errorf("EntryValue = %v, want %v", got.EntryValue, want.EntryValue)
	}
}

func TestWriteReadEmptyEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "step-0.cdf")

	want := State{
		Time:       0,
		GridX:      []float64{0, 1, 2},
		SurfacePos: 0,
	}
	if err := NewWriter().Write(path, want); err != nil {
		t.Fatalf("Write: %v", err)
	}
	got, err := NewReader().Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got.EntryID) != 0 {
		t.Errorf("EntryID = %v, want empty", got.EntryID)
	}
	if !reflect.DeepEqual(got.GridX, want.GridX) {
		t.Errorf("GridX = %v, want %v", got.GridX, want.GridX)
	}
}

func TestMismatchedRaggedLengthsRejected(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.cdf")
	s := State{
		GridX:      []float64{0, 1},
		EntryXi:    []int32{0},
		EntryID:    []int32{0, 1},
		EntryValue: []float64{1},
	}
	if err := NewWriter().Write(path, s); err == nil {
		t.Fatal("expected error for mismatched ragged slice lengths")
	}
}
