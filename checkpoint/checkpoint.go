// Package checkpoint persists and restores a timestep's state to a
// NetCDF-classic file via github.com/ctessum/cdf, in the idiom of the
// teacher's CTMData.Write/LoadCTMData in vargrid.go: build a header of
// named dimensions and typed variables, Define it, Create the file,
// then write each variable through a Writer/Reader strider. Since the
// cdf format has no hierarchical groups, one checkpoint is one file:
// "a timestep group" of spec.md §8 is realized as one file per
// timestep, named by the caller.
package checkpoint

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// State is everything a timestep checkpoint captures: the simulation
// time, the collective counters, a ragged set of (cluster id,
// concentration) pairs for every grid point with nonzero state, and
// the grid's depth coordinates plus surface index.
type State struct {
	Time float64

	NInterstitial, PreviousIFlux float64
	NHelium, PreviousHeFlux      float64
	NDeuterium, PreviousDFlux    float64
	NTritium, PreviousTFlux      float64

	GridX      []float64
	SurfacePos int32

	EntryXi    []int32
	EntryID    []int32
	EntryValue []float64
}

const (
	dimEntry = "entry"
	dimGrid  = "grid"
)

// Writer creates one checkpoint file per call to Write.
type Writer struct{}

// NewWriter constructs a checkpoint Writer.
func NewWriter() *Writer { return &Writer{} }

// Write serializes s to a new file at path, truncating any existing
// file. The header is fully defined (dimension lengths fixed to len
// (s.EntryID), len(s.GridX)) before Create, matching the header
// mutability contract: AddVariable/AddAttribute only succeed before
// Define.
func (w *Writer) Write(path string, s State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint: create %s: %w", path, err)
	}
	defer f.Close()

	nEntry := len(s.EntryID)
	if len(s.EntryXi) != nEntry || len(s.EntryValue) != nEntry {
		return fmt.Errorf("checkpoint: ragged entry slices have mismatched lengths (%d,%d,%d)", len(s.EntryXi), nEntry, len(s.EntryValue))
	}

	h := cdf.NewHeader([]string{dimEntry, dimGrid}, []int{nEntry, len(s.GridX)})
	h.AddAttribute("", "time", []float64{s.Time})
	h.AddAttribute("", "n_interstitial", []float64{s.NInterstitial})
	h.AddAttribute("", "previous_i_flux", []float64{s.PreviousIFlux})
	h.AddAttribute("", "n_helium", []float64{s.NHelium})
	h.AddAttribute("", "previous_he_flux", []float64{s.PreviousHeFlux})
	h.AddAttribute("", "n_deuterium", []float64{s.NDeuterium})
	h.AddAttribute("", "previous_d_flux", []float64{s.PreviousDFlux})
	h.AddAttribute("", "n_tritium", []float64{s.NTritium})
	h.AddAttribute("", "previous_t_flux", []float64{s.PreviousTFlux})
	h.AddAttribute("", "surface_pos", []int32{s.SurfacePos})

	h.AddVariable("grid_x", []string{dimGrid}, []float64{0})
	if nEntry > 0 {
		h.AddVariable("entry_xi", []string{dimEntry}, []int32{0})
		h.AddVariable("entry_id", []string{dimEntry}, []int32{0})
		h.AddVariable("entry_value", []string{dimEntry}, []float64{0})
	}
	h.Define()

	cf, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("checkpoint: write header to %s: %w", path, err)
	}

	if err := writeFloat64(cf, "grid_x", s.GridX); err != nil {
		return err
	}
	if nEntry > 0 {
		if err := writeInt32(cf, "entry_xi", s.EntryXi); err != nil {
			return err
		}
		if err := writeInt32(cf, "entry_id", s.EntryID); err != nil {
			return err
		}
		if err := writeFloat64(cf, "entry_value", s.EntryValue); err != nil {
			return err
		}
	}
	return nil
}

// Reader opens and decodes checkpoint files written by Writer.
type Reader struct{}

// NewReader constructs a checkpoint Reader.
func NewReader() *Reader { return &Reader{} }

// Read decodes the checkpoint file at path.
func (r *Reader) Read(path string) (State, error) {
	var s State
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("checkpoint: open %s: %w", path, err)
	}
	defer f.Close()

	cf, err := cdf.Open(f)
	if err != nil {
		return s, fmt.Errorf("checkpoint: read header from %s: %w", path, err)
	}
	h := cf.Header

	s.Time = scalarFloat(h, "time")
	s.NInterstitial = scalarFloat(h, "n_interstitial")
	s.PreviousIFlux = scalarFloat(h, "previous_i_flux")
	s.NHelium = scalarFloat(h, "n_helium")
	s.PreviousHeFlux = scalarFloat(h, "previous_he_flux")
	s.NDeuterium = scalarFloat(h, "n_deuterium")
	s.PreviousDFlux = scalarFloat(h, "previous_d_flux")
	s.NTritium = scalarFloat(h, "n_tritium")
	s.PreviousTFlux = scalarFloat(h, "previous_t_flux")
	if v, ok := h.GetAttribute("", "surface_pos").([]int32); ok && len(v) > 0 {
		s.SurfacePos = v[0]
	}

	s.GridX, err = readFloat64(cf, "grid_x")
	if err != nil {
		return s, err
	}
	if hasVariable(h, "entry_id") {
		if s.EntryXi, err = readInt32(cf, "entry_xi"); err != nil {
			return s, err
		}
		if s.EntryID, err = readInt32(cf, "entry_id"); err != nil {
			return s, err
		}
		if s.EntryValue, err = readFloat64(cf, "entry_value"); err != nil {
			return s, err
		}
	}
	return s, nil
}

func hasVariable(h *cdf.Header, name string) bool {
	for _, v := range h.Variables() {
		if v == name {
			return true
		}
	}
	return false
}

func scalarFloat(h *cdf.Header, name string) float64 {
	if v, ok := h.GetAttribute("", name).([]float64); ok && len(v) > 0 {
		return v[0]
	}
	return 0
}

func writeFloat64(f *cdf.File, name string, data []float64) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	_, err := f.Writer(name, start, end).Write(data)
	if err != nil {
		return fmt.Errorf("checkpoint: write variable %s: %w", name, err)
	}
	return nil
}

func writeInt32(f *cdf.File, name string, data []int32) error {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	_, err := f.Writer(name, start, end).Write(data)
	if err != nil {
		return fmt.Errorf("checkpoint: write variable %s: %w", name, err)
	}
	return nil
}

func readFloat64(f *cdf.File, name string) ([]float64, error) {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	n := 1
	for _, l := range end {
		n *= l
	}
	out := make([]float64, n)
	if _, err := f.Reader(name, start, end).Read(out); err != nil {
		return nil, fmt.Errorf("checkpoint: read variable %s: %w", name, err)
	}
	return out, nil
}

func readInt32(f *cdf.File, name string) ([]int32, error) {
	end := f.Header.Lengths(name)
	start := make([]int, len(end))
	n := 1
	for _, l := range end {
		n *= l
	}
	out := make([]int32, n)
	if _, err := f.Reader(name, start, end).Read(out); err != nil {
		return nil, fmt.Errorf("checkpoint: read variable %s: %w", name, err)
	}
	return out, nil
}
