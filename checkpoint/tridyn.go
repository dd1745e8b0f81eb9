package checkpoint

import (
	"fmt"
	"os"

	"github.com/ctessum/cdf"
)

// defaultConcSpeciesWidth is the TRIDYN consumer's implicit
// numConcSpecies constraint: 5 concentration species (He, D, T, V, I)
// between the leading depth column and the trailing temperature
// column. Materials needing more concentration species than this must
// set TridynWriter.ConcSpeciesWidth explicitly; the consumer format
// has no self-describing width field, so a mismatch is a silent
// truncation rather than an error at the format boundary — the same
// implicit constraint the monitor this is grounded on has today.
const defaultConcSpeciesWidth = 5

// TridynWriter writes one TRIDYN_<step>.cdf file per call: a fixed-
// width 2-D dataset of (depth, conc_1..conc_N, temperature) rows, one
// row per grid point.
type TridynWriter struct {
	// ConcSpeciesWidth is the number of concentration columns between
	// depth and temperature. Zero means defaultConcSpeciesWidth.
	ConcSpeciesWidth int
}

// NewTridynWriter constructs a TridynWriter with the default
// concentration species width.
func NewTridynWriter() *TridynWriter {
	return &TridynWriter{ConcSpeciesWidth: defaultConcSpeciesWidth}
}

func (w *TridynWriter) width() int {
	if w.ConcSpeciesWidth <= 0 {
		return defaultConcSpeciesWidth
	}
	return w.ConcSpeciesWidth
}

// Row assembles one TRIDYN row from depth, a concentration slice of
// exactly w.width() species, and temperature.
func (w *TridynWriter) Row(depth float64, conc []float64, temperature float64) ([]float64, error) {
	n := w.width()
	if len(conc) != n {
		return nil, fmt.Errorf("checkpoint: tridyn row needs %d concentration species, got %d", n, len(conc))
	}
	row := make([]float64, 0, n+2)
	row = append(row, depth)
	row = append(row, conc...)
	row = append(row, temperature)
	return row, nil
}

// Write serializes rows (each of length w.width()+2) to path.
func (w *TridynWriter) Write(path string, rows [][]float64) error {
	n := w.width() + 2
	for i, row := range rows {
		if len(row) != n {
			return fmt.Errorf("checkpoint: tridyn row %d has %d columns, want %d", i, len(row), n)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("checkpoint: create %s: %w", path, err)
	}
	defer f.Close()

	h := cdf.NewHeader([]string{"row", "col"}, []int{len(rows), n})
	h.AddAttribute("", "conc_species_width", []int32{int32(w.width())})
	h.AddVariable("tridyn", []string{"row", "col"}, []float64{0})
	h.Define()

	cf, err := cdf.Create(f, h)
	if err != nil {
		return fmt.Errorf("checkpoint: write header to %s: %w", path, err)
	}

	flat := make([]float64, 0, len(rows)*n)
	for _, row := range rows {
		flat = append(flat, row...)
	}
	return writeFloat64(cf, "tridyn", flat)
}

// TridynReader reads files written by TridynWriter.
type TridynReader struct{}

// NewTridynReader constructs a TridynReader.
func NewTridynReader() *TridynReader { return &TridynReader{} }

// Read decodes the file at path back into its row-major rows.
func (r *TridynReader) Read(path string) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: open %s: %w", path, err)
	}
	defer f.Close()

	cf, err := cdf.Open(f)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read header from %s: %w", path, err)
	}
	lengths := cf.Header.Lengths("tridyn")
	if len(lengths) != 2 {
		return nil, fmt.Errorf("checkpoint: tridyn variable has unexpected rank %d", len(lengths))
	}
	nRows, nCols := lengths[0], lengths[1]
	flat, err := readFloat64(cf, "tridyn")
	if err != nil {
		return nil, err
	}
	rows := make([][]float64, nRows)
	for i := 0; i < nRows; i++ {
		rows[i] = flat[i*nCols : (i+1)*nCols]
	}
	return rows, nil
}
