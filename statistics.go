package neural

import (
	"encoding/csv"
	"os"
	"strconv"

	"github.com/chewxy/math32"
	"github.com/pkg/errors"
	"gorgonia.org/vecf32"
)

// Statistics records the running mean error of every cell after every epoch.
type Statistics struct {
	Creation []string // names of the cells, in order
	Series   map[string][]float32
}

func makeStatistics() Statistics {
	return Statistics{
		Creation: make([]string, 0, 8),
		Series:   make(map[string][]float32),
	}
}

func (s *Statistics) update(names []string, errs []float32) {
	for i, name := range names {
		if _, ok := s.Series[name]; !ok {
			s.Creation = append(s.Creation, name)
		}
		s.Series[name] = append(s.Series[name], errs[i])
	}
}

// History returns the recorded errors of the named cell.
func (s *Statistics) History(name string) []float32 { return s.Series[name] }

// Dump writes the statistics as CSV: a header with the cell names, then one row per epoch.
func (s *Statistics) Dump(filename string) error {
	f, err := os.OpenFile(filename, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return errors.WithStack(err)
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write(s.Creation); err != nil {
		return errors.WithStack(err)
	}

	var epochs int
	for _, name := range s.Creation {
		if l := len(s.Series[name]); l > epochs {
			epochs = l
		}
	}
	records := make([][]string, 0, epochs)
	for e := 0; e < epochs; e++ {
		record := make([]string, len(s.Creation))
		for i, name := range s.Creation {
			if hist := s.Series[name]; e < len(hist) {
				record[i] = strconv.FormatFloat(float64(hist[e]), 'f', 6, 32)
			}
		}
		records = append(records, record)
	}
	if err := w.WriteAll(records); err != nil {
		return errors.WithStack(err)
	}
	w.Flush()
	return errors.WithStack(w.Error())
}

// bestOf returns the index of the lowest error. Diverged cells (NaN or Inf) are never chosen unless all of them diverged.
func bestOf(errs []float32) int {
	clean := make([]float32, len(errs))
	for i, v := range errs {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			v = math32.MaxFloat32
		}
		clean[i] = v
	}
	return vecf32.Argmin(clean)
}

// meanOf averages the errors of the cells that have not diverged.
func meanOf(errs []float32) float32 {
	valid := make([]float32, 0, len(errs))
	for _, v := range errs {
		if !math32.IsNaN(v) && !math32.IsInf(v, 0) {
			valid = append(valid, v)
		}
	}
	if len(valid) == 0 {
		return math32.NaN()
	}
	return vecf32.Sum(valid) / float32(len(valid))
}
