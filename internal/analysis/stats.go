package analysis

import (
	"math"
	"runtime"
	"sort"

	"github.com/montanaflynn/stats"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/jski/python-container-builder/internal/dataset"
)

// Options controls the statistics engine.
type Options struct {
	// Percentiles in [0, 100] added to each numeric summary.
	Percentiles []float64
	// Correlations computes Pearson r among numeric columns.
	Correlations bool
	// Workers bounds per-column parallelism; 0 means GOMAXPROCS.
	Workers int
}

// DefaultOptions returns the describe()-style quartiles without correlations.
func DefaultOptions() Options {
	return Options{Percentiles: []float64{25, 50, 75}}
}

// Percentile is a single percentile marker.
type Percentile struct {
	P     float64
	Value float64
}

// SummaryStats holds first/second-moment summaries and extrema of one
// numeric column. All values are absent when Count is 0.
type SummaryStats struct {
	Name  string
	Index int // column position in the dataset
	Count int
	Mean  float64
	Std   float64 // population standard deviation
	Min   float64
	Max   float64

	Percentiles []Percentile
}

// Defined reports whether the column had any present values.
func (s SummaryStats) Defined() bool { return s.Count > 0 }

// MissingCount is the number of missing cells of one column.
type MissingCount struct {
	Name  string
	Index int
	Count int
}

// MissingReport lists columns with at least one missing cell, in column
// order.
type MissingReport []MissingCount

// Total returns the number of missing cells across all columns.
func (m MissingReport) Total() int {
	n := 0
	for _, mc := range m {
		n += mc.Count
	}
	return n
}

// Count returns the missing count of the first column named name.
func (m MissingReport) Count(name string) int {
	for _, mc := range m {
		if mc.Name == name {
			return mc.Count
		}
	}
	return 0
}

// CorrMatrix holds a symmetric Pearson correlation matrix across numeric
// columns. Entries are NaN where fewer than two complete pairs exist or a
// column is constant.
type CorrMatrix struct {
	Columns []string
	Values  [][]float64 // row-major, Values[i][j]
}

// Summary is the engine output for one dataset.
type Summary struct {
	Numeric []SummaryStats
	Missing MissingReport
	Corr    *CorrMatrix
}

// Summarize computes numeric summaries and the missing report. It never
// fails: zero rows, zero numeric columns and all-missing columns yield
// empty results.
func Summarize(ds *dataset.Dataset, opt Options) *Summary {
	var numIdx []int
	for j, c := range ds.Columns {
		if c.Type == dataset.Numeric {
			numIdx = append(numIdx, j)
		}
	}

	out := &Summary{Numeric: make([]SummaryStats, len(numIdx))}
	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for k, j := range numIdx {
		k, j := k, j
		g.Go(func() error {
			col := ds.Columns[j]
			out.Numeric[k] = describe(col.Name, j, col.Present(), opt.Percentiles)
			return nil
		})
	}
	_ = g.Wait()

	for j, c := range ds.Columns {
		if n := c.MissingCount(); n > 0 {
			out.Missing = append(out.Missing, MissingCount{Name: c.Name, Index: j, Count: n})
		}
	}
	if opt.Correlations && len(numIdx) >= 2 {
		out.Corr = correlate(ds, numIdx)
	}
	return out
}

func describe(name string, idx int, vals []float64, pcts []float64) SummaryStats {
	s := SummaryStats{Name: name, Index: idx, Count: len(vals)}
	if s.Count == 0 {
		return s
	}
	s.Mean, _ = stats.Mean(vals)
	s.Std, _ = stats.StandardDeviationPopulation(vals)
	s.Min, _ = stats.Min(vals)
	s.Max, _ = stats.Max(vals)
	// rounding in the sum can push the mean an ulp past the extrema
	s.Mean = math.Min(math.Max(s.Mean, s.Min), s.Max)

	if len(pcts) > 0 {
		sorted := make([]float64, len(vals))
		copy(sorted, vals)
		sort.Float64s(sorted)
		for _, p := range pcts {
			s.Percentiles = append(s.Percentiles, Percentile{P: p, Value: quantile(sorted, p/100)})
		}
	}
	return s
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}

// correlate computes pairwise-complete Pearson r for the given columns.
func correlate(ds *dataset.Dataset, numIdx []int) *CorrMatrix {
	n := len(numIdx)
	m := &CorrMatrix{Columns: make([]string, n), Values: make([][]float64, n)}
	for a, j := range numIdx {
		m.Columns[a] = ds.Columns[j].Name
		m.Values[a] = make([]float64, n)
	}
	for a := 0; a < n; a++ {
		m.Values[a][a] = 1
		for b := a + 1; b < n; b++ {
			x, y := completePairs(ds.Columns[numIdx[a]], ds.Columns[numIdx[b]])
			r := math.NaN()
			if len(x) >= 2 {
				r = stat.Correlation(x, y, nil)
			}
			m.Values[a][b] = r
			m.Values[b][a] = r
		}
	}
	return m
}

func completePairs(a, b *dataset.Column) (x, y []float64) {
	for i := range a.Cells {
		ca, cb := a.Cells[i], b.Cells[i]
		if ca.Missing || cb.Missing {
			continue
		}
		x = append(x, ca.Value)
		y = append(y, cb.Value)
	}
	return x, y
}
