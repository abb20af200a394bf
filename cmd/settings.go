package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"

	"github.com/jski/python-container-builder/internal/analysis"
	cfgpkg "github.com/jski/python-container-builder/internal/config"
	"github.com/jski/python-container-builder/internal/dataset"
)

// runSettings holds the analysis flags shared by analyze and analyze-batch.
// Flags override config values only when set explicitly.
type runSettings struct {
	delimiter    string
	previewRows  int
	missing      []string
	percentiles  []float64
	correlations bool
	sheetName    string
	sheetIndex   int
}

func (s *runSettings) bind(f *pflag.FlagSet) {
	f.StringVar(&s.delimiter, "delimiter", "", "field delimiter: ',' | ';' | 'tab' | '|' (auto-detect if omitted)")
	f.IntVar(&s.previewRows, "preview-rows", 5, "number of leading rows shown in the preview")
	f.StringSliceVar(&s.missing, "na-values", nil, "values treated as missing (replaces the default set; empty fields are always missing)")
	f.Float64SliceVar(&s.percentiles, "percentiles", nil, "percentiles shown in the descriptive table (default 25,50,75)")
	f.BoolVar(&s.correlations, "correlations", false, "compute Pearson correlations among numeric columns")
	f.StringVar(&s.sheetName, "sheet-name", "", "XLSX: sheet name to analyze")
	f.IntVar(&s.sheetIndex, "sheet-index", 1, "XLSX: 1-based sheet index (used if --sheet-name not provided)")
}

// resolve merges flags over the configuration.
func (s *runSettings) resolve(f *pflag.FlagSet, c *cfgpkg.Global) (dataset.LoadOptions, analysis.Options, int, error) {
	merged := *c
	if f.Changed("delimiter") {
		merged.Delimiter = s.delimiter
	}
	if f.Changed("na-values") {
		merged.MissingValues = s.missing
	}
	if f.Changed("sheet-name") {
		merged.SheetName = s.sheetName
	}
	if f.Changed("sheet-index") {
		merged.SheetIndex = s.sheetIndex
	}
	if f.Changed("percentiles") {
		merged.Percentiles = s.percentiles
	}
	if f.Changed("correlations") {
		merged.Correlations = s.correlations
	}
	if f.Changed("preview-rows") {
		merged.PreviewRows = s.previewRows
	}
	lopt, err := merged.LoadOptions()
	if err != nil {
		return dataset.LoadOptions{}, analysis.Options{}, 0, err
	}
	for _, p := range merged.Percentiles {
		if p < 0 || p > 100 {
			return dataset.LoadOptions{}, analysis.Options{}, 0, fmt.Errorf("percentile out of range [0,100]: %g", p)
		}
	}
	aopt := analysis.DefaultOptions()
	aopt.Percentiles = merged.Percentiles
	aopt.Correlations = merged.Correlations
	preview := merged.PreviewRows
	if preview <= 0 {
		preview = analysis.DefaultPreviewRows
	}
	return lopt, aopt, preview, nil
}

// runAnalysis loads path and builds its report. Progress lines go to w;
// diagnostics go to the logger.
func runAnalysis(w io.Writer, path string, lopt dataset.LoadOptions, aopt analysis.Options, preview int) (*analysis.Report, error) {
	fmt.Fprintf(w, "Loading data from %s...\n", path)
	start := time.Now()
	ds, err := dataset.Load(path, lopt)
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("load failed")
		return nil, err
	}
	fmt.Fprintf(w, "Loaded %d rows and %d columns\n", ds.Rows(), ds.Cols())
	for _, msg := range ds.Warnings {
		log.Warn().Str("path", path).Msg(msg)
	}
	sum := analysis.Summarize(ds, aopt)
	log.Debug().
		Str("path", path).
		Int("numeric_columns", len(sum.Numeric)).
		Int("missing_cells", sum.Missing.Total()).
		Dur("elapsed", time.Since(start)).
		Msg("analysis complete")
	return analysis.NewReport(ds, sum, preview), nil
}
