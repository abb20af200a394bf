package analysis

import (
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/jski/python-container-builder/internal/dataset"
)

// DefaultPreviewRows is the number of leading rows shown in the preview.
const DefaultPreviewRows = 5

const rule = "=================================================="

// Report renders a dataset and its summary as plain text.
type Report struct {
	Dataset     *dataset.Dataset
	Summary     *Summary
	PreviewRows int
	// GeneratedAt is the only field that varies between renders of the
	// same dataset.
	GeneratedAt time.Time
}

// NewReport bundles a dataset with its summary, stamped with the current time.
func NewReport(ds *dataset.Dataset, sum *Summary, previewRows int) *Report {
	if previewRows <= 0 {
		previewRows = DefaultPreviewRows
	}
	return &Report{Dataset: ds, Summary: sum, PreviewRows: previewRows, GeneratedAt: time.Now().UTC()}
}

// Render writes the report to w.
func (r *Report) Render(w io.Writer) error {
	_, err := io.WriteString(w, r.String())
	return err
}

// String renders the report sections in fixed order.
func (r *Report) String() string {
	var b strings.Builder
	b.WriteString(rule + "\nDATA ANALYSIS REPORT\n" + rule + "\n")
	b.WriteString(fmt.Sprintf("Generated: %s\n", r.GeneratedAt.Format(time.RFC3339)))
	if r.Dataset.Name != "" {
		b.WriteString(fmt.Sprintf("Source: %s\n", r.Dataset.Name))
	}
	b.WriteString("\n")

	r.writeOverview(&b)
	r.writeDescribe(&b)
	r.writeNumeric(&b)
	r.writeMissing(&b)
	r.writePreview(&b)
	r.writeCorrelations(&b)
	if len(r.Dataset.Warnings) > 0 {
		b.WriteString("Notes:\n")
		for _, w := range r.Dataset.Warnings {
			b.WriteString("  - " + w + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(rule + "\nAnalysis complete!\n" + rule + "\n")
	return b.String()
}

func (r *Report) writeOverview(b *strings.Builder) {
	ds := r.Dataset
	b.WriteString("Dataset Overview:\n")
	b.WriteString(fmt.Sprintf("  Shape: (%d, %d)\n", ds.Rows(), ds.Cols()))
	if ds.Cols() == 0 {
		b.WriteString("  Columns: (none)\n\n")
		return
	}
	names := make([]string, ds.Cols())
	types := make([]string, ds.Cols())
	for i, c := range ds.Columns {
		names[i] = safeName(c.Name)
		types[i] = fmt.Sprintf("%s (%s)", names[i], c.Type)
	}
	b.WriteString("  Columns: " + strings.Join(names, ", ") + "\n")
	b.WriteString("  Types: " + strings.Join(types, ", ") + "\n\n")
}

func (r *Report) writeDescribe(b *strings.Builder) {
	b.WriteString("Descriptive Statistics:\n")
	num := r.Summary.Numeric
	if len(num) == 0 {
		b.WriteString("  (no numeric columns)\n\n")
		return
	}
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, s := range num {
		fmt.Fprintf(tw, "%s\t", safeName(s.Name))
	}
	fmt.Fprintln(tw)

	row := func(label string, value func(SummaryStats) float64) {
		fmt.Fprintf(tw, "%s\t", label)
		for _, s := range num {
			fmt.Fprintf(tw, "%s\t", describeValue(s, value(s)))
		}
		fmt.Fprintln(tw)
	}
	fmt.Fprint(tw, "count\t")
	for _, s := range num {
		fmt.Fprintf(tw, "%d\t", s.Count)
	}
	fmt.Fprintln(tw)
	row("mean", func(s SummaryStats) float64 { return s.Mean })
	row("std", func(s SummaryStats) float64 { return s.Std })
	row("min", func(s SummaryStats) float64 { return s.Min })
	// every column carries the same percentile list
	for i, p := range num[0].Percentiles {
		row(percentLabel(p.P), func(s SummaryStats) float64 {
			if i < len(s.Percentiles) {
				return s.Percentiles[i].Value
			}
			return math.NaN()
		})
	}
	row("max", func(s SummaryStats) float64 { return s.Max })
	_ = tw.Flush()
	b.WriteString("\n")
}

func describeValue(s SummaryStats, v float64) string {
	if !s.Defined() || math.IsNaN(v) {
		return "NaN"
	}
	return fmt.Sprintf("%.6f", v)
}

func percentLabel(p float64) string {
	if p == math.Trunc(p) {
		return fmt.Sprintf("%d%%", int(p))
	}
	return fmt.Sprintf("%g%%", p)
}

func (r *Report) writeNumeric(b *strings.Builder) {
	b.WriteString("Numeric Column Summaries:\n")
	if len(r.Summary.Numeric) == 0 {
		b.WriteString("  (no numeric columns)\n\n")
		return
	}
	for _, s := range r.Summary.Numeric {
		b.WriteString(fmt.Sprintf("  %s:\n", safeName(s.Name)))
		if !s.Defined() {
			b.WriteString("    (no values)\n")
			continue
		}
		b.WriteString(fmt.Sprintf("    Mean: %.2f\n", s.Mean))
		b.WriteString(fmt.Sprintf("    Std Dev: %.2f\n", s.Std))
		b.WriteString(fmt.Sprintf("    Min: %.2f\n", s.Min))
		b.WriteString(fmt.Sprintf("    Max: %.2f\n", s.Max))
	}
	b.WriteString("\n")
}

func (r *Report) writeMissing(b *strings.Builder) {
	if len(r.Summary.Missing) == 0 {
		b.WriteString("No missing values detected\n\n")
		return
	}
	b.WriteString("Missing Values:\n")
	for _, m := range r.Summary.Missing {
		b.WriteString(fmt.Sprintf("  %s: %d\n", safeName(m.Name), m.Count))
	}
	b.WriteString("\n")
}

func (r *Report) writePreview(b *strings.Builder) {
	ds := r.Dataset
	k := r.PreviewRows
	if k <= 0 {
		k = DefaultPreviewRows
	}
	b.WriteString(fmt.Sprintf("First %d rows:\n", k))
	if ds.Rows() == 0 || ds.Cols() == 0 {
		b.WriteString("  (no rows)\n\n")
		return
	}
	if ds.Rows() < k {
		k = ds.Rows()
	}
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "\t")
	for _, c := range ds.Columns {
		fmt.Fprintf(tw, "%s\t", safeVal(safeName(c.Name)))
	}
	fmt.Fprintln(tw)
	for i := 0; i < k; i++ {
		fmt.Fprintf(tw, "%d\t", i)
		for _, cell := range ds.Row(i) {
			v := "NaN"
			if !cell.Missing {
				v = safeVal(cell.Raw)
			}
			fmt.Fprintf(tw, "%s\t", v)
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
	b.WriteString("\n")
}

func (r *Report) writeCorrelations(b *strings.Builder) {
	m := r.Summary.Corr
	if m == nil || len(m.Columns) < 2 {
		return
	}
	b.WriteString("Correlations:\n")
	for i := 0; i < len(m.Columns); i++ {
		for j := i + 1; j < len(m.Columns); j++ {
			v := m.Values[i][j]
			if math.IsNaN(v) {
				b.WriteString(fmt.Sprintf("  %s ~ %s: r=n/a\n", safeName(m.Columns[i]), safeName(m.Columns[j])))
				continue
			}
			b.WriteString(fmt.Sprintf("  %s ~ %s: r=%.3f\n", safeName(m.Columns[i]), safeName(m.Columns[j]), v))
		}
	}
	b.WriteString("\n")
}

func safeName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "(unnamed)"
	}
	return s
}

// safeVal keeps a value on one table cell.
func safeVal(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ", "\t", " ").Replace(s)
	if r := []rune(s); len(r) > 40 {
		s = string(r[:37]) + "..."
	}
	return s
}
