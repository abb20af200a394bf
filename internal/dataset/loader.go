package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LoadOptions controls how a source file is parsed.
type LoadOptions struct {
	// Delimiter for delimited text. If 0, .tsv files use tab and other
	// files are sniffed from the header line among ',', ';', '\t', '|'.
	Delimiter rune
	// MissingValues lists sentinels treated as missing. Nil means
	// DefaultMissingValues. The empty field is always missing.
	MissingValues []string
	// XLSX sheet selection. SheetName wins; SheetIndex is 1-based and
	// defaults to the first sheet.
	SheetName  string
	SheetIndex int
}

// DefaultLoadOptions returns the default sentinels and the first sheet.
func DefaultLoadOptions() LoadOptions {
	return LoadOptions{MissingValues: DefaultMissingValues, SheetIndex: 1}
}

func (o LoadOptions) missingSet() MissingSet {
	if o.MissingValues == nil {
		return NewMissingSet(DefaultMissingValues)
	}
	return NewMissingSet(o.MissingValues)
}

// Load reads a delimited text file (or an .xlsx workbook) into a Dataset.
// The first record is the header. A header with no data rows yields a valid
// empty Dataset.
func Load(path string, opt LoadOptions) (*Dataset, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return loadXLSX(path, opt)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, openError(path, err)
	}
	text, err := decodeText(b)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrUnsupportedEncoding, Err: err}
	}
	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path, text)
	}
	r := csv.NewReader(strings.NewReader(text))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return emptyDataset(path), nil
		}
		return nil, recordError(path, err)
	}
	rb := newRecordBuilder(path, header)
	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, recordError(path, err)
		}
		line, _ := r.FieldPos(0)
		if err := rb.add(rec, line); err != nil {
			return nil, err
		}
	}
	return rb.build(opt.missingSet()), nil
}

func emptyDataset(path string) *Dataset {
	return &Dataset{
		Name:     filepath.Base(path),
		Warnings: []string{"input is empty: no header row"},
	}
}

func openError(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &LoadError{Path: path, Kind: ErrFileNotFound, Err: err}
	case errors.Is(err, fs.ErrPermission):
		return &LoadError{Path: path, Kind: ErrPermissionDenied, Err: err}
	}
	return fmt.Errorf("load %s: %w", path, err)
}

func recordError(path string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &LoadError{Path: path, Line: pe.StartLine, Kind: ErrMalformedRecord, Err: pe.Err}
	}
	return &LoadError{Path: path, Kind: ErrMalformedRecord, Err: err}
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText accepts UTF-8 (with or without BOM) and BOM-prefixed UTF-16.
func decodeText(b []byte) (string, error) {
	if bytes.HasPrefix(b, []byte{0xFF, 0xFE}) || bytes.HasPrefix(b, []byte{0xFE, 0xFF}) {
		out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), b)
		if err != nil {
			return "", fmt.Errorf("decode utf-16: %w", err)
		}
		return string(out), nil
	}
	b = bytes.TrimPrefix(b, utf8BOM)
	if bytes.IndexByte(b, 0) >= 0 {
		return "", errors.New("input contains NUL bytes")
	}
	if !utf8.Valid(b) {
		return "", errors.New("input is not valid UTF-8")
	}
	return string(b), nil
}

func sniffDelimiter(path, text string) rune {
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	first := text
	if i := strings.IndexByte(text, '\n'); i >= 0 {
		first = text[:i]
	}
	best, bestN := ',', strings.Count(first, ",")
	for _, c := range []rune{';', '\t', '|'} {
		if n := strings.Count(first, string(c)); n > bestN {
			best, bestN = c, n
		}
	}
	return best
}

// recordBuilder normalizes records against the header: short records are
// padded with missing fields, long ones are rejected unless the surplus
// fields are all empty.
type recordBuilder struct {
	path     string
	header   []string
	records  [][]string
	trimmed  int
	warnings []string
}

func newRecordBuilder(path string, header []string) *recordBuilder {
	rb := &recordBuilder{path: path, header: make([]string, len(header))}
	positions := map[string][]int{}
	var order []string
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		rb.header[i] = name
		if _, ok := positions[name]; !ok {
			order = append(order, name)
		}
		positions[name] = append(positions[name], i+1)
	}
	for _, name := range order {
		if pos := positions[name]; len(pos) > 1 {
			parts := make([]string, len(pos))
			for i, p := range pos {
				parts[i] = strconv.Itoa(p)
			}
			rb.warnings = append(rb.warnings, fmt.Sprintf("duplicate column name %q at positions %s; columns kept separately", name, strings.Join(parts, ", ")))
		}
	}
	return rb
}

func (rb *recordBuilder) add(rec []string, line int) error {
	n := len(rb.header)
	if len(rec) > n {
		for _, extra := range rec[n:] {
			if strings.TrimSpace(extra) != "" {
				return &LoadError{
					Path:   rb.path,
					Line:   line,
					Kind:   ErrSchemaMismatch,
					Detail: fmt.Sprintf("expected %d fields, got %d", n, len(rec)),
				}
			}
		}
		rec = rec[:n]
		rb.trimmed++
	}
	row := make([]string, n)
	copy(row, rec)
	rb.records = append(rb.records, row)
	return nil
}

func (rb *recordBuilder) build(missing MissingSet) *Dataset {
	ds := New(filepath.Base(rb.path), rb.header, rb.records, missing)
	ds.Warnings = append(ds.Warnings, rb.warnings...)
	if rb.trimmed > 0 {
		ds.Warnings = append(ds.Warnings, fmt.Sprintf("dropped empty trailing fields on %d row(s)", rb.trimmed))
	}
	return ds
}
