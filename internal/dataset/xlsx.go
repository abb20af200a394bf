package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/xuri/excelize/v2"
)

// loadXLSX reads one worksheet. Rows go through the same normalization as
// delimited records; blank rows are skipped like blank CSV lines.
func loadXLSX(path string, opt LoadOptions) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, fs.ErrPermission) {
			return nil, openError(path, err)
		}
		return nil, &LoadError{Path: path, Kind: ErrMalformedRecord, Detail: "open workbook", Err: err}
	}
	defer f.Close()

	sheet, err := pickSheet(f.GetSheetList(), opt)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrSheetNotFound, Detail: err.Error()}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, &LoadError{Path: path, Kind: ErrMalformedRecord, Detail: "read sheet " + sheet, Err: err}
	}
	first := 0
	for first < len(rows) && len(rows[first]) == 0 {
		first++
	}
	if first == len(rows) {
		return emptyDataset(path), nil
	}
	rb := newRecordBuilder(path, rows[first])
	for i := first + 1; i < len(rows); i++ {
		if len(rows[i]) == 0 {
			continue
		}
		if err := rb.add(rows[i], i+1); err != nil {
			return nil, err
		}
	}
	return rb.build(opt.missingSet()), nil
}

func pickSheet(sheets []string, opt LoadOptions) (string, error) {
	if opt.SheetName != "" {
		for _, s := range sheets {
			if strings.EqualFold(s, opt.SheetName) {
				return s, nil
			}
		}
		return "", fmt.Errorf("%q (available: %s)", opt.SheetName, strings.Join(sheets, ", "))
	}
	idx := opt.SheetIndex
	if idx <= 0 {
		idx = 1
	}
	if idx > len(sheets) {
		return "", fmt.Errorf("index %d (workbook has %d sheet(s))", idx, len(sheets))
	}
	return sheets[idx-1], nil
}
