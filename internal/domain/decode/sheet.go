package decode

import (
	"bytes"
	"fmt"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"
)

// decodeXLSX reads the first worksheet of an XLSX workbook. The first
// row is the header. Cells are read raw rather than through their number
// format, so a date-typed cell surfaces as its day serial, which the
// date normalizer converts, instead of locale-formatted text it cannot.
func (d *Decoder) decodeXLSX(data []byte) ([]Row, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", ErrFileFormat, err)
	}
	defer func() { _ = f.Close() }()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("%w: no worksheet found", ErrFileFormat)
	}

	cells, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: reading worksheet %q: %v", ErrFileFormat, sheetName, err)
	}
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: worksheet %q is empty", ErrFileFormat, sheetName)
	}

	return d.rowsFromCells(cells)
}

// decodeXLS reads the first worksheet of a legacy XLS workbook.
func (d *Decoder) decodeXLS(data []byte) ([]Row, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "utf-8")
	if err != nil {
		return nil, fmt.Errorf("%w: opening workbook: %v", ErrFileFormat, err)
	}
	if workbook.NumSheets() == 0 {
		return nil, fmt.Errorf("%w: no worksheet found", ErrFileFormat)
	}

	cells := workbook.ReadAllCells(d.maxRows)
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: worksheet is empty", ErrFileFormat)
	}

	return d.rowsFromCells(cells)
}
