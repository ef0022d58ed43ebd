// Package decode turns raw roster file bytes into ordered, loosely-typed
// rows. It understands CSV text and XLS/XLSX workbooks; anything else is
// rejected before any content is read.
package decode

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Format identifies the tabular file format inferred from the filename.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLS  Format = "xls"
	FormatXLSX Format = "xlsx"
)

// Row is one decoded data row: column header -> scalar value. Values are
// strings, bools, int64s, float64s or time.Times depending on inference.
// Rows are ephemeral; the normalizer discards them after canonicalization.
type Row struct {
	// Num is the 1-based data row number (header row excluded).
	Num    int
	Fields map[string]any
}

// String returns the field coerced to its string form, trimmed.
// Missing fields come back empty.
func (r Row) String(column string) string {
	v, ok := r.Fields[column]
	if !ok || v == nil {
		return ""
	}
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case bool:
		return strconv.FormatBool(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// Bool returns the field as a boolean. Absent or unrecognized values are false.
func (r Row) Bool(column string) bool {
	v, ok := r.Fields[column]
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(t))
		return err == nil && b
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return false
	}
}

// Has reports whether the column exists with a non-empty value.
func (r Row) Has(column string) bool {
	return r.String(column) != ""
}

// Present reports whether the column exists in the file's schema at all,
// even when this row's cell is empty.
func (r Row) Present(column string) bool {
	_, ok := r.Fields[column]
	return ok
}

// Decoder parses file bytes into rows.
type Decoder struct {
	progress ProgressFunc
	maxRows  int
}

// ProgressFunc receives read progress as bytes consumed out of total.
// Replaces the legacy global upload-progress state; the caller owns any
// UI fan-out.
type ProgressFunc func(done, total int64)

// New creates a Decoder with configuration options.
func New(opts ...Option) *Decoder {
	d := &Decoder{
		maxRows: defaultMaxRows,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DetectFormat infers the file format from the filename extension.
// Unsupported extensions fail with ErrUnsupportedFileType naming the
// detected extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return FormatCSV, nil
	case ".xls":
		return FormatXLS, nil
	case ".xlsx":
		return FormatXLSX, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}
}

// Decode parses the file content into ordered rows. The first row is the
// header; decoding the whole file is a single pass with no partial output
// on failure.
func (d *Decoder) Decode(ctx context.Context, format Format, data []byte) ([]Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}
	d.reportProgress(0, int64(len(data)))

	var (
		rows []Row
		err  error
	)
	switch format {
	case FormatCSV:
		rows, err = d.decodeCSV(data)
	case FormatXLS:
		rows, err = d.decodeXLS(data)
	case FormatXLSX:
		rows, err = d.decodeXLSX(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFileType, string(format))
	}
	if err != nil {
		return nil, err
	}

	d.reportProgress(int64(len(data)), int64(len(data)))
	return rows, nil
}

func (d *Decoder) reportProgress(done, total int64) {
	if d.progress != nil {
		d.progress(done, total)
	}
}

// rowsFromCells converts header-plus-data string cells into Rows with
// scalar inference applied to every cell.
func (d *Decoder) rowsFromCells(cells [][]string) ([]Row, error) {
	if len(cells) == 0 {
		return nil, fmt.Errorf("%w: no header row found", ErrFileFormat)
	}

	headers := make([]string, len(cells[0]))
	for i, h := range cells[0] {
		headers[i] = strings.TrimSpace(h)
	}

	var rows []Row
	for _, record := range cells[1:] {
		if isBlank(record) {
			continue
		}
		fields := make(map[string]any, len(headers))
		for i, h := range headers {
			if h == "" {
				continue
			}
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			fields[h] = coerceScalar(cell)
		}
		rows = append(rows, Row{Num: len(rows) + 1, Fields: fields})
	}
	return rows, nil
}

func isBlank(record []string) bool {
	for _, c := range record {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

// coerceScalar infers bool and numeric literals; everything else stays
// a trimmed string.
func coerceScalar(cell string) any {
	s := strings.TrimSpace(cell)
	if s == "" {
		return ""
	}
	switch strings.ToLower(s) {
	case "true":
		return true
	case "false":
		return false
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}
