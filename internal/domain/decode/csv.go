package decode

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// decodeCSV parses CSV bytes with header-row inference. Quoting errors
// and inconsistent column counts abort the batch; there is no row
// skipping or repair.
func (d *Decoder) decodeCSV(data []byte) ([]Row, error) {
	decoded, _, err := detectAndDecode(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
	}

	counter := &countingReader{r: bytes.NewReader(decoded), total: int64(len(decoded)), report: d.reportProgress}
	reader := csv.NewReader(counter)

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty file, no header row found", ErrFileFormat)
		}
		return nil, fmt.Errorf("%w: reading header row: %v", ErrFileFormat, err)
	}

	cells := [][]string{header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFileFormat, err)
		}
		cells = append(cells, record)
		if d.maxRows > 0 && len(cells) > d.maxRows {
			return nil, fmt.Errorf("%w: more than %d rows", ErrFileFormat, d.maxRows)
		}
	}

	return d.rowsFromCells(cells)
}

// countingReader reports read progress while the CSV parser consumes input.
type countingReader struct {
	r      io.Reader
	read   int64
	total  int64
	report func(done, total int64)
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	if n > 0 {
		c.read += int64(n)
		if c.report != nil {
			c.report(c.read, c.total)
		}
	}
	return n, err //nolint:wrapcheck // io.Reader contract passes EOF through untouched
}
