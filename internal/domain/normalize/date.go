package normalize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

// Excel date serials in this range cover plausible dates of birth while
// leaving plain four-digit years alone.
const (
	minDateSerial = 20000
	maxDateSerial = 80000
)

// Date layouts accepted from uploaded files, most common first.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"2/1/2006",
	"01/02/2006",
	"1/2/2006",
	"02-01-2006",
	"2-1-2006",
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
	"2 Jan 2006",
	"2 January 2006",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// NormalizeDate reformats a date value to ISO YYYY-MM-DD regardless of
// source locale or format. Excel serial numbers, DD/MM/YYYY and free-text
// dates all normalize identically; an unparseable value is an error.
func NormalizeDate(value string) (string, error) {
	if value == "" {
		return "", fmt.Errorf("empty date")
	}

	// Excel exports sometimes surface date cells as raw serial numbers.
	if serial, err := strconv.ParseFloat(value, 64); err == nil {
		if serial < minDateSerial || serial > maxDateSerial {
			return "", fmt.Errorf("numeric value %q is not a plausible date serial", value)
		}
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return "", fmt.Errorf("excel date serial %q: %w", value, err)
		}
		return t.Format("2006-01-02"), nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	return "", fmt.Errorf("unparseable date %q", value)
}
