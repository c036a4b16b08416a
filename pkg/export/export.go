// Package export renders tabular data into downloadable documents.
package export

import "fmt"

// Dataset is a titled table. Every row has one cell per header.
type Dataset struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func (d Dataset) validate(format string) error {
	if len(d.Headers) == 0 {
		return fmt.Errorf("%s requires at least one header", format)
	}
	for i, row := range d.Rows {
		if len(row) != len(d.Headers) {
			return fmt.Errorf("%s row %d has %d cells, want %d", format, i, len(row), len(d.Headers))
		}
	}
	return nil
}

// Exporter renders a Dataset into a single document.
type Exporter interface {
	Render(Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// ForFormat returns the exporter registered for format ("pdf", "csv", "xlsx").
func ForFormat(format string) (Exporter, bool) {
	switch format {
	case "pdf":
		return PDF{}, true
	case "csv":
		return CSV{}, true
	case "xlsx":
		return XLSX{}, true
	default:
		return nil, false
	}
}
