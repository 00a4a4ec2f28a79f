package extract

import (
	"fmt"
	"io"
	"strings"
)

// Format identifies one of the three supported source shapes.
type Format string

const (
	FormatJSON Format = "json"
	FormatTall Format = "tall"
	FormatWide Format = "wide"
)

// SniffResult describes a CSV source without extracting it.
type SniffResult struct {
	Format      Format
	Version     string
	LastUpdated string
	Columns     int
	PayerCols   int
}

// SniffCSV reads only a CSV source's headers and reports whether the body is
// tall or wide, plus the pivoted payer-column count. A header with per-row
// payer identity columns is tall; pivoted payer columns mean wide.
func SniffCSV(path string) (*SniffResult, error) {
	f, r, err := openCSV(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	meta, err := readMetaHeader(r)
	if err != nil {
		return nil, err
	}

	headers, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("no body header in %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read body header: %w", err)
	}

	res := &SniffResult{
		Format:      FormatWide,
		Version:     meta["version"],
		LastUpdated: meta["last_updated_on"],
		Columns:     len(headers),
		PayerCols:   len(selectPayerColumns(headers)),
	}
	for _, h := range headers {
		h = strings.TrimSpace(h)
		if h == "payer_name" || h == "plan_name" {
			res.Format = FormatTall
			break
		}
	}
	if res.Format == FormatWide && res.PayerCols == 0 {
		res.Format = FormatTall
	}
	return res, nil
}
