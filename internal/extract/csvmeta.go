package extract

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/Harshitha061298/Clearcare-Project/internal/model"
)

// Sink consumes the canonical record stream a walker emits.
type Sink interface {
	Write(rec *model.Record) error
}

// openCSV opens a raw CSV source with a large read buffer, skipping a UTF-8
// BOM if present. Hospital CSVs are frequently hand-exported, so quoting is
// lax and ragged rows are tolerated.
func openCSV(path string) (*os.File, *csv.Reader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}

	br := bufio.NewReaderSize(f, 256*1024)
	if bom, err := br.Peek(3); err == nil && len(bom) >= 3 && bom[0] == 0xEF && bom[1] == 0xBB && bom[2] == 0xBF {
		br.Discard(3)
	}

	r := csv.NewReader(br)
	r.LazyQuotes = true
	r.FieldsPerRecord = -1
	return f, r, nil
}

// readMetaHeader consumes the two leading header-less key/value rows every
// tall and wide source starts with (version, last-updated, address fields)
// and returns them as a map. The data body starts at the next row.
func readMetaHeader(r *csv.Reader) (map[string]string, error) {
	keys, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read metadata key row: %w", err)
	}
	if len(keys) > 0 {
		keys[0] = strings.TrimPrefix(keys[0], "\uFEFF")
	}
	values, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read metadata value row: %w", err)
	}

	meta := make(map[string]string, len(keys))
	for i, k := range keys {
		v := ""
		if i < len(values) {
			v = values[i]
		}
		meta[strings.TrimSpace(k)] = v
	}
	return meta, nil
}

// columnIndex maps body column names to positions. Pipe-separated segments
// are trimmed so "code|1| type" indexes as "code|1|type".
func columnIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[normalizeHeader(h)] = i
	}
	return idx
}

func normalizeHeader(h string) string {
	parts := strings.Split(h, "|")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, "|")
}

// field returns the named column's value for a row, or "" when the column is
// absent or the row is short.
func field(row []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
