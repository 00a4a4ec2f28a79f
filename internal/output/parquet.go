package output

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/Harshitha061298/Clearcare-Project/internal/model"
)

const parquetFlushEvery = 1024

// ParquetWriter mirrors the canonical record stream into a Parquet file,
// buffering records into row-group sized batches.
type ParquetWriter struct {
	file *os.File
	w    *parquet.GenericWriter[model.Record]
	buf  []model.Record
}

// NewParquetWriter creates path and prepares a generic writer over the
// canonical record schema.
func NewParquetWriter(path string) (*ParquetWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create parquet file: %w", err)
	}
	return &ParquetWriter{
		file: f,
		w:    parquet.NewGenericWriter[model.Record](f),
		buf:  make([]model.Record, 0, parquetFlushEvery),
	}, nil
}

// Write buffers one record, flushing full batches to the writer.
func (p *ParquetWriter) Write(rec *model.Record) error {
	p.buf = append(p.buf, *rec)
	if len(p.buf) < parquetFlushEvery {
		return nil
	}
	return p.flush()
}

func (p *ParquetWriter) flush() error {
	if len(p.buf) == 0 {
		return nil
	}
	if _, err := p.w.Write(p.buf); err != nil {
		return fmt.Errorf("write parquet rows: %w", err)
	}
	p.buf = p.buf[:0]
	return nil
}

// Close flushes remaining records and finalizes the file footer.
func (p *ParquetWriter) Close() error {
	if err := p.flush(); err != nil {
		p.file.Close()
		return err
	}
	if err := p.w.Close(); err != nil {
		p.file.Close()
		return fmt.Errorf("close parquet writer: %w", err)
	}
	return p.file.Close()
}
