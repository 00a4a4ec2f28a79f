package output

import "github.com/Harshitha061298/Clearcare-Project/internal/model"

// RecordWriter is the write side of a canonical record stream.
type RecordWriter interface {
	Write(rec *model.Record) error
}

type multiWriter struct {
	writers []RecordWriter
}

// MultiWriter fans each record out to every writer, stopping at the first
// failure.
func MultiWriter(writers ...RecordWriter) RecordWriter {
	return &multiWriter{writers: writers}
}

func (m *multiWriter) Write(rec *model.Record) error {
	for _, w := range m.writers {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}
