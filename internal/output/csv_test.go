package output

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/Harshitha061298/Clearcare-Project/internal/model"
)

func TestCSVWriter_HeaderAndRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path, true)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}

	rec := &model.Record{
		HospitalName:    "General",
		Code:            "99213",
		CodeType:        "CPT",
		NegotiatedPrice: "125.50",
		Modifiers:       "26, TC",
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if w.Written() != 1 {
		t.Errorf("Written = %d, want 1", w.Written())
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want header + 1", len(rows))
	}
	if len(rows[0]) != 22 {
		t.Errorf("header has %d columns, want 22", len(rows[0]))
	}
	if rows[0][0] != "hospital name" || rows[0][21] != "modifiers" {
		t.Errorf("unexpected header: %v", rows[0])
	}
	if rows[1][2] != "99213" || rows[1][21] != "26, TC" {
		t.Errorf("unexpected row: %v", rows[1])
	}
}

func TestCSVWriter_JSONFormatOmitsModifiers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := NewCSVWriter(path, false)
	if err != nil {
		t.Fatalf("NewCSVWriter: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(rows[0]) != 21 {
		t.Errorf("header has %d columns, want 21", len(rows[0]))
	}
	if rows[0][20] != "additional notes" {
		t.Errorf("last column = %q", rows[0][20])
	}
}

type countingWriter struct{ n int }

func (c *countingWriter) Write(*model.Record) error { c.n++; return nil }

func TestMultiWriter(t *testing.T) {
	a, b := &countingWriter{}, &countingWriter{}
	mw := MultiWriter(a, b)
	if err := mw.Write(&model.Record{}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if a.n != 1 || b.n != 1 {
		t.Errorf("fan-out counts = %d, %d", a.n, b.n)
	}
}
