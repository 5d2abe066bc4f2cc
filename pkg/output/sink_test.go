package output

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func TestDefaultFileName(t *testing.T) {
	got := DefaultFileName(time.Date(2026, time.October, 18, 23, 59, 0, 0, time.UTC))
	if got != "20261018_concatenated.sql" {
		t.Fatalf("DefaultFileName = %q", got)
	}
}

func TestWriteAddsBOM(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.sql")
	s := NewSink(nil)
	if err := s.Write(dest, "SELECT 1;\r\n"); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	want := append(append([]byte{}, utf8BOM...), "SELECT 1;\r\n"...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("file content mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteRefusesExistingWithoutOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.sql")
	if err := os.WriteFile(dest, []byte("keep"), 0o644); err != nil {
		t.Fatalf("seed: %v", err)
	}

	s := NewSink(nil)
	err := s.Write(dest, "new")
	if !errors.Is(err, ErrDestinationExists) {
		t.Fatalf("err = %v, want ErrDestinationExists", err)
	}
	if got, _ := os.ReadFile(dest); string(got) != "keep" {
		t.Fatalf("destination modified: %q", got)
	}

	s.Overwrite = true
	if err := s.Write(dest, "new"); err != nil {
		t.Fatalf("Write with Overwrite: %v", err)
	}
	got, _ := os.ReadFile(dest)
	if !bytes.Equal(got, append(append([]byte{}, utf8BOM...), "new"...)) {
		t.Fatalf("destination not replaced: %q", got)
	}
}

func TestWriteErrorForMissingDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "out.sql")
	err := NewSink(nil).Write(dest, "x")

	var werr *WriteError
	if !errors.As(err, &werr) {
		t.Fatalf("err = %v, want *WriteError", err)
	}
	if werr.Path != dest {
		t.Fatalf("WriteError.Path = %q, want %q", werr.Path, dest)
	}
	if _, statErr := os.Stat(dest); !os.IsNotExist(statErr) {
		t.Fatalf("destination created despite error")
	}
}

func TestWriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := NewSink(nil).Write(filepath.Join(dir, "out.sql"), "x"); err != nil {
		t.Fatalf("Write: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "out.sql" {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Fatalf("unexpected directory contents: %v", names)
	}
}

func TestWriteToHasNoBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTo(&buf, "GO\r\n"); err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if buf.String() != "GO\r\n" {
		t.Fatalf("WriteTo = %q", buf.String())
	}
}
