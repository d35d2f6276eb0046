package util

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteOutput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out", "panel.txt")

	err := WriteOutput(path, io.Discard, func(w io.Writer) error {
		_, err := fmt.Fprint(w, "ASIN  B0X\n")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "ASIN  B0X\n" {
		t.Fatalf("content = %q", b)
	}

	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("leftover files: %v", entries)
	}
}

func TestWriteOutputFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "panel.pdf")
	boom := errors.New("boom")

	err := WriteOutput(path, io.Discard, func(w io.Writer) error {
		_, _ = fmt.Fprint(w, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Fatalf("leftover files: %v", entries)
	}
}

func TestByteSize(t *testing.T) {
	cases := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		2048:    "2.0 KB",
		12595:   "12.3 KB",
		3 << 20: "3.0 MB",
		5 << 40: "5120.0 GB",
	}
	for in, want := range cases {
		if got := ByteSize(in); got != want {
			t.Errorf("ByteSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFileSize(t *testing.T) {
	dir := t.TempDir()
	if _, ok := FileSize(filepath.Join(dir, "missing.html")); ok {
		t.Fatal("missing file reported a size")
	}
	if _, ok := FileSize(dir); ok {
		t.Fatal("directory reported a size")
	}

	path := filepath.Join(dir, "page.html")
	if err := os.WriteFile(path, make([]byte, 2048), 0644); err != nil {
		t.Fatal(err)
	}
	if got, ok := FileSize(path); !ok || got != "2.0 KB" {
		t.Fatalf("FileSize = %q, %v", got, ok)
	}
}

func TestWriteOutputStdout(t *testing.T) {
	var buf strings.Builder
	err := WriteOutput(StdStream, &buf, func(w io.Writer) error {
		_, err := io.WriteString(w, "hello")
		return err
	})
	if err != nil {
		t.Fatal(err)
	}
	if buf.String() != "hello" {
		t.Fatalf("stdout = %q", buf.String())
	}
}
