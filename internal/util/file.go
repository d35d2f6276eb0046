package util

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

// StdStream is the path that selects stdin or stdout.
const StdStream = "-"

// WriteOutput streams write into path. The content lands in a temporary
// file next to path and is renamed into place only when write succeeds, so
// an interrupted run never leaves half a report behind. An empty path or "-"
// writes to stdout.
func WriteOutput(path string, stdout io.Writer, write func(io.Writer) error) error {
	if path == "" || path == StdStream {
		bw := bufio.NewWriter(stdout)
		if err := write(bw); err != nil {
			return err
		}
		return bw.Flush()
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*_tmp")
	if err != nil {
		return fmt.Errorf("output: %w", err)
	}
	tmpName := tmp.Name()
	defer CleanupFile(tmpName)

	bw := bufio.NewWriter(tmp)
	if err := write(bw); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// OpenInput opens path for reading, or stdin for "-".
func OpenInput(path string) (io.ReadCloser, error) {
	if path == StdStream {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

// CleanupFile removes a leftover temporary file, ignoring files already gone.
func CleanupFile(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("error removing %s: %v", path, err)
	}
}
