// Package iotesting provides shared test utilities.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
)

// Matrix is a small Beagle file with three samples and two markers.
const Matrix = "marker\tallele1\tallele2\tInd0\tInd0\tInd0\tInd1\tInd1\tInd1\tInd2\tInd2\tInd2\n" +
	"chr1_100\t0\t1\t0.9\t0.1\t0\t0.2\t0.6\t0.2\t0\t0\t1\n" +
	"chr1_200\t2\t3\t0.5\t0.5\t0\t1\t0\t0\t0.3\t0.3\t0.4\n"

// WriteFile writes content to dir/name and returns the path. Content is
// gzipped when name ends with ".gz".
func WriteFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	data := []byte(content)
	if strings.HasSuffix(name, ".gz") {
		var buf bytes.Buffer
		w := pgzip.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			t.Fatalf("Failed to compress %s: %v", name, err)
		}
		if err := w.Close(); err != nil {
			t.Fatalf("Failed to compress %s: %v", name, err)
		}
		data = buf.Bytes()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}

// ReadFile returns the content of a file, decompressing it when the path
// ends with ".gz".
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open %s: %v", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gzr, err := pgzip.NewReader(f)
		if err != nil {
			t.Fatalf("Failed to open gzip %s: %v", path, err)
		}
		defer gzr.Close()
		r = gzr
	}

	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

// SetupTempHome points HOME to a temporary directory, so config and log
// files created during a test never touch ~/.config/subbeagle.
//
// Returns the absolute path to the temporary home directory.
func SetupTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, v := range []string{
		"SUBBEAGLE_LOG_LEVEL", "SUBBEAGLE_LOG_FORMAT",
		"SUBBEAGLE_LOG_DESTINATION", "SUBBEAGLE_ENGINE",
		"SUBBEAGLE_COMPRESSION_LEVEL", "SUBBEAGLE_WITH_PROGRESS",
		"SUBBEAGLE_JOBS_NUMBER",
	} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
	return home
}
