// Package iosamples loads lists of sample IDs.
package iosamples

import (
	"bufio"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/subbeagle/internal/iofs"
	"github.com/gnames/subbeagle/pkg/beagle"
)

// maxLine limits the length of one line of a sample list.
const maxLine = 1 << 20

// Load reads a sample list with one ID per line. Surrounding whitespace is
// trimmed, blank lines are skipped and duplicates collapse into one entry.
func Load(path string) (beagle.SampleSet, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, SampleListNotFoundError(path, err)
	}
	if err != nil {
		return nil, iofs.ReadFileError(path, err)
	}
	defer f.Close()

	res := make(beagle.SampleSet)
	var lines int
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)
	for sc.Scan() {
		lines++
		id := strings.TrimSpace(sc.Text())
		if id == "" {
			continue
		}
		res[id] = struct{}{}
	}
	if err = sc.Err(); err != nil {
		return nil, iofs.ReadFileError(path, err)
	}

	if len(res) == 0 {
		return nil, EmptySampleListError(path)
	}

	slog.Info("Sample list loaded",
		"path", path, "lines", lines, "samples", len(res))
	return res, nil
}
