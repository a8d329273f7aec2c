// Package ioheader reads the header line of Beagle matrices.
package ioheader

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/gnames/subbeagle/internal/iofs"
	"github.com/gnames/subbeagle/pkg/beagle"
	"github.com/gnames/subbeagle/pkg/subset"
	"github.com/klauspost/pgzip"
)

const (
	// bufSize is the read buffer for plain files and the gzip block size.
	bufSize = 64 * 1024

	// gzBlocks is the number of gzip blocks decoded ahead.
	gzBlocks = 1
)

// Read returns the first line of a matrix without its line terminator.
// Files with a .gz extension are decompressed transparently. Reading stops
// at the first newline, so only the beginning of a large file is touched.
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", InputNotFoundError(path, err)
	}
	if err != nil {
		return "", iofs.ReadFileError(path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if subset.IsCompressed(path) {
		gz, err := pgzip.NewReaderN(f, bufSize, gzBlocks)
		if err != nil {
			return "", iofs.ReadFileError(path, err)
		}
		defer gz.Close()
		r = gz
	}

	return firstLine(path, r)
}

func firstLine(path string, r io.Reader) (string, error) {
	br := bufio.NewReaderSize(r, bufSize)
	line, err := br.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", iofs.ReadFileError(path, err)
	}
	if line == "" {
		return "", beagle.MalformedHeaderError("input file is empty")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
