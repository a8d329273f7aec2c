// Package subset defines the contract of the sample subsetting workflow
// and pure helpers for naming its files.
package subset

import (
	"context"
	"strings"
	"time"

	"github.com/gnames/subbeagle/pkg/beagle"
)

const (
	// Ext is the extension of uncompressed Beagle files.
	Ext = ".beagle"

	// GzExt is the extension of gzip-compressed files.
	GzExt = ".gz"
)

// Subsetter extracts a subset of samples from a Beagle matrix.
type Subsetter interface {
	// Subset runs the whole workflow: it loads the sample list, reads the
	// header, selects columns, transforms the matrix and verifies the
	// output. Every failure is terminal.
	Subset(ctx context.Context, inp Input) (*Result, error)
}

// Input contains paths and the selection mode of one run.
type Input struct {
	// MatrixPath is the Beagle file to subset.
	MatrixPath string

	// OutputPath is the requested output name. It gets Ext appended when
	// it carries neither Ext nor Ext+GzExt.
	OutputPath string

	// SampleListPath is a file with one sample ID per line.
	SampleListPath string

	// Mode determines if listed samples are kept or removed.
	Mode beagle.Mode
}

// Result describes a successful run.
type Result struct {
	// Input is the source matrix path.
	Input string

	// Output is the final output path.
	Output string

	// OutputSize is the size of the output in bytes.
	OutputSize int64

	// Columns is the number of fields written per line.
	Columns int

	// Engine is the name of the line transformer used.
	Engine string

	InputCompressed  bool
	OutputCompressed bool

	// Duration of the whole run.
	Duration time.Duration

	// Report describes the partition of samples.
	Report beagle.Report
}

// IsCompressed reports if a path names a gzip-compressed file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, GzExt)
}

// OutputPath returns the output name with the default extension appended
// when path ends neither with Ext nor with Ext+GzExt.
func OutputPath(path string) string {
	if strings.HasSuffix(path, Ext) || strings.HasSuffix(path, Ext+GzExt) {
		return path
	}
	return path + Ext
}
