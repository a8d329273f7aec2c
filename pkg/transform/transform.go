// Package transform defines the contract of line transformers, the
// streaming stage that rewrites a matrix keeping only selected fields.
package transform

import (
	"context"
	"io"
)

// LineTransformer copies Input to Output line by line, keeping only the
// fields listed in a Spec.
type LineTransformer interface {
	// Transform blocks until the whole input is processed. A failure
	// reported by an external process carries its exit code.
	Transform(ctx context.Context, spec Spec) error

	// Name returns the engine name used in reports and logs.
	Name() string
}

// Spec describes one transformation.
type Spec struct {
	// Input is the path of the source matrix.
	Input string

	// Output is the path of the matrix to create.
	Output string

	// Fields are 1-based positions of fields to keep, in output order.
	Fields []int

	// Separator delimits fields both in input and output.
	Separator byte

	// InputCompressed is true if Input has to be decompressed with gzip.
	InputCompressed bool

	// OutputCompressed is true if Output has to be compressed with gzip.
	OutputCompressed bool

	// InputSize is the size of Input on disk in bytes.
	InputSize int64

	// Progress reports consumption of Input bytes. Nil disables
	// progress reporting.
	Progress Progress
}

// Progress tracks how many bytes of input a transformer consumed.
type Progress interface {
	// Track wraps r so that bytes read from it are counted against
	// total.
	Track(r io.Reader, total int64) io.Reader

	// Finish finalizes the progress display.
	Finish()
}
