package iotransform

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"log/slog"
	"slices"

	"github.com/gnames/subbeagle/pkg/config"
	"github.com/gnames/subbeagle/pkg/transform"
)

const (
	// maxLineSize limits the length of one matrix row.
	maxLineSize = 1 << 30

	// ctxCheckLines is how often (in lines) cancellation is checked.
	ctxCheckLines = 4096
)

type native struct {
	level int
	jobs  int
}

func newNative(cfg *config.Config) *native {
	return &native{level: cfg.CompressionLevel, jobs: cfg.JobsNumber}
}

// Name returns "native".
func (n *native) Name() string {
	return "native"
}

// Transform streams the input line by line, writing selected fields.
func (n *native) Transform(ctx context.Context, spec transform.Spec) error {
	in, err := openInput(spec, n.jobs)
	if err != nil {
		return TransformFailedError(n.Name(), -1, err)
	}
	defer in.Close()

	out, err := createOutput(spec, n.level, n.jobs)
	if err != nil {
		finishProgress(spec)
		return TransformFailedError(n.Name(), -1, err)
	}

	lines, err := selectFields(ctx, in, out, spec.Fields, spec.Separator)
	finishProgress(spec)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return TransformFailedError(n.Name(), -1, err)
	}

	slog.Info("Matrix transformed", "engine", n.Name(), "lines", lines)
	return nil
}

// selectFields copies lines from r to w keeping fields in the given
// 1-based positions. Fields missing from a line are written empty, and a
// trailing "\r" is dropped from every line. It returns the number of lines
// written.
func selectFields(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	fields []int,
	sep byte,
) (int, error) {
	if len(fields) == 0 {
		return 0, nil
	}
	maxField := slices.Max(fields)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	bounds := make([][2]int, 0, maxField)
	row := make([]byte, 0, 64*1024)
	var count int
	for sc.Scan() {
		if count%ctxCheckLines == 0 {
			if err := ctx.Err(); err != nil {
				return count, err
			}
		}
		line := sc.Bytes()
		bounds = splitFields(line, sep, maxField, bounds)

		row = row[:0]
		for i, f := range fields {
			if i > 0 {
				row = append(row, sep)
			}
			if f <= len(bounds) {
				b := bounds[f-1]
				row = append(row, line[b[0]:b[1]]...)
			}
		}
		row = append(row, '\n')
		if _, err := w.Write(row); err != nil {
			return count, err
		}
		count++
	}
	return count, sc.Err()
}

// splitFields finds start and end offsets of at most limit fields of line.
func splitFields(line []byte, sep byte, limit int, bounds [][2]int) [][2]int {
	bounds = bounds[:0]
	var start int
	for len(bounds) < limit {
		i := bytes.IndexByte(line[start:], sep)
		if i < 0 {
			bounds = append(bounds, [2]int{start, len(line)})
			break
		}
		bounds = append(bounds, [2]int{start, start + i})
		start += i + 1
	}
	return bounds
}
