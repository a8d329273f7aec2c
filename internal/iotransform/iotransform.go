// Package iotransform implements line transformers that rewrite Beagle
// matrices keeping only selected fields.
//
// Two engines are available. The native engine streams the matrix in Go.
// The awk engine delegates field selection to an external awk process,
// while decompression, compression and progress stay in Go.
package iotransform

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/gnames/subbeagle/internal/iofs"
	"github.com/gnames/subbeagle/pkg/config"
	"github.com/gnames/subbeagle/pkg/transform"
	"github.com/klauspost/pgzip"
)

const (
	// bufSize is used for buffered reading and writing of matrices.
	bufSize = 4 * 1024 * 1024

	// gzBlockSize is the size of gzip blocks processed concurrently.
	gzBlockSize = 1 << 20
)

// New creates a line transformer for the engine set in cfg.
func New(cfg *config.Config) (transform.LineTransformer, error) {
	switch cfg.Engine {
	case "native":
		return newNative(cfg), nil
	case "awk":
		return newAwk("awk", cfg)
	default:
		return nil, UnknownEngineError(cfg.Engine)
	}
}

// gzipr wraps a ReadCloser and a Closer, presenting a single Close()
// method that closes both wrapped objects.
type gzipr struct {
	io.ReadCloser
	io.Closer
}

func (gr gzipr) Close() error {
	e1 := gr.ReadCloser.Close()
	e2 := gr.Closer.Close()
	if e1 != nil {
		return e1
	}
	return e2
}

// plainr reads through a buffer and closes the underlying file.
type plainr struct {
	io.Reader
	io.Closer
}

// openInput returns a reader of decompressed input. When progress is set,
// it counts bytes as they are read from disk.
func openInput(spec transform.Spec, jobs int) (io.ReadCloser, error) {
	f, err := os.Open(spec.Input)
	if err != nil {
		return nil, iofs.ReadFileError(spec.Input, err)
	}

	var r io.Reader = f
	if spec.Progress != nil {
		r = spec.Progress.Track(f, spec.InputSize)
	}
	r = bufio.NewReaderSize(r, bufSize)

	if !spec.InputCompressed {
		return plainr{r, f}, nil
	}

	gz, err := pgzip.NewReaderN(r, gzBlockSize, jobs)
	if err != nil {
		finishProgress(spec)
		f.Close()
		return nil, iofs.ReadFileError(spec.Input, err)
	}
	return gzipr{gz, f}, nil
}

// output writes either plain or gzip-compressed data to a file.
type output struct {
	path string
	f    *os.File
	bufw *bufio.Writer
	gzw  *pgzip.Writer
	w    io.Writer
}

func createOutput(spec transform.Spec, level, jobs int) (*output, error) {
	f, err := os.Create(spec.Output)
	if err != nil {
		return nil, iofs.WriteFileError(spec.Output, err)
	}

	res := &output{path: spec.Output, f: f}
	res.bufw = bufio.NewWriterSize(f, bufSize)
	res.w = res.bufw

	if !spec.OutputCompressed {
		return res, nil
	}

	res.gzw, err = pgzip.NewWriterLevel(res.bufw, level)
	if err == nil {
		err = res.gzw.SetConcurrency(gzBlockSize, jobs)
	}
	if err != nil {
		f.Close()
		return nil, iofs.WriteFileError(spec.Output, err)
	}
	res.w = res.gzw
	return res, nil
}

func (o *output) Write(p []byte) (int, error) {
	return o.w.Write(p)
}

// Close flushes compressed and buffered data and closes the file,
// returning the first error.
func (o *output) Close() error {
	var firstErr error
	if o.gzw != nil {
		if err := o.gzw.Close(); err != nil {
			firstErr = err
		}
	}
	if err := o.bufw.Flush(); err != nil && firstErr == nil {
		firstErr = err
	}
	if err := o.f.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	if firstErr != nil {
		slog.Error("Cannot finalize output", "path", o.path, "error", firstErr)
		return iofs.WriteFileError(o.path, firstErr)
	}
	return nil
}

func finishProgress(spec transform.Spec) {
	if spec.Progress != nil {
		spec.Progress.Finish()
	}
}
