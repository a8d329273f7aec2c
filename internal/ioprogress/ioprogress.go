// Package ioprogress shows how much of an input file was consumed.
package ioprogress

import (
	"io"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/gnames/subbeagle/pkg/transform"
	"github.com/mattn/go-isatty"
)

type progress struct {
	w   io.Writer
	bar *pb.ProgressBar
}

// New creates a byte-count progress bar that draws on w.
func New(w io.Writer) transform.Progress {
	return &progress{w: w}
}

// Available reports if a progress bar can be drawn on f. Bars are only
// drawn on terminals.
func Available(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Track starts the bar and wraps r so that read bytes move it.
func (p *progress) Track(r io.Reader, total int64) io.Reader {
	p.bar = pb.Full.New64(total)
	p.bar.SetWriter(p.w)
	p.bar.Set(pb.Bytes, true)
	p.bar.Set("prefix", "Subsetting: ")
	p.bar.Set(pb.CleanOnFinish, true)
	p.bar.Start()
	return p.bar.NewProxyReader(r)
}

// Finish removes the bar from the screen.
func (p *progress) Finish() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
}
