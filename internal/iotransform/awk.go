package iotransform

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"

	"github.com/gnames/subbeagle/internal/iofs"
	"github.com/gnames/subbeagle/pkg/config"
	"github.com/gnames/subbeagle/pkg/transform"
	"golang.org/x/sync/errgroup"
)

// maxStderr limits how much of awk's STDERR is kept for error messages.
const maxStderr = 4096

type awk struct {
	bin   string
	level int
	jobs  int
}

func newAwk(bin string, cfg *config.Config) (*awk, error) {
	path, err := exec.LookPath(bin)
	if err != nil {
		return nil, AwkNotFoundError(bin, err)
	}
	res := &awk{
		bin:   path,
		level: cfg.CompressionLevel,
		jobs:  cfg.JobsNumber,
	}
	return res, nil
}

// Name returns "awk".
func (a *awk) Name() string {
	return "awk"
}

// Transform pipes decompressed input through awk and writes awk's output,
// compressing it when required. awk's STDOUT is consumed incrementally.
func (a *awk) Transform(ctx context.Context, spec transform.Spec) error {
	prog, err := writeProgram(spec.Fields)
	if err != nil {
		return TransformFailedError(a.Name(), -1, err)
	}
	defer os.Remove(prog)

	in, err := openInput(spec, a.jobs)
	if err != nil {
		return TransformFailedError(a.Name(), -1, err)
	}
	defer in.Close()

	out, err := createOutput(spec, a.level, a.jobs)
	if err != nil {
		finishProgress(spec)
		return TransformFailedError(a.Name(), -1, err)
	}

	err = a.run(ctx, prog, spec.Separator, in, out)
	finishProgress(spec)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return err
}

func (a *awk) run(
	ctx context.Context,
	prog string,
	sep byte,
	in io.Reader,
	out io.Writer,
) error {
	g, gCtx := errgroup.WithContext(ctx)

	sepStr := string([]byte{sep})
	cmd := exec.CommandContext(gCtx, a.bin,
		"-F", sepStr, "-v", "OFS="+sepStr, "-f", prog,
	)
	stderr := &limitedBuffer{limit: maxStderr}
	cmd.Stderr = stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return TransformFailedError(a.Name(), -1, err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return TransformFailedError(a.Name(), -1, err)
	}

	slog.Info("Starting awk", "path", a.bin, "program", prog)
	if err = cmd.Start(); err != nil {
		return TransformFailedError(a.Name(), -1, err)
	}

	var waitErr error
	var waited bool

	g.Go(func() error {
		defer stdin.Close()
		_, err := io.Copy(stdin, in)
		return err
	})

	g.Go(func() error {
		if _, err := io.Copy(out, stdout); err != nil {
			return err
		}
		waited = true
		waitErr = cmd.Wait()
		return waitErr
	})

	err = g.Wait()
	if !waited {
		// awk got killed by the canceled group context
		waitErr = cmd.Wait()
	}

	// a negative exit code means awk was killed, the cause is elsewhere
	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) && exitErr.ExitCode() >= 0 {
		code := exitErr.ExitCode()
		slog.Error("awk failed",
			"code", code, "stderr", stderr.String(), "error", err)
		return TransformFailedError(a.Name(), code,
			fmt.Errorf("%w: %s", waitErr, stderr.String()))
	}

	switch {
	case ctx.Err() != nil:
		err = ctx.Err()
	case err == nil:
		err = waitErr
	}
	if err != nil {
		slog.Error("awk pipeline failed", "error", err, "exit", waitErr)
		return TransformFailedError(a.Name(), -1, err)
	}
	return nil
}

// writeProgram saves an awk program printing the given fields to a
// temporary file.
func writeProgram(fields []int) (string, error) {
	refs := make([]string, len(fields))
	for i, v := range fields {
		refs[i] = fmt.Sprintf("$%d", v)
	}
	prog := fmt.Sprintf("{ print %s }\n", strings.Join(refs, ", "))

	f, err := os.CreateTemp("", "subbeagle-*.awk")
	if err != nil {
		return "", iofs.WriteFileError(os.TempDir(), err)
	}
	path := f.Name()
	_, err = f.WriteString(prog)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(path)
		return "", iofs.WriteFileError(path, err)
	}
	return path, nil
}

// limitedBuffer keeps the first limit bytes written to it.
type limitedBuffer struct {
	bytes.Buffer
	limit int
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	if rest := b.limit - b.Len(); rest > 0 {
		if len(p) > rest {
			b.Buffer.Write(p[:rest])
		} else {
			b.Buffer.Write(p)
		}
	}
	return len(p), nil
}
