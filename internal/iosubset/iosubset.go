// Package iosubset runs the sample subsetting workflow: it loads a sample
// list, inspects the matrix header, selects columns and drives a line
// transformer to produce the reduced matrix.
package iosubset

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnsys"
	"github.com/gnames/subbeagle/internal/iofs"
	"github.com/gnames/subbeagle/internal/ioheader"
	"github.com/gnames/subbeagle/internal/iosamples"
	"github.com/gnames/subbeagle/internal/iotransform"
	"github.com/gnames/subbeagle/pkg/beagle"
	"github.com/gnames/subbeagle/pkg/config"
	"github.com/gnames/subbeagle/pkg/subset"
	"github.com/gnames/subbeagle/pkg/transform"
)

// State is a step of a subsetting run.
type State int

const (
	Idle State = iota
	HeaderRead
	Selected
	Transforming
	Succeeded
	Failed
)

var stateNames = map[State]string{
	Idle:         "idle",
	HeaderRead:   "header-read",
	Selected:     "selected",
	Transforming: "transforming",
	Succeeded:    "succeeded",
	Failed:       "failed",
}

// String returns the name of the state.
func (s State) String() string {
	return stateNames[s]
}

type subsetter struct {
	cfg      *config.Config
	lt       transform.LineTransformer
	progress transform.Progress
}

// New creates a Subsetter. The progress argument may be nil, in which case
// no progress is shown.
func New(
	cfg *config.Config,
	lt transform.LineTransformer,
	progress transform.Progress,
) subset.Subsetter {
	res := subsetter{
		cfg:      cfg,
		lt:       lt,
		progress: progress,
	}
	return &res
}

// Subset implements subset.Subsetter.
func (s *subsetter) Subset(
	ctx context.Context,
	inp subset.Input,
) (*subset.Result, error) {
	start := time.Now()
	logState(Idle)

	res, err := s.subset(ctx, inp)
	if err != nil {
		logState(Failed)
		slog.Error("Subsetting failed", "error", err)
		return nil, err
	}

	res.Duration = time.Since(start)
	logState(Succeeded)
	slog.Info("Subsetting finished",
		"output", res.Output,
		"size", res.OutputSize,
		"kept", len(res.Report.Kept),
		"duration", res.Duration.String(),
	)
	return res, nil
}

func (s *subsetter) subset(
	ctx context.Context,
	inp subset.Input,
) (*subset.Result, error) {
	info, err := os.Stat(inp.MatrixPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ioheader.InputNotFoundError(inp.MatrixPath, err)
	}
	if err != nil {
		return nil, iofs.ReadFileError(inp.MatrixPath, err)
	}

	// the sample list is validated before the matrix is touched
	requested, err := iosamples.Load(inp.SampleListPath)
	if err != nil {
		return nil, err
	}

	line, err := ioheader.Read(inp.MatrixPath)
	if err != nil {
		return nil, err
	}
	records, err := beagle.ParseHeader(line)
	if err != nil {
		return nil, err
	}
	logState(HeaderRead)
	slog.Info("Header read", "path", inp.MatrixPath, "samples", len(records))

	plan, rep, err := beagle.Select(records, requested, inp.Mode)
	if err != nil {
		return nil, err
	}
	logState(Selected)
	slog.Info("Columns selected",
		"mode", rep.Mode.String(),
		"kept", len(rep.Kept),
		"removed", len(rep.Removed),
		"absent", len(rep.Absent),
		"columns", len(plan),
	)

	outPath := subset.OutputPath(inp.OutputPath)
	if err = checkSameFile(inp.MatrixPath, info, outPath); err != nil {
		return nil, err
	}
	if err = ensureDir(outPath); err != nil {
		return nil, err
	}

	spec := transform.Spec{
		Input:            inp.MatrixPath,
		Output:           outPath,
		Fields:           plan,
		Separator:        beagle.Separator,
		InputCompressed:  subset.IsCompressed(inp.MatrixPath),
		OutputCompressed: subset.IsCompressed(outPath),
		InputSize:        info.Size(),
		Progress:         s.progress,
	}

	logState(Transforming)
	size, err := s.transform(ctx, spec)
	if err != nil {
		return nil, err
	}

	res := subset.Result{
		Input:            inp.MatrixPath,
		Output:           outPath,
		OutputSize:       size,
		Columns:          len(plan),
		Engine:           s.lt.Name(),
		InputCompressed:  spec.InputCompressed,
		OutputCompressed: spec.OutputCompressed,
		Report:           rep,
	}
	return &res, nil
}

// transform runs the line transformer and verifies that it created a
// non-empty output. On any failure the output file is removed.
func (s *subsetter) transform(
	ctx context.Context,
	spec transform.Spec,
) (int64, error) {
	size, err := s.runTransformer(ctx, spec)
	if err != nil {
		if rmErr := os.Remove(spec.Output); rmErr != nil &&
			!errors.Is(rmErr, fs.ErrNotExist) {
			slog.Warn("Cannot remove failed output",
				"path", spec.Output, "error", rmErr)
		}
		return 0, err
	}
	return size, nil
}

func (s *subsetter) runTransformer(
	ctx context.Context,
	spec transform.Spec,
) (int64, error) {
	if err := s.lt.Transform(ctx, spec); err != nil {
		return 0, err
	}

	info, err := os.Stat(spec.Output)
	if err != nil {
		return 0, iotransform.TransformFailedError(s.lt.Name(), 0,
			OutputMissingError(spec.Output, err))
	}
	if info.Size() == 0 {
		return 0, iotransform.TransformFailedError(s.lt.Name(), 0,
			OutputEmptyError(spec.Output))
	}
	return info.Size(), nil
}

func logState(st State) {
	slog.Debug("Subsetting state changed", "state", st.String())
}

// checkSameFile fails when output names the input file itself, directly
// or through a link.
func checkSameFile(input string, inInfo fs.FileInfo, output string) error {
	inAbs, inErr := filepath.Abs(input)
	outAbs, outErr := filepath.Abs(output)
	if inErr == nil && outErr == nil && inAbs == outAbs {
		return SameInputOutputError(input, output)
	}

	outInfo, err := os.Stat(output)
	if err == nil && os.SameFile(inInfo, outInfo) {
		return SameInputOutputError(input, output)
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := gnsys.MakeDir(dir); err != nil {
		return iofs.CreateDirError(dir, err)
	}
	return nil
}
