package iosubset

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/errcode"
)

// ErrOutput is wrapped by errors about invalid transformer outputs.
var ErrOutput = errors.New("invalid output")

// OutputMissingError is the cause of a failure when a transformer exited
// successfully without creating its output.
func OutputMissingError(path string, err error) error {
	return fmt.Errorf("%w: %s was not created: %w", ErrOutput, path, err)
}

// OutputEmptyError is the cause of a failure when a transformer exited
// successfully leaving an empty output.
func OutputEmptyError(path string) error {
	return fmt.Errorf("%w: %s is empty", ErrOutput, path)
}

// SameInputOutputError is returned when the output path points to the
// input matrix.
func SameInputOutputError(input, output string) error {
	msg := "Output <em>%s</em> is the same file as input <em>%s</em>"
	vars := []any{output, input}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SameInputOutputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: output %s is input %s",
			fn.Name(), output, input),
	}
}
