package iotransform

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/errcode"
)

// TransformFailedError is returned when a line transformer does not
// produce a valid output. Code is the exit code of an external process,
// or -1 when no process exit code applies.
func TransformFailedError(engine string, code int, err error) error {
	msg := "Transformation with <em>%s</em> engine failed (code %d)"
	vars := []any{engine, code}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.TransformFailedError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s transform failed with code %d: %w",
			fn.Name(), engine, code, err),
	}
}

func UnknownEngineError(engine string) error {
	msg := "Unknown transform engine <em>%s</em>"
	vars := []any{engine}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownEngineError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unknown engine %q",
			fn.Name(), engine),
	}
}

func AwkNotFoundError(bin string, err error) error {
	msg := "Cannot find <em>%s</em> executable, " +
		"install it or use <em>--engine native</em>"
	vars := []any{bin}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.UnknownEngineError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot find %s: %w",
			fn.Name(), bin, err),
	}
}
