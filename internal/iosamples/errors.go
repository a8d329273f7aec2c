package iosamples

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/errcode"
)

func SampleListNotFoundError(path string, err error) error {
	msg := "Sample list file <em>%s</em> not found"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.SampleListNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: sample list %s not found: %w",
			fn.Name(), path, err),
	}
}

func EmptySampleListError(path string) error {
	msg := "No samples found in the sample list file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptySampleListError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: sample list %s is empty",
			fn.Name(), path),
	}
}
