package ioheader

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/errcode"
)

func InputNotFoundError(path string, err error) error {
	msg := "Input file <em>%s</em> not found"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InputNotFoundError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: input %s not found: %w",
			fn.Name(), path, err),
	}
}
