package ioreport

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/errcode"
)

func EncodeSummaryError(path string, err error) error {
	msg := "Cannot encode summary for <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.WriteFileError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot encode summary %s: %w",
			fn.Name(), path, err),
	}
}
