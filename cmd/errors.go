package cmd

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/errcode"
)

// UsageError is returned when command line flags are missing or
// contradict each other.
func UsageError(msg string) error {
	return &gn.Error{
		Code: errcode.UsageError,
		Msg:  "%s",
		Vars: []any{msg},
		Err:  fmt.Errorf("usage: %s", msg),
	}
}
