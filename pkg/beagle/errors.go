package beagle

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/errcode"
)

// MalformedHeaderError is returned when a header line does not follow the
// Beagle layout.
func MalformedHeaderError(reason string, args ...any) error {
	reason = fmt.Sprintf(reason, args...)
	msg := "Malformed Beagle header: %s"
	vars := []any{reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.MalformedHeaderError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed header: %s",
			fn.Name(), reason),
	}
}

// EmptySampleListError is returned when a sample list has no IDs.
func EmptySampleListError() error {
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptySampleListError,
		Msg:  "No samples found in the sample list",
		Err: fmt.Errorf("from %s: sample list is empty",
			fn.Name()),
	}
}

// EmptySelectionError is returned when no sample would remain in the
// output.
func EmptySelectionError(mode Mode, total int) error {
	msg := "No samples would remain after subsetting " +
		"(<em>%s</em> mode, %d sample(s) in file)"
	vars := []any{mode.String(), total}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.EmptySelectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: empty selection in %s mode",
			fn.Name(), mode),
	}
}

// InvalidModeError is returned for a mode other than Keep or Remove.
func InvalidModeError(mode Mode) error {
	msg := "Unsupported selection mode %d"
	vars := []any{int(mode)}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.InvalidModeError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: invalid mode %d",
			fn.Name(), int(mode)),
	}
}
