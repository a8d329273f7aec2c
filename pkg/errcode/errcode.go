package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// Command line errors
	UsageError

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError
	WriteFileError
	InputNotFoundError
	SampleListNotFoundError
	SameInputOutputError

	// Logging errors
	CreateLogFileError

	// Selection errors
	EmptySampleListError
	MalformedHeaderError
	EmptySelectionError
	InvalidModeError

	// Transform errors
	UnknownEngineError
	TransformFailedError
)
