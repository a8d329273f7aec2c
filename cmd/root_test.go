package cmd

import (
	"bytes"
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/beagle"
	"github.com/gnames/subbeagle/pkg/config"
	"github.com/gnames/subbeagle/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetRootCmd_Exists verifies getRootCmd returns
// a valid command.
func TestGetRootCmd_Exists(t *testing.T) {
	cmd := getRootCmd()
	require.NotNil(t, cmd, "Root command should exist")
	assert.Equal(t, "subbeagle", cmd.Use,
		"Command name should be subbeagle")
}

// TestGetRootCmd_VersionFormat verifies version
// output format.
func TestGetRootCmd_VersionFormat(t *testing.T) {
	cmd := getRootCmd()

	// Set a test version
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--version"})

	err := cmd.Execute()
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "v1.2.3",
		"Version output should contain version")
	assert.Contains(t, output, "abc123",
		"Version output should contain build")
	assert.NotContains(t, output, "subbeagle version",
		"Should use custom version template")
}

// TestGetRootCmd_ShortVersionFlag verifies
// -V flag works.
func TestGetRootCmd_ShortVersionFlag(t *testing.T) {
	cmd := getRootCmd()
	cmd.Version = "version: v1.2.3\nbuild:   abc123"

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"-V"})

	err := cmd.Execute()
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "v1.2.3",
		"Version output should work with -V flag")
}

// TestGetRootCmd_HelpText verifies help text content.
func TestGetRootCmd_HelpText(t *testing.T) {
	cmd := getRootCmd()

	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	err := cmd.Execute()
	require.NoError(t, err)

	helpText := buf.String()
	for _, v := range []string{
		"Beagle", "--input", "--out", "--keep", "--remove",
		"--engine", "--no-progress", "--jobs", "--compression-level",
		"--summary", "SUBBEAGLE_",
	} {
		assert.Contains(t, helpText, v)
	}
}

// TestGetRootCmd_Settings verifies hooks and error silencing.
func TestGetRootCmd_Settings(t *testing.T) {
	cmd := getRootCmd()

	assert.NotNil(t, cmd.PersistentPreRunE,
		"PersistentPreRunE should be set for bootstrap")
	assert.NotNil(t, cmd.RunE)
	assert.True(t, cmd.SilenceErrors,
		"Errors should be silenced")
	assert.True(t, cmd.SilenceUsage,
		"Usage should be silenced on errors")
}

// TestGetRootCmd_UsageErrors verifies that bad arguments are
// reported as usage errors before any work starts.
func TestGetRootCmd_UsageErrors(t *testing.T) {
	tests := []struct {
		msg  string
		args []string
	}{
		{"positional argument", []string{"extra"}},
		{"unknown flag", []string{"--bogus"}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			cmd := getRootCmd()
			buf := new(bytes.Buffer)
			cmd.SetOut(buf)
			cmd.SetErr(buf)
			cmd.SetArgs(v.args)

			err := cmd.Execute()
			require.Error(t, err)
			var gnErr *gn.Error
			require.True(t, errors.As(err, &gnErr))
			assert.Equal(t, errcode.UsageError, gnErr.Code)
		})
	}
}

func TestToInput(t *testing.T) {
	tests := []struct {
		msg   string
		flags runFlags
		list  string
		mode  beagle.Mode
		err   bool
	}{
		{"keep", runFlags{input: "in", output: "out", keep: "k.txt"},
			"k.txt", beagle.Keep, false},
		{"remove", runFlags{input: "in", output: "out", remove: "r.txt"},
			"r.txt", beagle.Remove, false},
		{"both", runFlags{input: "in", output: "out", keep: "k", remove: "r"},
			"", beagle.UnknownMode, true},
		{"neither", runFlags{input: "in", output: "out"},
			"", beagle.UnknownMode, true},
		{"no input", runFlags{output: "out", keep: "k"},
			"", beagle.UnknownMode, true},
		{"no output", runFlags{input: "in", keep: "k"},
			"", beagle.UnknownMode, true},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			res, err := v.flags.toInput()
			if v.err {
				require.Error(t, err)
				var gnErr *gn.Error
				require.True(t, errors.As(err, &gnErr))
				assert.Equal(t, errcode.UsageError, gnErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "in", res.MatrixPath)
			assert.Equal(t, "out", res.OutputPath)
			assert.Equal(t, v.list, res.SampleListPath)
			assert.Equal(t, v.mode, res.Mode)
		})
	}
}

func TestFlagOptions(t *testing.T) {
	opts = nil
	t.Cleanup(func() { opts = nil })

	cmd := getRootCmd()
	err := cmd.ParseFlags([]string{
		"--engine", "awk", "--jobs", "2",
		"--compression-level", "9", "--no-progress",
	})
	require.NoError(t, err)

	for _, v := range []flagFunc{
		engineFlag, jobsFlag, compressionFlag, progressFlag,
	} {
		v(cmd)
	}
	require.Len(t, opts, 4)

	c := config.New()
	c.Update(opts)
	assert.Equal(t, "awk", c.Engine)
	assert.Equal(t, 2, c.JobsNumber)
	assert.Equal(t, 9, c.CompressionLevel)
	assert.False(t, c.WithProgress)
}

func TestFlagOptionsUnchanged(t *testing.T) {
	opts = nil
	t.Cleanup(func() { opts = nil })

	cmd := getRootCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-i", "in"}))
	for _, v := range []flagFunc{
		engineFlag, jobsFlag, compressionFlag, progressFlag,
	} {
		v(cmd)
	}
	assert.Empty(t, opts)
}
