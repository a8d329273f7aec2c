package cmd

import (
	"github.com/gnames/subbeagle/pkg/beagle"
	"github.com/gnames/subbeagle/pkg/config"
	"github.com/gnames/subbeagle/pkg/subset"
	"github.com/spf13/cobra"
)

type flagFunc func(cmd *cobra.Command)

// runFlags keep values of flags that describe one run.
type runFlags struct {
	input   string
	output  string
	keep    string
	remove  string
	summary string
}

func addFlags(cmd *cobra.Command, f *runFlags) {
	cmd.Flags().StringVarP(&f.input, "input", "i", "",
		"Beagle file to subset (gzipped if it ends with .gz)")
	cmd.Flags().StringVarP(&f.output, "out", "o", "",
		"output file, '.beagle' is appended if needed")
	cmd.Flags().StringVarP(&f.keep, "keep", "k", "",
		"file with IDs of samples to keep, one per line")
	cmd.Flags().StringVarP(&f.remove, "remove", "r", "",
		"file with IDs of samples to remove, one per line")
	cmd.Flags().StringVar(&f.summary, "summary", "",
		"save run summary to a YAML (or .json) file")

	cmd.Flags().String("engine", "",
		"line transformer: 'native' or 'awk' (default: native)")
	cmd.Flags().Bool("no-progress", false, "do not show progress bar")
	cmd.Flags().IntP("jobs", "j", 0,
		"number of concurrent gzip blocks (default: number of CPU threads)")
	cmd.Flags().Int("compression-level", 0,
		"gzip level of compressed output, 1-9 (default: 6)")
}

// toInput checks that required flags are given and converts them to
// subset.Input.
func (f runFlags) toInput() (subset.Input, error) {
	var res subset.Input
	switch {
	case f.input == "":
		return res, UsageError("missing required flag <em>--input</em>")
	case f.output == "":
		return res, UsageError("missing required flag <em>--out</em>")
	case f.keep != "" && f.remove != "":
		return res, UsageError(
			"flags <em>--keep</em> and <em>--remove</em> cannot be used together",
		)
	case f.keep == "" && f.remove == "":
		return res, UsageError(
			"one of <em>--keep</em> or <em>--remove</em> flags is required",
		)
	}

	res = subset.Input{
		MatrixPath:     f.input,
		OutputPath:     f.output,
		SampleListPath: f.keep,
		Mode:           beagle.Keep,
	}
	if f.remove != "" {
		res.SampleListPath = f.remove
		res.Mode = beagle.Remove
	}
	return res, nil
}

func engineFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("engine") {
		return
	}
	s, _ := cmd.Flags().GetString("engine")
	opts = append(opts, config.OptEngine(s))
}

func jobsFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("jobs") {
		return
	}
	i, _ := cmd.Flags().GetInt("jobs")
	opts = append(opts, config.OptJobsNumber(i))
}

func compressionFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("compression-level") {
		return
	}
	i, _ := cmd.Flags().GetInt("compression-level")
	opts = append(opts, config.OptCompressionLevel(i))
}

func progressFlag(cmd *cobra.Command) {
	if !cmd.Flags().Changed("no-progress") {
		return
	}
	b, _ := cmd.Flags().GetBool("no-progress")
	opts = append(opts, config.OptWithProgress(!b))
}
