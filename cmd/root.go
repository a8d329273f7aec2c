/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
	"github.com/gnames/subbeagle/internal/iofs"
	"github.com/gnames/subbeagle/internal/iologger"
	"github.com/gnames/subbeagle/internal/ioprogress"
	"github.com/gnames/subbeagle/internal/ioreport"
	"github.com/gnames/subbeagle/internal/iosubset"
	"github.com/gnames/subbeagle/internal/iotransform"
	app "github.com/gnames/subbeagle/pkg"
	"github.com/gnames/subbeagle/pkg/config"
	"github.com/gnames/subbeagle/pkg/errcode"
	"github.com/gnames/subbeagle/pkg/transform"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the subbeagle command.
func getRootCmd() *cobra.Command {
	var f runFlags

	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "subbeagle",
		Short:   "Subbeagle extracts samples from Beagle genotype likelihood files",
		Long: `Subbeagle keeps or removes samples from a Beagle genotype likelihood
matrix. Every sample occupies three adjacent columns, all of them are kept
or dropped together. The first three marker columns are always kept.

Files ending with '.gz' are read and written as gzip. The output gets
'.beagle' extension unless it already ends with '.beagle' or '.beagle.gz'.

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (SUBBEAGLE_*)
  3. Config file (~/.config/subbeagle/config.yaml)
  4. Built-in defaults

Examples:
  # keep samples listed in keep.txt
  subbeagle -i all.beagle.gz -o subset.beagle.gz -k keep.txt

  # remove samples listed in remove.txt, use external awk
  subbeagle -i all.beagle -o subset -r remove.txt --engine awk`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.NoArgs(cmd, args); err != nil {
				return UsageError(err.Error())
			}
			return nil
		},
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRoot(cmd, f)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "subbeagle version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for subbeagle")

	addFlags(rootCmd, &f)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		err = UsageError(err.Error())
		gn.PrintErrorMessage(err)
		return err
	})
	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))
	return nil
}

func runRoot(cmd *cobra.Command, f runFlags) error {
	inp, err := f.toInput()
	if err != nil {
		return err
	}

	flagOpts := []flagFunc{engineFlag, jobsFlag, compressionFlag, progressFlag}
	for _, v := range flagOpts {
		v(cmd)
	}
	cfg.Update(opts)

	lt, err := iotransform.New(cfg)
	if err != nil {
		return err
	}

	var progress transform.Progress
	if cfg.WithProgress && ioprogress.Available(os.Stderr) {
		progress = ioprogress.New(os.Stderr)
	}

	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	slog.Info("Subsetting started",
		"input", inp.MatrixPath,
		"output", inp.OutputPath,
		"samples", inp.SampleListPath,
		"mode", inp.Mode.String(),
		"engine", lt.Name(),
	)

	res, err := iosubset.New(cfg, lt, progress).Subset(ctx, inp)
	if err != nil {
		return err
	}

	ioreport.Print(res)
	if f.summary != "" {
		if err = ioreport.Write(f.summary, res); err != nil {
			return err
		}
	}

	msg := gnlib.FormatMessage(
		"\n<em>Created %s</em>\nsize: %d bytes (%.2f MB)\n",
		[]any{res.Output, res.OutputSize, float64(res.OutputSize) / 1e6},
	)
	fmt.Fprintln(os.Stderr, msg)
	return nil
}

// Execute runs the subbeagle command. It is called by main.main().
// Usage errors exit with code 2, all other errors with code 1.
func Execute() {
	err := getRootCmd().Execute()
	if err == nil {
		return
	}
	var gnErr *gn.Error
	if errors.As(err, &gnErr) && gnErr.Code == errcode.UsageError {
		os.Exit(2)
	}
	os.Exit(1)
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	// keep defaults for fields commented out in config.yaml
	res := config.New()
	if err = v.Unmarshal(res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("SUBBEAGLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Log configuration
	v.BindEnv("log.level", "SUBBEAGLE_LOG_LEVEL")
	v.BindEnv("log.format", "SUBBEAGLE_LOG_FORMAT")
	v.BindEnv("log.destination", "SUBBEAGLE_LOG_DESTINATION")

	// Transform configuration
	v.BindEnv("engine", "SUBBEAGLE_ENGINE")
	v.BindEnv("compression_level", "SUBBEAGLE_COMPRESSION_LEVEL")
	v.BindEnv("with_progress", "SUBBEAGLE_WITH_PROGRESS")

	// General configuration
	v.BindEnv("jobs_number", "SUBBEAGLE_JOBS_NUMBER")

	v.AutomaticEnv()
}
