// Package ioreport summarizes results of a subsetting run for users.
package ioreport

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/subbeagle/internal/iofs"
	"github.com/gnames/subbeagle/pkg/subset"
	"gopkg.in/yaml.v3"
)

// absentShown limits how many absent IDs are listed in a warning.
const absentShown = 5

// Summary is a serializable description of a subsetting run.
type Summary struct {
	Input            string   `json:"input"             yaml:"input"`
	Output           string   `json:"output"            yaml:"output"`
	Engine           string   `json:"engine"            yaml:"engine"`
	Mode             string   `json:"mode"              yaml:"mode"`
	InputCompressed  bool     `json:"inputCompressed"   yaml:"input_compressed"`
	OutputCompressed bool     `json:"outputCompressed"  yaml:"output_compressed"`
	OutputSize       int64    `json:"outputSize"        yaml:"output_size"`
	Columns          int      `json:"columns"           yaml:"columns"`
	SamplesTotal     int      `json:"samplesTotal"      yaml:"samples_total"`
	SamplesRequested int      `json:"samplesRequested"  yaml:"samples_requested"`
	Duration         string   `json:"duration"          yaml:"duration"`
	Kept             []string `json:"kept"              yaml:"kept"`
	Removed          []string `json:"removed"           yaml:"removed"`
	Absent           []string `json:"absent,omitempty"  yaml:"absent,omitempty"`
}

// NewSummary converts a result to a Summary.
func NewSummary(res *subset.Result) Summary {
	rep := res.Report
	return Summary{
		Input:            res.Input,
		Output:           res.Output,
		Engine:           res.Engine,
		Mode:             rep.Mode.String(),
		InputCompressed:  res.InputCompressed,
		OutputCompressed: res.OutputCompressed,
		OutputSize:       res.OutputSize,
		Columns:          res.Columns,
		SamplesTotal:     rep.Total,
		SamplesRequested: rep.Requested,
		Duration:         gnfmt.TimeString(res.Duration.Seconds()),
		Kept:             rep.Kept,
		Removed:          rep.Removed,
		Absent:           rep.Absent,
	}
}

// Lines formats informational and warning lines about a result.
func Lines(res *subset.Result) (info []string, warn []string) {
	rep := res.Report
	info = []string{
		fmt.Sprintf("Mode: <em>%s</em>, engine: <em>%s</em>",
			rep.Mode.String(), res.Engine),
		fmt.Sprintf("Samples kept: <em>%s</em> of %s, removed: %s",
			humanize.Comma(int64(len(rep.Kept))),
			humanize.Comma(int64(rep.Total)),
			humanize.Comma(int64(len(rep.Removed))),
		),
		fmt.Sprintf("Columns per line: %s", humanize.Comma(int64(res.Columns))),
		fmt.Sprintf("Output: <em>%s</em> (%s)",
			res.Output, humanize.Bytes(uint64(res.OutputSize))),
		fmt.Sprintf("Elapsed time: %s",
			gnfmt.TimeString(res.Duration.Seconds())),
	}

	if len(rep.Absent) > 0 {
		ids := rep.Absent
		more := ""
		if len(ids) > absentShown {
			more = fmt.Sprintf(" and %d more", len(ids)-absentShown)
			ids = ids[:absentShown]
		}
		warn = append(warn, fmt.Sprintf(
			"<warn>%s requested sample(s) not found in header</warn>: %s%s",
			humanize.Comma(int64(len(rep.Absent))),
			strings.Join(ids, ", "), more,
		))
	}
	return info, warn
}

// Print shows the summary of a result to a user.
func Print(res *subset.Result) {
	info, warn := Lines(res)
	for _, v := range warn {
		gn.Warn(v)
	}
	for _, v := range info {
		gn.Info(v)
	}
}

// Write saves the summary of a result to a file. Files with ".json"
// extension get JSON, all others get YAML.
func Write(path string, res *subset.Result) error {
	var data []byte
	var err error

	sum := NewSummary(res)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		enc := gnfmt.GNjson{Pretty: true}
		data, err = enc.Encode(sum)
	} else {
		data, err = yaml.Marshal(sum)
	}
	if err != nil {
		return EncodeSummaryError(path, err)
	}

	if err = os.WriteFile(path, data, 0644); err != nil {
		return iofs.WriteFileError(path, err)
	}
	return nil
}
