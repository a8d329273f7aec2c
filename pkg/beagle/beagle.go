// Package beagle describes the layout of Beagle genotype-likelihood
// matrices and selects which of their columns survive a sample subset.
//
// A Beagle matrix is a tab-delimited text file. Its header starts with
// three marker fields (marker, allele1, allele2) followed by three fields
// per sample, each carrying the sample ID. Every data row has the same
// layout with genotype likelihoods in place of the IDs.
//
// The package is pure: it performs no I/O.
package beagle

import (
	"slices"
)

const (
	// Separator delimits fields in a Beagle matrix.
	Separator = '\t'

	// MarkerFields is the number of leading marker columns.
	MarkerFields = 3

	// SampleFields is the number of columns per sample.
	SampleFields = 3
)

// Mode decides how a requested sample list is applied to a matrix.
type Mode int

const (
	UnknownMode Mode = iota
	// Keep retains only the listed samples.
	Keep
	// Remove retains every sample except the listed ones.
	Remove
)

// String returns a lowercase name of the mode.
func (m Mode) String() string {
	switch m {
	case Keep:
		return "keep"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// SampleRecord is one sample declared in a matrix header.
type SampleRecord struct {
	// ID is the sample identifier, unique within a header.
	ID string

	// Columns are the 1-based positions of the genotype-likelihood
	// triple of the sample.
	Columns [SampleFields]int
}

// SampleSet is a set of sample IDs.
type SampleSet map[string]struct{}

// NewSampleSet creates a set from ids, collapsing duplicates.
func NewSampleSet(ids ...string) SampleSet {
	res := make(SampleSet, len(ids))
	for _, v := range ids {
		res[v] = struct{}{}
	}
	return res
}

// Has reports if id belongs to the set.
func (s SampleSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}

// IDs returns sorted members of the set.
func (s SampleSet) IDs() []string {
	res := make([]string, 0, len(s))
	for k := range s {
		res = append(res, k)
	}
	slices.Sort(res)
	return res
}

// ColumnPlan is an ordered list of 1-based field positions to retain.
// It always starts with the marker columns, followed by complete sample
// triples in header order.
type ColumnPlan []int

// Samples returns the number of samples the plan retains.
func (p ColumnPlan) Samples() int {
	if len(p) < MarkerFields {
		return 0
	}
	return (len(p) - MarkerFields) / SampleFields
}

// Report describes how samples of a matrix were partitioned by Select.
type Report struct {
	// Mode used for the selection.
	Mode Mode

	// Total is the number of samples declared in the header.
	Total int

	// Requested is the number of distinct IDs in the sample list.
	Requested int

	// Kept are samples retained in the output, in header order.
	Kept []string

	// Removed are samples present in the header but excluded from
	// the output, in header order.
	Removed []string

	// Absent are requested IDs that the header does not declare,
	// sorted alphabetically.
	Absent []string
}
