package beagle

import (
	"slices"
)

// Select computes which columns of a matrix to retain.
//
// Samples are visited in header order, so retained samples keep their
// original relative order. In Keep mode a sample is retained when its ID is
// requested, in Remove mode when it is not. Requested IDs the header does
// not declare are reported as absent and do not fail the selection.
//
// Select fails when requested is empty or when no sample would remain.
func Select(
	records []SampleRecord,
	requested SampleSet,
	mode Mode,
) (ColumnPlan, Report, error) {
	var rep Report
	if mode != Keep && mode != Remove {
		return nil, rep, InvalidModeError(mode)
	}
	if len(requested) == 0 {
		return nil, rep, EmptySampleListError()
	}

	rep = Report{
		Mode:      mode,
		Total:     len(records),
		Requested: len(requested),
		Kept:      []string{},
		Removed:   []string{},
	}

	plan := make(ColumnPlan, 0, MarkerFields+SampleFields*len(records))
	for i := 1; i <= MarkerFields; i++ {
		plan = append(plan, i)
	}

	found := make(map[string]struct{}, len(records))
	for _, v := range records {
		found[v.ID] = struct{}{}
		isRequested := requested.Has(v.ID)
		shouldKeep := isRequested
		if mode == Remove {
			shouldKeep = !isRequested
		}

		if !shouldKeep {
			rep.Removed = append(rep.Removed, v.ID)
			continue
		}
		plan = append(plan, v.Columns[:]...)
		rep.Kept = append(rep.Kept, v.ID)
	}

	rep.Absent = []string{}
	for id := range requested {
		if _, ok := found[id]; !ok {
			rep.Absent = append(rep.Absent, id)
		}
	}
	slices.Sort(rep.Absent)

	if len(rep.Kept) == 0 {
		return nil, rep, EmptySelectionError(mode, len(records))
	}

	return plan, rep, nil
}
