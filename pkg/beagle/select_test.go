package beagle_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/subbeagle/pkg/beagle"
	"github.com/gnames/subbeagle/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(t *testing.T, line string) []beagle.SampleRecord {
	res, err := beagle.ParseHeader(line)
	require.NoError(t, err)
	return res
}

func TestSelectScenarios(t *testing.T) {
	recs := records(t, headerABC)

	tests := []struct {
		msg     string
		ids     []string
		mode    beagle.Mode
		plan    beagle.ColumnPlan
		kept    []string
		removed []string
		absent  []string
	}{
		{
			msg:     "keep one sample",
			ids:     []string{"S2"},
			mode:    beagle.Keep,
			plan:    beagle.ColumnPlan{1, 2, 3, 7, 8, 9},
			kept:    []string{"S2"},
			removed: []string{"S1", "S3"},
			absent:  []string{},
		},
		{
			msg:     "remove one sample",
			ids:     []string{"S2"},
			mode:    beagle.Remove,
			plan:    beagle.ColumnPlan{1, 2, 3, 4, 5, 6, 10, 11, 12},
			kept:    []string{"S1", "S3"},
			removed: []string{"S2"},
			absent:  []string{},
		},
		{
			msg:     "keep preserves header order, not list order",
			ids:     []string{"S3", "S1"},
			mode:    beagle.Keep,
			plan:    beagle.ColumnPlan{1, 2, 3, 4, 5, 6, 10, 11, 12},
			kept:    []string{"S1", "S3"},
			removed: []string{"S2"},
			absent:  []string{},
		},
		{
			msg:     "keep reports absent samples",
			ids:     []string{"S1", "X9", "X1"},
			mode:    beagle.Keep,
			plan:    beagle.ColumnPlan{1, 2, 3, 4, 5, 6},
			kept:    []string{"S1"},
			removed: []string{"S2", "S3"},
			absent:  []string{"X1", "X9"},
		},
		{
			msg:     "remove reports absent samples",
			ids:     []string{"S1", "S4"},
			mode:    beagle.Remove,
			plan:    beagle.ColumnPlan{1, 2, 3, 7, 8, 9, 10, 11, 12},
			kept:    []string{"S2", "S3"},
			removed: []string{"S1"},
			absent:  []string{"S4"},
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			plan, rep, err := beagle.Select(
				recs, beagle.NewSampleSet(v.ids...), v.mode,
			)
			require.NoError(t, err)
			assert.Equal(t, v.plan, plan)
			assert.Equal(t, v.kept, rep.Kept)
			assert.Equal(t, v.removed, rep.Removed)
			assert.Equal(t, v.absent, rep.Absent)
			assert.Equal(t, v.mode, rep.Mode)
			assert.Equal(t, 3, rep.Total)
			assert.Equal(t, len(v.ids), rep.Requested)
			assert.Equal(t, len(v.kept), plan.Samples())
		})
	}
}

func TestSelectEmptySelection(t *testing.T) {
	recs := records(t, headerABC)

	tests := []struct {
		msg  string
		ids  []string
		mode beagle.Mode
	}{
		{"keep sample missing from file", []string{"S4"}, beagle.Keep},
		{"remove every sample", []string{"S1", "S2", "S3", "S4"}, beagle.Remove},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			plan, _, err := beagle.Select(
				recs, beagle.NewSampleSet(v.ids...), v.mode,
			)
			require.Error(t, err)
			assert.Nil(t, plan)

			gnErr, ok := err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, errcode.EmptySelectionError, gnErr.Code)
			assert.Equal(t, v.mode.String(), gnErr.Vars[0])
		})
	}
}

func TestSelectNoSamplesInHeader(t *testing.T) {
	recs := records(t, "m\ta1\ta2")
	_, _, err := beagle.Select(recs, beagle.NewSampleSet("S1"), beagle.Remove)
	require.Error(t, err)
	assert.Equal(t, errcode.EmptySelectionError, err.(*gn.Error).Code)
}

func TestSelectEmptyRequest(t *testing.T) {
	recs := records(t, headerABC)
	_, _, err := beagle.Select(recs, beagle.NewSampleSet(), beagle.Remove)
	require.Error(t, err)
	assert.Equal(t, errcode.EmptySampleListError, err.(*gn.Error).Code)
}

func TestSelectInvalidMode(t *testing.T) {
	recs := records(t, headerABC)
	_, _, err := beagle.Select(recs, beagle.NewSampleSet("S1"), beagle.UnknownMode)
	require.Error(t, err)
	assert.Equal(t, errcode.InvalidModeError, err.(*gn.Error).Code)
}

func TestSelectDuplicateIDs(t *testing.T) {
	recs := records(t, headerABC)

	plan1, rep1, err := beagle.Select(
		recs, beagle.NewSampleSet("S1", "S3"), beagle.Keep,
	)
	require.NoError(t, err)

	plan2, rep2, err := beagle.Select(
		recs, beagle.NewSampleSet("S1", "S3", "S1", "S3", "S3"), beagle.Keep,
	)
	require.NoError(t, err)

	assert.Equal(t, plan1, plan2)
	assert.Equal(t, rep1, rep2)
}

// TestSelectProperties checks partition invariants for every non-empty
// subset of samples of a small header, in both modes.
func TestSelectProperties(t *testing.T) {
	const n = 5
	line := "chr1_100\tA\tG"
	for i := range n {
		id := fmt.Sprintf("Ind%d", i)
		line += fmt.Sprintf("\t%s\t%s\t%s", id, id, id)
	}
	recs := records(t, line)
	all := make([]string, n)
	for i := range recs {
		all[i] = recs[i].ID
	}

	// extra ID never present in the header
	const stranger = "Stranger"

	for mask := 1; mask < 1<<n; mask++ {
		var ids, complement []string
		for i := range n {
			if mask&(1<<i) != 0 {
				ids = append(ids, all[i])
			} else {
				complement = append(complement, all[i])
			}
		}
		requested := beagle.NewSampleSet(append(ids, stranger)...)

		for _, mode := range []beagle.Mode{beagle.Keep, beagle.Remove} {
			plan, rep, err := beagle.Select(recs, requested, mode)
			if mode == beagle.Remove && len(complement) == 0 {
				require.Error(t, err)
				continue
			}
			require.NoError(t, err)

			assert.Equal(t, n, len(rep.Kept)+len(rep.Removed))
			for _, id := range rep.Kept {
				assert.NotContains(t, rep.Removed, id)
			}
			assert.Equal(t, []string{stranger}, rep.Absent)
			assert.Len(t, plan, 3+3*len(rep.Kept))
			assert.Equal(t, []int{1, 2, 3}, []int(plan[:3]))
			assert.True(t, slices.IsSorted(plan))
			for i := 3; i < len(plan); i += 3 {
				assert.Equal(t, 1, (plan[i]-4)%3+1, "group starts a triple")
				assert.Equal(t, plan[i]+1, plan[i+1])
				assert.Equal(t, plan[i]+2, plan[i+2])
			}
		}

		if len(complement) == 0 {
			continue
		}
		_, keepRep, err := beagle.Select(recs, beagle.NewSampleSet(ids...), beagle.Keep)
		require.NoError(t, err)
		_, removeRep, err := beagle.Select(
			recs, beagle.NewSampleSet(complement...), beagle.Remove,
		)
		require.NoError(t, err)
		assert.Equal(t, keepRep.Kept, removeRep.Kept)
	}
}

func TestSampleSet(t *testing.T) {
	s := beagle.NewSampleSet("b", "a", "b", "c")
	assert.Len(t, s, 3)
	assert.True(t, s.Has("a"))
	assert.False(t, s.Has("d"))
	assert.Equal(t, []string{"a", "b", "c"}, s.IDs())
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "keep", beagle.Keep.String())
	assert.Equal(t, "remove", beagle.Remove.String())
	assert.Equal(t, "unknown", beagle.UnknownMode.String())
}
