package beagle

import (
	"strings"
	"unicode"
)

// ParseHeader splits a header line into sample records.
//
// The first MarkerFields fields are marker columns. Every following run of
// SampleFields fields is one sample identified by the first field of the
// run. Trailing whitespace, including "\r\n" and tabs, is ignored.
func ParseHeader(line string) ([]SampleRecord, error) {
	line = strings.TrimRightFunc(line, unicode.IsSpace)
	fields := strings.Split(line, string(Separator))

	if len(fields) < MarkerFields {
		return nil, MalformedHeaderError(
			"header has fewer than 3 marker fields",
		)
	}

	sampleFields := len(fields) - MarkerFields
	if sampleFields%SampleFields != 0 {
		return nil, MalformedHeaderError(
			"header ends with an incomplete sample of %d field(s)",
			sampleFields%SampleFields,
		)
	}

	res := make([]SampleRecord, 0, sampleFields/SampleFields)
	seen := make(map[string]struct{}, cap(res))
	for i := MarkerFields; i < len(fields); i += SampleFields {
		id := fields[i]
		if id == "" {
			return nil, MalformedHeaderError(
				"sample at column %d has an empty ID", i+1,
			)
		}
		if _, ok := seen[id]; ok {
			return nil, MalformedHeaderError(
				"sample '%s' is declared more than once", id,
			)
		}
		seen[id] = struct{}{}

		// field index i is 0-based, columns are 1-based
		res = append(res, SampleRecord{
			ID:      id,
			Columns: [SampleFields]int{i + 1, i + 2, i + 3},
		})
	}
	return res, nil
}
