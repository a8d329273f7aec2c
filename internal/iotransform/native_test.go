package iotransform

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectFields(t *testing.T) {
	tests := []struct {
		msg    string
		input  string
		fields []int
		res    string
	}{
		{
			msg:    "keep middle sample",
			input:  "m\ta1\ta2\tS1\tS1\tS1\tS2\tS2\tS2\tS3\tS3\tS3\n",
			fields: []int{1, 2, 3, 7, 8, 9},
			res:    "m\ta1\ta2\tS2\tS2\tS2\n",
		},
		{
			msg: "several rows without final newline",
			input: "m\ta\tb\tX\tX\tX\tY\tY\tY\n" +
				"c1\tA\tC\t0.1\t0.2\t0.7\t0.3\t0.3\t0.4",
			fields: []int{1, 2, 3, 4, 5, 6},
			res: "m\ta\tb\tX\tX\tX\n" +
				"c1\tA\tC\t0.1\t0.2\t0.7\n",
		},
		{
			msg:    "missing fields written empty",
			input:  "a\tb\tc\n",
			fields: []int{1, 2, 3, 4, 5, 6},
			res:    "a\tb\tc\t\t\t\n",
		},
		{
			msg:    "empty line",
			input:  "\n",
			fields: []int{1, 2, 3},
			res:    "\t\t\n",
		},
		{
			msg:    "CRLF rows",
			input:  "a\tb\tc\td\te\tf\r\n1\t2\t3\t4\t5\t6\r\n",
			fields: []int{1, 2, 3},
			res:    "a\tb\tc\n1\t2\t3\n",
		},
		{
			msg:    "empty fields kept",
			input:  "a\t\tc\t\t\tf\n",
			fields: []int{1, 2, 3, 4, 5, 6},
			res:    "a\t\tc\t\t\tf\n",
		},
		{
			msg:    "empty input",
			input:  "",
			fields: []int{1, 2, 3},
			res:    "",
		},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			var buf bytes.Buffer
			_, err := selectFields(
				context.Background(), strings.NewReader(v.input), &buf,
				v.fields, '\t',
			)
			require.NoError(t, err)
			assert.Equal(t, v.res, buf.String())
		})
	}
}

func TestSelectFieldsCount(t *testing.T) {
	input := strings.Repeat("a\tb\tc\td\te\tf\n", 10)
	lines, err := selectFields(
		context.Background(), strings.NewReader(input), &bytes.Buffer{},
		[]int{1, 2, 3}, '\t',
	)
	require.NoError(t, err)
	assert.Equal(t, 10, lines)
}

func TestSelectFieldsLongLine(t *testing.T) {
	var sb strings.Builder
	sb.WriteString("m\ta\tb")
	for range 200_000 {
		sb.WriteString("\t0.333")
	}
	sb.WriteString("\n")

	var buf bytes.Buffer
	_, err := selectFields(
		context.Background(), strings.NewReader(sb.String()), &buf,
		[]int{1, 2, 3, 200_001, 200_002, 200_003}, '\t',
	)
	require.NoError(t, err)
	assert.Equal(t, "m\ta\tb\t0.333\t0.333\t0.333\n", buf.String())
}

func TestSelectFieldsCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := selectFields(
		ctx, strings.NewReader("a\tb\tc\n"), &bytes.Buffer{},
		[]int{1, 2, 3}, '\t',
	)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSplitFields(t *testing.T) {
	line := []byte("ab\tc\t\td")
	res := splitFields(line, '\t', 10, nil)
	assert.Equal(t, [][2]int{{0, 2}, {3, 4}, {5, 5}, {6, 7}}, res)

	res = splitFields(line, '\t', 2, res)
	assert.Equal(t, [][2]int{{0, 2}, {3, 4}}, res)
}
