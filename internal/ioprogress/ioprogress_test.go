package ioprogress_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gnames/subbeagle/internal/ioprogress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackPassesData(t *testing.T) {
	var screen bytes.Buffer
	p := ioprogress.New(&screen)

	data := strings.Repeat("marker\tA\tC\n", 1000)
	r := p.Track(strings.NewReader(data), int64(len(data)))
	res, err := io.ReadAll(r)
	require.NoError(t, err)
	p.Finish()

	assert.Equal(t, data, string(res))
}

func TestFinishWithoutTrack(t *testing.T) {
	p := ioprogress.New(io.Discard)
	assert.NotPanics(t, p.Finish)
}

func TestAvailableRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, ioprogress.Available(f))
}
