package persist_test

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/persist"
	"github.com/mobilitydb/meos-go/temporal"
)

func timeParse(t *testing.T, s string) time.Time {
	tm, err := time.Parse("2006-01-02T15:04:05", s)
	require.NoError(t, err)
	return tm
}

func TestSaveLoadRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	ts := timeParse(t, "2001-01-01T00:00:00")
	orig, err := temporal.MakeInstant(basetype.Int4, int32(42), ts)
	require.NoError(t, err)

	path := filepath.Join(tempDir, "value.bin")
	require.NoError(t, persist.Save(path, orig))

	back, err := persist.Load(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Hash(), back.Hash())
}

func TestSaveCompressedLoadCompressedRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	ts := timeParse(t, "2001-01-01T00:00:00")
	orig, err := temporal.MakeInstant(basetype.Int4, int32(7), ts)
	require.NoError(t, err)

	path := filepath.Join(tempDir, "value.bin.snappy")
	require.NoError(t, persist.SaveCompressed(path, orig))

	back, err := persist.LoadCompressed(path)
	require.NoError(t, err)
	assert.Equal(t, orig.Hash(), back.Hash())
}

func TestLoadMissingFileErrors(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	_, err := persist.Load(filepath.Join(tempDir, "nope.bin"))
	assert.Error(t, err)
}

func TestLoadEmptyFileErrors(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()
	path := filepath.Join(tempDir, "empty.bin")
	require.NoError(t, ioutil.WriteFile(path, nil, 0644))
	_, err := persist.Load(path)
	assert.Error(t, err)
}
