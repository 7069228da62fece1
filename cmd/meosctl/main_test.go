package main

import (
	"path/filepath"
	"testing"

	"github.com/grailbio/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/wkt"
)

func TestBaseTypeByNameAliases(t *testing.T) {
	bt, err := baseTypeByName("float")
	require.NoError(t, err)
	assert.Equal(t, basetype.Float8, bt)

	bt, err = baseTypeByName("GEOM2D")
	require.NoError(t, err)
	assert.Equal(t, basetype.Geom2D, bt)

	_, err = baseTypeByName("bogus")
	assert.Error(t, err)
}

func TestShardName(t *testing.T) {
	assert.Equal(t, "000000.bin", shardName(0, false))
	assert.Equal(t, "000042.bin.snappy", shardName(42, true))
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://my-bucket/a/b/c.bin")
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", bucket)
	assert.Equal(t, "a/b/c.bin", key)

	_, _, err = parseS3URL("not-s3")
	assert.Error(t, err)

	_, _, err = parseS3URL("s3://bucket-only")
	assert.Error(t, err)
}

func TestParseLoadPrintRoundTrip(t *testing.T) {
	tempDir, cleanup := testutil.TempDir(t, "", "")
	defer cleanup()

	destPath := filepath.Join(tempDir, "val.bin")
	require.NoError(t, cmdParse([]string{"-type", "int4", "42@2001-01-01T00:00:00", destPath}))

	loaded, err := loadTemporal(destPath, false)
	require.NoError(t, err)
	inst, err := loaded.InstantAt(0)
	require.NoError(t, err)
	assert.Equal(t, int32(42), inst.Value)

	s, err := wkt.Print(loaded, nil)
	require.NoError(t, err)
	assert.Contains(t, s, "42")
}
