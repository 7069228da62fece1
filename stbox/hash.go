package stbox

import (
	"encoding/binary"
	"math"

	"github.com/minio/highwayhash"
)

// hashKey is fixed and non-secret: Hash is a cache/memoization key, not a
// security primitive, so a well-known key keeps Hash deterministic across
// process restarts.
var hashKey = make([]byte, 32)

// Hash returns a cache-key hash over every field of b, letting callers
// memoize per-box computations without repeating the float comparisons.
func (b *STBox) Hash() uint64 {
	buf := make([]byte, 0, 96)
	buf = appendBool(buf, b.HasX)
	buf = appendBool(buf, b.HasZ)
	buf = appendBool(buf, b.HasT)
	buf = appendBool(buf, b.Geodetic)
	buf = appendUint64(buf, uint64(uint32(b.SRID)))
	buf = appendFloat(buf, b.XMin)
	buf = appendFloat(buf, b.XMax)
	buf = appendFloat(buf, b.YMin)
	buf = appendFloat(buf, b.YMax)
	buf = appendFloat(buf, b.ZMin)
	buf = appendFloat(buf, b.ZMax)
	if b.HasT {
		buf = appendUint64(buf, uint64(b.TMin.UnixNano()))
		buf = appendUint64(buf, uint64(b.TMax.UnixNano()))
	}
	h, err := highwayhash.New64(hashKey)
	if err != nil {
		// hashKey is a fixed 32-byte slice; this cannot fail.
		panic(err)
	}
	_, _ = h.Write(buf)
	return h.Sum64()
}

func appendBool(buf []byte, v bool) []byte {
	if v {
		return append(buf, 1)
	}
	return append(buf, 0)
}

func appendUint64(buf []byte, v uint64) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	return append(buf, tmp[:]...)
}

func appendFloat(buf []byte, f float64) []byte {
	return appendUint64(buf, math.Float64bits(f))
}
