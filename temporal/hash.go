package temporal

import (
	"encoding/binary"

	"blainsmith.com/go/seahash"
)

// Hash returns a content hash of t: stable across structurally equal values
// (same subtype, interpolation and instants) and sensitive to any change in
// them. Bound inclusivity is not part of the hash. It wires seahash, a fast
// non-cryptographic hash, as a cache key for callers memoizing expensive
// accessors.
func (t *Temporal) Hash() uint64 {
	h := seahash.New()
	buf := make([]byte, 8)
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf, v)
		h.Write(buf)
	}
	write(uint64(t.Subtype))
	write(uint64(t.Flags.Interp))
	t.writeHash(write)
	return h.Sum64()
}

func (t *Temporal) writeHash(write func(uint64)) {
	vt := t.vt()
	switch t.Subtype {
	case Instant:
		write(vt.Hash(t.inst.Value))
		write(uint64(t.inst.T.UnixNano()))
	case DiscreteSeq, ContSeq:
		for _, inst := range t.instants {
			write(vt.Hash(inst.Value))
			write(uint64(inst.T.UnixNano()))
		}
	case SeqSet:
		for _, s := range t.sequences {
			s.writeHash(write)
		}
	}
}
