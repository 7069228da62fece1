package wkt

import (
	"strconv"
	"strings"

	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/spantime"
	"github.com/mobilitydb/meos-go/temporal"
)

// Print is the inverse of Parse: it emits "SRID=" only when t's SRID is
// non-zero, "Interp=Step;" only for a continuous sequence or sequence set
// whose interpolation is step, then the recursive bracket-convention
// structure Parse accepts. tv defaults to spantime.DefaultTime when nil.
func Print(t *temporal.Temporal, tv spantime.TimeVTable) (string, error) {
	if tv == nil {
		tv = spantime.DefaultTime
	}
	vt, err := t.Registry().Lookup(t.BaseType)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	if t.SRID != 0 {
		sb.WriteString("SRID=")
		sb.WriteString(strconv.FormatInt(int64(t.SRID), 10))
		sb.WriteString(";")
	}
	if (t.Subtype == temporal.ContSeq || t.Subtype == temporal.SeqSet) && t.Flags.Interp == temporal.Step {
		sb.WriteString("Interp=Step;")
	}
	if err := writeValue(&sb, t, vt, tv); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func writeValue(sb *strings.Builder, t *temporal.Temporal, vt basetype.VTable, tv spantime.TimeVTable) error {
	switch t.Subtype {
	case temporal.Instant:
		inst, err := t.InstantAt(0)
		if err != nil {
			return err
		}
		writeInstant(sb, vt, tv, inst)
		return nil
	case temporal.DiscreteSeq:
		sb.WriteString("{")
		if err := writeInstantList(sb, t, vt, tv); err != nil {
			return err
		}
		sb.WriteString("}")
		return nil
	case temporal.ContSeq:
		return writeCont(sb, t, vt, tv)
	case temporal.SeqSet:
		sb.WriteString("{")
		for i := 0; i < t.SequenceN(); i++ {
			s, err := t.SequenceAt(i)
			if err != nil {
				return err
			}
			if i > 0 {
				sb.WriteString(",")
			}
			if err := writeCont(sb, s, vt, tv); err != nil {
				return err
			}
		}
		sb.WriteString("}")
		return nil
	default:
		return nil
	}
}

func writeCont(sb *strings.Builder, t *temporal.Temporal, vt basetype.VTable, tv spantime.TimeVTable) error {
	lowerInc, upperInc := t.Bounds()
	if lowerInc {
		sb.WriteString("[")
	} else {
		sb.WriteString("(")
	}
	if err := writeInstantList(sb, t, vt, tv); err != nil {
		return err
	}
	if upperInc {
		sb.WriteString("]")
	} else {
		sb.WriteString(")")
	}
	return nil
}

func writeInstantList(sb *strings.Builder, t *temporal.Temporal, vt basetype.VTable, tv spantime.TimeVTable) error {
	n := t.N()
	for i := 0; i < n; i++ {
		inst, err := t.InstantAt(i)
		if err != nil {
			return err
		}
		if i > 0 {
			sb.WriteString(",")
		}
		writeInstant(sb, vt, tv, inst)
	}
	return nil
}

func writeInstant(sb *strings.Builder, vt basetype.VTable, tv spantime.TimeVTable, inst temporal.Inst) {
	sb.WriteString(vt.PrintText(inst.Value))
	sb.WriteString("@")
	sb.WriteString(tv.PrintTimestamp(inst.T))
}
