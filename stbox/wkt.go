package stbox

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/spantime"
)

// Parse reads the STBox textual form:
//
//	[SRID=n;] [GEOD]STBOX [Z][T]( (xmin[,ymin[,zmin]][,tmin]), (xmax[,ymax[,zmax]][,tmax]) )
//
// Each corner's coordinates may also appear as a nested tuple, e.g.
// "( (xmin,ymin,zmin), tmin )", which this parser accepts as an alternate
// spelling of the same corner.
// Identifiers match case-insensitively; missing X/Y/Z fields are empty
// between commas; missing T omits the timestamp columns entirely.
func Parse(s string, tv spantime.TimeVTable) (*STBox, error) {
	p := &parser{s: s, tv: tv}
	b, err := p.parseSTBox()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.i != len(p.s) {
		return nil, merr.New("stbox.Parse", merr.TextInput, "unexpected trailing input %q", p.s[p.i:])
	}
	return b, nil
}

type parser struct {
	s  string
	i  int
	tv spantime.TimeVTable
}

func (p *parser) skipSpace() {
	for p.i < len(p.s) && (p.s[p.i] == ' ' || p.s[p.i] == '\t' || p.s[p.i] == '\n' || p.s[p.i] == '\r') {
		p.i++
	}
}

func (p *parser) peek() byte {
	p.skipSpace()
	if p.i >= len(p.s) {
		return 0
	}
	return p.s[p.i]
}

func (p *parser) tryConsumeCI(word string) bool {
	p.skipSpace()
	if p.i+len(word) > len(p.s) {
		return false
	}
	if !strings.EqualFold(p.s[p.i:p.i+len(word)], word) {
		return false
	}
	p.i += len(word)
	return true
}

func (p *parser) consumeByte(b byte) error {
	p.skipSpace()
	if p.i >= len(p.s) || p.s[p.i] != b {
		got := "EOF"
		if p.i < len(p.s) {
			got = string(p.s[p.i])
		}
		return merr.New("stbox.parse", merr.TextInput, "expected %q, got %q", string(b), got)
	}
	p.i++
	return nil
}

func (p *parser) parseSTBox() (*STBox, error) {
	const op = "stbox.Parse"
	srid := int32(0)
	if p.tryConsumeCI("SRID") {
		if err := p.skipEq(); err != nil {
			return nil, err
		}
		n, err := p.parseSignedInt()
		if err != nil {
			return nil, err
		}
		if err := p.consumeByte(';'); err != nil {
			return nil, err
		}
		srid = int32(n)
	}
	geodetic := p.tryConsumeCI("GEODSTBOX")
	if !geodetic {
		if !p.tryConsumeCI("STBOX") {
			return nil, merr.New(op, merr.TextInput, "expected STBOX or GEODSTBOX keyword")
		}
	}
	hasZ := p.tryConsumeCI("Z")
	hasT := p.tryConsumeCI("T")

	if srid == 0 {
		if geodetic {
			srid = 4326
		}
	}

	if err := p.consumeByte('('); err != nil {
		return nil, err
	}
	xmin, ymin, zmin, tmin, err := p.parseCorner(hasZ, hasT)
	if err != nil {
		return nil, err
	}
	if err := p.consumeByte(','); err != nil {
		return nil, err
	}
	xmax, ymax, zmax, tmax, err := p.parseCorner(hasZ, hasT)
	if err != nil {
		return nil, err
	}
	if err := p.consumeByte(')'); err != nil {
		return nil, err
	}

	hasX := !(xmin == nil && ymin == nil)
	var xminV, xmaxV, yminV, ymaxV, zminV, zmaxV float64
	if hasX {
		xminV, xmaxV = *xmin, *xmax
		yminV, ymaxV = *ymin, *ymax
		if hasZ {
			zminV, zmaxV = *zmin, *zmax
		}
	}
	var tminV, tmaxV time.Time
	if hasT {
		tminV, tmaxV = *tmin, *tmax
	}
	return New(hasX, hasZ && hasX, hasT, geodetic, srid, xminV, xmaxV, yminV, ymaxV, zminV, zmaxV, tminV, tmaxV)
}

func (p *parser) skipEq() error {
	p.skipSpace()
	if p.i >= len(p.s) || p.s[p.i] != '=' {
		return merr.New("stbox.parse", merr.TextInput, "expected '=' after SRID")
	}
	p.i++
	return nil
}

// parseCorner parses one corner, either the flat form
// "xmin[,ymin[,zmin]][,tmin]" (fields blank when absent) or the nested form
// "(xmin,ymin[,zmin]) [, tmin]". Returns nil pointers for x/y/z when the
// corner has no spatial dimension at all.
func (p *parser) parseCorner(hasZ, hasT bool) (x, y, z *float64, t *time.Time, err error) {
	if err = p.consumeByte('('); err != nil {
		return
	}
	if p.peek() == '(' {
		// Nested tuple form: "(x,y[,z])[, t]".
		if err = p.consumeByte('('); err != nil {
			return
		}
		var xv, yv float64
		if xv, err = p.parseFloat(); err != nil {
			return
		}
		if err = p.consumeByte(','); err != nil {
			return
		}
		if yv, err = p.parseFloat(); err != nil {
			return
		}
		x, y = &xv, &yv
		if hasZ {
			if err = p.consumeByte(','); err != nil {
				return
			}
			var zv float64
			if zv, err = p.parseFloat(); err != nil {
				return
			}
			z = &zv
		}
		if err = p.consumeByte(')'); err != nil {
			return
		}
		if hasT {
			if err = p.consumeByte(','); err != nil {
				return
			}
			var tv time.Time
			if tv, err = p.parseTimestamp(); err != nil {
				return
			}
			t = &tv
		}
		if err = p.consumeByte(')'); err != nil {
			return
		}
		return
	}

	// Flat form: 2 or 3 (with Z) possibly-blank numeric fields, then an
	// optional timestamp field.
	n := 2
	if hasZ {
		n = 3
	}
	var fields []*float64
	for i := 0; i < n; i++ {
		if i > 0 {
			if err = p.consumeByte(','); err != nil {
				return
			}
		}
		if p.peek() == ',' || p.peek() == ')' {
			fields = append(fields, nil)
			continue
		}
		var v float64
		if v, err = p.parseFloat(); err != nil {
			return
		}
		fields = append(fields, &v)
	}
	if !hasZ {
		fields = append(fields, nil)
	}
	x, y, z = fields[0], fields[1], fields[2]
	if hasT {
		if err = p.consumeByte(','); err != nil {
			return
		}
		var tv time.Time
		if tv, err = p.parseTimestamp(); err != nil {
			return
		}
		t = &tv
	}
	if err = p.consumeByte(')'); err != nil {
		return
	}
	return
}

func (p *parser) parseFloat() (float64, error) {
	p.skipSpace()
	start := p.i
	for p.i < len(p.s) && (isDigit(p.s[p.i]) || p.s[p.i] == '.' || p.s[p.i] == '-' || p.s[p.i] == '+' || p.s[p.i] == 'e' || p.s[p.i] == 'E') {
		p.i++
	}
	if p.i == start {
		return 0, merr.New("stbox.parse", merr.TextInput, "expected number at offset %d", start)
	}
	f, err := strconv.ParseFloat(p.s[start:p.i], 64)
	if err != nil {
		return 0, merr.Wrap("stbox.parse", merr.TextInput, err, "invalid number %q", p.s[start:p.i])
	}
	return f, nil
}

func (p *parser) parseSignedInt() (int64, error) {
	p.skipSpace()
	start := p.i
	if p.i < len(p.s) && (p.s[p.i] == '-' || p.s[p.i] == '+') {
		p.i++
	}
	for p.i < len(p.s) && isDigit(p.s[p.i]) {
		p.i++
	}
	if p.i == start {
		return 0, merr.New("stbox.parse", merr.TextInput, "expected integer at offset %d", start)
	}
	n, err := strconv.ParseInt(p.s[start:p.i], 10, 64)
	if err != nil {
		return 0, merr.Wrap("stbox.parse", merr.TextInput, err, "invalid integer %q", p.s[start:p.i])
	}
	return n, nil
}

func (p *parser) parseTimestamp() (time.Time, error) {
	p.skipSpace()
	start := p.i
	for p.i < len(p.s) && p.s[p.i] != ',' && p.s[p.i] != ')' {
		p.i++
	}
	tok := strings.TrimSpace(p.s[start:p.i])
	t, err := p.tv.ParseTimestamp(tok)
	if err != nil {
		return time.Time{}, merr.Wrap("stbox.parse", merr.TextInput, err, "invalid timestamp %q", tok)
	}
	return t, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// String prints b in the flat-field canonical form; it is the
// reciprocal of Parse for any STBox Parse can produce.
func (b *STBox) String(tv spantime.TimeVTable) string {
	var sb strings.Builder
	if b.SRID != 0 && !(b.Geodetic && b.SRID == 4326) {
		fmt.Fprintf(&sb, "SRID=%d;", b.SRID)
	}
	if b.Geodetic {
		sb.WriteString("GEODSTBOX")
	} else {
		sb.WriteString("STBOX")
	}
	if b.HasZ {
		sb.WriteString(" Z")
	}
	if b.HasT {
		if b.HasZ {
			sb.WriteString("T")
		} else {
			sb.WriteString(" T")
		}
	}
	sb.WriteString("(")
	b.writeCorner(&sb, true, tv)
	sb.WriteString(", ")
	b.writeCorner(&sb, false, tv)
	sb.WriteString(")")
	return sb.String()
}

func (b *STBox) writeCorner(sb *strings.Builder, lower bool, tv spantime.TimeVTable) {
	sb.WriteString("(")
	first := true
	writeField := func(v float64, present bool) {
		if !first {
			sb.WriteString(",")
		}
		first = false
		if present {
			sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
		}
	}
	if b.HasX {
		if lower {
			writeField(b.XMin, true)
			writeField(b.YMin, true)
			if b.HasZ {
				writeField(b.ZMin, true)
			}
		} else {
			writeField(b.XMax, true)
			writeField(b.YMax, true)
			if b.HasZ {
				writeField(b.ZMax, true)
			}
		}
	} else if b.HasT {
		writeField(0, false)
		writeField(0, false)
	}
	if b.HasT {
		if !first {
			sb.WriteString(",")
		}
		if lower {
			sb.WriteString(tv.PrintTimestamp(b.TMin))
		} else {
			sb.WriteString(tv.PrintTimestamp(b.TMax))
		}
	}
	sb.WriteString(")")
}
