// Package wkt implements the WKT parser/printer (C6): the textual grammar
// for temporal values, delegating base-value syntax to the base type's own
// ParseText/PrintText and timestamp syntax to the time vtable.
package wkt

import (
	"strconv"

	gunsafe "github.com/grailbio/base/unsafe"
	"github.com/mobilitydb/meos-go/basetype"
	"github.com/mobilitydb/meos-go/geo"
	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/spantime"
	"github.com/mobilitydb/meos-go/temporal"
)

// Parse reads s as a temporal-value WKT literal of base type bt, per the
// grammar:
//
//	Temporal := [ "SRID=" Int ";" ] [ "Interp=Step;" ] ( Instant | Disc | Cont | SeqSet )
//	Instant  := BaseValue "@" Timestamp
//	Disc     := "{" Instant { "," Instant } "}"
//	Cont     := ("[" | "(") Instant { "," Instant } ("]" | ")")
//	SeqSet   := "{" Cont { "," Cont } "}"
//
// The dispatch rule peeks at the character after the optional prefixes:
// "{" followed by "[" or "(" is a sequence set, "{" otherwise is a discrete
// sequence, "[" or "(" is a continuous sequence, anything else is an
// instant. reg defaults to basetype.Default() and tv to
// spantime.DefaultTime when nil.
func Parse(s string, bt basetype.Type, reg *basetype.Registry, tv spantime.TimeVTable) (*temporal.Temporal, error) {
	const op = "wkt.Parse"
	if reg == nil {
		reg = basetype.Default()
	}
	if tv == nil {
		tv = spantime.DefaultTime
	}
	vt, err := reg.Lookup(bt)
	if err != nil {
		return nil, err
	}
	p := &parser{
		s:   []byte(s),
		bt:  bt,
		vt:  vt,
		reg: reg,
		tv:  tv,
	}

	outerSRID, err := p.parsePrefixSRID()
	if err != nil {
		return nil, err
	}
	interp := temporal.DiscreteInterp
	if p.tryConsumeCI("Interp") {
		if err := p.consumeByte('='); err != nil {
			return nil, err
		}
		if !p.tryConsumeCI("Step") {
			return nil, merr.New(op, merr.TextInput, "expected Step after Interp=")
		}
		if err := p.consumeByte(';'); err != nil {
			return nil, err
		}
		interp = temporal.Step
	}

	t, err := p.parseValue(outerSRID, interp)
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.i != len(p.s) {
		return nil, merr.New(op, merr.TextInput, "unexpected trailing input %q", p.s[p.i:])
	}
	return t, nil
}

type parser struct {
	s   []byte
	i   int
	bt  basetype.Type
	vt  basetype.VTable
	reg *basetype.Registry
	tv  spantime.TimeVTable
}

func (p *parser) opts() []temporal.Option {
	return []temporal.Option{temporal.WithRegistry(p.reg), temporal.WithTimeVTable(p.tv)}
}

func (p *parser) skipSpace() {
	for p.i < len(p.s) {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r':
			p.i++
		default:
			return
		}
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
	if !eqFold(p.s[p.i:p.i+len(word)], word) {
		return false
	}
	p.i += len(word)
	return true
}

func eqFold(b []byte, word string) bool {
	if len(b) != len(word) {
		return false
	}
	for i := range b {
		c, w := b[i], word[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		if 'A' <= w && w <= 'Z' {
			w += 'a' - 'A'
		}
		if c != w {
			return false
		}
	}
	return true
}

func (p *parser) consumeByte(b byte) error {
	p.skipSpace()
	if p.i >= len(p.s) || p.s[p.i] != b {
		got := "EOF"
		if p.i < len(p.s) {
			got = string(p.s[p.i])
		}
		return merr.New("wkt.parse", merr.TextInput, "expected %q, got %q", string(b), got)
	}
	p.i++
	return nil
}

// parsePrefixSRID consumes an optional "SRID=n;" prefix and returns the
// parsed SRID, or 0 if absent.
func (p *parser) parsePrefixSRID() (int32, error) {
	if !p.tryConsumeCI("SRID") {
		return 0, nil
	}
	if err := p.consumeByte('='); err != nil {
		return 0, err
	}
	n, err := p.parseSignedInt()
	if err != nil {
		return 0, err
	}
	if err := p.consumeByte(';'); err != nil {
		return 0, err
	}
	return int32(n), nil
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
		return 0, merr.New("wkt.parse", merr.TextInput, "expected integer at offset %d", start)
	}
	n, err := strconv.ParseInt(gunsafe.BytesToString(p.s[start:p.i]), 10, 64)
	if err != nil {
		return 0, merr.Wrap("wkt.parse", merr.TextInput, err, "invalid integer %q", p.s[start:p.i])
	}
	return n, nil
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseValue dispatches on the next non-space character
// dispatch rule and parses the corresponding production.
func (p *parser) parseValue(outerSRID int32, interp temporal.Interp) (*temporal.Temporal, error) {
	switch p.peek() {
	case '{':
		save := p.i
		p.i++
		if c := p.peek(); c == '[' || c == '(' {
			p.i = save
			return p.parseSeqSet(outerSRID, interp)
		}
		p.i = save
		return p.parseDiscrete(outerSRID)
	case '[', '(':
		return p.parseCont(outerSRID, interp)
	default:
		return p.parseInstantValue(outerSRID)
	}
}

// parseInstantValue parses a single Instant into a Temporal of subtype
// Instant.
func (p *parser) parseInstantValue(outerSRID int32) (*temporal.Temporal, error) {
	inst, err := p.parseInstant()
	if err != nil {
		return nil, err
	}
	v, err := p.resolveSRID(outerSRID, inst.Value)
	if err != nil {
		return nil, err
	}
	inst.Value = v
	return temporal.MakeInstant(p.bt, inst.Value, inst.T, p.opts()...)
}

// parseDiscrete parses a "{" Instant { "," Instant } "}" production.
func (p *parser) parseDiscrete(outerSRID int32) (*temporal.Temporal, error) {
	const op = "wkt.parseDiscrete"
	if err := p.consumeByte('{'); err != nil {
		return nil, err
	}
	items, err := p.splitTopLevel('}')
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, merr.New(op, merr.TextInput, "empty discrete sequence")
	}
	instants := make([]temporal.Inst, len(items))
	for i, item := range items {
		inst, err := p.parseInstantAt(item)
		if err != nil {
			return nil, err
		}
		v, err := p.resolveSRID(outerSRID, inst.Value)
		if err != nil {
			return nil, err
		}
		inst.Value = v
		instants[i] = inst
	}
	if err := p.consumeByte('}'); err != nil {
		return nil, err
	}
	return temporal.MakeSequence(p.bt, instants, true, true, temporal.DiscreteInterp, false, p.opts()...)
}

// parseCont parses a ("[" | "(") Instant { "," Instant } ("]" | ")") production.
func (p *parser) parseCont(outerSRID int32, interp temporal.Interp) (*temporal.Temporal, error) {
	const op = "wkt.parseCont"
	lowerInc := p.peek() == '['
	var open byte = '('
	if lowerInc {
		open = '['
	}
	if err := p.consumeByte(open); err != nil {
		return nil, err
	}
	items, err := p.splitTopLevelEither('}', ']', ')')
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, merr.New(op, merr.TextInput, "empty sequence")
	}
	instants := make([]temporal.Inst, len(items))
	for i, item := range items {
		inst, err := p.parseInstantAt(item)
		if err != nil {
			return nil, err
		}
		v, err := p.resolveSRID(outerSRID, inst.Value)
		if err != nil {
			return nil, err
		}
		inst.Value = v
		instants[i] = inst
	}
	upperInc := p.peek() == ']'
	if upperInc {
		if err := p.consumeByte(']'); err != nil {
			return nil, err
		}
	} else {
		if err := p.consumeByte(')'); err != nil {
			return nil, err
		}
	}
	effInterp := interp
	if effInterp == temporal.DiscreteInterp {
		effInterp = temporal.Linear
		if !p.vt.Continuous {
			effInterp = temporal.Step
		}
	}
	return temporal.MakeSequence(p.bt, instants, lowerInc, upperInc, effInterp, true, p.opts()...)
}

// parseSeqSet parses a "{" Cont { "," Cont } "}" production.
func (p *parser) parseSeqSet(outerSRID int32, interp temporal.Interp) (*temporal.Temporal, error) {
	const op = "wkt.parseSeqSet"
	if err := p.consumeByte('{'); err != nil {
		return nil, err
	}
	items, err := p.splitTopLevel('}')
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, merr.New(op, merr.TextInput, "empty sequence set")
	}
	seqs := make([]*temporal.Temporal, len(items))
	sub := &parser{reg: p.reg, tv: p.tv, bt: p.bt, vt: p.vt}
	for i, item := range items {
		sub.s, sub.i = p.s[item[0]:item[1]], 0
		s, err := sub.parseCont(outerSRID, interp)
		if err != nil {
			return nil, err
		}
		sub.skipSpace()
		if sub.i != len(sub.s) {
			return nil, merr.New(op, merr.TextInput, "unexpected trailing input in sequence %d", i)
		}
		seqs[i] = s
	}
	if err := p.consumeByte('}'); err != nil {
		return nil, err
	}
	return temporal.MakeSequenceSet(seqs, true, p.opts()...)
}

// splitTopLevel scans from the current position up to (not including) the
// matching close bracket, splitting on top-level commas (depth 0 relative
// to any nested bracket or paren — including a BaseValue's own parens, e.g.
// "POINT(1 2)"), and leaves p positioned just before close. This is the
// first of a two-pass parse: it counts and bounds each element without
// allocating any of them.
func (p *parser) splitTopLevel(close byte) ([][2]int, error) {
	return p.splitTopLevelEither(close)
}

func (p *parser) splitTopLevelEither(closers ...byte) ([][2]int, error) {
	isCloser := func(c byte) bool {
		for _, cl := range closers {
			if c == cl {
				return true
			}
		}
		return false
	}
	var items [][2]int
	depth := 0
	itemStart := p.i
	for p.i < len(p.s) {
		c := p.s[p.i]
		switch {
		case c == '(' || c == '[' || c == '{':
			depth++
		case isCloser(c) && depth == 0:
			if p.i > itemStart {
				items = append(items, [2]int{itemStart, p.i})
			}
			return items, nil
		case c == ')' || c == ']' || c == '}':
			depth--
		case c == ',' && depth == 0:
			items = append(items, [2]int{itemStart, p.i})
			itemStart = p.i + 1
		}
		p.i++
	}
	return nil, merr.New("wkt.parse", merr.TextInput, "unterminated list")
}

// parseInstant parses a bare top-level Instant that occupies the rest of
// the input (the "anything else ⇒ instant" dispatch case, where there is no
// enclosing bracket to bound it).
func (p *parser) parseInstant() (temporal.Inst, error) {
	return p.parseInstantAt([2]int{p.i, len(p.s)})
}

// parseInstantAt parses the BaseValue "@" Timestamp text in p.s[rng[0]:rng[1]]
// and, on success, advances p.i to rng[1]. In parseDiscrete/parseCont the
// last item's range ends at the close bracket, so p.i ends there; the
// callers then consume the close bracket themselves.
func (p *parser) parseInstantAt(rng [2]int) (temporal.Inst, error) {
	const op = "wkt.parseInstant"
	seg := p.s[rng[0]:rng[1]]
	at := -1
	depth := 0
	for i, c := range seg {
		switch c {
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case '@':
			if depth == 0 {
				at = i
			}
		}
		if at >= 0 {
			break
		}
	}
	if at < 0 {
		return temporal.Inst{}, merr.New(op, merr.TextInput, "missing '@' in instant %q", seg)
	}
	valueText := trimSpace(seg[:at])
	tsText := trimSpace(seg[at+1:])
	v, err := p.vt.ParseText(gunsafe.BytesToString(valueText))
	if err != nil {
		return temporal.Inst{}, merr.Wrap(op, merr.TextInput, err, "parsing base value %q", valueText)
	}
	t, err := p.tv.ParseTimestamp(gunsafe.BytesToString(tsText))
	if err != nil {
		return temporal.Inst{}, merr.Wrap(op, merr.TextInput, err, "parsing timestamp %q", tsText)
	}
	p.i = rng[1]
	return temporal.Inst{Value: v, T: t}, nil
}

// resolveSRID applies the SRID-resolution rule for a single
// sub-value: if the outer SRID is unknown and the sub-value's is known,
// adopt it (no-op here, since the outer SRID variable is the caller's, not
// stored on the value); if both are known and differ, fail; if the outer is
// known and the sub-value's is unknown, stamp the outer SRID onto it.
func (p *parser) resolveSRID(outerSRID int32, v basetype.Value) (basetype.Value, error) {
	if p.vt.Geo == nil {
		return v, nil
	}
	subSRID := p.vt.Geo.SRID(v)
	switch {
	case outerSRID == 0:
		return v, nil
	case subSRID == 0:
		return stampSRID(v, outerSRID), nil
	case subSRID != outerSRID:
		return nil, merr.New("wkt.resolveSRID", merr.SridMismatch, "value SRID %d conflicts with outer SRID %d", subSRID, outerSRID)
	default:
		return v, nil
	}
}

func stampSRID(v basetype.Value, srid int32) basetype.Value {
	p := v.(geo.Point)
	p.SRID = srid
	return p
}

func trimSpace(b []byte) []byte {
	for len(b) > 0 && isSpace(b[0]) {
		b = b[1:]
	}
	for len(b) > 0 && isSpace(b[len(b)-1]) {
		b = b[:len(b)-1]
	}
	return b
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }
