package stbox

import "github.com/mobilitydb/meos-go/merr"

// requireSRID checks the SRID-compatibility precondition position
// predicates share: differing, both-known SRIDs are refused,
// independent of geodetic flags.
func requireSRID(op string, a, b *STBox) error {
	if a.SRID != 0 && b.SRID != 0 && a.SRID != b.SRID {
		return merr.New(op, merr.SridMismatch, "SRID %d vs %d", a.SRID, b.SRID)
	}
	return nil
}

func requireX(op string, a, b *STBox) error {
	if !a.HasX || !b.HasX {
		return merr.New(op, merr.DimensionMismatch, "X dimension required on both operands")
	}
	return requireSRID(op, a, b)
}

func requireT(op string, a, b *STBox) error {
	if !a.HasT || !b.HasT {
		return merr.New(op, merr.DimensionMismatch, "T dimension required on both operands")
	}
	return requireSRID(op, a, b)
}

func requireZ(op string, a, b *STBox) error {
	if !a.HasX || !b.HasX || !a.HasZ || !b.HasZ {
		return merr.New(op, merr.DimensionMismatch, "Z dimension required on both operands")
	}
	return requireSRID(op, a, b)
}

// Left reports whether a lies strictly to the left of (west of) b on X.
func (a *STBox) Left(b *STBox) (bool, error) {
	if err := requireX("STBox.Left", a, b); err != nil {
		return false, err
	}
	return a.XMax < b.XMin, nil
}

// OverLeft reports whether a does not extend to the right of b on X.
func (a *STBox) OverLeft(b *STBox) (bool, error) {
	if err := requireX("STBox.OverLeft", a, b); err != nil {
		return false, err
	}
	return a.XMax <= b.XMax, nil
}

// Right reports whether a lies strictly to the right of (east of) b on X.
func (a *STBox) Right(b *STBox) (bool, error) {
	if err := requireX("STBox.Right", a, b); err != nil {
		return false, err
	}
	return a.XMin > b.XMax, nil
}

// OverRight reports whether a does not extend to the left of b on X.
func (a *STBox) OverRight(b *STBox) (bool, error) {
	if err := requireX("STBox.OverRight", a, b); err != nil {
		return false, err
	}
	return a.XMin >= b.XMin, nil
}

// Below reports whether a lies strictly below b on Y.
func (a *STBox) Below(b *STBox) (bool, error) {
	if err := requireX("STBox.Below", a, b); err != nil {
		return false, err
	}
	return a.YMax < b.YMin, nil
}

// OverBelow reports whether a does not extend above b on Y.
func (a *STBox) OverBelow(b *STBox) (bool, error) {
	if err := requireX("STBox.OverBelow", a, b); err != nil {
		return false, err
	}
	return a.YMax <= b.YMax, nil
}

// Above reports whether a lies strictly above b on Y.
func (a *STBox) Above(b *STBox) (bool, error) {
	if err := requireX("STBox.Above", a, b); err != nil {
		return false, err
	}
	return a.YMin > b.YMax, nil
}

// OverAbove reports whether a does not extend below b on Y.
func (a *STBox) OverAbove(b *STBox) (bool, error) {
	if err := requireX("STBox.OverAbove", a, b); err != nil {
		return false, err
	}
	return a.YMin >= b.YMin, nil
}

// Front reports whether a lies strictly in front of (before, on Z) b.
func (a *STBox) Front(b *STBox) (bool, error) {
	if err := requireZ("STBox.Front", a, b); err != nil {
		return false, err
	}
	return a.ZMax < b.ZMin, nil
}

// OverFront reports whether a does not extend behind b on Z.
func (a *STBox) OverFront(b *STBox) (bool, error) {
	if err := requireZ("STBox.OverFront", a, b); err != nil {
		return false, err
	}
	return a.ZMax <= b.ZMax, nil
}

// Back reports whether a lies strictly behind b on Z.
func (a *STBox) Back(b *STBox) (bool, error) {
	if err := requireZ("STBox.Back", a, b); err != nil {
		return false, err
	}
	return a.ZMin > b.ZMax, nil
}

// OverBack reports whether a does not extend in front of b on Z.
func (a *STBox) OverBack(b *STBox) (bool, error) {
	if err := requireZ("STBox.OverBack", a, b); err != nil {
		return false, err
	}
	return a.ZMin >= b.ZMin, nil
}

// Before reports whether a lies strictly before b on T.
func (a *STBox) Before(b *STBox) (bool, error) {
	if err := requireT("STBox.Before", a, b); err != nil {
		return false, err
	}
	return a.TMax.Before(b.TMin), nil
}

// OverBefore reports whether a does not extend after b on T.
func (a *STBox) OverBefore(b *STBox) (bool, error) {
	if err := requireT("STBox.OverBefore", a, b); err != nil {
		return false, err
	}
	return !a.TMax.After(b.TMax), nil
}

// After reports whether a lies strictly after b on T.
func (a *STBox) After(b *STBox) (bool, error) {
	if err := requireT("STBox.After", a, b); err != nil {
		return false, err
	}
	return a.TMin.After(b.TMax), nil
}

// OverAfter reports whether a does not extend before b on T.
func (a *STBox) OverAfter(b *STBox) (bool, error) {
	if err := requireT("STBox.OverAfter", a, b); err != nil {
		return false, err
	}
	return !a.TMin.Before(b.TMin), nil
}
