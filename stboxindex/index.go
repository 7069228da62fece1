// Package stboxindex provides an in-memory batch overlap query over a
// fixed collection of STBoxes, following the same technique as
// interval/bedunion.go: boxes are sorted once by their time lower bound so
// that repeated queries can binary-search a candidate run instead of
// scanning the whole collection. This is deliberately NOT a GiST/SP-GiST
// access method — that remains the embedder's concern — it is a convenience
// a host can reach for before standing up a real index.
package stboxindex

import (
	"sort"

	"github.com/mobilitydb/meos-go/merr"
	"github.com/mobilitydb/meos-go/stbox"
)

// Index accelerates repeated overlap queries against a fixed collection of
// time-bearing STBoxes.
type Index struct {
	boxes []*stbox.STBox // sorted ascending by TMin
}

// New builds an Index over boxes, every one of which must carry a T
// dimension.
func New(boxes []*stbox.STBox) (*Index, error) {
	const op = "stboxindex.New"
	if len(boxes) == 0 {
		return nil, merr.New(op, merr.InvalidArgValue, "empty box collection")
	}
	sorted := make([]*stbox.STBox, len(boxes))
	copy(sorted, boxes)
	for i, b := range sorted {
		if !b.HasT {
			return nil, merr.New(op, merr.InvalidArgType, "box %d has no T dimension", i)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TMin.Before(sorted[j].TMin) })
	return &Index{boxes: sorted}, nil
}

// Len returns the number of indexed boxes.
func (ix *Index) Len() int { return len(ix.boxes) }

// Overlapping returns every indexed box that overlaps query, in ascending
// TMin order. It prunes the scan with a binary search on TMin (every box
// that can possibly overlap has TMin <= query.TMax), then confirms each
// candidate with the full STBox.Overlaps check, which also enforces
// SRID/geodetic/X/Z compatibility.
func (ix *Index) Overlapping(query *stbox.STBox) ([]*stbox.STBox, error) {
	const op = "stboxindex.Overlapping"
	if !query.HasT {
		return nil, merr.New(op, merr.InvalidArgType, "query box has no T dimension")
	}
	hi := sort.Search(len(ix.boxes), func(i int) bool { return ix.boxes[i].TMin.After(query.TMax) })
	var out []*stbox.STBox
	for i := 0; i < hi; i++ {
		if ix.boxes[i].TMax.Before(query.TMin) {
			continue
		}
		overlaps, err := ix.boxes[i].Overlaps(query)
		if err != nil {
			return nil, merr.Wrap(op, merr.DimensionMismatch, err, "box %d incompatible with query", i)
		}
		if overlaps {
			out = append(out, ix.boxes[i])
		}
	}
	return out, nil
}
