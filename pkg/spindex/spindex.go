// Package spindex provides an in-process spatial index over geom.Geometry
// values, backed by an R-tree (github.com/dhconnelly/rtreego). It answers
// the bbox-filtered portion of ST_Intersects/ST_DWithin-style queries in
// O(log N + k) instead of a full table scan, the way a GiST/R-tree index
// backs those operators in PostGIS.
package spindex

import (
	"sort"

	"github.com/dhconnelly/rtreego"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Entry is one indexed row: an opaque caller-supplied key alongside the
// geometry it was built from. The index keeps the whole Entry, so Query
// and Nearest results carry the original geometry back alongside Key.
type Entry struct {
	Key  any
	Geom geom.Geometry
}

func (e Entry) Bounds() rtreego.Rect {
	return rectFromBounds(e.Geom.Bounds())
}

func rectFromBounds(bb geom.BoundingBox) rtreego.Rect {
	if bb.IsEmpty() {
		rect, _ := rtreego.NewRect(rtreego.Point{0, 0}, []float64{minRectSize, minRectSize})
		return rect
	}
	w := bb.MaxX - bb.MinX
	h := bb.MaxY - bb.MinY
	if w < minRectSize {
		w = minRectSize
	}
	if h < minRectSize {
		h = minRectSize
	}
	point := rtreego.Point{bb.MinX, bb.MinY}
	rect, err := rtreego.NewRect(point, []float64{w, h})
	if err != nil {
		rect, _ = rtreego.NewRect(point, []float64{minRectSize, minRectSize})
	}
	return rect
}

// minRectSize keeps degenerate (point or collinear) bounding boxes from
// producing a zero-area rtreego.Rect, which rtreego.NewRect rejects.
const minRectSize = 1e-9

// Index is a mutable in-process spatial index. The zero value is not
// usable; construct with New.
type Index struct {
	rtree   *rtreego.Rtree
	entries map[any]Entry
}

// New builds an empty index with a fixed R-tree branching factor of
// 25 minimum / 50 maximum children per node (rtreego.NewTree's own
// parameters), a reasonable setting for up to a few hundred thousand
// entries.
func New() *Index {
	return &Index{
		rtree:   rtreego.NewTree(2, 25, 50),
		entries: make(map[any]Entry),
	}
}

// Insert adds or replaces the entry for key.
func (idx *Index) Insert(key any, g geom.Geometry) {
	idx.Delete(key)
	e := Entry{Key: key, Geom: g}
	idx.entries[key] = e
	idx.rtree.Insert(e)
}

// Delete removes the entry for key, if present.
func (idx *Index) Delete(key any) bool {
	e, ok := idx.entries[key]
	if !ok {
		return false
	}
	idx.rtree.Delete(e)
	delete(idx.entries, key)
	return true
}

// Len returns the number of indexed entries.
func (idx *Index) Len() int { return len(idx.entries) }

// Query returns every entry whose bounding box intersects bb. This is a
// bbox pre-filter only: callers must still apply an exact predicate (see
// pkg/relate) to entries whose true geometry does not intersect bb, since
// the index only ever stores rectangles, never exact shapes.
func (idx *Index) Query(bb geom.BoundingBox) []Entry {
	if bb.IsEmpty() {
		return nil
	}
	rect := rectFromBounds(bb)
	hits := idx.rtree.SearchIntersect(rect)
	result := make([]Entry, 0, len(hits))
	for _, s := range hits {
		result = append(result, s.(Entry))
	}
	sort.Slice(result, func(i, j int) bool {
		return lessKey(result[i].Key, result[j].Key)
	})
	return result
}

// Nearest returns the k entries whose bounding boxes are nearest to p,
// ordered nearest-first, using rtreego's own nearest-neighbor search.
func (idx *Index) Nearest(p geom.Coordinate, k int) []Entry {
	if k <= 0 {
		return nil
	}
	pt := rtreego.Point{p.X, p.Y}
	hits := idx.rtree.NearestNeighbors(k, pt)
	result := make([]Entry, 0, len(hits))
	for _, s := range hits {
		if s == nil {
			continue
		}
		result = append(result, s.(Entry))
	}
	return result
}

// lessKey provides a deterministic tie-break ordering for Query results
// so repeated queries over an unchanged index return a stable order;
// rtreego's own traversal order is not guaranteed stable across inserts.
func lessKey(a, b any) bool {
	as, aok := a.(string)
	bs, bok := b.(string)
	if aok && bok {
		return as < bs
	}
	ai, aok := a.(int)
	bi, bok := b.(int)
	if aok && bok {
		return ai < bi
	}
	return false
}
