package overlay

import (
	"math"

	"github.com/fathomline/stgeo/pkg/geom"
)

// gvertex is one node of a Greiner-Hormann clip-list: either an original
// polygon vertex or an inserted intersection point linking the matching
// node in the other polygon's list.
type gvertex struct {
	coord      geom.Coordinate
	next, prev *gvertex
	neighbor   *gvertex
	alpha      float64
	intersect  bool
	entry      bool
	visited    bool
}

// buildRingList turns a closed ring (first coordinate repeated last)
// into a circular doubly linked list with the closing duplicate dropped.
func buildRingList(ring []geom.Coordinate) *gvertex {
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	if n < 3 {
		return nil
	}
	nodes := make([]*gvertex, n)
	for i := 0; i < n; i++ {
		nodes[i] = &gvertex{coord: ring[i]}
	}
	for i := 0; i < n; i++ {
		nodes[i].next = nodes[(i+1)%n]
		nodes[i].prev = nodes[(i-1+n)%n]
	}
	return nodes[0]
}

// insertIntersection inserts a new intersection node between a and
// a.next (or further along if other intersections already sit there),
// ordered by alpha (the intersection's parametric position along the
// a-a.next edge).
func insertIntersection(a *gvertex, v *gvertex) {
	b := a.next
	cur := a
	for cur.next != b && cur.next.intersect && cur.next.alpha < v.alpha {
		cur = cur.next
	}
	v.next = cur.next
	v.prev = cur
	cur.next.prev = v
	cur.next = v
}

// segmentIntersection returns the intersection point of segments p1-p2
// and p3-p4 plus each segment's parametric alpha in [0,1], when they
// cross at a single interior point (collinear and non-crossing cases
// are reported as no intersection, consistent with this package's
// simple-polygon scope documented in doc.go).
func segmentIntersection(p1, p2, p3, p4 geom.Coordinate) (geom.Coordinate, float64, float64, bool) {
	d := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if math.Abs(d) < 1e-12 {
		return geom.Coordinate{}, 0, 0, false
	}
	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / d
	ub := ((p2.X-p1.X)*(p1.Y-p3.Y) - (p2.Y-p1.Y)*(p1.X-p3.X)) / d
	const eps = 1e-9
	if ua < -eps || ua > 1+eps || ub < -eps || ub > 1+eps {
		return geom.Coordinate{}, 0, 0, false
	}
	pt := geom.Coordinate{X: p1.X + ua*(p2.X-p1.X), Y: p1.Y + ua*(p2.Y-p1.Y)}
	return pt, ua, ub, true
}

// computeIntersections walks every edge pair of the two rings, inserting
// matching intersection nodes into both lists. Returns the count found.
func computeIntersections(subj, clip *gvertex) int {
	count := 0
	sv := subj
	for {
		if !sv.intersect {
			cv := clip
			for {
				if !cv.intersect {
					pt, ua, ub, ok := segmentIntersection(sv.coord, sv.next.coord, cv.coord, cv.next.coord)
					if ok && ua > 1e-9 && ua < 1-1e-9 && ub > 1e-9 && ub < 1-1e-9 {
						is := &gvertex{coord: pt, alpha: ua, intersect: true}
						ic := &gvertex{coord: pt, alpha: ub, intersect: true}
						is.neighbor = ic
						ic.neighbor = is
						insertIntersection(sv, is)
						insertIntersection(cv, ic)
						count++
					}
				}
				cv = cv.next
				if cv == clip {
					break
				}
			}
		}
		sv = sv.next
		if sv == subj {
			break
		}
	}
	return count
}

// ringContainsPoint is the even-odd ray cast test used only to seed the
// initial entry/exit status of each clip list (ignores boundary cases,
// acceptable since the seed vertex is never itself an intersection).
func ringContainsPoint(p geom.Coordinate, ring []geom.Coordinate) bool {
	inside := false
	for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
		a, b := ring[j], ring[i]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			xint := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < xint {
				inside = !inside
			}
		}
	}
	return inside
}

// markEntryExit assigns entry/exit flags to every intersection vertex of
// list, toggling from a seeded initial inside/outside status determined
// against otherRing.
func markEntryExit(list *gvertex, otherRing []geom.Coordinate) {
	status := !ringContainsPoint(list.coord, otherRing)
	v := list
	for {
		if v.intersect {
			v.entry = status
			status = !status
		}
		v = v.next
		if v == list {
			break
		}
	}
}

type clipOp int

const (
	opIntersection clipOp = iota
	opUnion
	opDifference
)

// traceContours walks the marked clip lists, extracting every resulting
// closed contour per the Greiner-Hormann traversal rule, with the
// direction/flag conventions appropriate to op.
func traceContours(subj *gvertex, op clipOp) [][]geom.Coordinate {
	var contours [][]geom.Coordinate
	v := subj
	for {
		if v.intersect && !v.visited {
			var ring []geom.Coordinate
			start := v
			cur := v
			for {
				cur.visited = true
				forward := cur.entry
				if op == opUnion {
					forward = !forward
				}
				for {
					if forward {
						cur = cur.next
					} else {
						cur = cur.prev
					}
					ring = append(ring, cur.coord)
					cur.visited = true
					if cur.intersect {
						break
					}
				}
				cur = cur.neighbor
				if cur == start {
					break
				}
			}
			if len(ring) >= 3 {
				ring = append(ring, ring[0])
				contours = append(contours, ring)
			}
		}
		v = v.next
		if v == subj {
			break
		}
	}
	return contours
}

// clipPolygons runs the Greiner-Hormann clip between two simple,
// single-ring polygon boundaries and returns the resulting contour set.
// ok is false when the rings never cross, in which case the caller
// falls back to the pure-containment/disjoint cases in boolean.go.
func clipPolygons(a, b []geom.Coordinate, op clipOp) ([][]geom.Coordinate, bool) {
	a, b = snapRingPair(a, b)
	subj := buildRingList(a)
	clip := buildRingList(b)
	if subj == nil || clip == nil {
		return nil, false
	}
	n := computeIntersections(subj, clip)
	if n == 0 {
		return nil, false
	}
	markEntryExit(subj, b)
	markEntryExit(clip, a)
	traceOp := op
	if op == opDifference {
		flipEntry(clip)
		traceOp = opIntersection
	}
	return traceContours(subj, traceOp), true
}

func flipEntry(list *gvertex) {
	v := list
	for {
		if v.intersect {
			v.entry = !v.entry
		}
		v = v.next
		if v == list {
			break
		}
	}
}
