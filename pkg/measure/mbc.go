package measure

import (
	"math"
	"math/rand"

	"github.com/fathomline/stgeo/pkg/geom"
)

// Circle is the result of MinimumBoundingCircle: the smallest disc
// enclosing every vertex of the input geometry.
type Circle struct {
	Center geom.Coordinate
	Radius float64
}

// MinimumBoundingCircle computes the smallest enclosing circle of g's
// vertices using Welzl's randomized incremental algorithm (expected
// linear time). Supplemented beyond spec.md's named functions per
// SPEC_FULL.md §8, it shares ST_ConvexHull's reliance on geom.Vertices.
func MinimumBoundingCircle(g geom.Geometry) (Circle, error) {
	pts := geom.Vertices(g)
	if len(pts) == 0 {
		return Circle{}, &geom.InvalidArgument{Op: "ST_MinimumBoundingCircle", Reason: "empty geometry"}
	}
	shuffled := make([]geom.Coordinate, len(pts))
	copy(shuffled, pts)
	rand.New(rand.NewSource(1)).Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return welzl(shuffled), nil
}

func welzl(pts []geom.Coordinate) Circle {
	c := Circle{Center: pts[0], Radius: 0}
	for i := 1; i < len(pts); i++ {
		if !circleContains(c, pts[i]) {
			c = circleOne(pts[:i+1], i)
		}
	}
	return c
}

func circleOne(pts []geom.Coordinate, idx int) Circle {
	p := pts[idx]
	c := Circle{Center: p, Radius: 0}
	for i := 0; i < idx; i++ {
		if circleContains(c, pts[i]) {
			continue
		}
		if c.Radius == 0 {
			c = twoPointCircle(p, pts[i])
			continue
		}
		c = circleTwo(pts[:i+1], i, p)
	}
	return c
}

func circleTwo(pts []geom.Coordinate, idx int, p geom.Coordinate) Circle {
	q := pts[idx]
	c := twoPointCircle(p, q)
	for i := 0; i < idx; i++ {
		if circleContains(c, pts[i]) {
			continue
		}
		c = threePointCircle(p, q, pts[i])
	}
	return c
}

func twoPointCircle(a, b geom.Coordinate) Circle {
	center := geom.Coordinate{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
	return Circle{Center: center, Radius: pointDistance(center, a)}
}

// threePointCircle returns the unique circle through three non-collinear
// points (the circumcircle); if the points are collinear it falls back
// to the circle over the two farthest-apart of the three.
func threePointCircle(a, b, c geom.Coordinate) Circle {
	d := 2 * (a.X*(b.Y-c.Y) + b.X*(c.Y-a.Y) + c.X*(a.Y-b.Y))
	if math.Abs(d) < 1e-12 {
		pairs := [][2]geom.Coordinate{{a, b}, {b, c}, {a, c}}
		best := twoPointCircle(a, b)
		for _, pr := range pairs {
			cand := twoPointCircle(pr[0], pr[1])
			if cand.Radius > best.Radius {
				best = cand
			}
		}
		return best
	}
	ax2y2 := a.X*a.X + a.Y*a.Y
	bx2y2 := b.X*b.X + b.Y*b.Y
	cx2y2 := c.X*c.X + c.Y*c.Y
	ux := (ax2y2*(b.Y-c.Y) + bx2y2*(c.Y-a.Y) + cx2y2*(a.Y-b.Y)) / d
	uy := (ax2y2*(c.X-b.X) + bx2y2*(a.X-c.X) + cx2y2*(b.X-a.X)) / d
	center := geom.Coordinate{X: ux, Y: uy}
	return Circle{Center: center, Radius: pointDistance(center, a)}
}

func circleContains(c Circle, p geom.Coordinate) bool {
	return pointDistance(c.Center, p) <= c.Radius+1e-9
}
