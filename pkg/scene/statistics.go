package scene

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/df07/go-reflection-raytracer/pkg/core"
	"github.com/df07/go-reflection-raytracer/pkg/geometry"
	"github.com/df07/go-reflection-raytracer/pkg/spatial"
)

// Statistics summarizes a generated scene
type Statistics struct {
	Count            int       `json:"count"`
	MinRadius        float64   `json:"minRadius"`
	MaxRadius        float64   `json:"maxRadius"`
	MeanRadius       float64   `json:"meanRadius"`
	MeanColor        core.Vec3 `json:"meanColor"`
	Bounds           core.AABB `json:"bounds"`           // Box enclosing every sphere
	OverlappingPairs int       `json:"overlappingPairs"` // Pairs of spheres that intersect

	Index       spatial.Stats `json:"index"`
	ShadowIndex spatial.Stats `json:"shadowIndex"`
}

// rtree branching factors
const (
	rtreeMinChildren = 4
	rtreeMaxChildren = 16
)

// boundedSphere adapts a sphere to rtreego.Spatial
type boundedSphere struct {
	id     int
	sphere geometry.Sphere
	bounds rtreego.Rect
}

func (b *boundedSphere) Bounds() rtreego.Rect {
	return b.bounds
}

func newBoundedSphere(id int, s geometry.Sphere) (*boundedSphere, error) {
	box := s.BoundingBox()
	size := box.Size()
	rect, err := rtreego.NewRect(rtreego.Point{box.Min.X, box.Min.Y, box.Min.Z}, []float64{size.X, size.Y, size.Z})
	if err != nil {
		return nil, err
	}
	return &boundedSphere{id: id, sphere: s, bounds: rect}, nil
}

// CountOverlaps returns the number of sphere pairs whose volumes intersect.
// Candidate pairs come from an R-tree over the bounding boxes.
func CountOverlaps(spheres []geometry.Sphere) (int, error) {
	tree := rtreego.NewTree(3, rtreeMinChildren, rtreeMaxChildren)
	bounded := make([]*boundedSphere, len(spheres))
	for i, s := range spheres {
		b, err := newBoundedSphere(i, s)
		if err != nil {
			return 0, err
		}
		bounded[i] = b
		tree.Insert(b)
	}

	pairs := 0
	for _, b := range bounded {
		for _, candidate := range tree.SearchIntersect(b.bounds) {
			other := candidate.(*boundedSphere)
			// Count each pair once
			if other.id <= b.id {
				continue
			}
			reach := b.sphere.Radius + other.sphere.Radius
			if b.sphere.Center.Subtract(other.sphere.Center).LengthSquared() < reach*reach {
				pairs++
			}
		}
	}
	return pairs, nil
}

// Summarize computes statistics for a scene
func Summarize(s *Scene) (Statistics, error) {
	stats := Statistics{
		Count:       len(s.Spheres),
		Index:       s.Index.Stats(),
		ShadowIndex: s.ShadowIndex.Stats(),
	}
	if stats.Count == 0 {
		return stats, nil
	}

	stats.MinRadius = math.Inf(1)
	stats.Bounds = s.Spheres[0].BoundingBox()

	radiusSum := 0.0
	colorSum := core.Vec3{}
	for _, sphere := range s.Spheres {
		stats.MinRadius = math.Min(stats.MinRadius, sphere.Radius)
		stats.MaxRadius = math.Max(stats.MaxRadius, sphere.Radius)
		radiusSum += sphere.Radius
		colorSum = colorSum.Add(sphere.Color)
		stats.Bounds = stats.Bounds.Union(sphere.BoundingBox())
	}

	n := float64(stats.Count)
	stats.MeanRadius = radiusSum / n
	stats.MeanColor = colorSum.Multiply(1 / n)

	overlaps, err := CountOverlaps(s.Spheres)
	if err != nil {
		return Statistics{}, err
	}
	stats.OverlappingPairs = overlaps

	return stats, nil
}

// Log writes a human-readable summary
func (st Statistics) Log(logger core.Logger) {
	logger.Printf("Spheres: %d\n", st.Count)
	if st.Count > 0 {
		logger.Printf("Radius: min %.3f, max %.3f, mean %.3f\n", st.MinRadius, st.MaxRadius, st.MeanRadius)
		logger.Printf("Mean color: (%.3f, %.3f, %.3f)\n", st.MeanColor.X, st.MeanColor.Y, st.MeanColor.Z)
		logger.Printf("Extent: (%.2f, %.2f, %.2f) to (%.2f, %.2f, %.2f)\n",
			st.Bounds.Min.X, st.Bounds.Min.Y, st.Bounds.Min.Z, st.Bounds.Max.X, st.Bounds.Max.Y, st.Bounds.Max.Z)
		logger.Printf("Overlapping pairs: %d\n", st.OverlappingPairs)
	}
	logger.Printf("Image index: %d nodes, %d occupied leaves, %d entries (max %d per leaf)\n",
		st.Index.Nodes, st.Index.Leaves, st.Index.Entries, st.Index.MaxOccupancy)
	logger.Printf("Shadow index: %d nodes, %d occupied leaves, %d entries (max %d per leaf)\n",
		st.ShadowIndex.Nodes, st.ShadowIndex.Leaves, st.ShadowIndex.Entries, st.ShadowIndex.MaxOccupancy)
}
