package spatial

// Rect is an axis-aligned rectangle on a plane. Edges are inclusive.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// NewSquare creates the square [-halfExtent, halfExtent] on both axes
func NewSquare(halfExtent float64) Rect {
	return Rect{MinX: -halfExtent, MinY: -halfExtent, MaxX: halfExtent, MaxY: halfExtent}
}

// Overlaps reports whether two rectangles share any point
func (r Rect) Overlaps(other Rect) bool {
	return r.MinX <= other.MaxX && other.MinX <= r.MaxX &&
		r.MinY <= other.MaxY && other.MinY <= r.MaxY
}

// Contains reports whether (u, v) lies inside the rectangle
func (r Rect) Contains(u, v float64) bool {
	return u >= r.MinX && u <= r.MaxX && v >= r.MinY && v <= r.MaxY
}

// quadrants splits the rectangle into four equal parts:
// lower-left, lower-right, upper-left, upper-right
func (r Rect) quadrants() [4]Rect {
	midX := (r.MinX + r.MaxX) / 2
	midY := (r.MinY + r.MaxY) / 2
	return [4]Rect{
		{MinX: r.MinX, MinY: r.MinY, MaxX: midX, MaxY: midY},
		{MinX: midX, MinY: r.MinY, MaxX: r.MaxX, MaxY: midY},
		{MinX: r.MinX, MinY: midY, MaxX: midX, MaxY: r.MaxY},
		{MinX: midX, MinY: midY, MaxX: r.MaxX, MaxY: r.MaxY},
	}
}

// Node is a square region of the quadtree
type Node struct {
	Bounds   Rect
	Depth    int
	Children [4]*Node // nil until an entry reaches that quadrant
	Items    []int    // Entries registered at this leaf (nil for internal nodes)
}

func (n *Node) isLeaf(maxDepth int) bool {
	return n.Depth >= maxDepth
}

// Quadtree maps points on a plane to the entries whose regions may cover them.
// Entries are integer ids, typically indices into a sphere slice.
// A Quadtree is not safe for concurrent Insert but is safe for concurrent Query
// once building has finished.
type Quadtree struct {
	Root     *Node
	MaxDepth int
}

// NewQuadtree creates an empty quadtree over bounds that subdivides down to maxDepth.
// A maxDepth of 0 keeps every entry in the root.
func NewQuadtree(bounds Rect, maxDepth int) *Quadtree {
	return &Quadtree{
		Root:     &Node{Bounds: bounds},
		MaxDepth: max(0, maxDepth),
	}
}

// Insert registers id in every leaf whose region overlaps r.
// Over-registration is harmless; a leaf touching r is never skipped.
func (q *Quadtree) Insert(id int, r Rect) {
	q.insertNode(q.Root, id, r)
}

func (q *Quadtree) insertNode(node *Node, id int, r Rect) {
	if !node.Bounds.Overlaps(r) {
		return
	}

	if node.isLeaf(q.MaxDepth) {
		node.Items = append(node.Items, id)
		return
	}

	for i, bounds := range node.Bounds.quadrants() {
		if !bounds.Overlaps(r) {
			continue
		}
		if node.Children[i] == nil {
			node.Children[i] = &Node{Bounds: bounds, Depth: node.Depth + 1}
		}
		q.insertNode(node.Children[i], id, r)
	}
}

// Query returns the entries of the leaf containing (u, v) in insertion order.
// Points on a split line belong to the upper/right quadrant. Points outside
// the tree, and leaves nothing reached, return nil.
func (q *Quadtree) Query(u, v float64) []int {
	node := q.Root
	if !node.Bounds.Contains(u, v) {
		return nil
	}

	for !node.isLeaf(q.MaxDepth) {
		midX := (node.Bounds.MinX + node.Bounds.MaxX) / 2
		midY := (node.Bounds.MinY + node.Bounds.MaxY) / 2

		i := 0
		if u >= midX {
			i++
		}
		if v >= midY {
			i += 2
		}

		node = node.Children[i]
		if node == nil {
			return nil
		}
	}

	return node.Items
}

// Stats describes the shape of a built quadtree
type Stats struct {
	Nodes        int `json:"nodes"`        // Nodes allocated, including the root
	Leaves       int `json:"leaves"`       // Leaves holding at least one entry
	Entries      int `json:"entries"`      // Total registrations across all leaves
	MaxOccupancy int `json:"maxOccupancy"` // Largest number of entries in a single leaf
}

// Stats walks the tree and collects its statistics
func (q *Quadtree) Stats() Stats {
	stats := Stats{}
	q.collectStats(q.Root, &stats)
	return stats
}

func (q *Quadtree) collectStats(node *Node, stats *Stats) {
	stats.Nodes++

	if node.isLeaf(q.MaxDepth) {
		if len(node.Items) > 0 {
			stats.Leaves++
		}
		stats.Entries += len(node.Items)
		stats.MaxOccupancy = max(stats.MaxOccupancy, len(node.Items))
		return
	}

	for _, child := range node.Children {
		if child != nil {
			q.collectStats(child, stats)
		}
	}
}
