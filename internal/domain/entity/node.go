package entity

// Orientation indicates how a split node divides its children.
type Orientation int

const (
	OrientationHorizontal Orientation = iota // First/second side by side
	OrientationVertical                      // First above second
)

// String returns the lowercase name of the orientation.
func (o Orientation) String() string {
	if o == OrientationVertical {
		return "vertical"
	}
	return "horizontal"
}

// Default ratio bounds for a split node.
const (
	DefaultMinRatio = 0.1
	DefaultMaxRatio = 0.9
)

// SplitNode is a binary divider of two child layout nodes. It exclusively
// owns both children; a node is never referenced from more than one slot,
// so the tree is acyclic by construction.
type SplitNode struct {
	ID          string
	Orientation Orientation
	First       *LayoutNode
	Second      *LayoutNode
	Ratio       float64
	MinRatio    float64
	MaxRatio    float64
	IsResizing  bool // presentation-only, no structural effect
}

// NewSplitNode creates a split with default ratio bounds. The initial ratio
// is clamped into those bounds.
func NewSplitNode(id string, orientation Orientation, first, second *LayoutNode, ratio float64) *SplitNode {
	s := &SplitNode{
		ID:          id,
		Orientation: orientation,
		First:       first,
		Second:      second,
		MinRatio:    DefaultMinRatio,
		MaxRatio:    DefaultMaxRatio,
	}
	s.Ratio = s.ClampRatio(ratio)
	return s
}

// SetRatioBounds replaces the ratio bounds and re-clamps the current
// ratio into them. Non-positive or inverted bounds fall back to the
// defaults.
func (s *SplitNode) SetRatioBounds(min, max float64) {
	if min <= 0 || max <= min {
		min, max = DefaultMinRatio, DefaultMaxRatio
	}
	s.MinRatio = min
	s.MaxRatio = max
	s.Ratio = s.ClampRatio(s.Ratio)
}

// ClampRatio returns r clamped into [MinRatio, MaxRatio].
func (s *SplitNode) ClampRatio(r float64) float64 {
	if r < s.MinRatio {
		return s.MinRatio
	}
	if r > s.MaxRatio {
		return s.MaxRatio
	}
	return r
}

// UpdateRatio stores and returns the clamped ratio. It never fails and is
// idempotent: updating with an already clamped value is a no-op.
func (s *SplitNode) UpdateRatio(r float64) float64 {
	s.Ratio = s.ClampRatio(r)
	return s.Ratio
}

// NodeKind tags the variant held by a LayoutNode.
type NodeKind int

const (
	NodeEmpty NodeKind = iota // vacant slot marker
	NodeGroup                 // tabbed panel group
	NodeSplit                 // binary split
)

// LayoutNode is the tree element: a tagged variant over empty, group and
// split. Empty nodes are indistinguishable markers, not shared entities;
// identity of the other variants derives from the contained entity's ID.
type LayoutNode struct {
	Kind  NodeKind
	Group *PanelGroup // non-nil when Kind == NodeGroup
	Split *SplitNode  // non-nil when Kind == NodeSplit
}

// EmptyNode returns a fresh vacant slot marker.
func EmptyNode() *LayoutNode {
	return &LayoutNode{Kind: NodeEmpty}
}

// GroupNode wraps a panel group as a tree node.
func GroupNode(g *PanelGroup) *LayoutNode {
	return &LayoutNode{Kind: NodeGroup, Group: g}
}

// SplitBranch wraps a split as a tree node.
func SplitBranch(s *SplitNode) *LayoutNode {
	return &LayoutNode{Kind: NodeSplit, Split: s}
}

// IsEmpty reports whether the node is a vacant slot. A nil node counts as empty.
func (n *LayoutNode) IsEmpty() bool {
	return n == nil || n.Kind == NodeEmpty
}

// IsGroup reports whether the node holds a panel group.
func (n *LayoutNode) IsGroup() bool {
	return n != nil && n.Kind == NodeGroup && n.Group != nil
}

// IsSplit reports whether the node is a binary split.
func (n *LayoutNode) IsSplit() bool {
	return n != nil && n.Kind == NodeSplit && n.Split != nil
}

// Walk traverses the subtree in pre-order (node, first child, second child),
// calling fn for each node. Traversal stops early if fn returns false.
func (n *LayoutNode) Walk(fn func(*LayoutNode) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	if n.IsSplit() {
		n.Split.First.Walk(fn)
		n.Split.Second.Walk(fn)
	}
}

// Groups returns all panel groups in the subtree in pre-order.
func (n *LayoutNode) Groups() []*PanelGroup {
	var groups []*PanelGroup
	n.Walk(func(node *LayoutNode) bool {
		if node.IsGroup() {
			groups = append(groups, node.Group)
		}
		return true
	})
	return groups
}

// FindGroup returns the group in the subtree containing the panel, or nil.
// The uniqueness invariant guarantees at most one match.
func (n *LayoutNode) FindGroup(id PanelID) *PanelGroup {
	var found *PanelGroup
	n.Walk(func(node *LayoutNode) bool {
		if node.IsGroup() && node.Group.Contains(id) {
			found = node.Group
			return false
		}
		return true
	})
	return found
}

// FindSplit returns the split node with the given ID in the subtree, or nil.
func (n *LayoutNode) FindSplit(id string) *SplitNode {
	var found *SplitNode
	n.Walk(func(node *LayoutNode) bool {
		if node.IsSplit() && node.Split.ID == id {
			found = node.Split
			return false
		}
		return true
	})
	return found
}

// PanelCount returns the number of panels in the subtree.
func (n *LayoutNode) PanelCount() int {
	count := 0
	for _, g := range n.Groups() {
		count += len(g.Panels)
	}
	return count
}
