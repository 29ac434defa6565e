// Package truss builds planar roof trusses and solves them for axial member
// forces by the method of joints.
//
// A Truss is an append-only arena: nodes and members are addressed by the
// NodeID and MemberID handles returned when they are added, and nothing is
// reordered or removed afterwards. Build seals the arena before returning it.
package truss

import (
	"fmt"
	"math"
)

type NodeID int

type MemberID int

type Category string

const (
	UpperChord  Category = "Upper chord"
	LowerChord  Category = "Lower chord"
	WebPost     Category = "Web post"
	WebDiagonal Category = "Web diagonal"
)

// IsWeb reports whether members of the category connect the two chords.
func (c Category) IsWeb() bool {
	return c == WebPost || c == WebDiagonal
}

// Node is a joint position in millimeters.
type Node struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Member struct {
	ID       MemberID `json:"id"`
	Start    NodeID   `json:"start"`
	End      NodeID   `json:"end"`
	Category Category `json:"category"`
	Length   float64  `json:"length_mm"`
}

type Truss struct {
	Span     float64
	Rise     float64
	Panels   int
	nodes    []Node
	members  []Member
	supports [2]NodeID
	upper    []NodeID
	sealed   bool
}

func (t *Truss) AddNode(x, y float64) NodeID {
	if t.sealed {
		panic("truss: AddNode on sealed truss")
	}
	t.nodes = append(t.nodes, Node{X: x, Y: y})
	return NodeID(len(t.nodes) - 1)
}

func (t *Truss) AddMember(start, end NodeID, cat Category) (MemberID, error) {
	if t.sealed {
		panic("truss: AddMember on sealed truss")
	}
	if !t.valid(start) || !t.valid(end) {
		return 0, fmt.Errorf("member %s references unknown node (%d, %d)", cat, start, end)
	}
	if start == end {
		return 0, fmt.Errorf("member %s starts and ends at node %d", cat, start)
	}
	a, b := t.nodes[start], t.nodes[end]
	id := MemberID(len(t.members))
	t.members = append(t.members, Member{
		ID:       id,
		Start:    start,
		End:      end,
		Category: cat,
		Length:   math.Hypot(b.X-a.X, b.Y-a.Y),
	})
	return id, nil
}

// SetSupports marks the pin and roller nodes.
func (t *Truss) SetSupports(left, right NodeID) error {
	if !t.valid(left) || !t.valid(right) || left == right {
		return fmt.Errorf("%w: supports (%d, %d)", ErrInvalidGeometry, left, right)
	}
	t.supports = [2]NodeID{left, right}
	return nil
}

// SetLoaded records the interior upper-chord nodes that carry roof load.
func (t *Truss) SetLoaded(ids ...NodeID) {
	t.upper = append(t.upper[:0:0], ids...)
}

// Seal freezes the arena; later AddNode or AddMember calls panic.
func (t *Truss) Seal() {
	t.sealed = true
}

func (t *Truss) valid(id NodeID) bool {
	return id >= 0 && int(id) < len(t.nodes)
}

func (t *Truss) Node(id NodeID) Node {
	return t.nodes[id]
}

func (t *Truss) Member(id MemberID) Member {
	return t.members[id]
}

// Nodes returns a copy of the node sequence.
func (t *Truss) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Members returns a copy of the member sequence.
func (t *Truss) Members() []Member {
	out := make([]Member, len(t.members))
	copy(out, t.members)
	return out
}

func (t *Truss) NodeCount() int   { return len(t.nodes) }
func (t *Truss) MemberCount() int { return len(t.members) }

// Supports returns the left and right support nodes.
func (t *Truss) Supports() [2]NodeID {
	return t.supports
}

func (t *Truss) IsSupport(id NodeID) bool {
	return id == t.supports[0] || id == t.supports[1]
}

// UpperNodes returns the interior upper-chord nodes from left to right.
func (t *Truss) UpperNodes() []NodeID {
	out := make([]NodeID, len(t.upper))
	copy(out, t.upper)
	return out
}

// Locate finds the node at (x, y) within a micrometre.
func (t *Truss) Locate(x, y float64) (NodeID, bool) {
	for i, n := range t.nodes {
		if math.Abs(n.X-x) < 1e-3 && math.Abs(n.Y-y) < 1e-3 {
			return NodeID(i), true
		}
	}
	return 0, false
}

// PanelWidth is the horizontal distance between adjacent joints.
func (t *Truss) PanelWidth() float64 {
	if t.Panels == 0 {
		return 0
	}
	return t.Span / float64(t.Panels)
}

// incidence lists, for every node, the members meeting at it in member order.
func (t *Truss) incidence() [][]MemberID {
	out := make([][]MemberID, len(t.nodes))
	for _, m := range t.members {
		out[m.Start] = append(out[m.Start], m.ID)
		out[m.End] = append(out[m.End], m.ID)
	}
	return out
}

// far returns the node at the other end of member m seen from node n.
func (t *Truss) far(m MemberID, n NodeID) NodeID {
	mem := t.members[m]
	if mem.Start == n {
		return mem.End
	}
	return mem.Start
}

// direction is the angle of member m pointing away from node n.
func (t *Truss) direction(m MemberID, n NodeID) float64 {
	a := t.nodes[n]
	b := t.nodes[t.far(m, n)]
	return math.Atan2(b.Y-a.Y, b.X-a.X)
}
