package truss

import (
	"errors"
	"math"
	"testing"
)

func TestPanelCount(t *testing.T) {
	tests := []struct {
		span, target float64
		want         int
	}{
		{6000, 1200, 6},
		{7200, 1200, 6},
		{8400, 1200, 8},
		{12000, 1200, 10},
		{1000, 1200, 4},
		{3000, 1200, 4}, // 2.5 rounds up to 3, then evened
		{6000, 0, 6},
		{20000, 2500, 8},
		{1e300, 1, maxCount},
	}
	for _, tt := range tests {
		if got := PanelCount(tt.span, tt.target); got != tt.want {
			t.Errorf("PanelCount(%v, %v) = %d, want %d", tt.span, tt.target, got, tt.want)
		}
	}
}

func TestBuildInvariants(t *testing.T) {
	for _, span := range []float64{500, 1000, 2400, 4800, 6000, 9100, 12000, 18000} {
		tr, err := Build(span, span/6, DefaultPanelMM)
		if err != nil {
			t.Fatalf("Build(%v): %v", span, err)
		}
		n := tr.Panels
		if n < MinPanels || n%2 != 0 {
			t.Errorf("span %v: panel count %d", span, n)
		}
		if tr.NodeCount() != 2*n {
			t.Errorf("span %v: %d nodes, want %d", span, tr.NodeCount(), 2*n)
		}
		if tr.MemberCount() != 4*n-3 {
			t.Errorf("span %v: %d members, want %d", span, tr.MemberCount(), 4*n-3)
		}

		for _, m := range tr.Members() {
			if !tr.valid(m.Start) || !tr.valid(m.End) {
				t.Fatalf("span %v: member %d references invalid node", span, m.ID)
			}
			a, b := tr.Node(m.Start), tr.Node(m.End)
			if math.Abs(m.Length-math.Hypot(b.X-a.X, b.Y-a.Y)) > 1e-9 || m.Length <= 0 {
				t.Errorf("span %v: member %d length %v", span, m.ID, m.Length)
			}
		}

		sup := tr.Supports()
		l, r := tr.Node(sup[0]), tr.Node(sup[1])
		if l.X != 0 || l.Y != 0 || r.X != span || r.Y != 0 {
			t.Errorf("span %v: supports at %+v and %+v", span, l, r)
		}

		upper := tr.UpperNodes()
		if len(upper) != n-1 {
			t.Errorf("span %v: %d upper nodes, want %d", span, len(upper), n-1)
		}
		isUpper := map[NodeID]bool{}
		for _, id := range upper {
			isUpper[id] = true
			p := tr.Node(id)
			if p.X <= 0 || p.X >= span || p.Y <= 0 || p.Y > tr.Rise+1e-9 {
				t.Errorf("span %v: upper node %d at %+v", span, id, p)
			}
		}
		for i, p := range tr.Nodes() {
			if !isUpper[NodeID(i)] && p.Y != 0 {
				t.Errorf("span %v: lower node %d at y=%v", span, i, p.Y)
			}
		}
	}
}

func TestBuildSymmetric(t *testing.T) {
	tr, err := Build(6000, 900, DefaultPanelMM)
	if err != nil {
		t.Fatal(err)
	}
	nodes := tr.Nodes()
	for _, p := range nodes {
		found := false
		for _, q := range nodes {
			if math.Abs(q.X-(6000-p.X)) < 1e-9 && math.Abs(q.Y-p.Y) < 1e-9 {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("node %+v has no mirror image", p)
		}
	}

	counts := map[Category]int{}
	for _, m := range tr.Members() {
		counts[m.Category]++
	}
	want := map[Category]int{LowerChord: 6, UpperChord: 6, WebPost: 5, WebDiagonal: 4}
	for c, n := range want {
		if counts[c] != n {
			t.Errorf("%s: %d members, want %d", c, counts[c], n)
		}
	}

	ridge := 0.0
	for _, p := range nodes {
		ridge = math.Max(ridge, p.Y)
	}
	if ridge != 900 {
		t.Errorf("ridge height = %v, want 900", ridge)
	}
}

func TestBuildSmallSpanKeepsFloor(t *testing.T) {
	tr, err := Build(800, 300, DefaultPanelMM)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Panels != MinPanels {
		t.Errorf("panels = %d, want %d", tr.Panels, MinPanels)
	}
	if got := tr.PanelWidth(); got != 200 {
		t.Errorf("panel width = %v, want 200", got)
	}
}

func TestBuildRejectsBadDimensions(t *testing.T) {
	for _, c := range [][2]float64{{0, 900}, {6000, 0}, {-1, 900}, {math.NaN(), 900}, {math.Inf(1), 900}, {6000, math.Inf(1)}} {
		if _, err := Build(c[0], c[1], DefaultPanelMM); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("Build(%v, %v) error = %v, want ErrInvalidGeometry", c[0], c[1], err)
		}
	}
}

func TestBuildPanelLimit(t *testing.T) {
	// 200 panels of 100 mm is the largest accepted truss
	tr, err := Build(20000, 900, 100)
	if err != nil {
		t.Fatalf("Build at MaxPanels: %v", err)
	}
	if tr.Panels != MaxPanels {
		t.Errorf("panels = %d", tr.Panels)
	}
	for _, target := range []float64{99, 2, 1e-6} {
		if _, err := Build(20000, 900, target); !errors.Is(err, ErrInvalidGeometry) {
			t.Errorf("Build(20000, 900, %v) error = %v, want ErrInvalidGeometry", target, err)
		}
	}
}

func TestSealedTrussPanics(t *testing.T) {
	tr, err := Build(6000, 900, DefaultPanelMM)
	if err != nil {
		t.Fatal(err)
	}
	defer func() {
		if recover() == nil {
			t.Error("AddNode on a sealed truss did not panic")
		}
	}()
	tr.AddNode(1, 1)
}

func TestAddMemberValidation(t *testing.T) {
	var tr Truss
	a := tr.AddNode(0, 0)
	b := tr.AddNode(1000, 0)
	if _, err := tr.AddMember(a, 5, LowerChord); err == nil {
		t.Error("expected error for unknown node")
	}
	if _, err := tr.AddMember(a, a, LowerChord); err == nil {
		t.Error("expected error for zero-length member")
	}
	id, err := tr.AddMember(a, b, LowerChord)
	if err != nil {
		t.Fatal(err)
	}
	if tr.Member(id).Length != 1000 {
		t.Errorf("length = %v", tr.Member(id).Length)
	}
	if err := tr.SetSupports(a, a); !errors.Is(err, ErrInvalidGeometry) {
		t.Errorf("SetSupports(a, a) error = %v", err)
	}
}

func TestRoofAngle(t *testing.T) {
	if got := RoofAngle(6000, 3000); math.Abs(got-45) > 1e-9 {
		t.Errorf("RoofAngle = %v, want 45", got)
	}
	if got := RoofAngle(0, 100); got != 0 {
		t.Errorf("RoofAngle(0) = %v", got)
	}
}

func TestLocate(t *testing.T) {
	tr, err := Build(6000, 900, 0)
	if err != nil {
		t.Fatal(err)
	}
	id, ok := tr.Locate(3000, 0)
	if !ok || tr.Node(id) != (Node{X: 3000, Y: 0}) {
		t.Errorf("Locate(3000, 0) = %d, %v", id, ok)
	}
	if id, ok := tr.Locate(3000, 900); !ok || tr.IsSupport(id) {
		t.Errorf("ridge not found: %d, %v", id, ok)
	}
	if _, ok := tr.Locate(3000, 450); ok {
		t.Error("found a node that does not exist")
	}
}
