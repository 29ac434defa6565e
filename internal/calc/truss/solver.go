package truss

import "math"

const (
	// Singular is the determinant magnitude below which a joint's two unknown
	// members are treated as collinear.
	Singular = 1e-9
	// Tolerance is the out-of-balance force, kN, accepted at a joint.
	Tolerance = 1e-6
)

// JointLoads maps a node to the vertical load applied at it, kN, positive
// downwards.
type JointLoads map[NodeID]float64

// DistributeLoad spreads total over the interior upper-chord joints in equal
// shares.
func DistributeLoad(t *Truss, total float64) JointLoads {
	upper := t.UpperNodes()
	loads := make(JointLoads, len(upper))
	if len(upper) == 0 {
		return loads
	}
	share := total / float64(len(upper))
	for _, id := range upper {
		loads[id] = share
	}
	return loads
}

// Total sums the loads in node order so the result does not depend on map
// iteration order.
func (l JointLoads) Total(t *Truss) float64 {
	sum := 0.0
	for i := 0; i < t.NodeCount(); i++ {
		sum += l[NodeID(i)]
	}
	return sum
}

type Solution struct {
	truss *Truss
	loads JointLoads

	// Forces is indexed by MemberID; tension positive, compression negative.
	Forces []float64
	// Solved marks members whose force came out of a joint solve.
	Solved []bool
	// Processed marks the joints that were solved.
	Processed []bool
	// Reactions are the upward support forces, left then right.
	Reactions  [2]float64
	TotalLoad  float64
	Unresolved []MemberID
	Passes     int
	Complete   bool
}

// Solve finds every member force by repeatedly eliminating joints with
// two unknown members (or one, once the rest of the joint is known). Support
// reactions are half the total load each, which holds only for symmetric
// trusses under symmetric vertical load.
//
// Members that stay unknown once a full pass makes no progress are reported
// with zero force and listed in Unresolved.
func Solve(t *Truss, loads JointLoads) *Solution {
	total := loads.Total(t)
	s := &Solution{
		truss:     t,
		loads:     loads,
		Forces:    make([]float64, t.MemberCount()),
		Solved:    make([]bool, t.MemberCount()),
		Processed: make([]bool, t.NodeCount()),
		Reactions: [2]float64{total / 2, total / 2},
		TotalLoad: total,
	}
	at := t.incidence()

	known := 0
	for known < t.MemberCount() {
		s.Passes++
		progress := false
		for i := range at {
			n := NodeID(i)
			if s.Processed[n] {
				continue
			}
			var unknown []MemberID
			for _, m := range at[n] {
				if !s.Solved[m] {
					unknown = append(unknown, m)
				}
			}
			switch len(unknown) {
			case 1, 2:
			default:
				continue
			}

			fx, fy := s.external(n)
			for _, m := range at[n] {
				if s.Solved[m] {
					a := t.direction(m, n)
					fx += s.Forces[m] * math.Cos(a)
					fy += s.Forces[m] * math.Sin(a)
				}
			}

			if len(unknown) == 1 {
				// One unknown left: the balance along its own axis fixes it and
				// the transverse balance must already hold.
				a := t.direction(unknown[0], n)
				c, sn := math.Cos(a), math.Sin(a)
				if math.Abs(fy*c-fx*sn) > Tolerance {
					continue
				}
				s.Forces[unknown[0]] = -(fx*c + fy*sn)
				s.Solved[unknown[0]] = true
				s.Processed[n] = true
				known++
				progress = true
				continue
			}

			a1 := t.direction(unknown[0], n)
			a2 := t.direction(unknown[1], n)
			f1, f2, ok := solve2x2(
				math.Cos(a1), math.Cos(a2), -fx,
				math.Sin(a1), math.Sin(a2), -fy,
			)
			if !ok {
				// collinear unknowns: retry once neighbours have resolved one of them
				continue
			}
			s.Forces[unknown[0]], s.Forces[unknown[1]] = f1, f2
			s.Solved[unknown[0]], s.Solved[unknown[1]] = true, true
			s.Processed[n] = true
			known += 2
			progress = true
		}
		if !progress {
			break
		}
	}

	for m, ok := range s.Solved {
		if !ok {
			s.Forces[m] = 0
			s.Unresolved = append(s.Unresolved, MemberID(m))
		}
	}
	s.Complete = len(s.Unresolved) == 0
	return s
}

// external returns the applied load plus any support reaction at n.
func (s *Solution) external(n NodeID) (fx, fy float64) {
	fy = -s.loads[n]
	sup := s.truss.Supports()
	if n == sup[0] {
		fy += s.Reactions[0]
	}
	if n == sup[1] {
		fy += s.Reactions[1]
	}
	return 0, fy
}

// Residual is the out-of-balance force at a joint using the solved member
// forces, the applied load and the reaction.
func (s *Solution) Residual(n NodeID) (fx, fy float64) {
	fx, fy = s.external(n)
	for _, m := range s.truss.incidence()[n] {
		a := s.truss.direction(m, n)
		fx += s.Forces[m] * math.Cos(a)
		fy += s.Forces[m] * math.Sin(a)
	}
	return fx, fy
}

func (s *Solution) Force(m MemberID) float64 {
	return s.Forces[m]
}

// solve2x2 solves a1*x + b1*y = c1, a2*x + b2*y = c2 by Cramer's rule.
func solve2x2(a1, b1, c1, a2, b2, c2 float64) (x, y float64, ok bool) {
	det := a1*b2 - a2*b1
	if math.Abs(det) < Singular {
		return 0, 0, false
	}
	return (c1*b2 - c2*b1) / det, (a1*c2 - a2*c1) / det, true
}
