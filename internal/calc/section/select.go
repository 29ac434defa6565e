package section

import (
	"math"
	"sort"
)

const (
	// DesignResistance is Ry·γc = 24 · 0.9 kN/cm² for C245 steel.
	DesignResistance = 21.6
	// ElasticModulus of steel, kN/cm².
	ElasticModulus = 2.06e4
	// TrussMu is the effective length factor for truss members.
	TrussMu = 0.9
	// ColumnMu is the effective length factor for a pinned column.
	ColumnMu = 1.0
)

// Selection is the outcome of sizing one member.
type Selection struct {
	Profile         Profile `json:"profile"`
	RequiredArea    float64 `json:"required_area_cm2"`
	RequiredInertia float64 `json:"required_inertia_cm4"`
	// Fallback is set when no profile satisfies both requirements and the
	// heaviest one was returned instead.
	Fallback bool `json:"fallback"`
}

// Selector picks the lightest adequate profile from a catalog.
type Selector struct {
	Resistance float64
	E          float64
	Mu         float64

	byMass []Profile
}

// NewSelector sorts profiles by mass, ties keeping their given order. An
// empty list selects from the built-in catalog.
func NewSelector(profiles []Profile, mu float64) *Selector {
	if len(profiles) == 0 {
		profiles = catalog
	}
	byMass := make([]Profile, len(profiles))
	copy(byMass, profiles)
	sort.SliceStable(byMass, func(i, j int) bool {
		return byMass[i].MassPerMeter < byMass[j].MassPerMeter
	})
	if mu <= 0 {
		mu = TrussMu
	}
	return &Selector{
		Resistance: DesignResistance,
		E:          ElasticModulus,
		Mu:         mu,
		byMass:     byMass,
	}
}

// Required returns the area (cm²) and inertia (cm⁴) a member needs to carry
// force kN over lengthMM. Members in tension need no inertia.
func (s *Selector) Required(force, lengthMM float64) (area, inertia float64) {
	n := math.Abs(force)
	area = n / s.Resistance
	if force < 0 {
		l := s.Mu * lengthMM / 10
		inertia = n * l * l / (math.Pi * math.Pi * s.E)
	}
	return area, inertia
}

func (s *Selector) Select(force, lengthMM float64) Selection {
	area, inertia := s.Required(force, lengthMM)
	sel := Selection{RequiredArea: area, RequiredInertia: inertia}
	for _, p := range s.byMass {
		if p.Area >= area && p.MinInertia() >= inertia {
			sel.Profile = p
			return sel
		}
	}
	sel.Profile = s.byMass[len(s.byMass)-1]
	sel.Fallback = true
	return sel
}

var members = NewSelector(nil, TrussMu)

// Select sizes a truss member from the built-in catalog.
func Select(force, lengthMM float64) Selection {
	return members.Select(force, lengthMM)
}
