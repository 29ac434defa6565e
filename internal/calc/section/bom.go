package section

import "math"

// Piece is one sized member as seen by the bill of materials.
type Piece struct {
	Label    string
	LengthMM float64
	Profile  Profile
}

// Item aggregates the pieces sharing a label and a profile.
type Item struct {
	Label    string  `json:"label"`
	Profile  string  `json:"profile"`
	LengthMM float64 `json:"length_mm"`
	Count    int     `json:"count"`
	TotalM   float64 `json:"total_m"`
	MassKg   float64 `json:"mass_kg"`
}

type bomKey struct {
	label   string
	profile string
}

// Aggregate groups pieces by (label, profile) in order of first appearance.
// LengthMM is the length of the first piece in the group; totals are rounded
// to 0.01 after summing.
func Aggregate(pieces []Piece) []Item {
	index := make(map[bomKey]int)
	var items []Item
	var mass []float64
	for _, p := range pieces {
		k := bomKey{label: p.Label, profile: p.Profile.Name}
		i, ok := index[k]
		if !ok {
			i = len(items)
			index[k] = i
			items = append(items, Item{Label: p.Label, Profile: p.Profile.Name, LengthMM: p.LengthMM})
			mass = append(mass, p.Profile.MassPerMeter)
		}
		items[i].Count++
		items[i].TotalM += p.LengthMM / 1000
	}
	for i := range items {
		items[i].MassKg = round2(items[i].TotalM * mass[i])
		items[i].TotalM = round2(items[i].TotalM)
	}
	return items
}

// TotalMass sums the item masses, kg.
func TotalMass(items []Item) float64 {
	sum := 0.0
	for _, it := range items {
		sum += it.MassKg
	}
	return round2(sum)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
