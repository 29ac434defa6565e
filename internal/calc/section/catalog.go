// Package section sizes truss members against a catalog of square hollow
// steel sections and aggregates the result into a bill of materials.
package section

// Profile is a square hollow section. Dimensions in mm, area in cm²,
// second moments of area in cm⁴, mass in kg/m.
type Profile struct {
	Name         string  `json:"name"`
	Height       float64 `json:"height_mm"`
	Width        float64 `json:"width_mm"`
	Thickness    float64 `json:"thickness_mm"`
	Area         float64 `json:"area_cm2"`
	Ix           float64 `json:"ix_cm4"`
	Iy           float64 `json:"iy_cm4"`
	MassPerMeter float64 `json:"mass_kg_m"`
}

// MinInertia is the second moment of area about the weaker axis.
func (p Profile) MinInertia() float64 {
	return min(p.Ix, p.Iy)
}

// Perimeter of the outer contour, mm.
func (p Profile) Perimeter() float64 {
	return 2 * (p.Height + p.Width)
}

// GOST 30245-2003, square sections, abridged.
var catalog = []Profile{
	{Name: "40x40x3", Height: 40, Width: 40, Thickness: 3, Area: 4.09, Ix: 8.56, Iy: 8.56, MassPerMeter: 3.21},
	{Name: "40x40x4", Height: 40, Width: 40, Thickness: 4, Area: 5.13, Ix: 10.1, Iy: 10.1, MassPerMeter: 4.03},
	{Name: "60x60x3", Height: 60, Width: 60, Thickness: 3, Area: 6.49, Ix: 32.2, Iy: 32.2, MassPerMeter: 5.10},
	{Name: "60x60x4", Height: 60, Width: 60, Thickness: 4, Area: 8.33, Ix: 39.5, Iy: 39.5, MassPerMeter: 6.54},
	{Name: "60x60x5", Height: 60, Width: 60, Thickness: 5, Area: 10.1, Ix: 45.7, Iy: 45.7, MassPerMeter: 7.93},
	{Name: "80x80x4", Height: 80, Width: 80, Thickness: 4, Area: 11.5, Ix: 101, Iy: 101, MassPerMeter: 9.06},
	{Name: "80x80x5", Height: 80, Width: 80, Thickness: 5, Area: 14.1, Ix: 121, Iy: 121, MassPerMeter: 11.1},
	{Name: "80x80x6", Height: 80, Width: 80, Thickness: 6, Area: 16.6, Ix: 139, Iy: 139, MassPerMeter: 13.0},
	{Name: "100x100x4", Height: 100, Width: 100, Thickness: 4, Area: 14.8, Ix: 213, Iy: 213, MassPerMeter: 11.6},
	{Name: "100x100x5", Height: 100, Width: 100, Thickness: 5, Area: 18.1, Ix: 257, Iy: 257, MassPerMeter: 14.2},
	{Name: "100x100x6", Height: 100, Width: 100, Thickness: 6, Area: 21.4, Ix: 298, Iy: 298, MassPerMeter: 16.8},
	{Name: "120x120x5", Height: 120, Width: 120, Thickness: 5, Area: 22.1, Ix: 469, Iy: 469, MassPerMeter: 17.4},
	{Name: "120x120x6", Height: 120, Width: 120, Thickness: 6, Area: 26.2, Ix: 546, Iy: 546, MassPerMeter: 20.6},
	{Name: "140x140x6", Height: 140, Width: 140, Thickness: 6, Area: 31.0, Ix: 921, Iy: 921, MassPerMeter: 24.3},
	{Name: "140x140x8", Height: 140, Width: 140, Thickness: 8, Area: 40.0, Ix: 1160, Iy: 1160, MassPerMeter: 31.4},
}

// Catalog returns a copy of the profile catalog in ascending size.
func Catalog() []Profile {
	out := make([]Profile, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog profile by name.
func Lookup(name string) (Profile, bool) {
	for _, p := range catalog {
		if p.Name == name {
			return p, true
		}
	}
	return Profile{}, false
}
