package truss

import (
	"errors"
	"fmt"
	"math"
)

const (
	// DefaultPanelMM is the target panel width used when none is given.
	DefaultPanelMM = 1200.0
	// MinPanels is a hard floor: smaller spans still get four panels.
	MinPanels = 4
	// MaxPanels bounds the truss size Build accepts.
	MaxPanels = 200

	maxCount = 1 << 30
)

var ErrInvalidGeometry = errors.New("invalid truss geometry")

// PanelCount returns the even panel count for a span, never below MinPanels.
// Counts beyond maxCount saturate there so callers can compare against
// MaxPanels without integer overflow.
func PanelCount(span, targetPanel float64) int {
	if targetPanel <= 0 {
		targetPanel = DefaultPanelMM
	}
	r := math.Round(span / targetPanel)
	if r > maxCount || math.IsNaN(r) {
		return maxCount
	}
	n := int(r)
	if n%2 != 0 {
		n++
	}
	if n < MinPanels {
		n = MinPanels
	}
	return n
}

// Build generates a symmetric W-pattern truss. The lower chord lies on y = 0,
// the upper chord rises linearly from the supports to rise at mid-span.
//
// Web layout for n panels: a post under every upper joint, diagonals from
// each upper joint U(i) down to L(i-1) on the left half and mirrored to
// L(i+1) on the right half, both halves meeting at the ridge. That gives
// 4n-3 members for 2n joints, statically determinate with a pin and a roller.
func Build(span, rise, targetPanel float64) (*Truss, error) {
	if !(span > 0) || !(rise > 0) || math.IsInf(span, 0) || math.IsInf(rise, 0) {
		return nil, fmt.Errorf("%w: span=%.1f rise=%.1f", ErrInvalidGeometry, span, rise)
	}
	n := PanelCount(span, targetPanel)
	if n > MaxPanels {
		return nil, fmt.Errorf("%w: %d panels, at most %d", ErrInvalidGeometry, n, MaxPanels)
	}
	half := n / 2

	t := &Truss{Span: span, Rise: rise, Panels: n}

	lower := make([]NodeID, n+1)
	for i := 0; i <= n; i++ {
		lower[i] = t.AddNode(span*float64(i)/float64(n), 0)
	}
	// upper[i] is the joint above lower[i]; the supports double as the chord ends.
	upper := make([]NodeID, n+1)
	upper[0], upper[n] = lower[0], lower[n]
	for i := 1; i < n; i++ {
		steps := min(i, n-i)
		upper[i] = t.AddNode(span*float64(i)/float64(n), rise*float64(steps)/float64(half))
	}
	t.SetLoaded(upper[1:n]...)
	if err := t.SetSupports(lower[0], lower[n]); err != nil {
		return nil, err
	}

	add := func(a, b NodeID, c Category) error {
		_, err := t.AddMember(a, b, c)
		return err
	}

	for i := 0; i < n; i++ {
		if err := add(lower[i], lower[i+1], LowerChord); err != nil {
			return nil, err
		}
	}
	for i := 0; i < n; i++ {
		if err := add(upper[i], upper[i+1], UpperChord); err != nil {
			return nil, err
		}
	}
	for i := 1; i < n; i++ {
		if err := add(upper[i], lower[i], WebPost); err != nil {
			return nil, err
		}
	}
	for i := 2; i <= half; i++ {
		if err := add(upper[i], lower[i-1], WebDiagonal); err != nil {
			return nil, err
		}
	}
	for i := half; i <= n-2; i++ {
		if err := add(upper[i], lower[i+1], WebDiagonal); err != nil {
			return nil, err
		}
	}

	t.Seal()
	return t, nil
}

// RoofAngle is the upper chord slope in degrees.
func RoofAngle(span, rise float64) float64 {
	if span <= 0 {
		return 0
	}
	return math.Atan2(rise, span/2) * 180 / math.Pi
}
