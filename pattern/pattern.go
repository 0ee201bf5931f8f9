/*
 * pattern.go, part of XRD-Viewer.
 *
 * Copyright 2025 The XRD-Viewer Authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

// Package pattern turns a set of discrete reflections into a continuous,
// normalized diffractogram sampled over an angular window.
package pattern

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	xrd "github.com/LucasEspargueta/XRD-Viewer"
	"github.com/LucasEspargueta/XRD-Viewer/profile"
	"gonum.org/v1/gonum/floats"
)

// Grid returns the sampling angles for C: C.Samples() points starting at C.ThetaStart,
// C.Step apart. C.ThetaEnd itself is never part of the grid.
func Grid(C xrd.Config) []float64 {
	n := C.Samples()
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = C.ThetaStart + float64(i)*C.Step
	}
	return ret
}

// Synthesize builds the continuous pattern for the reflections refl under the settings C.
// Every reflection in the window (both ends included) adds a pseudo-Voigt peak to
// the pattern, reflections outside the window are ignored completely, tails included.
// The result is divided by its maximum, so the tallest point is 1. If no reflection
// contributes, the curve is all zeros. An invalid C gives an error.
func Synthesize(refl []xrd.Reflection, C xrd.Config) (*Curve, error) {
	if err := C.Validate(); err != nil {
		return nil, xrd.ErrDecorate(err, "Synthesize")
	}
	c := new(Curve)
	c.angles = Grid(C)
	c.intensities = make([]float64, len(c.angles))
	peak := make([]float64, len(c.angles))
	for _, v := range refl {
		if !C.InWindow(v.TwoTheta) {
			continue
		}
		profile.PseudoVoigt(c.angles, v.TwoTheta, v.Intensity, C.FWHM, peak)
		floats.Add(c.intensities, peak)
		c.contributing++
	}
	c.normalize()
	return c, nil
}

// Curve is a synthesized pattern: intensities sampled at increasing angles.
// A Curve is not modified once built.
type Curve struct {
	angles       []float64
	intensities  []float64
	contributing int
}

// NewCurve returns a Curve with copies of the given angles and intensities, which
// must have the same length, and the angles must be strictly increasing.
// The intensities are taken as they are, they are not normalized.
func NewCurve(angles, intensities []float64) (*Curve, error) {
	if len(angles) != len(intensities) {
		return nil, fmt.Errorf("xrd/pattern.NewCurve: %d angles but %d intensities", len(angles), len(intensities))
	}
	for i := 1; i < len(angles); i++ {
		if !(angles[i] > angles[i-1]) {
			return nil, fmt.Errorf("xrd/pattern.NewCurve: angles not strictly increasing at %d (%g, %g)", i, angles[i-1], angles[i])
		}
	}
	c := new(Curve)
	c.angles = getCopySlice(len(angles))
	copy(c.angles, angles)
	c.intensities = getCopySlice(len(intensities))
	copy(c.intensities, intensities)
	return c, nil
}

// normalize divides the intensities by their maximum. An all-zero curve is
// left alone, as there is nothing to normalize.
func (c *Curve) normalize() {
	top := c.Max()
	if top <= 0 || math.IsNaN(top) {
		return
	}
	//plain division, so the tallest point ends up being exactly 1.
	for i, v := range c.intensities {
		c.intensities[i] = v / top
	}
}

// Len returns the number of points in the curve.
func (c *Curve) Len() int {
	return len(c.angles)
}

// Max returns the largest intensity in the curve, 0 for an empty curve.
func (c *Curve) Max() float64 {
	if len(c.intensities) == 0 {
		return 0
	}
	return floats.Max(c.intensities)
}

// Peak returns the angle at which the curve attains its maximum, and the index of that
// point. For an empty curve it returns NaN and -1.
func (c *Curve) Peak() (float64, int) {
	if len(c.intensities) == 0 {
		return math.NaN(), -1
	}
	i := floats.MaxIdx(c.intensities)
	return c.angles[i], i
}

// Contributing returns how many reflections fell inside the window when
// the curve was synthesized.
func (c *Curve) Contributing() int {
	return c.contributing
}

// Degenerate returns true if the curve is all zeros, i.e. no peak fell in the window.
func (c *Curve) Degenerate() bool {
	for _, v := range c.intensities {
		if v != 0 {
			return false
		}
	}
	return true
}

// Angles returns a copy of the sampling angles. If dest is given, and its
// first element is large enough, the angles are copied there.
func (c *Curve) Angles(dest ...[]float64) []float64 {
	d := getCopySlice(len(c.angles), dest...)
	copy(d, c.angles)
	return d
}

// Intensities returns a copy of the intensities. If dest is given, and its
// first element is large enough, the intensities are copied there.
func (c *Curve) Intensities(dest ...[]float64) []float64 {
	d := getCopySlice(len(c.intensities), dest...)
	copy(d, c.intensities)
	return d
}

// View returns the angles and intensities of the curve themselves, not copies. They must not be modified.
func (c *Curve) View() ([]float64, []float64) {
	return c.angles, c.intensities
}

// Equal returns true if both curves have exactly the same points.
func (c *Curve) Equal(o *Curve) bool {
	if c == nil || o == nil {
		return c == o
	}
	return floats.Equal(c.angles, o.angles) && floats.Equal(c.intensities, o.intensities)
}

// String prints a short summary of the curve.
func (c *Curve) String() string {
	if c.Len() == 0 {
		return "Empty curve"
	}
	ang, _ := c.Peak()
	ret := []string{
		fmt.Sprintf("Points: %d, 2theta: %4.2f-%4.2f", c.Len(), c.angles[0], c.angles[len(c.angles)-1]),
		fmt.Sprintf("Reflections in window: %d, maximum at: %4.2f", c.contributing, ang),
	}
	return strings.Join(ret, "\n")
}

func (c *Curve) MarshalJSON() ([]byte, error) {
	j, err := json.Marshal(struct {
		Angles       []float64 `json:"angles"`
		Intensities  []float64 `json:"intensities"`
		Contributing int       `json:"contributing"`
	}{
		Angles:       c.angles,
		Intensities:  c.intensities,
		Contributing: c.contributing,
	})
	if err != nil {
		return nil, err
	}
	return j, nil
}

func (c *Curve) UnmarshalJSON(b []byte) error {
	var a struct {
		Angles       []float64 `json:"angles"`
		Intensities  []float64 `json:"intensities"`
		Contributing int       `json:"contributing"`
	}
	err := json.Unmarshal(b, &a)
	if err != nil {
		return err
	}
	n, err := NewCurve(a.Angles, a.Intensities)
	if err != nil {
		return err
	}
	*c = *n
	c.contributing = a.Contributing
	return nil
}

func getCopySlice(N int, dest ...[]float64) []float64 {
	var d []float64
	if len(dest) > 0 && len(dest[0]) >= N {
		d = dest[0][:N]
	} else {
		d = make([]float64, N)
	}
	return d
}
