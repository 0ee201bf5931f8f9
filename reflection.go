/*
 * reflection.go, part of XRD-Viewer.
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

package xrd

import (
	"fmt"
	"math"
	"strings"
)

const deg2rad = math.Pi / 180

// HKL is a set of Miller indexes, plus the multiplicity of the family.
type HKL struct {
	H, K, L      int
	Multiplicity int
}

func (h HKL) String() string {
	return fmt.Sprintf("(%d %d %d)", h.H, h.K, h.L)
}

// Reflection is one Bragg peak: its position in 2theta (degrees), its
// intensity (arbitrary, non-negative units) and the index families
// contributing to it. The engine never looks at the indexes.
type Reflection struct {
	TwoTheta  float64
	Intensity float64
	HKLs      []HKL
}

func (r Reflection) String() string {
	idx := make([]string, 0, len(r.HKLs))
	for _, v := range r.HKLs {
		idx = append(idx, v.String())
	}
	return fmt.Sprintf("2theta: %8.4f I: %10.4f %s", r.TwoTheta, r.Intensity, strings.Join(idx, " "))
}

// Valid returns true if the reflection has a finite angle and a
// finite, non-negative intensity.
func (r Reflection) Valid() bool {
	if math.IsNaN(r.TwoTheta) || math.IsInf(r.TwoTheta, 0) {
		return false
	}
	return !math.IsNaN(r.Intensity) && !math.IsInf(r.Intensity, 0) && r.Intensity >= 0
}

// DSpacing returns the interplanar distance (same units as wavelength)
// that produces the reflection at the given wavelength, from Bragg's law.
func (r Reflection) DSpacing(wavelength float64) float64 {
	return wavelength / (2 * math.Sin(r.TwoTheta*deg2rad/2))
}

// ShiftWavelength returns the reflections refl, computed for the wavelength from, as they
// would appear with the wavelength to. The d-spacing of each reflection is kept, and the
// angle recomputed with Bragg's law. Reflections that can't be observed with the new
// wavelength (sin(theta)>1) are left out. refl itself is never modified. If both wavelengths
// are equal, refl is returned as it is.
func ShiftWavelength(refl []Reflection, from, to float64) []Reflection {
	if from == to {
		return refl
	}
	ratio := to / from
	ret := make([]Reflection, 0, len(refl))
	for _, v := range refl {
		s := ratio * math.Sin(v.TwoTheta*deg2rad/2)
		if s > 1 || s < -1 {
			continue
		}
		v.TwoTheta = 2 * math.Asin(s) / deg2rad
		ret = append(ret, v)
	}
	return ret
}
