/*
 * profile.go, part of XRD-Viewer.
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

// Package profile evaluates the shape of single diffraction peaks.
package profile

import (
	"fmt"
	"math"
)

// Eta is the Lorentzian fraction of the pseudo-Voigt mix. It is fixed, not a parameter.
const Eta = 0.5

// Sigma converts a FWHM-like broadening into the Gaussian sigma, fwhm/(2*sqrt(2*ln2)).
func Sigma(fwhm float64) float64 {
	return fwhm / (2 * math.Sqrt(2*math.Ln2))
}

// PseudoVoigt returns the contribution of a peak centered at center, with the given
// intensity and broadening, at each of the angles given. The profile is
// Eta*L + (1-Eta)*G with L = I/(1+x^2), G = I*exp(-x^2) and x = (angle-center)/Sigma(fwhm).
// The result is not normalized. If dest is given, and its first element has the same
// length as angles, the result is put there. PseudoVoigt panics if fwhm is not positive.
func PseudoVoigt(angles []float64, center, intensity, fwhm float64, dest ...[]float64) []float64 {
	if fwhm <= 0 || math.IsNaN(fwhm) {
		panic(fmt.Sprintf("xrd/profile.PseudoVoigt: broadening must be positive, got %g", fwhm))
	}
	var ret []float64
	if len(dest) > 0 && dest[0] != nil {
		if len(dest[0]) != len(angles) {
			panic(fmt.Sprintf("xrd/profile.PseudoVoigt: destination has %d elements, %d expected", len(dest[0]), len(angles)))
		}
		ret = dest[0]
	} else {
		ret = make([]float64, len(angles))
	}
	sigma := Sigma(fwhm)
	for i, theta := range angles {
		x := (theta - center) / sigma
		x2 := x * x
		lor := intensity * (1 / (1 + x2))
		gau := intensity * math.Exp(-x2)
		ret[i] = Eta*lor + (1-Eta)*gau
	}
	return ret
}
