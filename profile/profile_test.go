/*
 * profile_test.go, part of XRD-Viewer.
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

package profile

import (
	"math"
	"testing"
)

func TestPseudoVoigt(Te *testing.T) {
	angles := []float64{44.9, 44.96, 45, 45.04, 45.1}
	p := PseudoVoigt(angles, 45, 100, 0.04)
	if len(p) != len(angles) {
		Te.Fatalf("expected %d values, got %d", len(angles), len(p))
	}
	if p[2] != 100 {
		Te.Errorf("at the center the profile should equal the intensity, got %v", p[2])
	}
	if math.Abs(p[1]-p[3]) > 1e-6 || math.Abs(p[0]-p[4]) > 1e-6 {
		Te.Errorf("profile is not symmetric: %v", p)
	}
	if !(p[0] < p[1] && p[1] < p[2]) {
		Te.Errorf("profile doesn't decay away from the center: %v", p)
	}
	//one sigma away, L=I/2 and G=I/e
	s := Sigma(0.04)
	one := PseudoVoigt([]float64{45 + s}, 45, 1, 0.04)
	want := 0.5*0.5 + 0.5*math.Exp(-1)
	if math.Abs(one[0]-want) > 1e-9 {
		Te.Errorf("expected %v one sigma away, got %v", want, one[0])
	}
}

func TestPseudoVoigtDest(Te *testing.T) {
	angles := []float64{1, 2, 3}
	dst := make([]float64, 3)
	ret := PseudoVoigt(angles, 2, 3, 1, dst)
	if &ret[0] != &dst[0] {
		Te.Errorf("the destination slice should be used")
	}
	if ret[1] != 3 {
		Te.Errorf("expected 3 at the center, got %v", ret[1])
	}
	defer func() {
		if recover() == nil {
			Te.Errorf("a destination of the wrong size should panic")
		}
	}()
	PseudoVoigt(angles, 2, 3, 1, make([]float64, 2))
}

func TestPseudoVoigtBadWidth(Te *testing.T) {
	defer func() {
		if recover() == nil {
			Te.Errorf("a zero broadening should panic")
		}
	}()
	PseudoVoigt([]float64{1}, 1, 1, 0)
}
