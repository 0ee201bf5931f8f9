/*
 * store_test.go, part of XRD-Viewer.
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

package store

import (
	"errors"
	"fmt"
	"math"
	"testing"

	xrd "github.com/LucasEspargueta/XRD-Viewer"
	"github.com/LucasEspargueta/XRD-Viewer/pattern"
	"github.com/google/uuid"
	"gonum.org/v1/gonum/floats"
)

var (
	reflA = []xrd.Reflection{{TwoTheta: 20, Intensity: 100}, {TwoTheta: 40, Intensity: 60}}
	reflB = []xrd.Reflection{{TwoTheta: 60, Intensity: 80}}
)

func newStore(Te *testing.T) *Store {
	S, err := New(xrd.DefaultConfig())
	if err != nil {
		Te.Fatal(err)
	}
	if _, err = S.Add("A", reflA); err != nil {
		Te.Fatal(err)
	}
	if _, err = S.Add("B", reflB); err != nil {
		Te.Fatal(err)
	}
	return S
}

func curveOf(Te *testing.T, S *Store, id string) *pattern.Curve {
	P, err := S.Pattern(id)
	if err != nil {
		Te.Fatal(err)
	}
	return P.Curve()
}

func TestAdd(Te *testing.T) {
	S := newStore(Te)
	fmt.Println("Store test!")
	P, err := S.Pattern("A")
	if err != nil {
		Te.Fatal(err)
	}
	fmt.Println(P)
	if !P.Visible() || P.Order() != 0 || P.Curve().Max() != 1 {
		Te.Errorf("unexpected new pattern: %v", P)
	}
	want, _ := pattern.Synthesize(reflA, S.Config())
	if !P.Curve().Equal(want) {
		Te.Errorf("Add should synthesize with the current settings")
	}
	r := P.Reflections()
	r[0].TwoTheta = 33
	if P.Reflections()[0].TwoTheta != 20 {
		Te.Errorf("reflections of a pattern should not be modifiable from outside")
	}
}

func TestDuplicate(Te *testing.T) {
	S := newStore(Te)
	before := curveOf(Te, S, "A")
	_, err := S.Add("A", reflB)
	var derr *DuplicateIDError
	if !errors.As(err, &derr) || derr.ID() != "A" {
		Te.Fatalf("expected a DuplicateIDError, got %v", err)
	}
	P, _ := S.Pattern("A")
	if !P.Curve().Equal(before) || len(P.Reflections()) != 2 || S.Len() != 2 {
		Te.Errorf("a failed Add must not change the existing pattern")
	}
}

func TestNotFound(Te *testing.T) {
	S := newStore(Te)
	var nerr *NotFoundError
	if err := S.Remove("C"); !errors.As(err, &nerr) {
		Te.Errorf("expected a NotFoundError from Remove, got %v", err)
	}
	if err := S.SetVisibility("C", false); !errors.As(err, &nerr) {
		Te.Errorf("expected a NotFoundError from SetVisibility, got %v", err)
	}
	if _, err := S.Pattern("C"); !errors.As(err, &nerr) {
		Te.Errorf("expected a NotFoundError from Pattern, got %v", err)
	}
	if S.Len() != 2 {
		Te.Errorf("the store should be unchanged")
	}
}

func TestInvalidReflection(Te *testing.T) {
	S := newStore(Te)
	_, err := S.Add("C", []xrd.Reflection{{TwoTheta: 30, Intensity: 1}, {TwoTheta: 31, Intensity: -1}})
	var rerr *ReflectionError
	if !errors.As(err, &rerr) || rerr.Index() != 1 {
		Te.Errorf("expected a ReflectionError at 1, got %v", err)
	}
	if _, err := S.Add("D", []xrd.Reflection{{TwoTheta: math.NaN(), Intensity: 1}}); err == nil {
		Te.Errorf("a NaN angle should be rejected")
	}
	if S.Len() != 2 {
		Te.Errorf("invalid patterns should not be added")
	}
}

func TestRemoveAndClear(Te *testing.T) {
	S := newStore(Te)
	before := curveOf(Te, S, "B")
	if err := S.Remove("A"); err != nil {
		Te.Fatal(err)
	}
	if S.Len() != 1 || S.Patterns()[0].ID() != "B" {
		Te.Errorf("only B should be left")
	}
	if curveOf(Te, S, "B") != before {
		Te.Errorf("removing a pattern should not recompute the others")
	}
	P, _ := S.Add("A", reflA)
	if P.Order() != 2 {
		Te.Errorf("insertion numbers are not reused, expected 2, got %d", P.Order())
	}
	S.Clear()
	S.Clear()
	if S.Len() != 0 || len(S.Patterns()) != 0 {
		Te.Errorf("the store should be empty")
	}
	if S.Config() != xrd.DefaultConfig() {
		Te.Errorf("Clear should keep the settings")
	}
}

func TestVisibility(Te *testing.T) {
	S := newStore(Te)
	S.Add("C", reflA)
	before := curveOf(Te, S, "B")
	if err := S.SetVisibility("B", false); err != nil {
		Te.Fatal(err)
	}
	vis := S.VisiblePatterns()
	if len(vis) != 2 || vis[0].ID() != "A" || vis[1].ID() != "C" {
		Te.Errorf("expected A and C visible, in that order, got %v", vis)
	}
	if curveOf(Te, S, "B") != before {
		Te.Errorf("visibility must not touch the curve")
	}
	S.SetVisibility("B", true)
	if len(S.VisiblePatterns()) != 3 {
		Te.Errorf("all patterns should be visible again")
	}
	//Snapshots don't follow the store.
	vis[0].visible = false
	if !S.VisiblePatterns()[0].Visible() {
		Te.Errorf("changing a snapshot changed the store")
	}
}

func TestApplyConfigInvalid(Te *testing.T) {
	S := newStore(Te)
	oldA := curveOf(Te, S, "A").Intensities()
	oldB := curveOf(Te, S, "B").Intensities()
	oldC := S.Config()
	C := xrd.DefaultConfig()
	C.ThetaStart, C.ThetaEnd = 50, 10
	err := S.ApplyConfig(C)
	var cerr *xrd.ConfigError
	if !errors.As(err, &cerr) {
		Te.Fatalf("expected a ConfigError, got %v", err)
	}
	if S.Config() != oldC {
		Te.Errorf("the settings changed after an invalid ApplyConfig")
	}
	if !floats.Equal(oldA, curveOf(Te, S, "A").Intensities()) || !floats.Equal(oldB, curveOf(Te, S, "B").Intensities()) {
		Te.Errorf("curves changed after an invalid ApplyConfig")
	}
	C = xrd.DefaultConfig()
	C.Step = 1e-300
	if err := S.ApplyConfig(C); !errors.As(err, &cerr) || cerr.Field() != "Step" {
		Te.Errorf("expected a ConfigError on Step for a huge grid, got %v", err)
	}
	if S.Config() != oldC {
		Te.Errorf("the settings changed after an invalid ApplyConfig")
	}
}

func TestApplyConfig(Te *testing.T) {
	S := newStore(Te)
	C := xrd.DefaultConfig()
	C.ThetaStart, C.ThetaEnd, C.Step, C.FWHM = 10, 50, 0.05, 0.1
	if err := S.ApplyConfig(C); err != nil {
		Te.Fatal(err)
	}
	if S.Config() != C {
		Te.Errorf("settings not applied")
	}
	B := curveOf(Te, S, "B")
	if !B.Degenerate() || B.Len() != C.Samples() {
		Te.Errorf("B has no reflections in the new window, its curve should be all zeros")
	}
	A := curveOf(Te, S, "A")
	want, _ := pattern.Synthesize(reflA, C)
	if !A.Equal(want) || A.Max() != 1 {
		Te.Errorf("A should be synthesized with the new settings, independently of B")
	}
	//and back
	S.ApplyConfig(xrd.DefaultConfig())
	if curveOf(Te, S, "B").Degenerate() {
		Te.Errorf("B should have its peak back")
	}
}

// A source that counts the times it is called.
type countingSource struct {
	calls int
	refl  map[string][]xrd.Reflection
}

func (c *countingSource) Reflections(path string, wavelength float64) ([]xrd.Reflection, error) {
	c.calls++
	r, ok := c.refl[path]
	if !ok {
		return nil, fmt.Errorf("can't read %s", path)
	}
	return xrd.ShiftWavelength(r, xrd.CuKAlpha, wavelength), nil
}

func TestAddFrom(Te *testing.T) {
	src := &countingSource{refl: map[string][]xrd.Reflection{"a.cif": reflA}}
	S, _ := New(xrd.DefaultConfig())
	if _, err := S.AddFrom(src, "a.cif"); err != nil {
		Te.Fatal(err)
	}
	serr := errors.New("broken file")
	bad := xrd.SourceFunc(func(string, float64) ([]xrd.Reflection, error) { return nil, serr })
	if _, err := S.AddFrom(bad, "b.cif"); err != serr {
		Te.Errorf("source errors should be returned as they are, got %v", err)
	}
	if S.Len() != 1 {
		Te.Errorf("a failed source must not add a pattern")
	}
	C := S.Config()
	C.FWHM = 0.2
	S.ApplyConfig(C)
	if src.calls != 1 {
		Te.Errorf("ApplyConfig should not read the reflections again, source called %d times", src.calls)
	}
}

// Changing the wavelength moves the peaks as Bragg's law says, without
// touching the retained reflections.
func TestApplyWavelength(Te *testing.T) {
	S, _ := New(xrd.DefaultConfig())
	S.Add("A", reflA)
	C := S.Config()
	C.Wavelength = 0.7107
	if err := S.ApplyConfig(C); err != nil {
		Te.Fatal(err)
	}
	P, _ := S.Pattern("A")
	if P.Reflections()[0].TwoTheta != 20 || P.Wavelength() != xrd.CuKAlpha {
		Te.Errorf("retained reflections should not change")
	}
	//the 20 degree reflection moves below the window, only the 40 degree one is left.
	shifted := xrd.ShiftWavelength(reflA, xrd.CuKAlpha, 0.7107)
	ang, _ := P.Curve().Peak()
	if P.Curve().Contributing() != 1 || math.Abs(ang-shifted[1].TwoTheta) > C.Step {
		Te.Errorf("expected one peak at %v, got %d, maximum at %v", shifted[1].TwoTheta, P.Curve().Contributing(), ang)
	}
	S.ApplyConfig(xrd.DefaultConfig())
	want, _ := pattern.Synthesize(reflA, xrd.DefaultConfig())
	if !curveOf(Te, S, "A").Equal(want) {
		Te.Errorf("going back to the original wavelength should give the original curve")
	}
}

func TestAddAnonymous(Te *testing.T) {
	S, _ := New(xrd.DefaultConfig())
	P, err := S.AddAnonymous(reflB)
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := uuid.Parse(P.ID()); err != nil {
		Te.Errorf("expected a UUID as ID, got %s", P.ID())
	}
}
