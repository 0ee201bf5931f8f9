/*
 * store.go, part of XRD-Viewer.
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

/*
Package store keeps a bank of synthesized patterns, one per loaded structure,
consistent with the current instrument settings.

Each pattern retains the reflections it was built from, so new settings
only require synthesizing the curves again. A Store is not safe for
concurrent use: callers must serialize access to it.
*/
package store

import (
	"fmt"

	xrd "github.com/LucasEspargueta/XRD-Viewer"
	"github.com/LucasEspargueta/XRD-Viewer/pattern"
	"github.com/google/uuid"
)

// Pattern is one entry of the store. The values returned by the store are
// snapshots: changes to the store after they are obtained are not reflected in them.
type Pattern struct {
	id          string
	reflections []xrd.Reflection
	wavelength  float64 //the one the reflections were obtained with
	curve       *pattern.Curve
	visible     bool
	order       int
}

// ID returns the identifier of the pattern, unique in its store.
func (P *Pattern) ID() string { return P.id }

// Reflections returns a copy of the reflections the pattern is built from.
func (P *Pattern) Reflections() []xrd.Reflection {
	ret := make([]xrd.Reflection, len(P.reflections))
	copy(ret, P.reflections)
	return ret
}

// Wavelength returns the wavelength the reflections of the pattern were computed for.
func (P *Pattern) Wavelength() float64 { return P.wavelength }

// Curve returns the synthesized curve of the pattern.
func (P *Pattern) Curve() *pattern.Curve { return P.curve }

// Visible returns true if the pattern should be displayed.
func (P *Pattern) Visible() bool { return P.visible }

// Order returns the insertion sequence number of the pattern. The numbers
// grow with each addition to the store and are never reused.
func (P *Pattern) Order() int { return P.order }

func (P *Pattern) String() string {
	return fmt.Sprintf("ID: %s, Order: %d, Visible: %v, Reflections: %d\n%s", P.id, P.order, P.visible, len(P.reflections), P.curve)
}

// snapshot returns a copy of P that can be handed out. Reflections and
// curves are never modified in place, so they can be shared.
func (P *Pattern) snapshot() *Pattern {
	r := *P
	return &r
}

// Store is an ordered collection of patterns, synthesized with a common Config.
type Store struct {
	config   xrd.Config
	patterns map[string]*Pattern
	ids      []string //insertion order
	next     int
}

// New returns an empty store that will use the settings C, or an error if C is invalid.
func New(C xrd.Config) (*Store, error) {
	if err := C.Validate(); err != nil {
		return nil, xrd.ErrDecorate(err, "store.New")
	}
	S := new(Store)
	S.config = C
	S.patterns = make(map[string]*Pattern)
	return S, nil
}

// Config returns the current settings.
func (S *Store) Config() xrd.Config {
	return S.config
}

// Len returns the number of patterns in the store.
func (S *Store) Len() int {
	return len(S.ids)
}

// Add builds a new pattern from refl with the current settings, and puts it
// in the store, visible, under id. The reflections are taken to be computed with the
// current wavelength. It fails if id is already in the store, or if any reflection
// is invalid. In both cases, the store is not changed.
func (S *Store) Add(id string, refl []xrd.Reflection) (*Pattern, error) {
	if _, ok := S.patterns[id]; ok {
		return nil, &DuplicateIDError{id: id, deco: []string{"Add"}}
	}
	for i, v := range refl {
		if !v.Valid() {
			return nil, &ReflectionError{id: id, index: i, deco: []string{"Add"}}
		}
	}
	P := &Pattern{
		id:          id,
		reflections: make([]xrd.Reflection, len(refl)),
		wavelength:  S.config.Wavelength,
		visible:     true,
		order:       S.next,
	}
	copy(P.reflections, refl)
	var err error
	P.curve, err = synthesize(P, S.config)
	if err != nil {
		return nil, xrd.ErrDecorate(err, "Add")
	}
	S.patterns[id] = P
	S.ids = append(S.ids, id)
	S.next++
	return P.snapshot(), nil
}

// AddFrom obtains the reflections for path from src, at the current wavelength,
// and adds them to the store with path as ID. Errors from src are returned
// as they are, and nothing is added in that case.
func (S *Store) AddFrom(src xrd.ReflectionSource, path string) (*Pattern, error) {
	if _, ok := S.patterns[path]; ok {
		return nil, &DuplicateIDError{id: path, deco: []string{"AddFrom"}}
	}
	refl, err := src.Reflections(path, S.config.Wavelength)
	if err != nil {
		return nil, err
	}
	return S.Add(path, refl)
}

// AddAnonymous adds refl to the store under a new, random, ID.
func (S *Store) AddAnonymous(refl []xrd.Reflection) (*Pattern, error) {
	return S.Add(uuid.NewString(), refl)
}

// Remove takes the pattern id out of the store.
func (S *Store) Remove(id string) error {
	if _, ok := S.patterns[id]; !ok {
		return &NotFoundError{id: id, deco: []string{"Remove"}}
	}
	delete(S.patterns, id)
	for i, v := range S.ids {
		if v == id {
			S.ids = append(S.ids[:i], S.ids[i+1:]...)
			break
		}
	}
	return nil
}

// Clear removes all the patterns in the store. The settings are kept.
func (S *Store) Clear() {
	S.patterns = make(map[string]*Pattern)
	S.ids = nil
}

// SetVisibility marks the pattern id as visible or hidden. The curve is not touched.
func (S *Store) SetVisibility(id string, visible bool) error {
	P, ok := S.patterns[id]
	if !ok {
		return &NotFoundError{id: id, deco: []string{"SetVisibility"}}
	}
	P.visible = visible
	return nil
}

// ApplyConfig replaces the current settings with C and synthesizes again the curves
// of all the patterns from their reflections. If C is invalid, a *xrd.ConfigError is
// returned and neither the settings nor any pattern change.
func (S *Store) ApplyConfig(C xrd.Config) error {
	if err := C.Validate(); err != nil {
		return xrd.ErrDecorate(err, "ApplyConfig")
	}
	//all curves are computed before any is replaced, so a failure leaves everything as it was.
	curves := make([]*pattern.Curve, len(S.ids))
	for i, id := range S.ids {
		c, err := synthesize(S.patterns[id], C)
		if err != nil {
			return xrd.ErrDecorate(err, "ApplyConfig")
		}
		curves[i] = c
	}
	S.config = C
	for i, id := range S.ids {
		S.patterns[id].curve = curves[i]
	}
	return nil
}

// Pattern returns a snapshot of the pattern id.
func (S *Store) Pattern(id string) (*Pattern, error) {
	P, ok := S.patterns[id]
	if !ok {
		return nil, &NotFoundError{id: id, deco: []string{"Pattern"}}
	}
	return P.snapshot(), nil
}

// Patterns returns snapshots of all the patterns, in insertion order.
func (S *Store) Patterns() []*Pattern {
	return S.collect(func(*Pattern) bool { return true })
}

// VisiblePatterns returns snapshots of the visible patterns, in insertion order.
func (S *Store) VisiblePatterns() []*Pattern {
	return S.collect(func(P *Pattern) bool { return P.visible })
}

func (S *Store) collect(keep func(*Pattern) bool) []*Pattern {
	ret := make([]*Pattern, 0, len(S.ids))
	for _, id := range S.ids {
		P := S.patterns[id]
		if keep(P) {
			ret = append(ret, P.snapshot())
		}
	}
	return ret
}

// synthesize builds the curve for P under C, moving the reflections to the
// wavelength in C first, if needed.
func synthesize(P *Pattern, C xrd.Config) (*pattern.Curve, error) {
	refl := xrd.ShiftWavelength(P.reflections, P.wavelength, C.Wavelength)
	return pattern.Synthesize(refl, C)
}
