/*
 * reflections.go, part of XRD-Viewer.
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
Package xrdio reads and writes the files used by XRD-Viewer: reflection
lists, produced by some structure-factor calculation, and two-column .xy
patterns. Files ending in .gz or .zst are compressed and decompressed on
the fly.

A reflection list has one reflection per line:

	# wavelength 1.5406
	# 2theta intensity h k l multiplicity ...
	28.443 100.0 1 1 1 8
	47.303 55.2  2 2 0 12

Lines starting with # are comments, except for the optional wavelength
header, which gives the wavelength (in Angstrom) the angles were computed
for. The indexes are optional. A reflection can carry several index
families, each one given as h k l multiplicity. A single family can
omit the multiplicity.
*/
package xrdio

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	xrd "github.com/LucasEspargueta/XRD-Viewer"
)

const wavelengthKey = "wavelength"

// ReadReflections reads a reflection list from r. It returns the reflections, and the
// wavelength declared in the list, or 0 if the list doesn't declare one.
func ReadReflections(r io.Reader) ([]xrd.Reflection, float64, error) {
	var wavelength float64
	ret := make([]xrd.Reflection, 0, 32)
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if strings.HasPrefix(text, "#") {
			fields := strings.Fields(strings.TrimPrefix(text, "#"))
			if len(fields) == 2 && strings.ToLower(strings.TrimSuffix(fields[0], ":")) == wavelengthKey {
				w, err := strconv.ParseFloat(fields[1], 64)
				if err != nil || w <= 0 {
					return nil, 0, &Error{fmt.Sprintf("%s: invalid wavelength in line %d", WrongFormat, line), "", []string{"ReadReflections"}, true}
				}
				wavelength = w
			}
			continue
		}
		refl, err := parseReflection(strings.Fields(text))
		if err != nil {
			return nil, 0, &Error{fmt.Sprintf("%s in line %d: %s", WrongFormat, line, err.Error()), "", []string{"ReadReflections"}, true}
		}
		ret = append(ret, refl)
	}
	if err := scanner.Err(); err != nil {
		return nil, 0, &Error{err.Error(), "", []string{"ReadReflections"}, true}
	}
	return ret, wavelength, nil
}

func parseReflection(fields []string) (xrd.Reflection, error) {
	var r xrd.Reflection
	var err error
	if len(fields) < 2 {
		return r, fmt.Errorf("at least 2theta and intensity are needed")
	}
	if r.TwoTheta, err = strconv.ParseFloat(fields[0], 64); err != nil {
		return r, err
	}
	if r.Intensity, err = strconv.ParseFloat(fields[1], 64); err != nil {
		return r, err
	}
	if !r.Valid() {
		return r, fmt.Errorf("invalid angle or intensity")
	}
	idx := fields[2:]
	if len(idx) == 0 {
		return r, nil
	}
	ints := make([]int, len(idx))
	for i, v := range idx {
		if ints[i], err = strconv.Atoi(v); err != nil {
			return r, err
		}
	}
	switch {
	case len(ints) == 3:
		r.HKLs = []xrd.HKL{{H: ints[0], K: ints[1], L: ints[2], Multiplicity: 1}}
	case len(ints)%4 == 0:
		r.HKLs = make([]xrd.HKL, 0, len(ints)/4)
		for i := 0; i < len(ints); i += 4 {
			r.HKLs = append(r.HKLs, xrd.HKL{H: ints[i], K: ints[i+1], L: ints[i+2], Multiplicity: ints[i+3]})
		}
	default:
		return r, fmt.Errorf("indexes must be given as h k l or as groups of h k l multiplicity")
	}
	return r, nil
}

// WriteReflections writes refl to w as a reflection list. If wavelength is larger
// than zero, it is written as the header.
func WriteReflections(w io.Writer, refl []xrd.Reflection, wavelength float64) error {
	b := bufio.NewWriter(w)
	if wavelength > 0 {
		fmt.Fprintf(b, "# %s %s\n", wavelengthKey, strconv.FormatFloat(wavelength, 'g', -1, 64))
	}
	fmt.Fprintf(b, "# 2theta intensity h k l multiplicity\n")
	for _, v := range refl {
		fields := []string{
			strconv.FormatFloat(v.TwoTheta, 'g', -1, 64),
			strconv.FormatFloat(v.Intensity, 'g', -1, 64),
		}
		for _, h := range v.HKLs {
			fields = append(fields, strconv.Itoa(h.H), strconv.Itoa(h.K), strconv.Itoa(h.L), strconv.Itoa(h.Multiplicity))
		}
		fmt.Fprintln(b, strings.Join(fields, " "))
	}
	if err := b.Flush(); err != nil {
		return &Error{WriteFailed + ": " + err.Error(), "", []string{"WriteReflections"}, true}
	}
	return nil
}

// ReadReflectionsFile reads the reflection list in the file name, which
// can be compressed. It returns the same as ReadReflections.
func ReadReflectionsFile(name string) ([]xrd.Reflection, float64, error) {
	r, err := openReader(name)
	if err != nil {
		return nil, 0, errDecorate(err, "ReadReflectionsFile")
	}
	defer r.Close()
	refl, wavelength, err := ReadReflections(r)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.filename = name
		}
		return nil, 0, errDecorate(err, "ReadReflectionsFile")
	}
	return refl, wavelength, nil
}

// WriteReflectionsFile writes refl to the file name, compressed if the name
// ends in .gz or .zst.
func WriteReflectionsFile(name string, refl []xrd.Reflection, wavelength float64) error {
	w, err := createWriter(name)
	if err != nil {
		return errDecorate(err, "WriteReflectionsFile")
	}
	err = WriteReflections(w, refl, wavelength)
	if err2 := w.Close(); err == nil && err2 != nil {
		err = &Error{WriteFailed + ": " + err2.Error(), name, []string{"WriteReflectionsFile"}, true}
	}
	if e, ok := err.(*Error); ok {
		e.filename = name
	}
	return errDecorate(err, "WriteReflectionsFile")
}

// FileSource is an xrd.ReflectionSource that reads reflection lists from files.
type FileSource struct {
	//Wavelength assumed for lists without a wavelength header. If zero, the
	//angles in such lists are used as they are, whatever wavelength is requested.
	DefaultWavelength float64
}

// Reflections reads the reflection list in path and returns its reflections at the
// given wavelength. Errors are always *Error.
func (F FileSource) Reflections(path string, wavelength float64) ([]xrd.Reflection, error) {
	refl, from, err := ReadReflectionsFile(path)
	if err != nil {
		return nil, errDecorate(err, "FileSource.Reflections")
	}
	if from == 0 {
		from = F.DefaultWavelength
	}
	if from == 0 || wavelength <= 0 {
		return refl, nil
	}
	shifted := xrd.ShiftWavelength(refl, from, wavelength)
	if lost := len(refl) - len(shifted); lost > 0 {
		log.Printf("xrd/xrdio.FileSource.Reflections: %d reflections of %s are not observable with wavelength %g", lost, path, wavelength)
	}
	return shifted, nil
}

// errDecorate is a helper function that asserts that the error is
// implements xrd.Error and decorates the error with the caller's name before returning it.
// if used with a non-xrd.Error error, it will just return the error.
func errDecorate(err error, caller string) error {
	if err == nil {
		return nil
	}
	return xrd.ErrDecorate(err, caller)
}
