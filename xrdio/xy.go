/*
 * xy.go, part of XRD-Viewer.
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

package xrdio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/LucasEspargueta/XRD-Viewer/pattern"
)

// WriteXY writes the curve c to w in the two-column xy format (2theta intensity),
// preceded by the given comment lines, if any.
func WriteXY(w io.Writer, c *pattern.Curve, comments ...string) error {
	b := bufio.NewWriter(w)
	for _, v := range comments {
		fmt.Fprintf(b, "# %s\n", v)
	}
	angles, ints := c.View()
	for i, v := range angles {
		fmt.Fprintf(b, "%s %s\n", strconv.FormatFloat(v, 'g', -1, 64), strconv.FormatFloat(ints[i], 'g', -1, 64))
	}
	if err := b.Flush(); err != nil {
		return &Error{WriteFailed + ": " + err.Error(), "", []string{"WriteXY"}, true}
	}
	return nil
}

// ReadXY reads a two-column xy pattern from r. Comment lines (# or !) are skipped, and
// so are any columns after the second one.
func ReadXY(r io.Reader) (*pattern.Curve, error) {
	angles := make([]float64, 0, 4096)
	ints := make([]float64, 0, 4096)
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") || strings.HasPrefix(text, "!") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 2 {
			return nil, &Error{fmt.Sprintf("%s: less than 2 columns in line %d", WrongFormat, line), "", []string{"ReadXY"}, true}
		}
		a, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &Error{fmt.Sprintf("%s in line %d: %s", WrongFormat, line, err.Error()), "", []string{"ReadXY"}, true}
		}
		in, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &Error{fmt.Sprintf("%s in line %d: %s", WrongFormat, line, err.Error()), "", []string{"ReadXY"}, true}
		}
		angles = append(angles, a)
		ints = append(ints, in)
	}
	if err := scanner.Err(); err != nil {
		return nil, &Error{err.Error(), "", []string{"ReadXY"}, true}
	}
	c, err := pattern.NewCurve(angles, ints)
	if err != nil {
		return nil, &Error{WrongFormat + ": " + err.Error(), "", []string{"ReadXY"}, true}
	}
	return c, nil
}

// WriteXYFile writes c to the file name, compressed if the name ends in .gz or .zst.
func WriteXYFile(name string, c *pattern.Curve, comments ...string) error {
	w, err := createWriter(name)
	if err != nil {
		return errDecorate(err, "WriteXYFile")
	}
	err = WriteXY(w, c, comments...)
	if err2 := w.Close(); err == nil && err2 != nil {
		err = &Error{WriteFailed + ": " + err2.Error(), name, []string{"WriteXYFile"}, true}
	}
	if e, ok := err.(*Error); ok {
		e.filename = name
	}
	return errDecorate(err, "WriteXYFile")
}

// ReadXYFile reads the xy pattern in the file name, which can be compressed.
func ReadXYFile(name string) (*pattern.Curve, error) {
	r, err := openReader(name)
	if err != nil {
		return nil, errDecorate(err, "ReadXYFile")
	}
	defer r.Close()
	c, err := ReadXY(r)
	if err != nil {
		if e, ok := err.(*Error); ok {
			e.filename = name
		}
		return nil, errDecorate(err, "ReadXYFile")
	}
	return c, nil
}
