/*
 * interfaces.go, part of XRD-Viewer.
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

import "fmt"

// ReflectionSource is anything able to produce the Bragg reflections of a structure,
// usually a structure-factor calculation on a structure file. The wavelength is in Angstrom.
type ReflectionSource interface {
	//Reflections returns the reflections for the structure at path. Errors
	//are returned to the caller as they are, the store does not wrap them.
	Reflections(path string, wavelength float64) ([]Reflection, error)
}

// SourceFunc allows an ordinary function to be used as a ReflectionSource.
type SourceFunc func(path string, wavelength float64) ([]Reflection, error)

// Reflections calls f(path, wavelength).
func (f SourceFunc) Reflections(path string, wavelength float64) ([]Reflection, error) {
	return f(path, wavelength)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call returns the decoration slice resulting from the current call. An empty string only returns the current value.
}

// ConfigError is returned when a proposed Config violates one of its invariants.
// Nothing is changed when this error is returned, the caller should just ask
// again for valid values.
type ConfigError struct {
	message string
	field   string
	deco    []string
}

func (err *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration (%s): %s", err.field, err.message)
}

// Field returns the name of the offending Config field.
func (err *ConfigError) Field() string { return err.field }

// Decorate adds new information to the error
func (err *ConfigError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// ErrDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. Other errors are returned untouched.
func ErrDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}

const (
	NotPositive    = "must be larger than zero"
	NotFinite      = "must be a finite number"
	EmptyWindow    = "the start of the window must be smaller than its end"
	TooManySamples = "too small for the window, the sampling grid would be too large"
)
