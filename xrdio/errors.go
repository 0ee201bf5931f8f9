/*
 * errors.go, part of XRD-Viewer.
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

import "fmt"

//Errors

// Error is the general structure for errors reading and writing files. It fulfills xrd.Error.
// It is also the error a FileSource gives when it can't produce reflections.
type Error struct {
	message  string
	filename string //the file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err *Error) Error() string {
	if err.filename == "" {
		return fmt.Sprintf("xrdio error: %s", err.message)
	}
	return fmt.Sprintf("file %s error: %s", err.filename, err.message)
}

// Decorate adds new information to the error
func (err *Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// FileName returns the file associated to the error
func (err *Error) FileName() string { return err.filename }

// Critical returns true if the error is critical, false otherwise
func (err *Error) Critical() bool { return err.critical }

const (
	UnableToOpen     = "Unable to open file"
	UnableToCreate   = "Unable to create file"
	WrongCompression = "Wrong or damaged compressed data"
	WrongFormat      = "Wrong format"
	WriteFailed      = "Error writing data"
)
