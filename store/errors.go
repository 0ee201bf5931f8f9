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

package store

import "fmt"

//Errors

// DuplicateIDError is returned when adding a pattern with an ID already in the store.
type DuplicateIDError struct {
	id   string
	deco []string
}

func (err *DuplicateIDError) Error() string {
	return fmt.Sprintf("pattern %s is already in the store", err.id)
}

// ID returns the offending ID.
func (err *DuplicateIDError) ID() string { return err.id }

// Decorate adds new information to the error
func (err *DuplicateIDError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// NotFoundError is returned when the requested pattern is not in the store.
type NotFoundError struct {
	id   string
	deco []string
}

func (err *NotFoundError) Error() string {
	return fmt.Sprintf("pattern %s not found in the store", err.id)
}

// ID returns the ID that was not found.
func (err *NotFoundError) ID() string { return err.id }

// Decorate adds new information to the error
func (err *NotFoundError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

// ReflectionError is returned when a pattern is added with a reflection that has
// a non-finite angle, or a negative or non-finite intensity.
type ReflectionError struct {
	id    string
	index int
	deco  []string
}

func (err *ReflectionError) Error() string {
	return fmt.Sprintf("pattern %s: invalid reflection at position %d", err.id, err.index)
}

// Index returns the position of the first invalid reflection.
func (err *ReflectionError) Index() int { return err.index }

// Decorate adds new information to the error
func (err *ReflectionError) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}
