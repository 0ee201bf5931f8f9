/*
 * doc.go, part of XRD-Viewer.
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
Package xrd is the main package of the XRD-Viewer library. It provides the
reflection and instrument-configuration types shared by the rest of the
packages, and the interface through which reflections are obtained from a
structure-factor calculation.

	**Capabilities**

    Synthesizes continuous, normalized powder diffractograms from a list of
	Bragg reflections, using a pseudo-Voigt peak profile (packages profile
	and pattern).

    Keeps a bank of patterns (one per loaded structure) consistent when
	structures are added or removed, when their visibility is toggled and
	when the global instrument settings (angular window, step, broadening,
	wavelength) change. Raw reflections are retained, so a change of settings
	only re-synthesizes the curves and never reads the structure files again
	(package store).

    Re-positions reflections for a different X-ray wavelength using Bragg's
	law.

    Reads reflection lists and writes/reads two-column .xy patterns, with
	transparent gzip and zstd compression (package xrdio).

    Overlays the visible patterns in PNG, SVG or PDF plots, using gonum/plot
	(package xrdplot).

The xrdview command (cmd/xrdview) puts all of the above together.
*/
package xrd
