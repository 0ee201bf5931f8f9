/*
 * config.go, part of XRD-Viewer.
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

import (
	"fmt"
	"math"
)

// CuKAlpha is the Cu K-alpha wavelength, in Angstrom.
const CuKAlpha = 1.5406

// MaxSamples is the largest sampling grid a valid Config can ask for.
const MaxSamples = 1 << 22

// Config contains the instrument settings used to synthesize a pattern.
// It is a value: to change the settings, build a new Config and hand it
// to whoever needs it. Angles are in degrees, the wavelength in Angstrom.
type Config struct {
	ThetaStart float64 //first 2theta sample
	ThetaEnd   float64 //end of the window. Never sampled itself.
	Step       float64
	FWHM       float64 //peak broadening
	Wavelength float64
}

// DefaultConfig returns reasonable settings for a lab diffractometer:
// Cu K-alpha radiation, 0.04 degrees broadening and a 10-90 degree
// window sampled every 0.02 degrees.
func DefaultConfig() Config {
	return Config{
		ThetaStart: 10,
		ThetaEnd:   90,
		Step:       0.02,
		FWHM:       0.04,
		Wavelength: CuKAlpha,
	}
}

// Validate returns a ConfigError if C can't be used to synthesize a
// pattern, nil otherwise.
func (C Config) Validate() error {
	fields := []struct {
		name string
		val  float64
	}{
		{"ThetaStart", C.ThetaStart},
		{"ThetaEnd", C.ThetaEnd},
		{"Step", C.Step},
		{"FWHM", C.FWHM},
		{"Wavelength", C.Wavelength},
	}
	for _, v := range fields {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return &ConfigError{NotFinite, v.name, []string{"Validate"}}
		}
	}
	if C.ThetaStart >= C.ThetaEnd {
		return &ConfigError{EmptyWindow, "ThetaStart", []string{"Validate"}}
	}
	if C.Step <= 0 {
		return &ConfigError{NotPositive, "Step", []string{"Validate"}}
	}
	if (C.ThetaEnd-C.ThetaStart)/C.Step > MaxSamples {
		return &ConfigError{TooManySamples, "Step", []string{"Validate"}}
	}
	if C.FWHM <= 0 {
		return &ConfigError{NotPositive, "FWHM", []string{"Validate"}}
	}
	if C.Wavelength <= 0 {
		return &ConfigError{NotPositive, "Wavelength", []string{"Validate"}}
	}
	return nil
}

// Samples returns the number of points in the sampling grid, floor((end-start)/step).
// The end of the window is not included. The result is never larger than MaxSamples,
// even for an invalid C.
func (C Config) Samples() int {
	n := math.Floor((C.ThetaEnd - C.ThetaStart) / C.Step)
	if n <= 0 || math.IsNaN(n) {
		return 0
	}
	if n > MaxSamples {
		return MaxSamples
	}
	return int(n)
}

// InWindow returns true if angle lies in the window, both ends included.
func (C Config) InWindow(angle float64) bool {
	return C.ThetaStart <= angle && angle <= C.ThetaEnd
}

func (C Config) String() string {
	return fmt.Sprintf("2theta: %g-%g step: %g FWHM: %g wavelength: %g", C.ThetaStart, C.ThetaEnd, C.Step, C.FWHM, C.Wavelength)
}
