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

package main

import (
	"strings"

	xrd "github.com/LucasEspargueta/XRD-Viewer"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Keys of the instrument settings, shared by flags, config file and
// environment (XRDVIEW_START, XRDVIEW_FWHM...).
const (
	keyStart      = "start"
	keyEnd        = "end"
	keyStep       = "step"
	keyFWHM       = "fwhm"
	keyWavelength = "wavelength"
)

// addConfigFlags registers the instrument settings on fs, with the library defaults.
func addConfigFlags(fs *pflag.FlagSet) {
	d := xrd.DefaultConfig()
	fs.Float64(keyStart, d.ThetaStart, "Start of the 2theta window (degrees)")
	fs.Float64(keyEnd, d.ThetaEnd, "End of the 2theta window (degrees), not sampled")
	fs.Float64(keyStep, d.Step, "2theta sampling step (degrees)")
	fs.Float64(keyFWHM, d.FWHM, "Peak broadening (degrees)")
	fs.Float64(keyWavelength, d.Wavelength, "X-ray wavelength (Angstrom)")
}

// loadConfig builds the settings from, in order of precedence, the flags set in fs,
// XRDVIEW_* environment variables, the config file (if file is not empty) and the
// library defaults. The result is validated.
func loadConfig(file string, fs *pflag.FlagSet) (xrd.Config, error) {
	v := viper.New()
	d := xrd.DefaultConfig()
	v.SetDefault(keyStart, d.ThetaStart)
	v.SetDefault(keyEnd, d.ThetaEnd)
	v.SetDefault(keyStep, d.Step)
	v.SetDefault(keyFWHM, d.FWHM)
	v.SetDefault(keyWavelength, d.Wavelength)

	v.SetEnvPrefix("XRDVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return xrd.Config{}, err
		}
	}
	for _, k := range []string{keyStart, keyEnd, keyStep, keyFWHM, keyWavelength} {
		if f := fs.Lookup(k); f != nil {
			if err := v.BindPFlag(k, f); err != nil {
				return xrd.Config{}, err
			}
		}
	}
	C := xrd.Config{
		ThetaStart: v.GetFloat64(keyStart),
		ThetaEnd:   v.GetFloat64(keyEnd),
		Step:       v.GetFloat64(keyStep),
		FWHM:       v.GetFloat64(keyFWHM),
		Wavelength: v.GetFloat64(keyWavelength),
	}
	if err := C.Validate(); err != nil {
		return xrd.Config{}, xrd.ErrDecorate(err, "loadConfig")
	}
	return C, nil
}
