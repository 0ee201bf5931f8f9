/*
 * root.go, part of XRD-Viewer.
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
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	xrd "github.com/LucasEspargueta/XRD-Viewer"
	"github.com/LucasEspargueta/XRD-Viewer/store"
	"github.com/LucasEspargueta/XRD-Viewer/xrdio"
	"github.com/LucasEspargueta/XRD-Viewer/xrdplot"
	"github.com/spf13/cobra"
	"gonum.org/v1/plot/vg"
)

// options holds the values of the command-line flags that are not instrument settings.
type options struct {
	configFile string
	plotFile   string
	plotTitle  string
	xyDir      string
	compress   string
	hide       []string
}

// newRootCmd returns the xrdview command, with its own set of flags.
func newRootCmd() *cobra.Command {
	o := new(options)
	cmd := &cobra.Command{
		Use:   "xrdview [flags] file...",
		Short: "Synthesize and compare powder X-ray diffraction patterns",
		Long: `xrdview reads reflection lists (2theta intensity [h k l multiplicity]...),
synthesizes a continuous, normalized pattern for each one with a pseudo-Voigt
peak profile, and overlays them in a plot and/or exports them as .xy files.
Use - to read a reflection list from the standard input.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, o)
		},
	}
	fs := cmd.Flags()
	fs.StringVarP(&o.configFile, "config", "c", "", "Config file (yaml, toml or json) with the instrument settings")
	fs.StringVarP(&o.plotFile, "plot", "p", "", "Write a plot of the visible patterns to this file (png, svg, pdf...)")
	fs.StringVar(&o.plotTitle, "title", "", "Title for the plot")
	fs.StringVar(&o.xyDir, "xy", "", "Write every pattern as an .xy file in this directory")
	fs.StringVar(&o.compress, "compress", "", "Compression for the .xy files: gz or zst")
	fs.StringSliceVar(&o.hide, "hide", nil, "Patterns to hide in the plot, by path or base name")
	addConfigFlags(fs)
	return cmd
}

func run(cmd *cobra.Command, args []string, o *options) error {
	C, err := loadConfig(o.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	S, err := store.New(C)
	if err != nil {
		return err
	}
	src := xrdio.FileSource{}
	for _, path := range args {
		if path == "-" {
			err = addStdin(cmd, S)
		} else {
			_, err = S.AddFrom(src, path)
		}
		if err != nil {
			log.Printf("skipping %s: %v", path, err)
		}
	}
	if S.Len() == 0 {
		return fmt.Errorf("no pattern could be loaded")
	}
	for _, h := range o.hide {
		found := false
		for _, P := range S.Patterns() {
			if P.ID() == h || xrdplot.Label(P.ID()) == h {
				if err := S.SetVisibility(P.ID(), false); err != nil {
					return err
				}
				found = true
			}
		}
		if !found {
			log.Printf("nothing to hide with the name %s", h)
		}
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, S.Config())
	for _, P := range S.Patterns() {
		fmt.Fprintln(out, P)
	}
	if o.xyDir != "" {
		names, err := writeXY(S, o.xyDir, o.compress)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%d patterns loaded, %d .xy files written\n", S.Len(), len(names))
	}
	if o.plotFile != "" {
		if err := xrdplot.Save(S.VisiblePatterns(), o.plotTitle, o.plotFile, 8*vg.Inch, 6*vg.Inch); err != nil {
			return err
		}
	}
	return nil
}

// addStdin reads a reflection list from the standard input of cmd and adds it under a random ID.
func addStdin(cmd *cobra.Command, S *store.Store) error {
	refl, wl, err := xrdio.ReadReflections(cmd.InOrStdin())
	if err != nil {
		return err
	}
	if wl > 0 {
		refl = xrd.ShiftWavelength(refl, wl, S.Config().Wavelength)
	}
	_, err = S.AddAnonymous(refl)
	return err
}

// writeXY writes every pattern in S to dir, named after the base name of its ID.
// Patterns whose names clash with an earlier one get their insertion number appended.
// It returns the names of the files written.
func writeXY(S *store.Store, dir, compression string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	ext := ".xy"
	switch compression {
	case "":
	case "gz", "zst":
		ext += "." + compression
	default:
		return nil, fmt.Errorf("unknown compression %q, use gz or zst", compression)
	}
	used := make(map[string]bool)
	names := make([]string, 0, S.Len())
	for _, P := range S.Patterns() {
		base := xrdplot.Label(P.ID())
		base = strings.TrimSuffix(base, filepath.Ext(base))
		for used[base] {
			base = fmt.Sprintf("%s_%d", base, P.Order())
		}
		used[base] = true
		name := filepath.Join(dir, base+ext)
		if err := xrdio.WriteXYFile(name, P.Curve(), P.ID(), S.Config().String()); err != nil {
			return names, err
		}
		names = append(names, name)
	}
	return names, nil
}
