/*
 * xrdplot.go, part of XRD-Viewer.
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

// Package xrdplot overlays synthesized patterns in a single plot, using gonum/plot.
package xrdplot

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"

	"github.com/LucasEspargueta/XRD-Viewer/store"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// The tab10 palette, with 0.8 opacity.
var palette = []color.NRGBA{
	{0x1f, 0x77, 0xb4, 204},
	{0xff, 0x7f, 0x0e, 204},
	{0x2c, 0xa0, 0x2c, 204},
	{0xd6, 0x27, 0x28, 204},
	{0x94, 0x67, 0xbd, 204},
	{0x8c, 0x56, 0x4b, 204},
	{0xe3, 0x77, 0xc2, 204},
	{0x7f, 0x7f, 0x7f, 204},
	{0xbc, 0xbd, 0x22, 204},
	{0x17, 0xbe, 0xcf, 204},
}

// Color returns the color for the pattern with the given insertion number.
// Colors repeat every 10 patterns.
func Color(order int) color.Color {
	if order < 0 {
		order = -order
	}
	return palette[order%len(palette)]
}

// Label returns the legend text for a pattern ID: the base name of the path.
func Label(id string) string {
	return filepath.Base(id)
}

func basicXRDPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "2θ (degrees)"
	p.Y.Label.Text = "Intensity (a.u.)"
	p.Y.Min = 0
	p.Legend.Top = true
	p.Add(plotter.NewGrid())
	return p
}

// New returns a plot with one line for each pattern given, normally those from
// store.VisiblePatterns. Patterns with empty curves are left out.
func New(patterns []*store.Pattern, title string) (*plot.Plot, error) {
	p := basicXRDPlot(title)
	for _, v := range patterns {
		c := v.Curve()
		if c == nil || c.Len() == 0 {
			continue
		}
		angles, ints := c.View()
		pts := make(plotter.XYs, len(angles))
		for i := range angles {
			pts[i].X = angles[i]
			pts[i].Y = ints[i]
		}
		l, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("xrd/xrdplot.New: pattern %s: %w", v.ID(), err)
		}
		l.LineStyle.Width = vg.Points(1.5)
		l.LineStyle.Color = Color(v.Order())
		p.Add(l)
		p.Legend.Add(Label(v.ID()), l)
	}
	return p, nil
}

// Save plots the patterns to filename. The format is taken from the extension
// (png, svg, pdf, eps, jpg, tif).
func Save(patterns []*store.Pattern, title, filename string, width, height vg.Length) error {
	p, err := New(patterns, title)
	if err != nil {
		return err
	}
	//here I intentionally shadow err.
	if err := p.Save(width, height, filename); err != nil {
		return fmt.Errorf("xrd/xrdplot.Save: %w", err)
	}
	return nil
}

// WriteTo plots the patterns to w, in the given format (png, svg, pdf...).
func WriteTo(w io.Writer, patterns []*store.Pattern, title, format string, width, height vg.Length) error {
	p, err := New(patterns, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("xrd/xrdplot.WriteTo: %w", err)
	}
	_, err = wt.WriteTo(w)
	return err
}
