/*
 * compress.go, part of XRD-Viewer.
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
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression returns the compression used for a file, from its extension:
// "gz" for .gz, "zst" for .zst, and "" for anything else (no compression).
func Compression(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".gz":
		return "gz"
	case ".zst":
		return "zst"
	default:
		return ""
	}
}

// multiCloser closes a decompressor/compressor and then the file under it.
type multiCloser struct {
	io.Reader
	io.Writer
	closers []func() error
}

func (m *multiCloser) Close() error {
	var first error
	for _, c := range m.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openReader opens the file name for reading, decompressing it on the fly if its
// extension says so.
func openReader(name string) (io.ReadCloser, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, &Error{UnableToOpen + ": " + err.Error(), name, []string{"openReader"}, true}
	}
	switch Compression(name) {
	case "gz":
		r, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, &Error{WrongCompression + ": " + err.Error(), name, []string{"openReader"}, true}
		}
		return &multiCloser{Reader: r, closers: []func() error{r.Close, f.Close}}, nil
	case "zst":
		r, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, &Error{WrongCompression + ": " + err.Error(), name, []string{"openReader"}, true}
		}
		//*zstd.Decoder's Close doesn't return an error.
		closedec := func() error { r.Close(); return nil }
		return &multiCloser{Reader: r, closers: []func() error{closedec, f.Close}}, nil
	default:
		return f, nil
	}
}

// createWriter creates the file name, compressing what is written to it if its
// extension says so. The returned WriteCloser must be closed for the data to be complete.
func createWriter(name string) (io.WriteCloser, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, &Error{UnableToCreate + ": " + err.Error(), name, []string{"createWriter"}, true}
	}
	switch Compression(name) {
	case "gz":
		w := gzip.NewWriter(f)
		return &multiCloser{Writer: w, closers: []func() error{w.Close, f.Close}}, nil
	case "zst":
		w, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			f.Close()
			return nil, &Error{WrongCompression + ": " + err.Error(), name, []string{"createWriter"}, true}
		}
		return &multiCloser{Writer: w, closers: []func() error{w.Close, f.Close}}, nil
	default:
		return f, nil
	}
}
