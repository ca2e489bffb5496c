// SPDX-FileCopyrightText: 2026 Tobias Böhm <code@aibor.de>
//
// SPDX-License-Identifier: GPL-3.0-or-later

package bundle

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cavaliergopher/cpio"
)

// Writer writes bitcode artifacts into a cpio archive.
type Writer struct {
	cpioWriter *cpio.Writer
}

// NewWriter creates a new archive writer.
func NewWriter(w io.Writer) *Writer {
	return &Writer{cpio.NewWriter(w)}
}

// Close closes the [Writer]. Flush is called by the underlying closer.
func (w *Writer) Close() error {
	err := w.cpioWriter.Close()
	if err != nil {
		return fmt.Errorf("close: %w", err)
	}

	return nil
}

// WriteRegular copies the existing file from source into the archive at the
// given path.
func (w *Writer) WriteRegular(path string, source fs.File) error {
	info, err := source.Stat()
	if err != nil {
		return fmt.Errorf("read info: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	hdr, err := cpio.FileInfoHeader(info, "")
	if err != nil {
		return fmt.Errorf("create header: %w", err)
	}

	hdr.Name = path

	err = w.cpioWriter.WriteHeader(hdr)
	if err != nil {
		return fmt.Errorf("write header for %s: %w", path, err)
	}

	_, err = io.Copy(w.cpioWriter, source)
	if err != nil {
		return fmt.Errorf("write body for %s: %w", path, err)
	}

	return nil
}

// WriteFiles adds the given files to the archive by their base name.
func (w *Writer) WriteFiles(paths ...string) error {
	for _, path := range paths {
		err := w.writeFile(path)
		if err != nil {
			return err
		}
	}

	return nil
}

func (w *Writer) writeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	defer file.Close()

	return w.WriteRegular(filepath.Base(path), file)
}

// WriteFile writes an archive with the given files to a new file at path.
//
// The file is removed again if writing the archive fails.
func WriteFile(path string, files ...string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create archive file: %w", err)
	}
	defer file.Close()

	writer := NewWriter(file)

	err = writer.WriteFiles(files...)
	if err == nil {
		err = writer.Close()
	}

	if err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("write archive: %w", err)
	}

	return nil
}
