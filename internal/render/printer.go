// Package render serializes finished serialized-form documents as HTML or DOCX.
package render

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dgallion1/serialform/internal/serialform"
)

// Format is an output file format.
type Format string

const (
	FormatHTML Format = "html"
	FormatDOCX Format = "docx"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatHTML, FormatDOCX:
		return f, nil
	}
	return "", fmt.Errorf("unsupported output format: %q", s)
}

// FileName is the page's file name in format f.
func (f Format) FileName() string {
	return "serialized-form." + string(f)
}

// ContentType is the MIME type of format f.
func (f Format) ContentType() string {
	if f == FormatDOCX {
		return "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	}
	return "text/html; charset=utf-8"
}

// Encode writes doc to w in format f.
func Encode(w io.Writer, doc *serialform.Document, f Format, opts HTMLOptions) error {
	switch f {
	case FormatDOCX:
		return WriteDOCX(w, doc)
	case FormatHTML:
		return WriteHTML(w, doc, opts)
	}
	return fmt.Errorf("unsupported output format: %q", f)
}

// WriterPrinter prints to an io.Writer.
type WriterPrinter struct {
	W      io.Writer
	Format Format
	HTML   HTMLOptions
}

func (p *WriterPrinter) PrintDocument(doc *serialform.Document) error {
	return Encode(p.W, doc, p.Format, p.HTML)
}

// FilePrinter writes the page into Dir. The file is written to a temporary
// name and renamed into place, so a failed write never leaves a partial page.
type FilePrinter struct {
	Dir    string
	Format Format
	HTML   HTMLOptions

	// Path is set to the written file after a successful print.
	Path string
}

func (p *FilePrinter) PrintDocument(doc *serialform.Document) error {
	if err := os.MkdirAll(p.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	tmp, err := os.CreateTemp(p.Dir, ".serialized-form-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := Encode(tmp, doc, p.Format, p.HTML); err != nil {
		tmp.Close()
		return fmt.Errorf("encode %s: %w", p.Format, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}

	target := filepath.Join(p.Dir, p.Format.FileName())
	if err := os.Rename(tmpPath, target); err != nil {
		return fmt.Errorf("rename into place: %w", err)
	}
	p.Path = target
	return nil
}
