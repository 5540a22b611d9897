package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// ErrCorruptPackage marks a blob that cannot be opened as a document package.
// Fatal for the operation that hit it; never retried.
var ErrCorruptPackage = errors.New("corrupt document package")

const documentPart = "word/document.xml"

type zipPart struct {
	name string
	data []byte
}

// Package is the in-memory form of a .docx blob: the archive parts verbatim
// plus a parsed tree of word/document.xml. A Package belongs to the operation
// that opened it and must not be shared across requests.
type Package struct {
	raw    []byte
	parts  []zipPart
	prolog string
	root   *Node
	dirty  bool
}

// Open parses blob as a document package.
func Open(blob []byte) (*Package, error) {
	zr, err := zip.NewReader(bytes.NewReader(blob), int64(len(blob)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptPackage, err)
	}
	p := &Package{raw: blob}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: open part %s: %v", ErrCorruptPackage, f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("%w: read part %s: %v", ErrCorruptPackage, f.Name, err)
		}
		p.parts = append(p.parts, zipPart{name: f.Name, data: data})
		if f.Name == documentPart {
			prolog, root, err := parseXML(data)
			if err != nil {
				return nil, fmt.Errorf("%w: parse %s: %v", ErrCorruptPackage, documentPart, err)
			}
			p.prolog = prolog
			p.root = root
		}
	}
	if p.root == nil {
		return nil, fmt.Errorf("%w: missing %s", ErrCorruptPackage, documentPart)
	}
	return p, nil
}

// MarkDirty records that the document tree was mutated, forcing Bytes to
// rebuild the archive.
func (p *Package) MarkDirty() { p.dirty = true }

// Dirty reports whether the document tree was mutated since Open.
func (p *Package) Dirty() bool { return p.dirty }

// Bytes serializes the package. When nothing was mutated the original blob is
// returned untouched, so open/serialize round trips are byte-identical.
func (p *Package) Bytes() ([]byte, error) {
	if !p.dirty {
		return p.raw, nil
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, part := range p.parts {
		w, err := zw.Create(part.name)
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("serialize part %s: %w", part.name, err)
		}
		data := part.data
		if part.name == documentPart {
			data = serializeXML(p.prolog, p.root)
		}
		if _, err := w.Write(data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("serialize part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("serialize package: %w", err)
	}
	return buf.Bytes(), nil
}

// Body returns the w:body element.
func (p *Package) Body() *Node { return p.root.Child("w:body") }

// Paragraphs returns the top-level paragraphs of the body.
func (p *Package) Paragraphs() []Paragraph {
	return wrapParagraphs(p.Body().Children("w:p"))
}

// Tables returns the top-level tables of the body.
func (p *Package) Tables() []Table {
	var out []Table
	for _, n := range p.Body().Children("w:tbl") {
		out = append(out, Table{n: n})
	}
	return out
}

// AllParagraphs returns every paragraph in writer/reader scan order:
// top-level paragraphs first, then table cell paragraphs row by row,
// recursing one table level (tables nested inside cells, not deeper).
func (p *Package) AllParagraphs() []Paragraph {
	out := p.Paragraphs()
	for _, tbl := range p.Tables() {
		out = append(out, tbl.cellParagraphs(true)...)
	}
	return out
}
