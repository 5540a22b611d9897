package docx

import "strings"

// Paragraph wraps a w:p element.
type Paragraph struct {
	n *Node
}

func wrapParagraphs(nodes []*Node) []Paragraph {
	var out []Paragraph
	for _, n := range nodes {
		out = append(out, Paragraph{n: n})
	}
	return out
}

// Text returns the concatenated plain text of the paragraph.
func (p Paragraph) Text() string { return p.n.InnerText() }

// RunElement is either a plain text run (w:r) or a content control (w:sdt)
// appearing inside a paragraph.
type RunElement struct {
	n *Node
}

// RunElements returns the paragraph's runs and content controls in order.
func (p Paragraph) RunElements() []RunElement {
	var out []RunElement
	for _, k := range p.n.Kids {
		if k.Name == "w:r" || k.Name == "w:sdt" {
			out = append(out, RunElement{n: k})
		}
	}
	return out
}

// AsSDT returns the element as a content control, or false.
func (e RunElement) AsSDT() (SDT, bool) {
	if e.n.Name == "w:sdt" {
		return SDT{n: e.n}, true
	}
	return SDT{}, false
}

// AsRun returns the element as a plain run, or false.
func (e RunElement) AsRun() (Run, bool) {
	if e.n.Name == "w:r" {
		return Run{n: e.n}, true
	}
	return Run{}, false
}

// Run wraps a w:r element.
type Run struct {
	n *Node
}

// Text returns the run's text content.
func (r Run) Text() string { return r.n.InnerText() }

// SetText replaces the run's text, preserving run properties. A w:t child is
// created when the run has none.
func (r Run) SetText(s string) {
	t := r.n.Child("w:t")
	if t == nil {
		t = &Node{Name: "w:t", Attrs: []Attr{{Name: "xml:space", Value: "preserve"}}}
		r.n.Kids = append(r.n.Kids, t)
	}
	t.Kids = []*Node{{Text: s}}
}

// SDT wraps a w:sdt content control.
type SDT struct {
	n *Node
}

// Tag returns the control's tag (w:sdtPr > w:tag @w:val), possibly empty.
func (s SDT) Tag() string {
	return s.n.Child("w:sdtPr").Child("w:tag").Attr("w:val")
}

// Text returns the control's current text content.
func (s SDT) Text() string {
	return s.n.Child("w:sdtContent").InnerText()
}

// ReplaceRuns discards the control's text-run children and installs the given
// runs. Non-run children of w:sdtContent (paragraph marks etc.) are kept. The
// content node is created when the template authored it away.
func (s SDT) ReplaceRuns(runs []*Node) {
	content := s.n.Child("w:sdtContent")
	if content == nil {
		content = &Node{Name: "w:sdtContent"}
		s.n.Kids = append(s.n.Kids, content)
	}
	kept := content.Kids[:0]
	for _, k := range content.Kids {
		if k.Name != "w:r" {
			kept = append(kept, k)
		}
	}
	content.Kids = append(kept, runs...)
}

// Table wraps a w:tbl element.
type Table struct {
	n *Node
}

// Rows returns the table's rows in order.
func (t Table) Rows() []Row {
	var out []Row
	for _, n := range t.n.Children("w:tr") {
		out = append(out, Row{n: n})
	}
	return out
}

// HeaderText returns the upper-cased concatenated text of the first row.
func (t Table) HeaderText() string {
	rows := t.Rows()
	if len(rows) == 0 {
		return ""
	}
	return strings.ToUpper(rows[0].n.InnerText())
}

// TruncateToHeader drops every row except the first, keeping table properties
// and grid definitions in place.
func (t Table) TruncateToHeader() {
	first := true
	kept := t.n.Kids[:0]
	for _, k := range t.n.Kids {
		if k.Name == "w:tr" {
			if !first {
				continue
			}
			first = false
		}
		kept = append(kept, k)
	}
	t.n.Kids = kept
}

// AppendRow adds a row to the end of the table.
func (t Table) AppendRow(row *Node) {
	t.n.Kids = append(t.n.Kids, row)
}

// cellParagraphs walks rows and cells collecting paragraphs. When recurse is
// set, tables nested directly inside a cell contribute their own cell
// paragraphs (one level only, matching the known template structure).
func (t Table) cellParagraphs(recurse bool) []Paragraph {
	var out []Paragraph
	for _, row := range t.Rows() {
		for _, cell := range row.Cells() {
			out = append(out, wrapParagraphs(cell.n.Children("w:p"))...)
			if recurse {
				for _, nested := range cell.n.Children("w:tbl") {
					out = append(out, Table{n: nested}.cellParagraphs(false)...)
				}
			}
		}
	}
	return out
}

// Row wraps a w:tr element.
type Row struct {
	n *Node
}

// Cells returns the row's cells in order.
func (r Row) Cells() []Cell {
	var out []Cell
	for _, n := range r.n.Children("w:tc") {
		out = append(out, Cell{n: n})
	}
	return out
}

// Text returns the concatenated text of the row.
func (r Row) Text() string { return r.n.InnerText() }

// Cell wraps a w:tc element.
type Cell struct {
	n *Node
}

// Paragraphs returns the cell's paragraphs.
func (c Cell) Paragraphs() []Paragraph {
	return wrapParagraphs(c.n.Children("w:p"))
}

// Text returns the concatenated text of the cell.
func (c Cell) Text() string { return c.n.InnerText() }
