package docx

import "strconv"

// RunStyle carries the formatting applied to generated runs.
type RunStyle struct {
	Bold     bool
	Font     string
	SizeHalf int // font size in half-points (24 = 12pt)
}

// NewRun builds a w:r node with the given text and style.
func NewRun(text string, style RunStyle) *Node {
	r := &Node{Name: "w:r"}
	rPr := &Node{Name: "w:rPr"}
	if style.Font != "" {
		rPr.Kids = append(rPr.Kids, &Node{Name: "w:rFonts", Attrs: []Attr{
			{Name: "w:ascii", Value: style.Font},
			{Name: "w:hAnsi", Value: style.Font},
		}})
	}
	if style.Bold {
		rPr.Kids = append(rPr.Kids, &Node{Name: "w:b"})
	}
	if style.SizeHalf > 0 {
		sz := strconv.Itoa(style.SizeHalf)
		rPr.Kids = append(rPr.Kids,
			&Node{Name: "w:sz", Attrs: []Attr{{Name: "w:val", Value: sz}}},
			&Node{Name: "w:szCs", Attrs: []Attr{{Name: "w:val", Value: sz}}},
		)
	}
	if len(rPr.Kids) > 0 {
		r.Kids = append(r.Kids, rPr)
	}
	r.Kids = append(r.Kids, &Node{
		Name:  "w:t",
		Attrs: []Attr{{Name: "xml:space", Value: "preserve"}},
		Kids:  []*Node{{Text: text}},
	})
	return r
}

// NewParagraph builds a w:p node holding the given runs.
func NewParagraph(runs ...*Node) *Node {
	p := &Node{Name: "w:p"}
	p.Kids = append(p.Kids, runs...)
	return p
}

// NewTableCell builds a w:tc node holding one paragraph.
func NewTableCell(paragraph *Node) *Node {
	return &Node{Name: "w:tc", Kids: []*Node{paragraph}}
}

// NewTableRow builds a w:tr node from cells.
func NewTableRow(cells ...*Node) *Node {
	r := &Node{Name: "w:tr"}
	r.Kids = append(r.Kids, cells...)
	return r
}
