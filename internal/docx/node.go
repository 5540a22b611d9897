package docx

import (
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"strings"
)

// Attr is an XML attribute with its original prefixed name ("w:val").
type Attr struct {
	Name  string
	Value string
}

// Node is one element or text chunk of word/document.xml. Elements keep their
// original prefixed names ("w:p", "w:sdt") so the tree serializes back without
// namespace rewriting. A Node with an empty Name is a text node and only its
// Text field is meaningful.
type Node struct {
	Name  string
	Attrs []Attr
	Kids  []*Node
	Text  string
}

func rawName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// parseXML builds a Node tree from an XML part using raw tokens, so namespace
// prefixes survive the round trip. Returns the prolog (XML declaration) and
// the root element.
func parseXML(b []byte) (string, *Node, error) {
	dec := xml.NewDecoder(bytes.NewReader(b))
	var (
		stack  []*Node
		root   *Node
		prolog strings.Builder
	)
	for {
		tok, err := dec.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			n := &Node{Name: rawName(t.Name)}
			for _, a := range t.Attr {
				n.Attrs = append(n.Attrs, Attr{Name: rawName(a.Name), Value: a.Value})
			}
			if len(stack) == 0 {
				if root != nil {
					return "", nil, errors.New("multiple root elements")
				}
				root = n
			} else {
				parent := stack[len(stack)-1]
				parent.Kids = append(parent.Kids, n)
			}
			stack = append(stack, n)
		case xml.EndElement:
			if len(stack) == 0 {
				return "", nil, errors.New("unbalanced end tag")
			}
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) == 0 {
				continue // whitespace between prolog and root
			}
			parent := stack[len(stack)-1]
			parent.Kids = append(parent.Kids, &Node{Text: string(t)})
		case xml.ProcInst:
			if len(stack) == 0 {
				prolog.WriteString("<?")
				prolog.WriteString(t.Target)
				prolog.WriteString(" ")
				prolog.Write(t.Inst)
				prolog.WriteString("?>")
			}
		}
	}
	if root == nil {
		return "", nil, errors.New("no root element")
	}
	if len(stack) != 0 {
		return "", nil, errors.New("unclosed element")
	}
	return prolog.String(), root, nil
}

func serializeXML(prolog string, root *Node) []byte {
	var sb strings.Builder
	if prolog != "" {
		sb.WriteString(prolog)
	}
	root.writeTo(&sb)
	return []byte(sb.String())
}

func (n *Node) writeTo(sb *strings.Builder) {
	if n.Name == "" {
		sb.WriteString(escapeText(n.Text))
		return
	}
	sb.WriteByte('<')
	sb.WriteString(n.Name)
	for _, a := range n.Attrs {
		sb.WriteByte(' ')
		sb.WriteString(a.Name)
		sb.WriteString(`="`)
		sb.WriteString(escapeAttr(a.Value))
		sb.WriteByte('"')
	}
	if len(n.Kids) == 0 {
		sb.WriteString("/>")
		return
	}
	sb.WriteByte('>')
	for _, k := range n.Kids {
		k.writeTo(sb)
	}
	sb.WriteString("</")
	sb.WriteString(n.Name)
	sb.WriteByte('>')
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
var attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

func escapeText(s string) string { return textEscaper.Replace(s) }
func escapeAttr(s string) string { return attrEscaper.Replace(s) }

// Child returns the first element child with the given name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, k := range n.Kids {
		if k.Name == name {
			return k
		}
	}
	return nil
}

// Children returns all element children with the given name, in order.
func (n *Node) Children(name string) []*Node {
	if n == nil {
		return nil
	}
	var out []*Node
	for _, k := range n.Kids {
		if k.Name == name {
			out = append(out, k)
		}
	}
	return out
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}
	for _, a := range n.Attrs {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// collectText appends the text of every w:t descendant, document order.
func (n *Node) collectText(sb *strings.Builder) {
	if n.Name == "w:t" {
		for _, k := range n.Kids {
			if k.Name == "" {
				sb.WriteString(k.Text)
			}
		}
		return
	}
	for _, k := range n.Kids {
		k.collectText(sb)
	}
}

// InnerText concatenates the text of all w:t descendants.
func (n *Node) InnerText() string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	n.collectText(&sb)
	return sb.String()
}
