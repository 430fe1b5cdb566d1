// Package comment turns the markdown description of a serialized member into
// document content.
package comment

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/dgallion1/serialform/internal/doctree"
)

var md = goldmark.New()

// Render parses src as markdown and returns it as a block division. Raw HTML in
// the source is kept as literal text.
func Render(src string) *doctree.Node {
	source := []byte(src)
	doc := md.Parser().Parse(text.NewReader(source))

	block := doctree.Styled(doctree.RoleDivision, doctree.StyleBlock)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		if c := convert(n, source); c != nil {
			block.Append(c)
		}
	}
	return block
}

func convert(n ast.Node, src []byte) doctree.Content {
	switch node := n.(type) {
	case *ast.Paragraph:
		return children(doctree.New(doctree.RoleParagraph), n, src)
	case *ast.TextBlock:
		return children(doctree.Fragment(), n, src)
	case *ast.Heading:
		// Member descriptions sit under their own heading; keep emphasis only.
		return doctree.New(doctree.RoleParagraph).Append(children(doctree.New(doctree.RoleStrong), n, src))
	case *ast.List:
		role := doctree.RoleList
		if node.IsOrdered() {
			role = doctree.RoleOrderedList
		}
		return children(doctree.New(role), n, src)
	case *ast.ListItem:
		return children(doctree.New(doctree.RoleListItem), n, src)
	case *ast.Blockquote:
		return children(doctree.New(doctree.RoleDivision), n, src)
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return doctree.New(doctree.RolePreformatted).Append(
			doctree.New(doctree.RoleCode).AppendText(lines(n, src)))
	case *ast.HTMLBlock:
		return doctree.New(doctree.RoleParagraph).AppendText(strings.TrimSpace(lines(n, src)))
	case *ast.ThematicBreak:
		return nil
	case *ast.Text:
		s := string(node.Segment.Value(src))
		if node.SoftLineBreak() || node.HardLineBreak() {
			s += "\n"
		}
		return doctree.Text(s)
	case *ast.String:
		return doctree.Text(string(node.Value))
	case *ast.CodeSpan:
		return doctree.New(doctree.RoleCode).AppendText(inlineText(n, src))
	case *ast.Emphasis:
		role := doctree.RoleEmphasis
		if node.Level >= 2 {
			role = doctree.RoleStrong
		}
		return children(doctree.New(role), n, src)
	case *ast.Link:
		return children(doctree.Link(string(node.Destination)), n, src)
	case *ast.AutoLink:
		return doctree.Link(string(node.URL(src)), doctree.Text(string(node.Label(src))))
	case *ast.Image:
		return doctree.Text(inlineText(n, src))
	case *ast.RawHTML:
		var buf strings.Builder
		for i := 0; i < node.Segments.Len(); i++ {
			seg := node.Segments.At(i)
			buf.Write(seg.Value(src))
		}
		return doctree.Text(buf.String())
	}
	// Unknown node kinds from extensions: keep their text.
	if t := inlineText(n, src); t != "" {
		return doctree.Text(t)
	}
	return nil
}

func children(parent *doctree.Node, n ast.Node, src []byte) *doctree.Node {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if converted := convert(c, src); converted != nil {
			parent.Append(converted)
		}
	}
	return parent
}

func lines(n ast.Node, src []byte) string {
	var buf strings.Builder
	l := n.Lines()
	for i := 0; i < l.Len(); i++ {
		line := l.At(i)
		buf.Write(line.Value(src))
	}
	return buf.String()
}

func inlineText(n ast.Node, src []byte) string {
	var buf strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			buf.Write(t.Segment.Value(src))
		case *ast.String:
			buf.Write(t.Value)
		default:
			buf.WriteString(inlineText(c, src))
		}
	}
	return buf.String()
}
