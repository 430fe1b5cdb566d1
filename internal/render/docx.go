package render

import (
	"io"

	"github.com/fumiama/go-docx"

	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/serialform"
)

var headingSizes = [...]string{"40", "32", "28", "26", "24", "22"}

// inline roles flow inside a paragraph; everything else starts a block.
var inline = map[doctree.Role]bool{
	doctree.RoleFragment: true,
	doctree.RoleCode:     true,
	doctree.RoleEmphasis: true,
	doctree.RoleStrong:   true,
	doctree.RoleSpan:     true,
	doctree.RoleLink:     true,
}

type runStyle struct {
	bold, italic, code, link bool
	size                     string
}

// WriteDOCX renders doc as a Word document. Navigation chrome is left out;
// every block whose content is purely inline becomes one paragraph.
func WriteDOCX(w io.Writer, doc *serialform.Document) error {
	d := docx.New().WithDefaultTheme()

	stack := []*doctree.Node{doc.Body}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if n.Role() == doctree.RoleNav {
			continue
		}
		if isLeafBlock(n) {
			writeParagraph(d, n)
			continue
		}
		kids := n.ChildNodes()
		for i := len(kids) - 1; i >= 0; i-- {
			stack = append(stack, kids[i])
		}
	}

	_, err := d.WriteTo(w)
	return err
}

func isLeafBlock(n *doctree.Node) bool {
	for _, c := range n.Children() {
		if child, ok := c.(*doctree.Node); ok && !inline[child.Role()] {
			return false
		}
	}
	return n.Len() > 0
}

func writeParagraph(d *docx.Docx, block *doctree.Node) {
	para := d.AddParagraph()
	base := runStyle{code: block.Role() == doctree.RolePreformatted}
	if block.Role() == doctree.RoleHeading {
		base.bold = true
		base.size = headingSizes[block.Level()-1]
	}

	type entry struct {
		content doctree.Content
		style   runStyle
	}
	var stack []entry
	kids := block.Children()
	for i := len(kids) - 1; i >= 0; i-- {
		stack = append(stack, entry{kids[i], base})
	}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch c := e.content.(type) {
		case doctree.Text:
			addRun(para, string(c), e.style)
		case doctree.Markup:
			addRun(para, c.PlainText(), e.style)
		case *doctree.Node:
			st := e.style
			switch c.Role() {
			case doctree.RoleStrong:
				st.bold = true
			case doctree.RoleEmphasis:
				st.italic = true
			case doctree.RoleCode:
				st.code = true
			case doctree.RoleLink:
				st.link = true
			}
			grand := c.Children()
			for i := len(grand) - 1; i >= 0; i-- {
				stack = append(stack, entry{grand[i], st})
			}
		}
	}
}

func addRun(para *docx.Paragraph, text string, st runStyle) {
	if text == "" {
		return
	}
	run := para.AddText(text)
	if st.bold {
		run.Bold()
	}
	if st.italic {
		run.Italic()
	}
	if st.size != "" {
		run.Size(st.size)
	}
	switch {
	case st.link:
		run.Color("0563C1")
	case st.code:
		run.Color("595959")
	}
}
