package render

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/serialform"
)

var headings = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

var roleAtoms = map[doctree.Role]atom.Atom{
	doctree.RoleBody:           atom.Body,
	doctree.RoleHeader:         atom.Header,
	doctree.RoleMain:           atom.Main,
	doctree.RoleFooter:         atom.Footer,
	doctree.RoleNav:            atom.Nav,
	doctree.RoleSection:        atom.Section,
	doctree.RoleDivision:       atom.Div,
	doctree.RoleList:           atom.Ul,
	doctree.RoleOrderedList:    atom.Ol,
	doctree.RoleListItem:       atom.Li,
	doctree.RoleDefinitionList: atom.Dl,
	doctree.RoleTerm:           atom.Dt,
	doctree.RoleDefinition:     atom.Dd,
	doctree.RoleParagraph:      atom.P,
	doctree.RolePreformatted:   atom.Pre,
	doctree.RoleCode:           atom.Code,
	doctree.RoleEmphasis:       atom.Em,
	doctree.RoleStrong:         atom.Strong,
	doctree.RoleSpan:           atom.Span,
	doctree.RoleLink:           atom.A,
}

// HTMLOptions control the document shell around the body.
type HTMLOptions struct {
	Stylesheet string // href of the stylesheet; omitted when empty
}

// WriteHTML renders doc as a complete HTML5 document.
func WriteHTML(w io.Writer, doc *serialform.Document, opts HTMLOptions) error {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	var htmlAttrs []html.Attribute
	if doc.Language != "" {
		htmlAttrs = append(htmlAttrs, html.Attribute{Key: "lang", Val: doc.Language})
	}
	htmlEl := element(atom.Html, htmlAttrs...)
	root.AppendChild(htmlEl)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, html.Attribute{Key: "charset", Val: "utf-8"}))
	title := element(atom.Title)
	title.AppendChild(&html.Node{Type: html.TextNode, Data: doc.Title})
	head.AppendChild(title)
	if opts.Stylesheet != "" {
		head.AppendChild(element(atom.Link,
			html.Attribute{Key: "rel", Val: "stylesheet"},
			html.Attribute{Key: "href", Val: opts.Stylesheet}))
	}
	htmlEl.AppendChild(head)

	body, err := ToHTML(doc.Body)
	if err != nil {
		return err
	}
	htmlEl.AppendChild(body)

	return html.Render(w, root)
}

// ToHTML converts a document tree to an HTML node tree. Fragment nodes
// contribute only their children.
func ToHTML(n *doctree.Node) (*html.Node, error) {
	holder := &html.Node{Type: html.DocumentNode}

	type entry struct {
		content doctree.Content
		parent  *html.Node
	}
	stack := []entry{{n, holder}}
	for len(stack) > 0 {
		e := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		switch c := e.content.(type) {
		case doctree.Text:
			e.parent.AppendChild(&html.Node{Type: html.TextNode, Data: string(c)})
		case doctree.Markup:
			context := e.parent
			if context.Type != html.ElementNode {
				context = element(atom.Div)
			}
			nodes, err := html.ParseFragment(strings.NewReader(string(c)), context)
			if err != nil {
				return nil, fmt.Errorf("render: parse markup: %w", err)
			}
			for _, m := range nodes {
				e.parent.AppendChild(m)
			}
		case *doctree.Node:
			target := e.parent
			if c.Role() != doctree.RoleFragment {
				el, err := elementFor(c)
				if err != nil {
					return nil, err
				}
				e.parent.AppendChild(el)
				target = el
			}
			kids := c.Children()
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, entry{kids[i], target})
			}
		}
	}

	out := holder.FirstChild
	if out == nil || out.NextSibling != nil {
		return nil, fmt.Errorf("render: %s root must produce exactly one element", n.Role())
	}
	holder.RemoveChild(out)
	return out, nil
}

func elementFor(n *doctree.Node) (*html.Node, error) {
	var a atom.Atom
	if n.Role() == doctree.RoleHeading {
		a = headings[n.Level()-1]
	} else {
		var ok bool
		if a, ok = roleAtoms[n.Role()]; !ok {
			return nil, fmt.Errorf("render: no HTML element for role %q", n.Role())
		}
	}

	var attrs []html.Attribute
	if id := n.Anchor(); id != "" {
		attrs = append(attrs, html.Attribute{Key: "id", Val: id})
	}
	if styles := n.Styles(); len(styles) > 0 {
		names := make([]string, len(styles))
		for i, s := range styles {
			names[i] = string(s)
		}
		attrs = append(attrs, html.Attribute{Key: "class", Val: strings.Join(names, " ")})
	}
	for _, at := range n.Attrs() {
		attrs = append(attrs, html.Attribute{Key: at.Key, Val: at.Value})
	}
	return element(a, attrs...), nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}
