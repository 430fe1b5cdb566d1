// Package links builds hyperlinks to class documentation.
package links

import (
	"strings"

	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/model"
)

// SerializedFormPage is the file name of the serialized-form page.
const SerializedFormPage = "serialized-form.html"

// Kind selects the link target.
type Kind int

const (
	// KindDefault links to the class's own documentation page.
	KindDefault Kind = iota
	// KindSerializedForm links to the class's entry on the serialized-form page.
	KindSerializedForm
)

func (k Kind) String() string {
	switch k {
	case KindDefault:
		return "default"
	case KindSerializedForm:
		return "serialized-form"
	}
	return "unknown"
}

// Linker resolves class links relative to the documentation root.
type Linker struct {
	root string
}

// NewLinker returns a Linker whose hrefs are prefixed with root ("" or "../").
func NewLinker(root string) *Linker {
	if root != "" && !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return &Linker{root: root}
}

// DisplayName is the configured label for c, the qualified name by default.
func (l *Linker) DisplayName(c *model.Class) string {
	if c.Display != "" {
		return c.Display
	}
	return c.Name
}

// ClassPath returns the documentation file of c relative to the root.
func (l *Linker) ClassPath(c *model.Class) string {
	var b strings.Builder
	if c.Package != "" {
		b.WriteString(strings.ReplaceAll(c.Package, ".", "/"))
		b.WriteByte('/')
	}
	b.WriteString(c.SimpleName())
	b.WriteString(".html")
	return b.String()
}

// Hyperlink returns a link node for c labelled with label.
func (l *Linker) Hyperlink(c *model.Class, kind Kind, label string) *doctree.Node {
	var href string
	switch kind {
	case KindSerializedForm:
		href = l.root + SerializedFormPage + "#" + c.Name
	default:
		href = l.root + l.ClassPath(c)
	}
	return doctree.Link(href, doctree.Text(label)).SetAttr("title", "class in "+c.Package)
}
