package serialform

import (
	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/links"
	"github.com/dgallion1/serialform/internal/model"
	"github.com/dgallion1/serialform/internal/resources"
)

// BuildClassHeader returns the list item that opens a class entry: a heading
// reading "Class C implements Serializable" or "Class C extends S implements
// Serializable", anchored at the class's qualified name.
//
// C and S are each linked only when that class is itself visible; otherwise
// the qualified name is shown as text. A linked C carries its display name, a
// linked S its simple name.
func (w *Writer) BuildClassHeader(c *model.Class) (*doctree.Node, error) {
	if c == nil {
		return nil, docerr.Contract("class header requested for nil class")
	}

	var (
		phrase *doctree.Node
		err    error
	)
	classLink := w.classLink(c, links.KindDefault)
	if c.Superclass == nil {
		phrase, err = w.opts.Messages.Content(resources.KeyClassImplements, classLink)
	} else {
		superLink := w.classLink(c.Superclass, links.KindSerializedForm)
		phrase, err = w.opts.Messages.Content(resources.KeyClassExtends, classLink, superLink)
	}
	if err != nil {
		return nil, err
	}

	li := doctree.Styled(doctree.RoleListItem, doctree.StyleBlockList).SetAnchor(c.Name)
	li.Append(doctree.Heading(3, phrase))
	return li, nil
}

func (w *Writer) classLink(c *model.Class, kind links.Kind) doctree.Content {
	if !w.IsVisibleClass(c) {
		return doctree.Text(c.Name)
	}
	label := w.opts.Links.DisplayName(c)
	if kind == links.KindSerializedForm {
		label = c.SimpleName()
	}
	return w.opts.Links.Hyperlink(c, kind, label)
}
