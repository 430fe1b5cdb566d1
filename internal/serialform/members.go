package serialform

import (
	"strings"

	"github.com/dgallion1/serialform/internal/comment"
	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/links"
	"github.com/dgallion1/serialform/internal/model"
	"github.com/dgallion1/serialform/internal/resources"
)

// MemberKind identifies a member writer variant.
type MemberKind int

const (
	MemberMethods MemberKind = iota
	MemberFields
)

// MemberWriter renders one kind of serialized member for a single class.
// Build returns nil when the class has no members of that kind.
type MemberWriter interface {
	Kind() MemberKind
	Class() *model.Class
	Build() (*doctree.Node, error)
}

// FieldWriter renders the serialized fields of one class.
type FieldWriter struct {
	w     *Writer
	class *model.Class
}

// MethodWriter renders the serialization methods of one class.
type MethodWriter struct {
	w     *Writer
	class *model.Class
}

func (w *Writer) FieldWriterFor(c *model.Class) *FieldWriter {
	return &FieldWriter{w: w, class: c}
}

func (w *Writer) MethodWriterFor(c *model.Class) *MethodWriter {
	return &MethodWriter{w: w, class: c}
}

// MemberWriters returns the writers for c in page order: methods, then fields.
func (w *Writer) MemberWriters(c *model.Class) []MemberWriter {
	return []MemberWriter{w.MethodWriterFor(c), w.FieldWriterFor(c)}
}

func (fw *FieldWriter) Kind() MemberKind { return MemberFields }
func (fw *FieldWriter) Class() *model.Class { return fw.class }

func (fw *FieldWriter) Build() (*doctree.Node, error) {
	if len(fw.class.Fields) == 0 {
		return nil, nil
	}
	section, list, err := fw.w.memberSection(resources.KeySerializedFields)
	if err != nil {
		return nil, err
	}
	for _, f := range fw.class.Fields {
		sig := doctree.Styled(doctree.RolePreformatted, doctree.StyleMemberSignature,
			fw.w.typeContent(f.Type), doctree.Text(" "+f.Name))
		list.Append(memberItem(f.Name, sig, f.Description))
	}
	return section, nil
}

func (mw *MethodWriter) Kind() MemberKind { return MemberMethods }
func (mw *MethodWriter) Class() *model.Class { return mw.class }

func (mw *MethodWriter) Build() (*doctree.Node, error) {
	if len(mw.class.Methods) == 0 {
		return nil, nil
	}
	section, list, err := mw.w.memberSection(resources.KeySerializationMethod)
	if err != nil {
		return nil, err
	}
	for _, m := range mw.class.Methods {
		sig := m.Signature
		if sig == "" {
			sig = m.Name + "()"
		}
		pre := doctree.Styled(doctree.RolePreformatted, doctree.StyleMemberSignature, doctree.Text(sig))
		list.Append(memberItem(m.Name, pre, m.Description))
	}
	return section, nil
}

// memberSection returns a block-list item holding a section heading and the
// list the members go into.
func (w *Writer) memberSection(key string) (item, list *doctree.Node, err error) {
	title, err := w.opts.Messages.Text(key)
	if err != nil {
		return nil, nil, err
	}
	list = doctree.Styled(doctree.RoleList, doctree.StyleBlockList)
	section := doctree.New(doctree.RoleSection).Append(doctree.Heading(4, doctree.Text(title)), list)
	return doctree.Styled(doctree.RoleListItem, doctree.StyleBlockList, section), list, nil
}

func memberItem(name string, signature *doctree.Node, description string) *doctree.Node {
	li := doctree.Styled(doctree.RoleListItem, doctree.StyleBlockList,
		doctree.Heading(5, doctree.Text(name)), signature)
	if strings.TrimSpace(description) != "" {
		li.Append(comment.Render(description))
	}
	return li
}

// typeContent links a member type when it names a visible class. Array
// suffixes stay outside the link.
func (w *Writer) typeContent(typeName string) doctree.Content {
	base := strings.TrimRight(typeName, "[]")
	if w.opts.Classes == nil || base == "" {
		return doctree.Text(typeName)
	}
	c, ok := w.opts.Classes.Lookup(base)
	if !ok || !w.IsVisibleClass(c) {
		return doctree.Text(typeName)
	}
	link := w.opts.Links.Hyperlink(c, links.KindDefault, w.opts.Links.DisplayName(c))
	if suffix := typeName[len(base):]; suffix != "" {
		return doctree.Fragment(link, doctree.Text(suffix))
	}
	return link
}
