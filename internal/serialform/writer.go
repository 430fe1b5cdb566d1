// Package serialform assembles the document tree of the Serialized Form page:
// every serializable class grouped by package, with its superclass, serial
// version UID, and serialized fields and methods.
//
// A Writer holds the run-wide collaborators and builds detached containers;
// a Page owns the single accumulating body of one page and enforces the
// header → content → footer → hand-off sequence. A Writer may be shared by
// concurrent page builds as long as its collaborators are read-only; a Page
// may not.
package serialform

import (
	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/links"
	"github.com/dgallion1/serialform/internal/model"
	"github.com/dgallion1/serialform/internal/resources"
)

// Visibility decides whether a class is part of the documentation run.
type Visibility interface {
	IsVisible(c *model.Class) bool
}

// LinkResolver produces hyperlinks and labels for visible classes.
type LinkResolver interface {
	DisplayName(c *model.Class) string
	Hyperlink(c *model.Class, kind links.Kind, label string) *doctree.Node
}

// Navigator builds navigation chrome for the header (true) or footer (false).
type Navigator interface {
	Content(header bool) *doctree.Node
}

// Messages resolves localized templates.
type Messages interface {
	Text(key string) (string, error)
	Content(key string, args ...doctree.Content) (*doctree.Node, error)
}

// ClassLookup finds classes by qualified name, for linking member types.
type ClassLookup interface {
	Lookup(name string) (*model.Class, bool)
}

// Options configures a Writer. Every collaborator is required except Classes.
type Options struct {
	Visibility  Visibility
	Links       LinkResolver
	Navigation  Navigator
	Messages    Messages
	Classes     ClassLookup
	Language    string
	WindowTitle string
	Bottom      string // legal HTML appended to the footer
}

// Writer builds the content of serialized-form pages.
type Writer struct {
	opts Options
}

func NewWriter(opts Options) *Writer {
	return &Writer{opts: opts}
}

// IsVisibleClass reports whether c is included in the run and documented.
func (w *Writer) IsVisibleClass(c *model.Class) bool {
	return w.opts.Visibility.IsVisible(c)
}

// NewPage starts a page in the Created state.
func (w *Writer) NewPage() *Page {
	return &Page{w: w, state: StateCreated}
}

// OpenSummariesSection returns the top-level list that collects one item per package.
func (w *Writer) OpenSummariesSection() *doctree.Node {
	return doctree.Styled(doctree.RoleList, doctree.StyleBlockList)
}

// OpenPackageSection returns an empty section for one package.
func (w *Writer) OpenPackageSection() *doctree.Node {
	return doctree.New(doctree.RoleSection)
}

// BuildPackageHeading returns the heading "Package <name>".
func (w *Writer) BuildPackageHeading(name string) (*doctree.Node, error) {
	label, err := w.opts.Messages.Text(resources.KeyPackage)
	if err != nil {
		return nil, err
	}
	return doctree.Heading(2, doctree.Text(label), doctree.Text(" "), doctree.Text(name)), nil
}

// OpenClassSection returns the list that collects one item per class of a package.
func (w *Writer) OpenClassSection() *doctree.Node {
	return doctree.Styled(doctree.RoleList, doctree.StyleBlockList)
}

// ClassContentHeader returns the list holding a class's member sections.
func (w *Writer) ClassContentHeader() *doctree.Node {
	return doctree.Styled(doctree.RoleList, doctree.StyleBlockList)
}

// AddPackageSerializedTree wraps a package section in a list item of summaries.
func (w *Writer) AddPackageSerializedTree(summaries, packageSection *doctree.Node) {
	summaries.Append(doctree.Styled(doctree.RoleListItem, doctree.StyleBlockList, packageSection))
}
