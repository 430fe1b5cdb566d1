package serialform

import (
	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/doctree"
)

// State is the lifecycle position of a Page.
type State int

const (
	StateCreated State = iota
	StateHeaderOpen
	StateBodyAccumulating
	StateFooterClosed
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateHeaderOpen:
		return "header-open"
	case StateBodyAccumulating:
		return "body-accumulating"
	case StateFooterClosed:
		return "footer-closed"
	case StateFinalized:
		return "finalized"
	}
	return "unknown"
}

// Document is what a Printer receives: the complete body of one page.
type Document struct {
	Title    string
	Language string
	Body     *doctree.Node
}

// Printer writes a finished document. It is called at most once per page.
type Printer interface {
	PrintDocument(doc *Document) error
}

// PrinterFunc adapts a function to Printer.
type PrinterFunc func(doc *Document) error

func (f PrinterFunc) PrintDocument(doc *Document) error { return f(doc) }

// Page is one serialized-form page under construction. Its methods must be
// called in order: OpenHeader, AttachSerializedContent any number of times,
// CloseFooter, HandOff. Out-of-order calls return contract errors and leave
// the page unchanged.
type Page struct {
	w     *Writer
	state State
	title string

	header *doctree.Node
	main   *doctree.Node
	footer *doctree.Node
}

func (p *Page) State() State { return p.state }

// Main returns the accumulating body region, or nil before OpenHeader.
func (p *Page) Main() *doctree.Node { return p.main }

// OpenHeader builds the page header (navigation plus the title heading) and
// the empty body region.
func (p *Page) OpenHeader(title string) error {
	if err := p.expect("OpenHeader", StateCreated); err != nil {
		return err
	}
	p.title = title
	p.header = doctree.New(doctree.RoleHeader).Append(
		p.w.opts.Navigation.Content(true),
		doctree.Styled(doctree.RoleDivision, doctree.StyleHeader,
			doctree.Heading(1, doctree.Text(title)).AddStyle(doctree.StyleTitle)),
	)
	p.main = doctree.Styled(doctree.RoleMain, doctree.StyleSerializedFormContainer)
	p.state = StateHeaderOpen
	return nil
}

// AttachSerializedContent appends a fully built content tree to the body.
// Each call appends after the previous ones; nothing is replaced.
func (p *Page) AttachSerializedContent(tree *doctree.Node) error {
	if err := p.expect("AttachSerializedContent", StateHeaderOpen, StateBodyAccumulating); err != nil {
		return err
	}
	if tree == nil {
		return docerr.Contract("attach of nil content tree")
	}
	if tree.Attached() {
		return docerr.Contract("content tree is already attached elsewhere")
	}
	p.main.Append(tree)
	p.state = StateBodyAccumulating
	return nil
}

// CloseFooter builds the footer: bottom navigation and legal text.
func (p *Page) CloseFooter() error {
	if err := p.expect("CloseFooter", StateHeaderOpen, StateBodyAccumulating); err != nil {
		return err
	}
	footer := doctree.New(doctree.RoleFooter).Append(p.w.opts.Navigation.Content(false))
	if p.w.opts.Bottom != "" {
		footer.Append(doctree.Styled(doctree.RoleParagraph, doctree.StyleLegalCopy,
			doctree.Markup(p.w.opts.Bottom)))
	}
	p.footer = footer
	p.state = StateFooterClosed
	return nil
}

// HandOff assembles the body and passes it to pr exactly once. The page is
// finalized whether or not printing succeeds; a printer error is returned as
// a document output failure.
func (p *Page) HandOff(pr Printer) error {
	if err := p.expect("HandOff", StateFooterClosed); err != nil {
		return err
	}
	if pr == nil {
		return docerr.Contract("hand-off to nil printer")
	}
	p.state = StateFinalized

	body := doctree.New(doctree.RoleBody).Append(p.header, p.main, p.footer)
	doc := &Document{
		Title:    p.windowTitle(),
		Language: p.w.opts.Language,
		Body:     body,
	}
	if err := pr.PrintDocument(doc); err != nil {
		return docerr.OutputFailure(err)
	}
	return nil
}

func (p *Page) windowTitle() string {
	if p.w.opts.WindowTitle == "" {
		return p.title
	}
	return p.title + " (" + p.w.opts.WindowTitle + ")"
}

func (p *Page) expect(op string, allowed ...State) error {
	for _, s := range allowed {
		if p.state == s {
			return nil
		}
	}
	if p.state == StateFinalized {
		return docerr.PageFinalized(op)
	}
	return docerr.Contract("operation not allowed in page state").
		WithContext("operation", op).
		WithContext("state", p.state.String())
}
