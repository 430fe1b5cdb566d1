// Package navigation builds the navigation bar shown above and below a page.
package navigation

import (
	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/resources"
)

type item struct {
	key  string
	href string // empty renders a plain label
}

var items = []item{
	{resources.KeyNavOverview, "index.html"},
	{resources.KeyNavPackage, ""},
	{resources.KeyNavClass, ""},
	{resources.KeyNavTree, "overview-tree.html"},
	{resources.KeyNavDeprecated, "deprecated-list.html"},
	{resources.KeyNavIndex, "index-all.html"},
	{resources.KeyNavHelp, "help-doc.html"},
}

// Bar is the navigation bar of one page. It resolves its labels once, so
// building content cannot fail.
type Bar struct {
	root       string
	labels     []string
	skip       string
	userHeader string
	userFooter string
}

// New resolves the bar's labels from bundle. root prefixes every href.
func New(bundle *resources.Bundle, root, userHeader, userFooter string) (*Bar, error) {
	b := &Bar{root: root, userHeader: userHeader, userFooter: userFooter}
	for _, it := range items {
		label, err := bundle.Text(it.key)
		if err != nil {
			return nil, err
		}
		b.labels = append(b.labels, label)
	}
	skip, err := bundle.Text(resources.KeySkipNavigation)
	if err != nil {
		return nil, err
	}
	b.skip = skip
	return b, nil
}

// Content returns a fresh navigation node for the header (top) or footer
// (bottom) of the page.
func (b *Bar) Content(header bool) *doctree.Node {
	style, id, user := doctree.StyleTopNav, "navbar.top", b.userHeader
	if !header {
		style, id, user = doctree.StyleBottomNav, "navbar.bottom", b.userFooter
	}
	skipID := "skip." + id

	nav := doctree.Styled(doctree.RoleNav, style).SetAnchor(id)
	nav.Append(doctree.Styled(doctree.RoleDivision, "skipNav",
		doctree.Link("#"+skipID, doctree.Text(b.skip))))

	list := doctree.Styled(doctree.RoleList, doctree.StyleNavList).SetAttr("title", "Navigation")
	for i, it := range items {
		li := doctree.New(doctree.RoleListItem)
		if it.href != "" {
			li.Append(doctree.Link(b.root+it.href, doctree.Text(b.labels[i])))
		} else {
			li.AppendText(b.labels[i])
		}
		list.Append(li)
	}
	nav.Append(list)

	if user != "" {
		nav.Append(doctree.Styled(doctree.RoleDivision, doctree.StyleAboutLanguage, doctree.Markup(user)))
	}
	nav.Append(doctree.New(doctree.RoleSpan).SetAnchor(skipID))
	return nav
}
