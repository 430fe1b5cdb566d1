package serialform

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/links"
	"github.com/dgallion1/serialform/internal/model"
	"github.com/dgallion1/serialform/internal/navigation"
	"github.com/dgallion1/serialform/internal/resources"
)

type visibleSet map[*model.Class]bool

func (v visibleSet) IsVisible(c *model.Class) bool { return v[c] }

type classIndex map[string]*model.Class

func (ci classIndex) Lookup(name string) (*model.Class, bool) {
	c, ok := ci[name]
	return c, ok
}

func newTestWriter(t *testing.T, visible visibleSet, classes classIndex) *Writer {
	t.Helper()
	bundle, err := resources.Load("en")
	require.NoError(t, err)
	bar, err := navigation.New(bundle, "", "", "")
	require.NoError(t, err)
	return NewWriter(Options{
		Visibility:  visible,
		Links:       links.NewLinker(""),
		Navigation:  bar,
		Messages:    bundle,
		Classes:     classes,
		Language:    "en",
		WindowTitle: "Example API",
		Bottom:      "Copyright Example",
	})
}

type recordingPrinter struct {
	docs []*Document
	err  error
}

func (r *recordingPrinter) PrintDocument(doc *Document) error {
	r.docs = append(r.docs, doc)
	return r.err
}

func headingOf(t *testing.T, li *doctree.Node) *doctree.Node {
	t.Helper()
	h := li.Find(func(n *doctree.Node) bool { return n.Role() == doctree.RoleHeading })
	require.NotNil(t, h)
	return h
}

// phraseParts returns the children of the message fragment inside heading.
func phraseParts(t *testing.T, heading *doctree.Node) []doctree.Content {
	t.Helper()
	require.Equal(t, 1, heading.Len())
	frag, ok := heading.Child(0).(*doctree.Node)
	require.True(t, ok)
	require.Equal(t, doctree.RoleFragment, frag.Role())
	return frag.Children()
}
