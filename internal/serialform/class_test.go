package serialform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/model"
)

func TestBuildClassHeader_NoSuperclass(t *testing.T) {
	widget := &model.Class{Name: "com.example.Widget", Package: "com.example"}

	tests := []struct {
		name    string
		visible bool
	}{
		{"visible class links", true},
		{"invisible class is text", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWriter(t, visibleSet{widget: tt.visible}, nil)
			li, err := w.BuildClassHeader(widget)
			require.NoError(t, err)

			parts := phraseParts(t, headingOf(t, li))
			require.Len(t, parts, 3)
			assert.Equal(t, doctree.Text("Class "), parts[0])
			assert.Equal(t, doctree.Text(" implements Serializable"), parts[2])

			if tt.visible {
				link, ok := parts[1].(*doctree.Node)
				require.True(t, ok, "expected a link node")
				assert.Equal(t, doctree.RoleLink, link.Role())
				assert.Equal(t, "com.example.Widget", link.TextContent())
				href, _ := link.Attr("href")
				assert.Equal(t, "com/example/Widget.html", href)
			} else {
				assert.Equal(t, doctree.Text("com.example.Widget"), parts[1])
			}
		})
	}
}

func TestBuildClassHeader_SuperclassIndependence(t *testing.T) {
	base := &model.Class{Name: "com.example.Base", Package: "com.example"}
	widget := &model.Class{Name: "com.example.Widget", Package: "com.example", Superclass: base}

	tests := []struct {
		name         string
		classVisible bool
		superVisible bool
	}{
		{"both visible", true, true},
		{"class hidden, super visible", false, true},
		{"class visible, super hidden", true, false},
		{"both hidden", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newTestWriter(t, visibleSet{widget: tt.classVisible, base: tt.superVisible}, nil)
			li, err := w.BuildClassHeader(widget)
			require.NoError(t, err)

			heading := headingOf(t, li)
			assert.Equal(t, 3, heading.Level())
			parts := phraseParts(t, heading)
			require.Len(t, parts, 5)
			assert.Equal(t, doctree.Text(" extends "), parts[2])

			_, classIsLink := parts[1].(*doctree.Node)
			assert.Equal(t, tt.classVisible, classIsLink)

			superLink, superIsLink := parts[3].(*doctree.Node)
			assert.Equal(t, tt.superVisible, superIsLink)
			if superIsLink {
				href, _ := superLink.Attr("href")
				assert.Equal(t, "serialized-form.html#com.example.Base", href)
				assert.Equal(t, "Base", superLink.TextContent())
			} else {
				assert.Equal(t, doctree.Text("com.example.Base"), parts[3])
			}
		})
	}
}

func TestBuildClassHeader_Anchors(t *testing.T) {
	a := &model.Class{Name: "p.A", Package: "p"}
	b := &model.Class{Name: "q.A", Package: "q"}
	w := newTestWriter(t, visibleSet{}, nil)

	liA, err := w.BuildClassHeader(a)
	require.NoError(t, err)
	liB, err := w.BuildClassHeader(b)
	require.NoError(t, err)

	assert.Equal(t, "p.A", liA.Anchor())
	assert.Equal(t, "q.A", liB.Anchor())
	assert.NotEqual(t, liA.Anchor(), liB.Anchor())
	assert.True(t, liA.HasStyle(doctree.StyleBlockList))
	assert.Equal(t, doctree.RoleListItem, liA.Role())
}

func TestBuildClassHeader_NilClass(t *testing.T) {
	w := newTestWriter(t, visibleSet{}, nil)
	_, err := w.BuildClassHeader(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, docerr.ErrContractViolation)
}

func TestIsVisibleClass(t *testing.T) {
	c := &model.Class{Name: "p.C"}
	w := newTestWriter(t, visibleSet{c: true}, nil)
	assert.True(t, w.IsVisibleClass(c))
	assert.True(t, w.IsVisibleClass(c))
	assert.False(t, w.IsVisibleClass(&model.Class{Name: "p.C"}))
}
