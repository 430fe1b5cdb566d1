package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/serialform/internal/config"
	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/doctree"
	"github.com/dgallion1/serialform/internal/model"
	"github.com/dgallion1/serialform/internal/resources"
	"github.com/dgallion1/serialform/internal/serialform"
)

const setYAML = `
packages:
  - name: com.example.app
    classes:
      - name: com.example.app.Widget
        superclass: com.example.app.Base
        serialVersionUID: "42L"
        fields:
          - name: label
            type: java.lang.String
        methods:
          - name: readObject
            signature: "private void readObject(java.io.ObjectInputStream in)"
            description: Restores the *label*.
      - name: com.example.app.Base
        generated: false
  - name: com.example.empty
`

func newTestGenerator(t *testing.T, opts ...Option) *Generator {
	t.Helper()
	set, err := model.Load(strings.NewReader(setYAML), 16)
	require.NoError(t, err)
	bundle, err := resources.Load("en")
	require.NoError(t, err)
	cfg := config.Defaults()
	cfg.WindowTitle = "Example API"
	w, err := NewWriter(cfg, set, bundle)
	require.NoError(t, err)
	opts = append([]Option{WithBackoff(func(int) time.Duration { return time.Millisecond })}, opts...)
	return NewGenerator(w, set, "Serialized Form", opts...)
}

type countingPrinter struct {
	docs  []*serialform.Document
	fails int
}

func (p *countingPrinter) PrintDocument(doc *serialform.Document) error {
	p.docs = append(p.docs, doc)
	if len(p.docs) <= p.fails {
		return errors.New("disk full")
	}
	return nil
}

func findAnchor(root *doctree.Node, anchor string) *doctree.Node {
	return root.Find(func(n *doctree.Node) bool { return n.Anchor() == anchor })
}

func TestGenerate_PageStructure(t *testing.T) {
	g := newTestGenerator(t)
	pr := &countingPrinter{}
	require.NoError(t, g.Generate(pr))
	require.Len(t, pr.docs, 1)

	doc := pr.docs[0]
	assert.Equal(t, "Serialized Form (Example API)", doc.Title)
	assert.Equal(t, "en", doc.Language)

	body := doc.Body
	require.Equal(t, 3, body.Len())
	main := body.ChildNodes()[1]
	assert.Equal(t, doctree.RoleMain, main.Role())
	require.Equal(t, 1, main.Len())
	summaries := main.ChildNodes()[0]
	assert.True(t, summaries.HasStyle(doctree.StyleBlockList))

	// The empty package is skipped.
	assert.Equal(t, 1, summaries.Len())
	assert.Contains(t, summaries.TextContent(), "Package com.example.app")
	assert.NotContains(t, summaries.TextContent(), "com.example.empty")

	widget := findAnchor(body, "com.example.app.Widget")
	require.NotNil(t, widget)
	text := widget.TextContent()
	assert.Contains(t, text, "Class com.example.app.Widget extends com.example.app.Base implements Serializable")
	assert.Contains(t, text, "serialVersionUID:")
	assert.Contains(t, text, "42L")
	assert.Contains(t, text, "readObject")
	assert.Contains(t, text, "label")

	// Base is not generated, so its own heading carries no link.
	base := findAnchor(body, "com.example.app.Base")
	require.NotNil(t, base)
	link := base.Find(func(n *doctree.Node) bool { return n.Role() == doctree.RoleLink })
	assert.Nil(t, link)
	uid := base.Find(func(n *doctree.Node) bool { return n.HasStyle(doctree.StyleNameValue) })
	assert.Nil(t, uid)
}

func TestGenerate_IndependentPages(t *testing.T) {
	g := newTestGenerator(t)
	pr := &countingPrinter{}
	require.NoError(t, g.Generate(pr))
	require.NoError(t, g.Generate(pr))
	require.Len(t, pr.docs, 2)
	assert.NotSame(t, pr.docs[0].Body, pr.docs[1].Body)
	assert.Equal(t, pr.docs[0].Body.TextContent(), pr.docs[1].Body.TextContent())
}

func TestRun_RetriesOutputFailures(t *testing.T) {
	g := newTestGenerator(t, WithMaxRetries(3))
	pr := &countingPrinter{fails: 2}
	require.NoError(t, g.Run(context.Background(), pr, "html"))
	assert.Len(t, pr.docs, 3)
}

func TestRun_GivesUp(t *testing.T) {
	g := newTestGenerator(t, WithMaxRetries(1))
	pr := &countingPrinter{fails: 5}
	err := g.Run(context.Background(), pr, "html")
	require.Error(t, err)
	assert.ErrorIs(t, err, docerr.ErrOutputFailure)
	assert.Len(t, pr.docs, 2)
}

func TestRun_NonRetryableNotRepeated(t *testing.T) {
	g := newTestGenerator(t)
	calls := 0
	err := g.Run(context.Background(), serialform.PrinterFunc(func(*serialform.Document) error {
		calls++
		return nil
	}), "html")
	require.NoError(t, err)

	g.set.Packages[0].Classes = append(g.set.Packages[0].Classes, nil)
	err = g.Run(context.Background(), serialform.PrinterFunc(func(*serialform.Document) error {
		calls++
		return nil
	}), "html")
	require.Error(t, err)
	assert.ErrorIs(t, err, docerr.ErrContractViolation)
	assert.Equal(t, 1, calls)
}

func TestRun_ContextCancelled(t *testing.T) {
	g := newTestGenerator(t, WithBackoff(func(int) time.Duration { return time.Hour }))
	ctx, cancel := context.WithCancel(context.Background())
	pr := serialform.PrinterFunc(func(*serialform.Document) error {
		cancel()
		return errors.New("broken pipe")
	})
	err := g.Run(ctx, pr, "html")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, docerr.ErrOutputFailure)
}

func TestPrepare(t *testing.T) {
	dir := t.TempDir()
	modelPath := filepath.Join(dir, "set.yaml")
	require.NoError(t, os.WriteFile(modelPath, []byte(setYAML), 0o644))
	overrides := filepath.Join(dir, "messages.yaml")
	require.NoError(t, os.WriteFile(overrides, []byte("doclet.Serialized_Form: Wire Format\n"), 0o644))

	cfg := config.Defaults()
	cfg.ModelPath = modelPath
	cfg.MessagesPath = overrides

	g, err := Prepare(cfg)
	require.NoError(t, err)
	pr := &countingPrinter{}
	require.NoError(t, g.Generate(pr))
	require.Len(t, pr.docs, 1)
	assert.Equal(t, "Wire Format", pr.docs[0].Title)
}

func TestPrepare_MissingModel(t *testing.T) {
	cfg := config.Defaults()
	cfg.ModelPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err := Prepare(cfg)
	require.Error(t, err)
	assert.Equal(t, docerr.CategoryConfig, docerr.GetCategory(err))
}

func TestBackoff(t *testing.T) {
	for attempt, base := range []time.Duration{time.Second, 2 * time.Second, 4 * time.Second} {
		d := Backoff(attempt)
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+base/2+1)
	}
	assert.Less(t, Backoff(10), 46*time.Second)
}

func TestGenerate_ClassAndSuperclassLabels(t *testing.T) {
	set, err := model.Load(strings.NewReader(`
packages:
  - name: com.example.shapes
    classes:
      - name: com.example.shapes.Shape
      - name: com.example.shapes.Circle
        superclass: com.example.shapes.Shape
`), 16)
	require.NoError(t, err)
	bundle, err := resources.Load("en")
	require.NoError(t, err)
	w, err := NewWriter(config.Defaults(), set, bundle)
	require.NoError(t, err)

	pr := &countingPrinter{}
	require.NoError(t, NewGenerator(w, set, "Serialized Form").Generate(pr))
	require.Len(t, pr.docs, 1)
	body := pr.docs[0].Body

	circle := findAnchor(body, "com.example.shapes.Circle")
	require.NotNil(t, circle)
	assert.Contains(t, circle.TextContent(), "Class com.example.shapes.Circle extends Shape implements Serializable")

	shape := findAnchor(body, "com.example.shapes.Shape")
	require.NotNil(t, shape)
	assert.Contains(t, shape.TextContent(), "Class com.example.shapes.Shape implements Serializable")
}
