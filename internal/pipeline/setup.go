package pipeline

import (
	"os"

	"github.com/dgallion1/serialform/internal/config"
	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/links"
	"github.com/dgallion1/serialform/internal/model"
	"github.com/dgallion1/serialform/internal/navigation"
	"github.com/dgallion1/serialform/internal/resources"
	"github.com/dgallion1/serialform/internal/serialform"
	"github.com/dgallion1/serialform/internal/visibility"
)

// LoadBundle loads the configured language and applies message overrides.
func LoadBundle(cfg config.Config) (*resources.Bundle, error) {
	bundle, err := resources.Load(cfg.Language)
	if err != nil {
		return nil, err
	}
	if cfg.MessagesPath == "" {
		return bundle, nil
	}
	f, err := os.Open(cfg.MessagesPath)
	if err != nil {
		return nil, docerr.Wrap(err, docerr.CategoryConfig, "open message overrides").
			WithContext("path", cfg.MessagesPath)
	}
	defer f.Close()
	return bundle.WithOverrides(f)
}

// NewWriter wires the page writer for a documentation set.
func NewWriter(cfg config.Config, set *model.Set, bundle *resources.Bundle) (*serialform.Writer, error) {
	bar, err := navigation.New(bundle, "", cfg.Header, cfg.Footer)
	if err != nil {
		return nil, err
	}
	return serialform.NewWriter(serialform.Options{
		Visibility:  visibility.NewOracle(visibility.SetConfiguration{Set: set}),
		Links:       links.NewLinker(""),
		Navigation:  bar,
		Messages:    bundle,
		Classes:     set,
		Language:    bundle.Language().String(),
		WindowTitle: cfg.WindowTitle,
		Bottom:      cfg.Bottom,
	}), nil
}

// Prepare loads the documentation set and messages named by cfg and returns a
// ready Generator.
func Prepare(cfg config.Config, opts ...Option) (*Generator, error) {
	set, err := model.LoadFile(cfg.ModelPath, cfg.MaxHierarchyDepth)
	if err != nil {
		return nil, err
	}
	bundle, err := LoadBundle(cfg)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(cfg, set, bundle)
	if err != nil {
		return nil, err
	}
	title := set.Title
	if title == "" {
		if title, err = bundle.Text(resources.KeySerializedForm); err != nil {
			return nil, err
		}
	}
	opts = append([]Option{WithMaxRetries(cfg.OutputRetries)}, opts...)
	return NewGenerator(w, set, title, opts...), nil
}
