// Package visibility decides which classes are part of the documentation run
// and may therefore be hyperlink targets.
package visibility

import "github.com/dgallion1/serialform/internal/model"

// TypeSet is a read-only set of classes.
type TypeSet interface {
	Contains(c *model.Class) bool
}

// Configuration is the run configuration the oracle consults.
type Configuration interface {
	// IncludedTypes returns every type eligible for documentation.
	IncludedTypes() TypeSet
	// IsGeneratedDoc reports whether documentation output was produced for c.
	IsGeneratedDoc(c *model.Class) bool
}

// Oracle answers visibility queries. It keeps no cache: every query goes to
// the configuration.
type Oracle struct {
	cfg Configuration
}

func NewOracle(cfg Configuration) *Oracle {
	return &Oracle{cfg: cfg}
}

// IsVisible reports whether c is included and has generated documentation.
func (o *Oracle) IsVisible(c *model.Class) bool {
	if c == nil {
		return false
	}
	return o.cfg.IncludedTypes().Contains(c) && o.cfg.IsGeneratedDoc(c)
}

// SetConfiguration adapts a loaded model.Set.
type SetConfiguration struct {
	Set *model.Set
}

type setTypes struct{ set *model.Set }

func (s setTypes) Contains(c *model.Class) bool {
	found, ok := s.set.Lookup(c.Name)
	return ok && found == c && c.Included && !c.External
}

func (sc SetConfiguration) IncludedTypes() TypeSet {
	return setTypes{set: sc.Set}
}

func (sc SetConfiguration) IsGeneratedDoc(c *model.Class) bool {
	return c.Generated && !c.External
}
