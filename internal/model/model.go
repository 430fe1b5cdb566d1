// Package model holds the documentation set a serialized-form page is built from:
// packages, serializable classes, and their superclass chains.
package model

import (
	"strings"
)

// Class describes one class known to the documentation run.
type Class struct {
	Name       string // fully qualified
	Package    string
	Display    string // configured label for links; defaults to the simple name
	Superclass *Class // nil at the top of the serializable hierarchy

	// Included and Generated back the visibility lookups: membership in the
	// run's included types, and whether documentation was produced for it.
	Included  bool
	Generated bool
	External  bool // referenced as a superclass but not declared

	SerialVersionUID string
	Fields           []Field
	Methods          []Method
}

// Field is a serializable field of a class.
type Field struct {
	Name        string `yaml:"name"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
}

// Method is a serialization method (readObject, writeReplace, ...).
type Method struct {
	Name        string `yaml:"name"`
	Signature   string `yaml:"signature"`
	Description string `yaml:"description"`
}

// Package groups the serializable classes of one package in declaration order.
type Package struct {
	Name    string
	Classes []*Class
}

// Set is a loaded documentation set.
type Set struct {
	Title    string
	Packages []*Package

	byName map[string]*Class
}

// SimpleName returns the part of the qualified name after the package.
func (c *Class) SimpleName() string {
	if c.Package != "" && strings.HasPrefix(c.Name, c.Package+".") {
		return c.Name[len(c.Package)+1:]
	}
	if i := strings.LastIndexByte(c.Name, '.'); i >= 0 {
		return c.Name[i+1:]
	}
	return c.Name
}

// Hierarchy returns c followed by its superclasses, nearest first. It stops at
// the first repeated class, so a malformed chain cannot loop.
func (c *Class) Hierarchy() []*Class {
	var out []*Class
	seen := make(map[*Class]bool)
	for cur := c; cur != nil && !seen[cur]; cur = cur.Superclass {
		seen[cur] = true
		out = append(out, cur)
	}
	return out
}

// Lookup finds a declared or external class by qualified name.
func (s *Set) Lookup(name string) (*Class, bool) {
	c, ok := s.byName[name]
	return c, ok
}

// Classes returns every declared class in page order.
func (s *Set) Classes() []*Class {
	var out []*Class
	for _, p := range s.Packages {
		out = append(out, p.Classes...)
	}
	return out
}

// IncludedTypes returns the qualified names of all included classes.
func (s *Set) IncludedTypes() []string {
	var out []string
	for _, c := range s.Classes() {
		if c.Included {
			out = append(out, c.Name)
		}
	}
	return out
}
