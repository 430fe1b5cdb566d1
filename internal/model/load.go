package model

import (
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dgallion1/serialform/internal/docerr"
)

type rawSet struct {
	Title    string       `yaml:"title"`
	Packages []rawPackage `yaml:"packages"`
}

type rawPackage struct {
	Name    string     `yaml:"name"`
	Classes []rawClass `yaml:"classes"`
}

type rawClass struct {
	Name             string   `yaml:"name"`
	Display          string   `yaml:"display"`
	Superclass       string   `yaml:"superclass"`
	Included         *bool    `yaml:"included"`
	Generated        *bool    `yaml:"generated"`
	SerialVersionUID string   `yaml:"serialVersionUID"`
	Fields           []Field  `yaml:"fields"`
	Methods          []Method `yaml:"methods"`
}

// LoadFile reads a documentation set from a YAML file.
func LoadFile(path string, maxDepth int) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, docerr.Wrap(err, docerr.CategoryConfig, "open documentation set").
			WithContext("path", path)
	}
	defer f.Close()
	return Load(f, maxDepth)
}

// Load decodes a documentation set, resolves superclass references, and rejects
// superclass chains that are cyclic or longer than maxDepth (0 disables the
// depth limit).
func Load(r io.Reader, maxDepth int) (*Set, error) {
	var raw rawSet
	if err := yaml.NewDecoder(r).Decode(&raw); err != nil && err != io.EOF {
		return nil, docerr.Wrap(err, docerr.CategoryModel, "decode documentation set")
	}

	set := &Set{Title: raw.Title, byName: make(map[string]*Class)}
	supers := make(map[*Class]string)

	for _, rp := range raw.Packages {
		pkg := &Package{Name: rp.Name}
		for _, rc := range rp.Classes {
			name := strings.TrimSpace(rc.Name)
			if name == "" {
				return nil, docerr.New(docerr.CategoryModel, "class without a qualified name").
					WithContext("package", rp.Name)
			}
			if _, dup := set.byName[name]; dup {
				return nil, docerr.New(docerr.CategoryModel, "duplicate class").WithContext("class", name)
			}
			c := &Class{
				Name:             name,
				Package:          rp.Name,
				Display:          rc.Display,
				Included:         boolOr(rc.Included, true),
				Generated:        boolOr(rc.Generated, true),
				SerialVersionUID: rc.SerialVersionUID,
				Fields:           rc.Fields,
				Methods:          rc.Methods,
			}
			if c.Display == "" {
				c.Display = c.Name
			}
			set.byName[name] = c
			pkg.Classes = append(pkg.Classes, c)
			if rc.Superclass != "" {
				supers[c] = strings.TrimSpace(rc.Superclass)
			}
		}
		set.Packages = append(set.Packages, pkg)
	}

	for _, c := range set.Classes() {
		name, ok := supers[c]
		if !ok {
			continue
		}
		sc, ok := set.byName[name]
		if !ok {
			sc = external(name)
			set.byName[name] = sc
		}
		c.Superclass = sc
	}

	for _, c := range set.Classes() {
		if err := checkChain(c, maxDepth); err != nil {
			return nil, err
		}
	}
	return set, nil
}

func checkChain(c *Class, maxDepth int) error {
	chain := c.Hierarchy()
	if chain[len(chain)-1].Superclass != nil {
		return docerr.CyclicHierarchy(c.Name)
	}
	if maxDepth > 0 && len(chain)-1 > maxDepth {
		return docerr.HierarchyTooDeep(c.Name, maxDepth)
	}
	return nil
}

func external(name string) *Class {
	c := &Class{Name: name, External: true}
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		c.Package = name[:i]
	}
	c.Display = name
	return c
}

func boolOr(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

// String is used in log output.
func (c *Class) String() string {
	if c == nil {
		return "<nil>"
	}
	return c.Name
}
