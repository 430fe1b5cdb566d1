// Package resources looks up localized message templates and substitutes
// document content into their numbered placeholders.
package resources

import (
	"embed"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/dgallion1/serialform/internal/docerr"
	"github.com/dgallion1/serialform/internal/doctree"
)

// Message keys used by the serialized-form page.
const (
	KeySerializedForm      = "doclet.Serialized_Form"
	KeyPackage             = "doclet.Package"
	KeyClassImplements     = "doclet.Class_0_implements_serializable"
	KeyClassExtends        = "doclet.Class_0_extends_implements_serializable"
	KeySerialVersionUID    = "doclet.Serial_Version_UID"
	KeySerializedFields    = "doclet.Serialized_Form_fields"
	KeySerializationMethod = "doclet.Serialized_Form_methods"
	KeySkipNavigation      = "doclet.Skip_navigation_links"
	KeyNavOverview         = "doclet.navOverview"
	KeyNavPackage          = "doclet.navPackage"
	KeyNavClass            = "doclet.navClass"
	KeyNavTree             = "doclet.navTree"
	KeyNavDeprecated       = "doclet.navDeprecated"
	KeyNavIndex            = "doclet.navIndex"
	KeyNavHelp             = "doclet.navHelp"
)

//go:embed messages/*.yaml
var bundled embed.FS

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.Japanese,
	language.SimplifiedChinese,
}

var matcher = language.NewMatcher(supported)

// Bundle is an immutable set of messages for one language. Keys missing from
// the selected language fall back to English.
type Bundle struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
}

// Load selects the best supported language for lang (a BCP 47 tag such as
// "ja-JP") and loads its bundled messages.
func Load(lang string) (*Bundle, error) {
	want, err := language.Parse(lang)
	if err != nil {
		return nil, docerr.Wrap(err, docerr.CategoryConfig, "invalid language tag").
			WithContext("language", lang)
	}
	_, idx, _ := matcher.Match(want)
	tag := supported[idx]

	fallback, err := readBundled(language.English)
	if err != nil {
		return nil, err
	}
	b := &Bundle{tag: tag, messages: fallback, fallback: fallback}
	if tag != language.English {
		if b.messages, err = readBundled(tag); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func readBundled(tag language.Tag) (map[string]string, error) {
	data, err := bundled.ReadFile("messages/" + tag.String() + ".yaml")
	if err != nil {
		return nil, docerr.Wrap(err, docerr.CategoryInternal, "bundled messages missing").
			WithContext("language", tag.String())
	}
	m := make(map[string]string)
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, docerr.Wrap(err, docerr.CategoryInternal, "bundled messages invalid").
			WithContext("language", tag.String())
	}
	return m, nil
}

// WithOverrides returns a copy of b whose messages are overridden by the flat
// key/value YAML document read from r.
func (b *Bundle) WithOverrides(r io.Reader) (*Bundle, error) {
	over := make(map[string]string)
	if err := yaml.NewDecoder(r).Decode(&over); err != nil && err != io.EOF {
		return nil, docerr.Wrap(err, docerr.CategoryConfig, "decode message overrides")
	}
	merged := make(map[string]string, len(b.messages)+len(over))
	for k, v := range b.messages {
		merged[k] = v
	}
	for k, v := range over {
		merged[k] = v
	}
	return &Bundle{tag: b.tag, messages: merged, fallback: b.fallback}, nil
}

// Language returns the language the bundle was resolved to.
func (b *Bundle) Language() language.Tag { return b.tag }

// Text returns the raw message for key.
func (b *Bundle) Text(key string) (string, error) {
	if s, ok := b.messages[key]; ok {
		return s, nil
	}
	if s, ok := b.fallback[key]; ok {
		return s, nil
	}
	return "", docerr.MissingMessage(key, b.tag.String())
}

// Content resolves key and substitutes args for the {0}, {1}, ... placeholders
// of its template. Each argument must be used exactly once; arguments are
// inserted as content, never flattened to text. The result is a fragment node
// that owns the arguments.
func (b *Bundle) Content(key string, args ...doctree.Content) (*doctree.Node, error) {
	tmpl, err := b.Text(key)
	if err != nil {
		return nil, err
	}
	parts, err := parseTemplate(tmpl, len(args))
	if err != nil {
		return nil, docerr.Wrap(err, docerr.CategoryResource, "invalid message template").
			WithContext("key", key)
	}
	frag := doctree.Fragment()
	for _, p := range parts {
		if p.arg >= 0 {
			frag.Append(args[p.arg])
		} else {
			frag.AppendText(p.text)
		}
	}
	return frag, nil
}

type part struct {
	text string
	arg  int // -1 for literal text
}

func parseTemplate(tmpl string, nargs int) ([]part, error) {
	var parts []part
	used := make([]bool, nargs)
	lit := 0
	for i := 0; i < len(tmpl); i++ {
		if tmpl[i] != '{' {
			continue
		}
		j := i + 1
		for j < len(tmpl) && tmpl[j] >= '0' && tmpl[j] <= '9' {
			j++
		}
		if j == i+1 || j >= len(tmpl) || tmpl[j] != '}' {
			continue
		}
		n, _ := strconv.Atoi(tmpl[i+1 : j])
		if n >= nargs {
			return nil, fmt.Errorf("placeholder {%d} has no argument (%d given)", n, nargs)
		}
		if used[n] {
			return nil, fmt.Errorf("placeholder {%d} used more than once", n)
		}
		used[n] = true
		if lit < i {
			parts = append(parts, part{text: tmpl[lit:i], arg: -1})
		}
		parts = append(parts, part{arg: n})
		lit = j + 1
		i = j
	}
	if lit < len(tmpl) {
		parts = append(parts, part{text: tmpl[lit:], arg: -1})
	}
	for n, ok := range used {
		if !ok {
			return nil, fmt.Errorf("argument %d is not referenced", n)
		}
	}
	return parts, nil
}
