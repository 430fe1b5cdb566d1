// Package doctree is the in-memory document model every page is assembled from.
//
// A tree is built bottom-up and left-to-right: children are append-only, and a
// node belongs to exactly one parent from the moment it is appended.
package doctree

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Role is the semantic container kind of a node.
type Role string

const (
	RoleFragment       Role = "fragment" // transparent; renders only its children
	RoleBody           Role = "body"
	RoleHeader         Role = "header"
	RoleMain           Role = "main"
	RoleFooter         Role = "footer"
	RoleNav            Role = "nav"
	RoleSection        Role = "section"
	RoleDivision       Role = "division"
	RoleHeading        Role = "heading"
	RoleList           Role = "list"
	RoleOrderedList    Role = "ordered-list"
	RoleListItem       Role = "list-item"
	RoleDefinitionList Role = "definition-list"
	RoleTerm           Role = "definition-term"
	RoleDefinition     Role = "definition-value"
	RoleParagraph      Role = "paragraph"
	RolePreformatted   Role = "preformatted"
	RoleCode           Role = "code"
	RoleEmphasis       Role = "emphasis"
	RoleStrong         Role = "strong"
	RoleSpan           Role = "span"
	RoleLink           Role = "link"
)

// Style is an opaque classification label consumed by renderers.
type Style string

const (
	StyleBlockList               Style = "blockList"
	StyleNameValue               Style = "nameValue"
	StyleTitle                   Style = "title"
	StyleHeader                  Style = "header"
	StyleSerializedFormContainer Style = "serializedFormContainer"
	StyleBlock                   Style = "block"
	StyleMemberSignature         Style = "memberSignature"
	StyleTopNav                  Style = "topNav"
	StyleBottomNav               Style = "bottomNav"
	StyleNavList                 Style = "navList"
	StyleAboutLanguage           Style = "aboutLanguage"
	StyleLegalCopy               Style = "legalCopy"
)

// Content is a *Node, a Text or a Markup.
type Content interface {
	isContent()
}

// Text is an opaque run of character data.
type Text string

func (Text) isContent() {}

// Markup is user-supplied HTML, such as a configured page header, that is
// emitted as-is by renderers able to interpret it.
type Markup string

func (Markup) isContent() {}

// PlainText returns the character data of m with tags dropped and entities
// decoded.
func (m Markup) PlainText() string {
	var buf strings.Builder
	z := html.NewTokenizer(strings.NewReader(string(m)))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return buf.String()
		case html.TextToken:
			buf.Write(z.Text())
		}
	}
}

// Attr is a renderer-specific key/value pair, e.g. a link target.
type Attr struct {
	Key   string
	Value string
}

// Node is one element of a document tree.
type Node struct {
	role     Role
	level    int
	styles   []Style
	attrs    []Attr
	anchor   string
	children []Content
	parent   *Node
}

func (*Node) isContent() {}

// New returns an empty, unattached node.
func New(role Role) *Node {
	return &Node{role: role}
}

// Heading returns a heading node of the given level (1-6) holding content.
func Heading(level int, content ...Content) *Node {
	if level < 1 || level > 6 {
		panic(fmt.Sprintf("doctree: heading level %d out of range", level))
	}
	n := &Node{role: RoleHeading, level: level}
	return n.Append(content...)
}

// Styled returns a node of role carrying style and holding content.
func Styled(role Role, style Style, content ...Content) *Node {
	return New(role).AddStyle(style).Append(content...)
}

// Fragment groups content without introducing a container element.
func Fragment(content ...Content) *Node {
	return New(RoleFragment).Append(content...)
}

// Link returns a hyperlink node pointing at href.
func Link(href string, content ...Content) *Node {
	return New(RoleLink).SetAttr("href", href).Append(content...)
}

func (n *Node) Role() Role { return n.role }
func (n *Node) Level() int { return n.level }
func (n *Node) Anchor() string { return n.anchor }

// Attached reports whether the node already has a parent.
func (n *Node) Attached() bool { return n.parent != nil }

// AddStyle tags the node with style. Duplicate styles are ignored.
func (n *Node) AddStyle(s Style) *Node {
	if !n.HasStyle(s) {
		n.styles = append(n.styles, s)
	}
	return n
}

func (n *Node) HasStyle(s Style) bool {
	for _, have := range n.styles {
		if have == s {
			return true
		}
	}
	return false
}

// Styles returns a copy of the node's styles in the order they were added.
func (n *Node) Styles() []Style {
	return append([]Style(nil), n.styles...)
}

// SetAttr sets or replaces a renderer attribute.
func (n *Node) SetAttr(key, value string) *Node {
	for i := range n.attrs {
		if n.attrs[i].Key == key {
			n.attrs[i].Value = value
			return n
		}
	}
	n.attrs = append(n.attrs, Attr{Key: key, Value: value})
	return n
}

func (n *Node) Attr(key string) (string, bool) {
	for _, a := range n.attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

func (n *Node) Attrs() []Attr {
	return append([]Attr(nil), n.attrs...)
}

// SetAnchor attaches a deep-link identifier to the node.
func (n *Node) SetAnchor(id string) *Node {
	n.anchor = id
	return n
}

// Append adds content as the node's last children, in order. Appending a node
// transfers ownership: a node that already has a parent, or that would become
// its own ancestor, is rejected with a panic.
func (n *Node) Append(content ...Content) *Node {
	for _, c := range content {
		switch v := c.(type) {
		case Text, Markup:
			n.children = append(n.children, v)
		case *Node:
			n.adopt(v)
			n.children = append(n.children, v)
		default:
			panic(fmt.Sprintf("doctree: unsupported content %T", c))
		}
	}
	return n
}

// AppendText is shorthand for Append(Text(s)).
func (n *Node) AppendText(s string) *Node {
	return n.Append(Text(s))
}

func (n *Node) adopt(child *Node) {
	if child == nil {
		panic("doctree: append of nil node")
	}
	if child.parent != nil {
		panic(fmt.Sprintf("doctree: %s node is already attached to a %s node", child.role, child.parent.role))
	}
	for p := n; p != nil; p = p.parent {
		if p == child {
			panic(fmt.Sprintf("doctree: appending %s node would create a cycle", child.role))
		}
	}
	child.parent = n
}

// Len returns the number of direct children.
func (n *Node) Len() int { return len(n.children) }

// Child returns the i-th direct child.
func (n *Node) Child(i int) Content { return n.children[i] }

// Children returns a copy of the direct children.
func (n *Node) Children() []Content {
	return append([]Content(nil), n.children...)
}

// ChildNodes returns the direct children that are nodes, skipping text and markup.
func (n *Node) ChildNodes() []*Node {
	var out []*Node
	for _, c := range n.children {
		if cn, ok := c.(*Node); ok {
			out = append(out, cn)
		}
	}
	return out
}

// Walk visits n and its descendants in document order. Returning false from fn
// skips the children of the visited content. Traversal uses an explicit stack,
// so depth is bounded only by memory.
func (n *Node) Walk(fn func(c Content) bool) {
	stack := []Content{n}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(c) {
			continue
		}
		if node, ok := c.(*Node); ok {
			for i := len(node.children) - 1; i >= 0; i-- {
				stack = append(stack, node.children[i])
			}
		}
	}
}

// Find returns the first node in document order for which match is true.
func (n *Node) Find(match func(*Node) bool) *Node {
	var found *Node
	n.Walk(func(c Content) bool {
		if found != nil {
			return false
		}
		if node, ok := c.(*Node); ok && match(node) {
			found = node
			return false
		}
		return true
	})
	return found
}

// TextContent concatenates all text beneath n, including the plain text of
// markup.
func (n *Node) TextContent() string {
	var buf strings.Builder
	n.Walk(func(c Content) bool {
		switch t := c.(type) {
		case Text:
			buf.WriteString(string(t))
		case Markup:
			buf.WriteString(t.PlainText())
		}
		return true
	})
	return buf.String()
}
