package direction

import (
	"strings"

	"github.com/gorilla/css/scanner"
	"golang.org/x/net/html"
)

const styleAttr = "style"

// Declaration is one property: value pair from an inline style attribute.
type Declaration struct {
	Property string
	Value    string
}

// ParseStyle splits an inline style attribute into declarations.
// Standard property names are lowercased; custom properties (--name) keep
// their case and may be empty. Comments and other empty declarations are
// dropped.
func ParseStyle(style string) []Declaration {
	var (
		decls   []Declaration
		name    strings.Builder
		value   strings.Builder
		inValue bool
		depth   int
	)
	flush := func() {
		prop := normalizeProperty(name.String())
		val := strings.TrimSpace(value.String())
		if inValue && prop != "" && (val != "" || isCustomProperty(prop)) {
			decls = append(decls, Declaration{Property: prop, Value: val})
		}
		name.Reset()
		value.Reset()
		inValue = false
	}

	s := scanner.New(style)
	for {
		tok := s.Next()
		switch tok.Type {
		case scanner.TokenEOF, scanner.TokenError:
			flush()
			return decls
		case scanner.TokenComment, scanner.TokenBOM:
			continue
		case scanner.TokenS:
			if inValue {
				value.WriteByte(' ')
			}
			continue
		case scanner.TokenFunction:
			depth++
		case scanner.TokenChar:
			switch tok.Value {
			case "(":
				depth++
			case ")":
				if depth > 0 {
					depth--
				}
			case ";":
				if depth == 0 {
					flush()
					continue
				}
			case ":":
				if !inValue && depth == 0 {
					inValue = true
					continue
				}
			}
		}
		if inValue {
			value.WriteString(tok.Value)
		} else {
			name.WriteString(tok.Value)
		}
	}
}

// isCustomProperty reports whether prop is a case-sensitive --name property.
func isCustomProperty(prop string) bool {
	return strings.HasPrefix(prop, "--")
}

func normalizeProperty(prop string) string {
	prop = strings.TrimSpace(prop)
	if isCustomProperty(prop) {
		return prop
	}
	return strings.ToLower(prop)
}

// FormatStyle renders declarations as "prop: value; prop: value".
func FormatStyle(decls []Declaration) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.Property+": "+d.Value)
	}
	return strings.Join(parts, "; ")
}

// SetStyleProperty sets one inline style property on n, keeping every other
// declaration in place. Later duplicates of the property are dropped.
func SetStyleProperty(n *html.Node, property, value string) {
	property = normalizeProperty(property)
	decls := ParseStyle(Attr(n, styleAttr))

	out := make([]Declaration, 0, len(decls)+1)
	found := false
	for _, d := range decls {
		if d.Property != property {
			out = append(out, d)
			continue
		}
		if found {
			continue
		}
		found = true
		out = append(out, Declaration{Property: property, Value: value})
	}
	if !found {
		out = append(out, Declaration{Property: property, Value: value})
	}
	SetAttr(n, styleAttr, FormatStyle(out))
}

// StyleProperty returns the value of an inline style property, if present.
func StyleProperty(n *html.Node, property string) (string, bool) {
	property = normalizeProperty(property)
	for _, d := range ParseStyle(Attr(n, styleAttr)) {
		if d.Property == property {
			return d.Value, true
		}
	}
	return "", false
}

// Attr returns the value of a non-namespaced attribute.
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr overwrites a non-namespaced attribute in place, or appends it.
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}
