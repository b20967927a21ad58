package direction

import (
	"fmt"

	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

type compiledRule struct {
	rule     Rule
	selector cascadia.Selector
}

// Initializer applies a compiled Policy to HTML trees.
// It holds no per-page state and is safe for concurrent use.
type Initializer struct {
	dir   Direction
	lang  string
	rules []compiledRule
}

// Report counts the elements each rule matched during one Apply.
type Report struct {
	RootFound bool
	Matched   map[Role]int
}

// Total returns the number of element matches across every rule.
func (r Report) Total() int {
	total := 0
	for _, n := range r.Matched {
		total += n
	}
	return total
}

// New compiles the policy's selectors.
func New(policy Policy) (*Initializer, error) {
	if policy.Dir != LTR && policy.Dir != RTL {
		return nil, fmt.Errorf("unsupported document direction %q", policy.Dir)
	}
	in := &Initializer{
		dir:   policy.Dir,
		lang:  policy.Lang.String(),
		rules: make([]compiledRule, 0, len(policy.Rules)),
	}
	for _, rule := range policy.Rules {
		group := rule.Selector()
		if group == "" {
			return nil, fmt.Errorf("rule %q has no selectors", rule.Role)
		}
		sel, err := cascadia.Compile(group)
		if err != nil {
			return nil, fmt.Errorf("compile %s selectors: %w", rule.Role, err)
		}
		in.rules = append(in.rules, compiledRule{rule: rule, selector: sel})
	}
	return in, nil
}

// MustNew is like New but panics on an invalid policy.
func MustNew(policy Policy) *Initializer {
	in, err := New(policy)
	if err != nil {
		panic(err)
	}
	return in
}

var defaultInitializer = MustNew(DefaultPolicy())

// Default returns the initializer for DefaultPolicy.
func Default() *Initializer {
	return defaultInitializer
}

// Apply runs the default policy over root. See (*Initializer).Apply.
func Apply(root *html.Node) Report {
	return defaultInitializer.Apply(root)
}

// Apply mutates the tree under root: the document element gets the policy's
// dir and lang, then every rule's matches, in document order, get inline
// direction and text-align. Selectors that match nothing are skipped.
// Running Apply again on the same tree leaves it unchanged.
func (i *Initializer) Apply(root *html.Node) Report {
	report := Report{Matched: make(map[Role]int, len(i.rules))}
	if root == nil {
		return report
	}

	if docEl := documentElement(root); docEl != nil {
		SetAttr(docEl, "dir", string(i.dir))
		SetAttr(docEl, "lang", i.lang)
		report.RootFound = true
	}

	for _, cr := range i.rules {
		matches := cr.selector.MatchAll(root)
		for _, el := range matches {
			SetStyleProperty(el, "direction", string(cr.rule.Direction))
			SetStyleProperty(el, "text-align", cr.rule.TextAlign)
		}
		report.Matched[cr.rule.Role] += len(matches)
	}
	return report
}

// documentElement returns the <html> element of the tree containing n.
func documentElement(n *html.Node) *html.Node {
	if n == nil {
		return nil
	}
	for n.Parent != nil {
		n = n.Parent
	}
	if n.Type == html.ElementNode && n.DataAtom == atom.Html {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Html {
			return c
		}
	}
	return nil
}
