package direction

import (
	"strings"

	"golang.org/x/text/language"
)

// Direction is a CSS/HTML base text direction value.
type Direction string

const (
	// LTR renders text left to right.
	LTR Direction = "ltr"
	// RTL renders text right to left.
	RTL Direction = "rtl"
)

// Align returns the text-align value that pairs with the direction.
func (d Direction) Align() string {
	if d == RTL {
		return "right"
	}
	return "left"
}

// Role names the purpose of a rule in the policy table.
type Role string

const (
	// RoleForceLTR pins elements whose content must not mirror.
	RoleForceLTR Role = "force-ltr"
	// RoleForceRTL pins page regions that must flow right to left.
	RoleForceRTL Role = "force-rtl"
)

// Rule maps a selector set to the inline styles applied to its matches.
type Rule struct {
	Role      Role
	Selectors []string
	Direction Direction
	TextAlign string
}

// Selector returns the rule's selectors as one comma-separated group.
func (r Rule) Selector() string {
	parts := make([]string, 0, len(r.Selectors))
	for _, sel := range r.Selectors {
		if sel = strings.TrimSpace(sel); sel != "" {
			parts = append(parts, sel)
		}
	}
	return strings.Join(parts, ", ")
}

// Policy is the full configuration for one page pass.
type Policy struct {
	// Dir is written to the document element's dir attribute.
	Dir Direction
	// Lang is written to the document element's lang attribute.
	Lang language.Tag
	// Rules run in order; later rules win on overlap.
	Rules []Rule
}

// DefaultLang is the page language written when no override is configured.
var DefaultLang = language.Arabic

// DefaultRules returns the shop's rule table: branding and search controls
// stay LTR, structural regions are RTL.
func DefaultRules() []Rule {
	return []Rule{
		{
			Role:      RoleForceLTR,
			Selectors: []string{".logo", ".search-input", ".search-btn", ".top-bar span"},
			Direction: LTR,
			TextAlign: LTR.Align(),
		},
		{
			Role:      RoleForceRTL,
			Selectors: []string{"nav", "main", "footer", ".product-info"},
			Direction: RTL,
			TextAlign: RTL.Align(),
		},
	}
}

// DefaultPolicy returns an Arabic RTL page with the default rule table.
func DefaultPolicy() Policy {
	return Policy{
		Dir:   RTL,
		Lang:  DefaultLang,
		Rules: DefaultRules(),
	}
}
