package direction

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// rtlScripts lists ISO 15924 codes written right to left.
var rtlScripts = map[string]struct{}{
	"Adlm": {},
	"Arab": {},
	"Hebr": {},
	"Mand": {},
	"Mend": {},
	"Nkoo": {},
	"Rohg": {},
	"Samr": {},
	"Syrc": {},
	"Thaa": {},
}

// DirectionForTag reports the base direction of the tag's most likely script.
func DirectionForTag(tag language.Tag) Direction {
	script, confidence := tag.Script()
	if confidence == language.No {
		return LTR
	}
	if _, ok := rtlScripts[script.String()]; ok {
		return RTL
	}
	return LTR
}

// ParseLang parses a BCP 47 language tag such as "ar" or "fa-IR".
func ParseLang(value string) (language.Tag, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return DefaultLang, nil
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, fmt.Errorf("parse language %q: %w", value, err)
	}
	return tag, nil
}

// PolicyForLanguage returns the default rule table with the document
// language set to tag and the document direction derived from its script.
func PolicyForLanguage(tag language.Tag) Policy {
	policy := DefaultPolicy()
	policy.Lang = tag
	policy.Dir = DirectionForTag(tag)
	return policy
}

// NewForLanguage parses a language tag and compiles its policy.
func NewForLanguage(value string) (*Initializer, error) {
	tag, err := ParseLang(value)
	if err != nil {
		return nil, err
	}
	return New(PolicyForLanguage(tag))
}
