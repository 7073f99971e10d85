package suffixdb

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PosUnknown is the tag recorded when a suffix's part of speech is not known.
// An entry always carries a POS value; "unknown" is a value, not an absence.
const PosUnknown = "unknown"

// PosValue is a tagged representation of a suffix's part of speech.
// A suffix maps to either a single tag or an ordered set of tags
// (ambiguous suffixes like "-ing"). The zero value is unknown.
//
// On the wire it is a bare string for single tags and an array for
// ambiguous ones, matching the persisted database format.
type PosValue struct {
	tags []string
}

// SinglePos returns a PosValue holding exactly one tag.
func SinglePos(tag string) PosValue {
	if tag == "" {
		return PosValue{}
	}
	return PosValue{tags: []string{tag}}
}

// AmbiguousPos returns a PosValue holding an ordered set of tags.
func AmbiguousPos(tags ...string) PosValue {
	kept := make([]string, 0, len(tags))
	for _, t := range tags {
		if t != "" {
			kept = append(kept, t)
		}
	}
	return PosValue{tags: kept}
}

// IsUnknown reports whether no tag is known.
func (p PosValue) IsUnknown() bool { return len(p.tags) == 0 }

// IsAmbiguous reports whether more than one tag is recorded.
func (p PosValue) IsAmbiguous() bool { return len(p.tags) > 1 }

// Primary returns the first (preferred) tag, or PosUnknown.
func (p PosValue) Primary() string {
	if len(p.tags) == 0 {
		return PosUnknown
	}
	return p.tags[0]
}

// Tags returns a copy of all tags in order. Empty for unknown.
func (p PosValue) Tags() []string {
	if len(p.tags) == 0 {
		return nil
	}
	out := make([]string, len(p.tags))
	copy(out, p.tags)
	return out
}

// String renders single tags bare and ambiguous ones slash-joined.
func (p PosValue) String() string {
	switch len(p.tags) {
	case 0:
		return PosUnknown
	case 1:
		return p.tags[0]
	default:
		return strings.Join(p.tags, "/")
	}
}

// MarshalJSON encodes a single tag as a string and multiple tags as an array.
// Unknown encodes as the string "unknown".
func (p PosValue) MarshalJSON() ([]byte, error) {
	switch len(p.tags) {
	case 0:
		return json.Marshal(PosUnknown)
	case 1:
		return json.Marshal(p.tags[0])
	default:
		return json.Marshal(p.tags)
	}
}

// UnmarshalJSON accepts a string, an array of strings, or null.
func (p *PosValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*p = PosValue{}
		return nil
	}
	if strings.HasPrefix(trimmed, "[") {
		var tags []string
		if err := json.Unmarshal(data, &tags); err != nil {
			return fmt.Errorf("POS array: %w", err)
		}
		*p = AmbiguousPos(tags...)
		return nil
	}
	var tag string
	if err := json.Unmarshal(data, &tag); err != nil {
		return fmt.Errorf("POS value: %w", err)
	}
	if tag == "" || tag == PosUnknown {
		*p = PosValue{}
		return nil
	}
	*p = SinglePos(tag)
	return nil
}

// Category classifies a suffix as derivational or inflectional.
type Category string

const (
	Derivational    Category = "derivational"
	Inflectional    Category = "inflectional"
	CategoryUnknown Category = "unknown"
)

// UnmarshalJSON maps unrecognized or missing categories to CategoryUnknown.
func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("category: %w", err)
	}
	switch Category(s) {
	case Derivational, Inflectional:
		*c = Category(s)
	default:
		*c = CategoryUnknown
	}
	return nil
}

// OrthRule is one spelling change induced by attaching the suffix.
// Pattern is the stem-final text before suffixation ("y$" anchored at the
// end), Replacement is what it became in the surface form ("i"), Example
// documents an attested pair. Removing a suffix reverses the rule: a raw
// stem ending in Replacement proposes a variant ending in Pattern.
type OrthRule struct {
	Pattern     string `json:"pattern"`
	Replacement string `json:"replacement"`
	Example     string `json:"example,omitempty"`
}

// ReverseApply undoes the rule on a raw stem obtained by suffix stripping.
// Returns the proposed dictionary-form variant and true when the rule's
// Replacement matches the end of the stem and the rewrite changes it.
func (r OrthRule) ReverseApply(stem string) (string, bool) {
	target := strings.TrimSuffix(r.Pattern, "$")
	if target == "" {
		return "", false
	}
	if !strings.HasSuffix(stem, r.Replacement) {
		return "", false
	}
	variant := stem[:len(stem)-len(r.Replacement)] + target
	if variant == stem || strings.TrimSuffix(variant, target) == "" {
		return "", false
	}
	return variant, true
}

// SuffixEntry is one row of the suffix database.
// The key always carries the leading dash marker ("-ness"), distinguishing
// a suffix from a bare string everywhere it travels.
type SuffixEntry struct {
	Suffix       string     `json:"-"`
	POS          PosValue   `json:"POS"`
	SourcePOS    []string   `json:"source_POS,omitempty"`
	Category     Category   `json:"category"`
	Meaning      string     `json:"meaning,omitempty"`
	Productivity float64    `json:"productivity"`
	Frequency    uint32     `json:"frequency"`
	Alternations []string   `json:"alternations,omitempty"`
	OrthRules    []OrthRule `json:"orthographic_rules,omitempty"`
	Examples     []string   `json:"examples,omitempty"`
	Sources      []string   `json:"sources,omitempty"`
}

// Bare returns the suffix with its marker stripped ("ness").
func (e *SuffixEntry) Bare() string {
	return strings.TrimPrefix(e.Suffix, Marker)
}

// Marker is the leading character distinguishing suffix keys from bare strings.
const Marker = "-"

// NormalizeKey lowercases a suffix key and ensures the leading marker.
// "ness", "-ness" and "-NESS" all normalize to "-ness".
func NormalizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" || key == Marker {
		return ""
	}
	if !strings.HasPrefix(key, Marker) {
		key = Marker + key
	}
	return key
}
