package challenge

import (
	"strings"
)

// Category is the closed classification of a challenge
type Category string

// Supported categories
const (
	Crypto    Category = "Crypto"
	Pwn       Category = "Pwn"
	Reversing Category = "Reversing"
	Web       Category = "Web"
	Misc      Category = "Misc"
	Forensics Category = "Forensics"
	Stego     Category = "Stego"
)

var categories = []Category{Crypto, Pwn, Reversing, Web, Misc, Forensics, Stego}

// Categories returns every supported category in declaration order
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryNames returns the category names as plain strings
func CategoryNames() []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return names
}

// ParseCategory matches s against the supported categories, ignoring case.
func ParseCategory(s string) (Category, bool) {
	s = strings.TrimSpace(s)
	for _, c := range categories {
		if strings.EqualFold(s, string(c)) {
			return c, true
		}
	}
	return "", false
}

func (c Category) String() string { return string(c) }
