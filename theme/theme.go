// Package theme loads color themes from the builtin registry, from JSON or
// RIFF PAL files, or from an inline JSON string, and selects the style
// variations a run should produce.
package theme

import (
	"errors"
	"fmt"
	"image/color"
	"strings"
)

var (
	ErrNotFound         = errors.New("theme not found")
	ErrParse            = errors.New("invalid theme")
	ErrUnknownVariation = errors.New("variation not in theme")
	ErrEmptyPalette     = errors.New("variation has no colors")
)

// NamedColor is one palette entry. The name carries no meaning for matching,
// only for diagnostics.
type NamedColor struct {
	Name string
	RGB  color.RGBA
}

// Variation is one concrete palette of a theme. Name is empty for the default
// variation of a flat theme. Color order follows the source document and is
// load-bearing: the resolver breaks distance ties toward earlier entries.
type Variation struct {
	Name   string
	Colors []NamedColor
}

// Theme is the outcome of resolving a source and selecting styles: the
// variations to produce, in selection order.
type Theme struct {
	Name       string
	Variations []Variation
}

// Styles is the parsed --styles selection.
type Styles struct {
	All   bool
	None  bool
	Names []string
}

// ParseStyles accepts "all", "none" (or "no"), or a comma-delimited list of
// variation names, case-insensitively for the two keywords.
func ParseStyles(s string) (Styles, error) {
	switch strings.ToLower(s) {
	case "all":
		return Styles{All: true}, nil
	case "none", "no":
		return Styles{None: true}, nil
	}

	names := strings.Split(s, ",")
	for _, name := range names {
		if name == "" {
			return Styles{}, fmt.Errorf("empty variation name in styles list %q (double comma?)", s)
		}
	}
	return Styles{Names: names}, nil
}

func (s Styles) String() string {
	switch {
	case s.All:
		return "all"
	case s.None:
		return "none"
	}
	return strings.Join(s.Names, ",")
}

// validate rejects variations with no colors before any image work starts.
func (t *Theme) validate() error {
	for _, v := range t.Variations {
		if len(v.Colors) == 0 {
			if v.Name == "" {
				return fmt.Errorf("theme %q: %w", t.Name, ErrEmptyPalette)
			}
			return fmt.Errorf("theme %q, variation %q: %w", t.Name, v.Name, ErrEmptyPalette)
		}
	}
	return nil
}
