package theme

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// inlinePrefix marks a theme passed directly on the command line instead of
// through a file or the builtin registry.
const inlinePrefix = "JSON:"

// Source is a resolved theme origin. JSON-backed sources keep the raw ordered
// document so that style selection can decide how to read it; PAL-backed
// sources are already parsed into flat palettes.
type Source struct {
	Name string
	doc  object
	pals []Variation
}

// Resolve turns the CLI palette argument into a Source. The argument is, in
// order of precedence: an inline JSON object after a literal "JSON:" marker,
// the name of a builtin theme, or a path to a theme file (JSON, or a RIFF PAL
// palette). Anything else is ErrNotFound. No variation parsing happens here.
func Resolve(spec string) (*Source, error) {
	if inline, ok := strings.CutPrefix(spec, inlinePrefix); ok {
		obj, err := parseObject(strings.NewReader(inline))
		if err != nil {
			return nil, fmt.Errorf("inline theme: %w", err)
		}
		return &Source{Name: "custom", doc: obj}, nil
	}

	if name, data, ok := lookupBuiltin(spec); ok {
		obj, err := parseObject(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("builtin theme %q: %w", name, err)
		}
		return &Source{Name: name, doc: obj}, nil
	}

	info, err := os.Stat(spec)
	if err != nil || info.IsDir() {
		return nil, fmt.Errorf("%q is not a builtin theme (%s) and not a theme file: %w",
			spec, strings.Join(BuiltinNames(), ", "), ErrNotFound)
	}

	data, err := os.ReadFile(spec)
	if err != nil {
		return nil, fmt.Errorf("could not read theme file %q: %w", spec, err)
	}

	if isRIFF(data) {
		pals, err := readPALThemes(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("PAL theme file %q: %w", spec, err)
		}
		return &Source{Name: "custom", pals: pals}, nil
	}

	obj, err := parseObject(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("theme file %q: %w", spec, err)
	}
	return &Source{Name: "custom", doc: obj}, nil
}

// Select applies the --styles selection to the source and returns the theme
// to run: one variation per requested style, in request order. It fails on
// unknown variation names, on "none" against a multi-variation source, and on
// any empty palette, all before an image is touched.
func (s *Source) Select(styles Styles) (*Theme, error) {
	t := &Theme{Name: s.Name}

	switch {
	case s.pals != nil:
		if err := s.selectPals(styles, t); err != nil {
			return nil, err
		}
	case styles.None:
		// Flat theme: the top level is itself the palette.
		v, err := parsePalette("", s.doc)
		if err != nil {
			return nil, fmt.Errorf("theme %q: %w", s.Name, err)
		}
		t.Variations = []Variation{v}
	case styles.All:
		for _, m := range s.doc {
			v, err := s.parseVariation(m.key, m.raw)
			if err != nil {
				return nil, err
			}
			t.Variations = append(t.Variations, v)
		}
	default:
		for _, name := range styles.Names {
			raw, ok := s.doc.lookup(name)
			if !ok {
				return nil, fmt.Errorf("theme %q has no variation %q (has: %s): %w",
					s.Name, name, strings.Join(s.VariationNames(), ", "), ErrUnknownVariation)
			}
			v, err := s.parseVariation(name, raw)
			if err != nil {
				return nil, err
			}
			t.Variations = append(t.Variations, v)
		}
	}

	if err := t.validate(); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *Source) selectPals(styles Styles, t *Theme) error {
	switch {
	case styles.None:
		if len(s.pals) != 1 {
			return fmt.Errorf("PAL file holds %d palettes, styles none needs exactly one: %w",
				len(s.pals), ErrUnknownVariation)
		}
		t.Variations = []Variation{{Colors: s.pals[0].Colors}}
	case styles.All:
		t.Variations = append(t.Variations, s.pals...)
	default:
		for _, name := range styles.Names {
			found := false
			for _, v := range s.pals {
				if v.Name == name {
					t.Variations = append(t.Variations, v)
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("PAL file has no palette %q: %w", name, ErrUnknownVariation)
			}
		}
	}
	return nil
}

func (s *Source) parseVariation(name string, raw []byte) (Variation, error) {
	obj, err := parseNestedObject(raw)
	if err != nil {
		return Variation{}, fmt.Errorf("theme %q, variation %q: %w (flat themes need --styles none)",
			s.Name, name, err)
	}
	v, err := parsePalette(name, obj)
	if err != nil {
		return Variation{}, fmt.Errorf("theme %q, variation %q: %w", s.Name, name, err)
	}
	return v, nil
}

// VariationNames lists what the source could offer, for error messages and
// fail-fast validation.
func (s *Source) VariationNames() []string {
	if s.pals != nil {
		names := make([]string, len(s.pals))
		for i, v := range s.pals {
			names[i] = v.Name
		}
		return names
	}

	names := make([]string, len(s.doc))
	for i, m := range s.doc {
		names[i] = m.key
	}
	return names
}
