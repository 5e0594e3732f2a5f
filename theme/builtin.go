package theme

import (
	"embed"
	"sort"
	"strings"
)

//go:embed palettes/*.json
var builtinFS embed.FS

// aliases maps the spellings users actually type to canonical file names.
var aliases = map[string]string{
	"catpuccin":       "catppuccin",
	"catppucin":       "catppuccin",
	"catpucin":        "catppuccin",
	"gruvboxmaterial": "gruvbox-material",
	"rosepine":        "rose-pine",
	"one-dark":        "onedark",
	"tokyonight":      "tokyo-night",
}

func canonicalName(name string) string {
	name = strings.ReplaceAll(strings.ToLower(name), "_", "-")
	if canon, ok := aliases[name]; ok {
		return canon
	}
	return name
}

// lookupBuiltin returns the canonical name and embedded JSON of a builtin
// theme, or ok=false when the name is not in the registry.
func lookupBuiltin(name string) (string, []byte, bool) {
	canon := canonicalName(name)
	data, err := builtinFS.ReadFile("palettes/" + canon + ".json")
	if err != nil {
		return "", nil, false
	}
	return canon, data, true
}

// BuiltinNames lists the registry for help text and error messages.
func BuiltinNames() []string {
	entries, err := builtinFS.ReadDir("palettes")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".json"))
	}
	sort.Strings(names)
	return names
}
