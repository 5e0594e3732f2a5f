package batch

import (
	"path/filepath"
	"strings"

	"recolor/cielab"
)

// outputName builds the generated destination path for one job:
// <stem>_<theme>[-<variation>][_<method>] with the method suffix only for
// non-default methods, so existing de2000 outputs keep their names. Spaces
// in variation names would be awkward in file names and become underscores.
func outputName(dir, input, themeName, variation string, method cielab.Method, animated bool) string {
	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if stem == "" {
		stem = "image"
	}

	name := stem + "_" + themeName
	if variation != "" {
		name += "-" + strings.ReplaceAll(variation, " ", "_")
	}
	if method != cielab.DE2000 {
		name += "_" + method.String()
	}

	ext := ".png"
	if animated {
		ext = ".gif"
	}
	return filepath.Join(dir, name+ext)
}
