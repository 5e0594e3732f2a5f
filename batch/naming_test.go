package batch

import (
	"path/filepath"
	"testing"

	"recolor/cielab"
)

func TestOutputName(t *testing.T) {
	cases := []struct {
		input, theme, variation string
		method                  cielab.Method
		animated                bool
		want                    string
	}{
		{"pics/wall.jpg", "gruvbox", "dark", cielab.DE2000, false, "wall_gruvbox-dark.png"},
		{"wall.png", "nord", "", cielab.DE2000, false, "wall_nord.png"},
		{"wall.png", "custom", "my style", cielab.DE2000, false, "wall_custom-my_style.png"},
		{"wall.png", "gruvbox", "dark", cielab.DE1976, false, "wall_gruvbox-dark_de1976.png"},
		{"anim.gif", "nord", "aurora", cielab.DE2000, true, "anim_nord-aurora.gif"},
		{"archive.tar.gz", "nord", "", cielab.DE2000, false, "archive.tar_nord.png"},
	}

	for _, c := range cases {
		got := outputName("out", c.input, c.theme, c.variation, c.method, c.animated)
		if want := filepath.Join("out", c.want); got != want {
			t.Fatalf("outputName(%q, %q, %q, %s) = %q, expected %q",
				c.input, c.theme, c.variation, c.method, got, want)
		}
	}
}
