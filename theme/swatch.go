package theme

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const swatchPerRow = 8

// Swatch renders a variation as rows of colored terminal blocks, for the
// verbose palette preview.
func Swatch(v Variation) string {
	var b strings.Builder
	for i, c := range v.Colors {
		cell := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.RGB.R, c.RGB.G, c.RGB.B)))
		b.WriteString(cell.Render("  "))
		if i%swatchPerRow == swatchPerRow-1 && i != len(v.Colors)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
