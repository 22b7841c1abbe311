package modal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Overlay dims background and draws box centered on top of it.
// The result is exactly screenH lines tall.
func Overlay(background, box string, screenW, screenH int) string {
	bgLines := strings.Split(background, "\n")
	if len(bgLines) > screenH {
		bgLines = bgLines[:screenH]
	}
	for len(bgLines) < screenH {
		bgLines = append(bgLines, "")
	}

	boxLines := strings.Split(box, "\n")
	boxW := lipgloss.Width(box)
	x, y := Position(boxW, len(boxLines), screenW, screenH)

	out := make([]string, len(bgLines))
	for i, line := range bgLines {
		plain := ansi.Strip(line)
		row := i - y
		if row < 0 || row >= len(boxLines) {
			out[i] = Backdrop.Render(plain)
			continue
		}

		left := ansi.Truncate(plain, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(plain, x+boxW, "")
		out[i] = Backdrop.Render(left) + boxLines[row] + Backdrop.Render(right)
	}
	return strings.Join(out, "\n")
}
