package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-platformer/internal/core"
	"github.com/vovakirdan/tui-platformer/internal/sim"
)

// colorCodes maps core.Color to ANSI 256-color codes.
var colorCodes = map[core.Color]string{
	core.ColorRed:           "1",
	core.ColorGreen:         "2",
	core.ColorYellow:        "3",
	core.ColorBlue:          "4",
	core.ColorMagenta:       "5",
	core.ColorCyan:          "6",
	core.ColorWhite:         "7",
	core.ColorBrightRed:     "9",
	core.ColorBrightGreen:   "10",
	core.ColorBrightYellow:  "11",
	core.ColorBrightBlue:    "12",
	core.ColorBrightMagenta: "13",
	core.ColorBrightCyan:    "14",
	core.ColorBrightWhite:   "15",
	core.ColorOrange:        "208",
	core.ColorGray:          "245",
	core.ColorSlate:         "60",
	core.ColorDarkGray:      "238",
}

// styleFor returns the style of a cell color on the given background.
func styleFor(c core.Color, bg lipgloss.Color) lipgloss.Style {
	style := lipgloss.NewStyle()
	if bg != "" {
		style = style.Background(bg)
	}
	if code, ok := colorCodes[c]; ok {
		style = style.Foreground(lipgloss.Color(code))
	}
	return style
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
// bg is a lipgloss color such as a level's "#1e293b"; empty leaves the
// terminal background alone.
func RenderScreen(s *core.Screen, bg lipgloss.Color) string {
	styles := make(map[core.Color]lipgloss.Style, len(colorCodes)+1)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := styles[startColor]
			if !ok {
				style = styleFor(startColor, bg)
				styles[startColor] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// HUD is the status line shown under the playfield.
type HUD struct {
	LevelName  string
	Coins      int
	TotalCoins int
	Elapsed    time.Duration
	State      sim.State
	Paused     bool
	Message    string
}

var (
	hudStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	hudGoodStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	hudBadStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	hudStarStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

// formatElapsed renders a play time as seconds with one decimal.
func formatElapsed(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}

// Render lays the HUD out in one line of the given width.
func (h HUD) Render(width int) string {
	left := fmt.Sprintf(" %s  coins %d/%d  time %s", h.LevelName, h.Coins, h.TotalCoins, formatElapsed(h.Elapsed))

	var right string
	switch {
	case h.State == sim.StateWon:
		right = hudGoodStyle.Render("LEVEL COMPLETE  r: retry  b: levels")
		if sim.Qualifies(h.Coins) {
			right = hudStarStyle.Render("leaderboard run! ") + right
		}
	case h.State == sim.StateLost:
		right = hudBadStyle.Render("GAME OVER  r: retry  b: levels")
	case h.Paused:
		right = hudStyle.Render("PAUSED  p: resume  b: levels")
	case h.Message != "":
		right = hudStarStyle.Render(h.Message)
	default:
		right = hudStyle.Render("arrows/wasd: move  space: jump  p: pause")
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 1
	if gap < 1 {
		gap = 1
	}
	return hudStyle.Render(left) + strings.Repeat(" ", gap) + right
}
