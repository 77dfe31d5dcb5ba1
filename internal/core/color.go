package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorSlate
	ColorDarkGray
)

// Ink is what a drawing primitive leaves behind: a glyph and its color.
// Pixel art is out of scope; shape, position and ink are all a host needs.
type Ink struct {
	Glyph rune
	Color Color
}

// Entity inks shared by the level renderer and the player.
var (
	InkPlatform = Ink{Glyph: '█', Color: ColorGreen}
	InkCoin     = Ink{Glyph: '●', Color: ColorBrightYellow}
	InkObstacle = Ink{Glyph: '▲', Color: ColorRed}
	InkFinish   = Ink{Glyph: '▒', Color: ColorBrightGreen}
	InkFlag     = Ink{Glyph: '⚑', Color: ColorWhite}
	InkPole     = Ink{Glyph: '│', Color: ColorGray}
	InkRoof     = Ink{Glyph: '▓', Color: ColorSlate}
	InkCrack    = Ink{Glyph: '╳', Color: ColorDarkGray}
	InkPlayer   = Ink{Glyph: '█', Color: ColorBlue}
	InkEye      = Ink{Glyph: '●', Color: ColorBrightWhite}
)
