package core

// Color is a foreground color for a screen cell, written as a "#RRGGBB" hex
// string. The empty string means the terminal's default color.
type Color string

// Palette used by the tank game.
const (
	ColorDefault   Color = ""
	ColorPlayer    Color = "#3F9E6B"
	ColorEnemy     Color = "#C9A227"
	ColorObstacle  Color = "#708090"
	ColorBullet    Color = "#D0D0D0"
	ColorHealth    Color = "#B84A4F"
	ColorAmmo      Color = "#6F9A45"
	ColorSpark     Color = "#FFA500"
	ColorDust      Color = "#888888"
	ColorBlast     Color = "#B84A4F"
	ColorHUD       Color = "#E0E0E0"
	ColorHealthBar Color = "#3F9E6B"
	ColorBarEmpty  Color = "#4A4A4A"
)
