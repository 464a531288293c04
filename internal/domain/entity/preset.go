package entity

import "strings"

// Preset is a named combination of colors and patterns.
type Preset struct {
	Name        string
	Foreground  string
	Background  string // hex color or TransparentBackground
	DotPattern  DotPattern
	CornerStyle CornerStyle
}

var Presets = []Preset{
	{"Classic", "#000000", "#ffffff", DotSquare, CornerSquare},
	{"Modern", "#1a1a1a", "#ffffff", DotRounded, CornerExtraRounded},
	{"Ocean", "#007AFF", "#f0f8ff", DotDots, CornerDot},
	{"Forest", "#30d158", "#f0fff0", DotRounded, CornerExtraRounded},
	{"Sunset", "#FF9500", "#fff8f0", DotClassy, CornerExtraRounded},
	{"Purple", "#AF52DE", "#faf0ff", DotClassyRounded, CornerExtraRounded},
	{"Dark", "#ffffff", "#1c1c1e", DotSquare, CornerSquare},
	{"Midnight", "#0A84FF", "#1c1c1e", DotRounded, CornerExtraRounded},
	{"Transparent", "#000000", TransparentBackground, DotSquare, CornerSquare},
}

// PresetByName looks a preset up case-insensitively.
func PresetByName(name string) (Preset, bool) {
	for _, p := range Presets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}
