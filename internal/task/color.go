package task

import (
	"fmt"
	"strconv"
	"strings"
)

// Color is a label color: either a symbolic terminal color name such as
// "Blue" or an RGB triple.
type Color struct {
	Name    string
	R, G, B uint8
	IsRGB   bool
}

// NamedColor returns a symbolic color.
func NamedColor(name string) Color {
	return Color{Name: name}
}

// RGBColor returns a true color.
func RGBColor(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, IsRGB: true}
}

// String returns the persisted form: the name, or #rrggbb for RGB colors.
func (c Color) String() string {
	if c.IsRGB {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return c.Name
}

// Triple returns the three space separated components of an RGB color.
// Named colors return their name.
func (c Color) Triple() string {
	if !c.IsRGB {
		return c.Name
	}
	return fmt.Sprintf("%d %d %d", c.R, c.G, c.B)
}

// IsZero reports whether no color was set.
func (c Color) IsZero() bool {
	return !c.IsRGB && c.Name == ""
}

// palette maps symbolic names to the xterm defaults for the 16 ANSI colors.
var palette = map[string][3]uint8{
	"black":        {0, 0, 0},
	"red":          {205, 0, 0},
	"green":        {0, 205, 0},
	"yellow":       {205, 205, 0},
	"blue":         {0, 0, 238},
	"magenta":      {205, 0, 205},
	"cyan":         {0, 205, 205},
	"gray":         {229, 229, 229},
	"darkgray":     {127, 127, 127},
	"lightred":     {255, 0, 0},
	"lightgreen":   {0, 255, 0},
	"lightyellow":  {255, 255, 0},
	"lightblue":    {92, 92, 255},
	"lightmagenta": {255, 0, 255},
	"lightcyan":    {0, 255, 255},
	"white":        {255, 255, 255},
}

// ANSI returns the 0-15 terminal color index for a known symbolic name.
func (c Color) ANSI() (int, bool) {
	if c.IsRGB {
		return 0, false
	}
	for i, name := range ansiOrder {
		if strings.EqualFold(c.Name, name) {
			return i, true
		}
	}
	return 0, false
}

var ansiOrder = []string{
	"black", "red", "green", "yellow", "blue", "magenta", "cyan", "gray",
	"darkgray", "lightred", "lightgreen", "lightyellow", "lightblue", "lightmagenta", "lightcyan", "white",
}

// RGB returns the color components. Known symbolic names resolve through
// the ANSI palette; unknown names report false.
func (c Color) RGB() (r, g, b uint8, ok bool) {
	if c.IsRGB {
		return c.R, c.G, c.B, true
	}
	v, ok := palette[strings.ToLower(c.Name)]
	return v[0], v[1], v[2], ok
}

// ParseColor reads the persisted form produced by String. Any text that is
// not a valid #rrggbb value is kept as a symbolic name.
func ParseColor(s string) Color {
	if len(s) == 7 && strings.HasPrefix(s, "#") {
		if v, err := strconv.ParseUint(s[1:], 16, 32); err == nil {
			return RGBColor(uint8(v>>16), uint8(v>>8), uint8(v))
		}
	}
	return NamedColor(s)
}
