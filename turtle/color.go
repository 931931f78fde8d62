package turtle

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// RGB is an 8-bit-per-channel pen or background color.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var palette = map[string]RGB{
	"BLACK":   {0, 0, 0},
	"WHITE":   {255, 255, 255},
	"RED":     {255, 0, 0},
	"GREEN":   {0, 128, 0},
	"LIME":    {0, 255, 0},
	"BLUE":    {0, 0, 255},
	"YELLOW":  {255, 255, 0},
	"CYAN":    {0, 255, 255},
	"MAGENTA": {255, 0, 255},
	"ORANGE":  {255, 165, 0},
	"PURPLE":  {128, 0, 128},
	"PINK":    {255, 192, 203},
	"BROWN":   {165, 42, 42},
	"GRAY":    {128, 128, 128},
	"GREY":    {128, 128, 128},
}

// ParseColor accepts a palette name, "#RGB"/"#RRGGBB" hex, or an
// explicit "r,g,b" triple of 0-255 components.
func ParseColor(spec string) (RGB, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return RGB{}, fmt.Errorf("empty color")
	}
	if c, ok := palette[strings.ToUpper(spec)]; ok {
		return c, nil
	}
	if strings.HasPrefix(spec, "#") {
		hex := spec
		if len(hex) == 4 {
			hex = fmt.Sprintf("#%c%c%c%c%c%c", hex[1], hex[1], hex[2], hex[2], hex[3], hex[3])
		}
		col, err := colorful.Hex(strings.ToLower(hex))
		if err != nil {
			return RGB{}, fmt.Errorf("bad hex color %q: %w", spec, err)
		}
		r, g, b := col.RGB255()
		return RGB{r, g, b}, nil
	}
	if strings.Contains(spec, ",") {
		parts := strings.Split(spec, ",")
		if len(parts) != 3 {
			return RGB{}, fmt.Errorf("color triple needs 3 components, got %d", len(parts))
		}
		var ch [3]uint8
		for i, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || n < 0 || n > 255 {
				return RGB{}, fmt.Errorf("bad color component %q", p)
			}
			ch[i] = uint8(n)
		}
		return RGB{ch[0], ch[1], ch[2]}, nil
	}
	return RGB{}, fmt.Errorf("unknown color %q", spec)
}
