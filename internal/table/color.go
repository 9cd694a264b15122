package table

import (
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Swatch is a color value resolved for terminal display.
type Swatch struct {
	Hex string
	// Dark reports whether light text reads better on top of the swatch.
	Dark bool
}

// ParseColor resolves the hex and rgb() forms IsColor accepts. Alpha
// channels are dropped. It reports false for anything else, including
// colors that reference other variables.
func ParseColor(value string) (Swatch, bool) {
	value = strings.ToLower(strings.TrimSpace(value))

	var (
		c   colorful.Color
		err error
	)
	switch {
	case strings.HasPrefix(value, "#"):
		c, err = parseHex(value)
	case strings.HasPrefix(value, "rgb"):
		c, err = parseRGB(value)
	default:
		return Swatch{}, false
	}
	if err != nil || !c.IsValid() {
		return Swatch{}, false
	}

	l, _, _ := c.Lab()
	return Swatch{Hex: c.Hex(), Dark: l < 0.5}, true
}

func parseHex(value string) (colorful.Color, error) {
	switch len(value) {
	case 5:
		value = value[:4]
	case 9:
		value = value[:7]
	}
	return colorful.Hex(value)
}

func parseRGB(value string) (colorful.Color, error) {
	open := strings.IndexByte(value, '(')
	end := strings.LastIndexByte(value, ')')
	if open < 0 || end < open {
		return colorful.Color{}, strconv.ErrSyntax
	}

	fields := strings.FieldsFunc(value[open+1:end], func(r rune) bool {
		return r == ',' || r == ' ' || r == '/'
	})
	if len(fields) < 3 {
		return colorful.Color{}, strconv.ErrSyntax
	}

	var channels [3]float64
	for i := range channels {
		v, err := channel(fields[i])
		if err != nil {
			return colorful.Color{}, err
		}
		channels[i] = v
	}
	return colorful.Color{R: channels[0], G: channels[1], B: channels[2]}.Clamped(), nil
}

// channel converts "128" or "50%" to the 0..1 range.
func channel(field string) (float64, error) {
	if pct, ok := strings.CutSuffix(field, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		return v / 100, err
	}
	v, err := strconv.ParseFloat(field, 64)
	return v / 255, err
}
