package standard

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

var (
	color_WHITE = parseFromHex("#ffffff")
	color_BLACK = parseFromHex("#000000")
)

// namedColors are the color keywords accepted in style options.
var namedColors = map[string]color.RGBA{
	"black":  {0, 0, 0, 255},
	"white":  {255, 255, 255, 255},
	"red":    {255, 0, 0, 255},
	"green":  {0, 128, 0, 255},
	"blue":   {0, 0, 255, 255},
	"yellow": {255, 255, 0, 255},
	"purple": {128, 0, 128, 255},
	"orange": {255, 165, 0, 255},
	"pink":   {255, 192, 203, 255},
	"brown":  {165, 42, 42, 255},
	"gray":   {128, 128, 128, 255},
}

// ParseColor accepts a color keyword, a #RGB or #RRGGBB hex literal, or an
// rgb(r,g,b) triple.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if c, ok := namedColors[s]; ok {
		return c, nil
	}
	if strings.HasPrefix(s, "#") {
		return parseHexColor(s)
	}
	if strings.HasPrefix(s, "rgb(") && strings.HasSuffix(s, ")") {
		return parseRGBColor(s)
	}
	return color.RGBA{}, &InvalidStyleError{Option: "color", Reason: fmt.Sprintf("unrecognized color %q", s)}
}

func parseHexColor(s string) (color.RGBA, error) {
	hex := s[1:]
	badHex := &InvalidStyleError{Option: "color", Reason: fmt.Sprintf("malformed hex color %q", s)}

	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i], expanded[2*i+1] = hex[i], hex[i]
		}
		hex = string(expanded)
	case 6:
	default:
		return color.RGBA{}, badHex
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, badHex
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

func parseRGBColor(s string) (color.RGBA, error) {
	badRGB := &InvalidStyleError{Option: "color", Reason: fmt.Sprintf("malformed rgb color %q", s)}

	parts := strings.Split(s[4:len(s)-1], ",")
	if len(parts) != 3 {
		return color.RGBA{}, badRGB
	}
	var channels [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return color.RGBA{}, badRGB
		}
		channels[i] = uint8(v)
	}
	return color.RGBA{R: channels[0], G: channels[1], B: channels[2], A: 255}, nil
}

// parseFromHex converts a hex literal, panicking on malformed input. Only
// for package-internal constants.
func parseFromHex(s string) color.RGBA {
	c, err := parseHexColor(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseFromColor(c color.Color) color.RGBA {
	rgba, ok := color.RGBAModel.Convert(c).(color.RGBA)
	if !ok {
		return color_BLACK
	}
	return rgba
}
