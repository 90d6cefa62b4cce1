package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// ParseHexColor converts "#RRGGBB" (or "RRGGBB") to a tcell.Color.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %s", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %s: %w", hex, err)
	}
	return tcell.NewRGBColor(int32(v>>16&0xFF), int32(v>>8&0xFF), int32(v&0xFF)), nil
}

// hexOr parses hex, falling back to def on error.
func hexOr(hex string, def tcell.Color) tcell.Color {
	c, err := ParseHexColor(hex)
	if err != nil {
		return def
	}
	return c
}

var (
	colorCorrect  = tcell.NewRGBColor(0x10, 0xA9, 0x5B)
	colorWrong    = tcell.NewRGBColor(0xEC, 0x5D, 0x49)
	colorKey      = tcell.NewRGBColor(0xFC, 0xBA, 0x29)
	colorDead     = tcell.NewRGBColor(0x32, 0x32, 0x32)
	colorMissed   = tcell.NewRGBColor(0xEC, 0x5D, 0x49)
	colorFarewell = tcell.NewRGBColor(0x7A, 0x5E, 0xA7)
)
