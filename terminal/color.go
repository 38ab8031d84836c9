/*

MIT License

Copyright (c) 2022 wangqi

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in all
copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
SOFTWARE.

This is a dual-license file, the original file is from tcell.
https://github.com/gdamore/tcell with some modification.
*/

package terminal

// Copyright 2018 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use file except in compliance with the License.
// You may obtain a copy of the license at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Color represents a terminal color cell value. The low numeric values
// follow ECMA-48/ANSI (0-15), extended by the xterm 256-color cube
// (16-255); a 24-bit RGB value may be carried by adding the ColorIsRGB
// flag. Trimmed down from tcell's color.go to only what SGR (§4.3) ever
// needs to produce: numeric palette indices and RGB triples. Terminal
// escape sequences never name a color by W3C name, so that table and its
// lookup helpers are dropped here.
type Color uint64

const (
	// ColorDefault leaves the color unchanged from the terminal default.
	// It is also the zero value.
	ColorDefault Color = 0

	// ColorValid marks the value as set, so the zero value can mean "default".
	ColorValid Color = 1 << 32

	// ColorIsRGB marks the low 3 bytes as an RGB triple rather than a
	// palette index.
	ColorIsRGB Color = 1 << 33
)

// The 16 ECMA-48 colors, in the order the SGR table (§4.3) expects:
// 30-37/40-47 map to index 0-7, 90-97/100-107 map to index 8-15.
const (
	ColorBlack Color = ColorValid + iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// palette256 holds the RGB value of the 256-color xterm palette, indices
// 16-255 (the standard 6x6x6 color cube plus 24-step grayscale ramp); the
// first 16 entries are the same values as the ColorBlack..ColorBrightWhite
// constants above and are included for a contiguous lookup by index.
var palette256 = buildPalette256()

func buildPalette256() [256]int32 {
	var p [256]int32
	basic := [16]int32{
		0x000000, 0x800000, 0x008000, 0x808000,
		0x000080, 0x800080, 0x008080, 0xc0c0c0,
		0x808080, 0xff0000, 0x00ff00, 0xffff00,
		0x0000ff, 0xff00ff, 0x00ffff, 0xffffff,
	}
	copy(p[:16], basic[:])
	steps := [6]int32{0, 0x5f, 0x87, 0xaf, 0xd7, 0xff}
	idx := 16
	for r := 0; r < 6; r++ {
		for g := 0; g < 6; g++ {
			for b := 0; b < 6; b++ {
				p[idx] = steps[r]<<16 | steps[g]<<8 | steps[b]
				idx++
			}
		}
	}
	for i := 0; i < 24; i++ {
		v := int32(8 + i*10)
		p[232+i] = v<<16 | v<<8 | v
	}
	return p
}

// Valid reports whether the color has been explicitly set.
func (c Color) Valid() bool {
	return c&ColorValid != 0
}

// IsRGB reports whether the color carries a direct RGB triple.
func (c Color) IsRGB() bool {
	return c&(ColorValid|ColorIsRGB) == (ColorValid | ColorIsRGB)
}

// Hex returns the 24-bit RGB value, or -1 if the color is unset or out of
// palette range.
func (c Color) Hex() int32 {
	if !c.Valid() {
		return -1
	}
	if c&ColorIsRGB != 0 {
		return int32(c) & 0xffffff
	}
	idx := c.Index()
	if idx < 0 || idx >= len(palette256) {
		return -1
	}
	return palette256[idx]
}

// RGB returns the red, green and blue components (0-255 each), or -1,-1,-1
// if the color is unset.
func (c Color) RGB() (int32, int32, int32) {
	v := c.Hex()
	if v < 0 {
		return -1, -1, -1
	}
	return (v >> 16) & 0xff, (v >> 8) & 0xff, v & 0xff
}

// Index returns the palette index of the color, or -1 for an RGB or unset color.
func (c Color) Index() int {
	if !c.Valid() || c.IsRGB() {
		return -1
	}
	return int(c &^ ColorValid)
}

// NewRGBColor builds a direct-RGB color from 0-255 components.
func NewRGBColor(r, g, b int32) Color {
	return ColorIsRGB | Color((r&0xff)<<16|(g&0xff)<<8|(b&0xff)) | ColorValid
}

// PaletteColor builds a color referring to the given palette index (0-255).
func PaletteColor(index int) Color {
	return Color(index) | ColorValid
}
