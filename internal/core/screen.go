package core

import "strings"

// Cell is a single character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

// blankCell is what Clear writes into every position.
var blankCell = Cell{Rune: ' ', Color: ColorDefault}

// shadeRune is the glyph used for partially opaque overlay cells.
const shadeRune = '░'

// wideTail marks the cell covered by the right half of a wide rune.
// It is skipped when the screen is converted to text.
const wideTail rune = 0

// Screen is a 2D character buffer used as the render surface.
// It decouples drawing from the terminal, allowing the revealer to draw
// using simple rune operations while the platform handles actual display.
type Screen struct {
	width     int
	height    int
	cells     [][]Cell
	eastAsian bool
}

// NewScreen creates a new screen buffer with the given dimensions.
func NewScreen(width, height int) *Screen {
	s := &Screen{
		width:  max(width, 0),
		height: max(height, 0),
	}
	s.allocate()
	s.Clear()
	return s
}

// allocate creates the underlying cell storage.
func (s *Screen) allocate() {
	s.cells = make([][]Cell, s.height)
	for y := range s.cells {
		s.cells[y] = make([]Cell, s.width)
	}
}

// Width returns the screen width in characters.
func (s *Screen) Width() int {
	return s.width
}

// Height returns the screen height in characters.
func (s *Screen) Height() int {
	return s.height
}

// Size returns the screen width and height in characters.
func (s *Screen) Size() (int, int) {
	return s.width, s.height
}

// SetEastAsian selects whether DrawText gives ambiguous-width characters
// two cells. It must agree with the metric used to lay the text out.
func (s *Screen) SetEastAsian(on bool) {
	s.eastAsian = on
}

// EastAsian reports whether ambiguous-width characters take two cells.
func (s *Screen) EastAsian() bool {
	return s.eastAsian
}

// Resize changes the screen dimensions, preserving content where possible.
func (s *Screen) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	if width == s.width && height == s.height {
		return
	}

	oldCells := s.cells
	oldW, oldH := s.width, s.height

	s.width = width
	s.height = height
	s.allocate()
	s.Clear()

	copyW := min(oldW, width)
	copyH := min(oldH, height)
	for y := 0; y < copyH; y++ {
		copy(s.cells[y][:copyW], oldCells[y][:copyW])
	}
}

// Clear fills the entire screen with uncolored spaces.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blankCell
		}
	}
}

// Set places a rune at the given position, keeping its color.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) Set(x, y int, r rune) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x].Rune = r
}

// SetCell places a colored rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (s *Screen) SetCell(x, y int, r rune, c Color) {
	if !s.inBounds(x, y) {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at the given position, 0 for the right half of a
// wide rune. Returns space for out-of-bounds coordinates.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at the given position.
// Returns a blank cell for out-of-bounds coordinates.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inBounds(x, y) {
		return blankCell
	}
	return s.cells[y][x]
}

func (s *Screen) inBounds(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// DrawText writes a string horizontally starting at (x, y). Wide runes
// take two cells; zero-width runes are dropped. Characters that extend
// beyond screen bounds are clipped, and a wide rune cut in half by an
// edge leaves a blank in the visible half.
func (s *Screen) DrawText(x, y int, text string, c Color) {
	for _, r := range text {
		switch RuneWidth(r, s.eastAsian) {
		case 0:
			continue
		case 2:
			if s.inBounds(x, y) && s.inBounds(x+1, y) {
				s.SetCell(x, y, r, c)
				s.SetCell(x+1, y, wideTail, c)
			} else {
				s.SetCell(x, y, ' ', c)
				s.SetCell(x+1, y, ' ', c)
			}
			x += 2
		default:
			s.SetCell(x, y, r, c)
			x++
		}
	}
}

// FillRect fills the part of a rectangular area that is on screen.
func (s *Screen) FillRect(r Rect, fill rune, c Color) {
	r = r.Intersect(NewRect(0, 0, s.width, s.height))
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.cells[y][x] = Cell{Rune: fill, Color: c}
		}
	}
}

// Overlay composites a full-screen black overlay with the given opacity
// (0 = transparent, 1 = opaque). Terminals have no alpha blending, so the
// opacity is approximated in bands: dimmed text, then shaded background,
// then fully shaded, then blank.
func (s *Screen) Overlay(alpha float64) {
	alpha = ClampF(alpha, 0, 1)
	switch {
	case alpha == 0:
		return
	case alpha == 1:
		s.Clear()
		return
	}

	for y := range s.cells {
		for x := range s.cells[y] {
			cell := &s.cells[y][x]
			switch {
			case alpha >= 0.66:
				*cell = Cell{Rune: shadeRune, Color: ColorGray}
			case alpha >= 0.33 && cell.Rune == ' ':
				*cell = Cell{Rune: shadeRune, Color: ColorGray}
			default:
				cell.Color = ColorGray
			}
		}
	}
}

// String converts the screen buffer to a plain string without colors.
// Each row is joined with newlines.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow(s.width*s.height + s.height)

	for y := 0; y < s.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for x := 0; x < s.width; x++ {
			if r := s.cells[y][x].Rune; r != wideTail {
				sb.WriteRune(r)
			}
		}
	}
	return sb.String()
}

// Row returns a copy of the specified row as a string.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	var sb strings.Builder
	for _, c := range s.cells[y] {
		if c.Rune != wideTail {
			sb.WriteRune(c.Rune)
		}
	}
	return sb.String()
}
