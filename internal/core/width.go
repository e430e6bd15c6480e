package core

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

var eastAsianCondition = func() *runewidth.Condition {
	c := runewidth.NewCondition()
	c.EastAsianWidth = true
	return c
}()

// RuneWidth returns the number of cells r occupies: 0, 1 or 2.
// With eastAsian set, ambiguous-width characters such as '±' take two
// cells, as in terminals configured for CJK locales.
func RuneWidth(r rune, eastAsian bool) int {
	if eastAsian {
		return eastAsianCondition.RuneWidth(r)
	}
	return uniseg.StringWidth(string(r))
}

// TextWidth returns the number of cells text occupies when drawn with
// Screen.DrawText.
func TextWidth(text string, eastAsian bool) int {
	n := 0
	for _, r := range text {
		n += RuneWidth(r, eastAsian)
	}
	return n
}
