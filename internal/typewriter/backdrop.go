package typewriter

import (
	"strings"
	"time"

	"github.com/vovakirdan/pixel-hopper/internal/core"
)

// bannerBlink is the accent toggle period of the title frame.
const bannerBlink = 300 * time.Millisecond

// BannerBackdrop returns a Backdrop that draws a title centered in the
// upper part of the surface inside a frame whose color blinks.
func BannerBackdrop(title string, metric Metric) func(dst Surface, now time.Duration) {
	if metric == nil {
		metric = CellMetric{}
	}
	return func(dst Surface, now time.Duration) {
		w, h := dst.Size()
		tw := metric.Width(title)
		x := (w - tw) / 2
		y := h/2 - int(float64(h)*0.2)

		frame := core.ColorYellow
		if BlinkOn(now, bannerBlink) {
			frame = core.ColorOrange
		}

		inner := strings.Repeat("─", tw+2)
		dst.DrawText(x-2, y-1, "┌"+inner+"┐", frame)
		dst.DrawText(x-2, y, "│", frame)
		dst.DrawText(x, y, title, core.ColorOrange)
		dst.DrawText(x+tw+1, y, "│", frame)
		dst.DrawText(x-2, y+1, "└"+inner+"┘", frame)
	}
}
