package diagfmt

import "github.com/fatih/color"

type palette struct {
	err, warn, info *color.Color
	code, path, dim *color.Color
	title           *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:   color.New(color.FgRed, color.Bold),
		warn:  color.New(color.FgYellow, color.Bold),
		info:  color.New(color.FgCyan),
		code:  color.New(color.FgMagenta),
		path:  color.New(color.Bold),
		dim:   color.New(color.Faint),
		title: color.New(color.FgGreen, color.Bold),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.path, p.dim, p.title} {
		setColor(c, enabled)
	}
	return p
}

// setColor переопределяет глобальный color.NoColor для одного цвета.
func setColor(c *color.Color, enabled bool) {
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

// swatch возвращает цветной квадрат для RGB-цвета категории.
func swatch(r, g, b uint8, enabled bool) string {
	if !enabled {
		return "■"
	}
	c := color.RGB(int(r), int(g), int(b))
	c.EnableColor()
	return c.Sprint("■")
}
