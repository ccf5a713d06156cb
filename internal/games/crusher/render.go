package crusher

import (
	"fmt"
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/tui-crusher/internal/core"
)

// Visual characters for rendering
const (
	PlateChar    = '▀'
	PistonChar   = '║'
	FailLineChar = '┄'
	GaugeFull    = '█'
	GaugeEmpty   = '░'
	gaugeWidth   = 20
)

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.round == nil {
		return
	}
	r := g.round
	l := r.Layout()
	frame := r.Frame()
	ox := g.shakeOffset()

	g.drawHUD(dst, frame)
	g.drawPhrase(dst, 1)
	g.drawGauge(dst, 2, frame)

	arena := l.Arena
	arena.X += ox
	dst.DrawBox(arena)
	dst.DrawHLineColored(l.Inner.X+ox, int(l.FailLineY), l.Inner.W, FailLineChar, core.ColorDanger)

	plateColor := core.ColorPlate
	switch {
	case frame.Overdrive:
		plateColor = core.ColorBrightCyan
	case frame.Panicking:
		plateColor = core.ColorDanger
	}
	py := int(math.Round(frame.Y))
	cx := l.Inner.X + l.Inner.W/2 + ox
	for y := l.Inner.Y; y < py; y++ {
		dst.SetColored(cx-2, y, PistonChar, core.ColorDarkGray)
		dst.SetColored(cx+2, y, PistonChar, core.ColorDarkGray)
	}
	dst.DrawHLineColored(l.Inner.X+ox, py, l.Inner.W, PlateChar, plateColor)

	g.drawLetters(dst, ox)
	g.drawStatus(dst)

	if g.paused {
		g.drawCenteredMessage(dst, "PAUSED", "Press ESC to resume")
	}
	if res, ok := r.Result(); ok {
		if res.Won {
			g.drawCenteredMessage(dst, "PHRASE COMPLETE",
				fmt.Sprintf("Score %d · %d%% · %.0f WPM · ENTER for the next one", res.Score, res.Accuracy, res.WPM))
		} else {
			g.drawCenteredMessage(dst, "CRUSHED",
				fmt.Sprintf("Score %d · typed %d letters · ENTER to retry", res.Score, res.LettersTyped))
		}
	}
}

func (g *Game) drawHUD(dst *core.Screen, frame FramePayload) {
	r := g.round
	left := fmt.Sprintf(" %s  Stage %d  Score %d  Combo x%d  Errors %d",
		strings.ToUpper(string(r.Difficulty())), r.Stage(), g.State().Score, frame.Combo, r.errors)
	dst.DrawText(0, 0, left)

	right := strings.ToUpper(frame.State.String())
	color := core.ColorGray
	switch {
	case frame.Overdrive:
		right, color = "OVERDRIVE", core.ColorBrightCyan
	case frame.State == Awakened:
		color = core.ColorBrightRed
	case frame.State != Dormant:
		color = core.ColorYellow
	}
	dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(right)-1, 0, right, color)
}

// drawPhrase draws the phrase with typed, current and pending parts colored.
func (g *Game) drawPhrase(dst *core.Screen, y int) {
	r := g.round
	x0 := max((dst.Width()-len(r.text))/2, 0)
	for i, ch := range r.text {
		color := core.ColorPending
		switch {
		case i < r.typedIndex:
			color = core.ColorTyped
		case i == r.typedIndex:
			color = core.ColorBrightYellow
		}
		dst.SetColored(x0+i, y, ch, color)
	}
}

func (g *Game) drawGauge(dst *core.Screen, y int, frame FramePayload) {
	filled := core.Clamp(int(math.Round(frame.Percent/100*gaugeWidth)), 0, gaugeWidth)
	bar := strings.Repeat(string(GaugeFull), filled) + strings.Repeat(string(GaugeEmpty), gaugeWidth-filled)
	text := fmt.Sprintf("Crusher %s %3.0f%%", bar, math.Max(frame.Percent, 0))
	color := core.ColorGray
	if frame.Panicking {
		color = core.ColorDanger
	}
	dst.DrawTextColored((dst.Width()-utf8.RuneCountInString(text))/2, y, text, color)
}

func (g *Game) drawLetters(dst *core.Screen, ox int) {
	showOrder := g.cfg.Settings.ShowLetterOrder()
	for _, v := range g.round.Letters().Visible() {
		cell := v.Pos.Cell()
		cell.X += ox
		ch := v.Char
		if tilted(v.Angle) {
			ch = unicode.ToLower(ch)
		}
		color := core.ColorLetter
		if v.Penalty {
			color = core.ColorPenalty
		}
		dst.SetColored(cell.X, cell.Y, ch, color)
		if showOrder && !v.Penalty && dst.Get(cell.X+1, cell.Y) == ' ' {
			dst.SetColored(cell.X+1, cell.Y, rune('0'+v.Order%10), core.ColorDarkGray)
		}
	}
}

func (g *Game) drawStatus(dst *core.Screen) {
	y := dst.Height() - 1
	help := "ESC pause · ENTER restart · CTRL+C quit"
	if g.cfg.Settings.MouseOnlyMode() {
		help = "click the letters in order · " + help
	}
	dst.DrawTextColored(1, y, help, core.ColorDarkGray)
	if g.feedback != "" {
		dst.DrawTextColored(dst.Width()-utf8.RuneCountInString(g.feedback)-1, y, g.feedback, core.ColorYellow)
	}
}

// drawCenteredMessage draws a message box in the center of the screen.
func (g *Game) drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	// Calculate box dimensions
	boxW := max(utf8.RuneCountInString(title), utf8.RuneCountInString(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	// Draw box
	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ')
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH))

	// Draw text
	titleX := boxX + (boxW-utf8.RuneCountInString(title))/2
	dst.DrawText(titleX, boxY+1, title)

	subtitleX := boxX + (boxW-utf8.RuneCountInString(subtitle))/2
	dst.DrawText(subtitleX, boxY+3, subtitle)
}

// shakeOffset returns the horizontal jitter while the screen shakes.
func (g *Game) shakeOffset() int {
	if g.shake <= 0 {
		return 0
	}
	if g.shake%2 == 0 {
		return 1
	}
	return -1
}
