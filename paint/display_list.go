// Package paint walks a laid-out render tree and produces a
// backend-agnostic list of drawing commands in draw order.
package paint

import (
	"go-view/css/values"
	"go-view/font"
)

// Sink receives drawing commands with pixel coordinates in widget space.
// The origin is top-left with Y growing downward.
type Sink interface {
	FillRect(x, y, w, h float64, c values.Color)
	StrokeRect(x, y, w, h float64, c values.Color)
	FillRoundedRect(x, y, w, h, radius float64, c values.Color)
	Line(x1, y1, x2, y2, thickness float64, c values.Color)
	TextRun(xBaseline, yBaseline float64, text string, face font.Face, sizePx float64, c values.Color)
	PushClip(x, y, w, h float64)
	PopClip()
	PushTranslate(dx, dy float64)
	PopTranslate()
}

// CommandKind tags one recorded command.
type CommandKind int

const (
	CmdFillRect CommandKind = iota
	CmdStrokeRect
	CmdFillRoundedRect
	CmdLine
	CmdTextRun
	CmdPushClip
	CmdPopClip
	CmdPushTranslate
	CmdPopTranslate
)

// Command is one recorded drawing command.
type Command struct {
	Kind       CommandKind
	X, Y, W, H float64
	X2, Y2     float64
	Radius     float64
	Thickness  float64
	Color      values.Color
	Text       string
	Face       font.Face
	Size       float64
}

// DisplayList records commands for later replay; it is also the Sink the
// tests inspect.
type DisplayList struct {
	Commands []Command
}

func (d *DisplayList) FillRect(x, y, w, h float64, c values.Color) {
	d.Commands = append(d.Commands, Command{Kind: CmdFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (d *DisplayList) StrokeRect(x, y, w, h float64, c values.Color) {
	d.Commands = append(d.Commands, Command{Kind: CmdStrokeRect, X: x, Y: y, W: w, H: h, Color: c})
}

func (d *DisplayList) FillRoundedRect(x, y, w, h, radius float64, c values.Color) {
	d.Commands = append(d.Commands, Command{Kind: CmdFillRoundedRect, X: x, Y: y, W: w, H: h, Radius: radius, Color: c})
}

func (d *DisplayList) Line(x1, y1, x2, y2, thickness float64, c values.Color) {
	d.Commands = append(d.Commands, Command{Kind: CmdLine, X: x1, Y: y1, X2: x2, Y2: y2, Thickness: thickness, Color: c})
}

func (d *DisplayList) TextRun(x, y float64, text string, face font.Face, size float64, c values.Color) {
	d.Commands = append(d.Commands, Command{Kind: CmdTextRun, X: x, Y: y, Text: text, Face: face, Size: size, Color: c})
}

func (d *DisplayList) PushClip(x, y, w, h float64) {
	d.Commands = append(d.Commands, Command{Kind: CmdPushClip, X: x, Y: y, W: w, H: h})
}

func (d *DisplayList) PopClip() {
	d.Commands = append(d.Commands, Command{Kind: CmdPopClip})
}

func (d *DisplayList) PushTranslate(dx, dy float64) {
	d.Commands = append(d.Commands, Command{Kind: CmdPushTranslate, X: dx, Y: dy})
}

func (d *DisplayList) PopTranslate() {
	d.Commands = append(d.Commands, Command{Kind: CmdPopTranslate})
}

// Replay feeds the recorded commands into another sink.
func (d *DisplayList) Replay(sink Sink) {
	for _, c := range d.Commands {
		switch c.Kind {
		case CmdFillRect:
			sink.FillRect(c.X, c.Y, c.W, c.H, c.Color)
		case CmdStrokeRect:
			sink.StrokeRect(c.X, c.Y, c.W, c.H, c.Color)
		case CmdFillRoundedRect:
			sink.FillRoundedRect(c.X, c.Y, c.W, c.H, c.Radius, c.Color)
		case CmdLine:
			sink.Line(c.X, c.Y, c.X2, c.Y2, c.Thickness, c.Color)
		case CmdTextRun:
			sink.TextRun(c.X, c.Y, c.Text, c.Face, c.Size, c.Color)
		case CmdPushClip:
			sink.PushClip(c.X, c.Y, c.W, c.H)
		case CmdPopClip:
			sink.PopClip()
		case CmdPushTranslate:
			sink.PushTranslate(c.X, c.Y)
		case CmdPopTranslate:
			sink.PopTranslate()
		}
	}
}
