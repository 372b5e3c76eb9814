// SPDX-License-Identifier: Unlicense OR MIT

/*
Package widget implements the retained widget objects.

Every widget embeds Obj, the shared base state, and implements the
Widget interface: the Go rendition of a class table with construct,
destruct, draw and signal callbacks. Concrete widgets call the base
behavior (DrawBase, SignalBase) before their own.

All widgets are single threaded: they are mutated only from the
owning event loop, and animations advance only on explicit engine
ticks.
*/
package widget

import (
	"image"

	"embedui.org/draw"
	"embedui.org/io/input"
	"embedui.org/io/key"
	"embedui.org/style"
	"embedui.org/text"
)

// DrawMode selects a phase of the draw pass.
type DrawMode uint8

const (
	// CoverCheck asks whether the widget fully covers the clip
	// area, without painting.
	CoverCheck DrawMode = iota
	// MainDraw paints the widget itself.
	MainDraw
	// PostDraw paints on top of the widget's children.
	PostDraw
)

// DrawRes is the result of a draw call.
type DrawRes uint8

const (
	DrawOK DrawRes = iota
	// DrawCover reports that the widget fully covers the queried
	// area.
	DrawCover
	// DrawNotCover reports that parts of the queried area are left
	// unpainted.
	DrawNotCover
)

// Res is the result of signal processing.
type Res uint8

const (
	ResOK Res = iota
	// ResInvalid means the widget was deleted during processing
	// and must not be touched again.
	ResInvalid
)

// SignalKind enumerates the lifecycle and input signals delivered by
// the widget tree.
type SignalKind uint8

const (
	SignalStyleChanged SignalKind = iota
	SignalCoordChanged
	SignalPressed
	SignalPressing
	SignalReleased
	SignalFocus
	SignalDefocus
	SignalControl
)

// Signal is a signal together with its payload.
type Signal struct {
	Kind SignalKind
	// Device is the input device that produced the signal, for
	// press, release and focus signals.
	Device input.Device
	// Key is the control key for SignalControl.
	Key key.Code
	// Editing reports whether the widget's group is in edit mode,
	// for SignalFocus.
	Editing bool
	// OldSize is the previous widget size for SignalCoordChanged.
	OldSize image.Point
}

// EventKind enumerates the events widgets emit to the application.
type EventKind uint8

const (
	// EventValueChanged reports a new widget value in Event.Value.
	EventValueChanged EventKind = iota
	// EventDrawPartBegin and EventDrawPartEnd bracket the painting
	// of one widget part. Handlers may adjust the styles referenced
	// by the event before the part is painted.
	EventDrawPartBegin
	EventDrawPartEnd
	// EventSizeChanged reports that the widget's content size
	// changed.
	EventSizeChanged
)

// Event is an emitted widget event.
type Event struct {
	Kind EventKind
	// Index identifies the painted part for draw events; for the
	// table it is the linear cell index.
	Index int
	// Rect is the screen rectangle of the painted part.
	Rect image.Rectangle
	// RectStyle and LabelStyle are the descriptors about to be
	// used. Draw hooks may modify them in place.
	RectStyle  *draw.RectStyle
	LabelStyle *draw.LabelStyle
	// Value carries the payload of EventValueChanged.
	Value int
}

// Widget is the polymorphic widget contract.
type Widget interface {
	// Draw runs one draw phase against the canvas.
	Draw(clip image.Rectangle, mode DrawMode, c draw.Canvas) DrawRes
	// Signal delivers a lifecycle or input signal.
	Signal(sig Signal) Res
	// Destroy releases the widget's owned resources. It must be
	// called exactly once.
	Destroy()
}

// Obj is the shared widget base state, embedded by value in every
// concrete widget.
type Obj struct {
	// Coords is the widget rectangle in screen coordinates.
	Coords image.Rectangle
	// Scroll is the content scroll offset in pixels.
	Scroll image.Point
	// Dir is the base text direction.
	Dir text.Dir

	handlers []func(*Event)
}

// On registers an event handler. Handlers run synchronously, in
// registration order.
func (o *Obj) On(h func(*Event)) {
	o.handlers = append(o.handlers, h)
}

// Emit delivers e to all registered handlers.
func (o *Obj) Emit(e *Event) {
	for _, h := range o.handlers {
		h(e)
	}
}

// Width of the widget rectangle.
func (o *Obj) Width() int {
	return o.Coords.Dx()
}

// Height of the widget rectangle.
func (o *Obj) Height() int {
	return o.Coords.Dy()
}

// DrawBase paints the widget background, the shared part of every
// widget's draw callback.
func (o *Obj) DrawBase(clip image.Rectangle, mode DrawMode, c draw.Canvas, main *style.Part) DrawRes {
	switch mode {
	case CoverCheck:
		if main.Bg.A == 0xff && clip.In(o.Coords) {
			return DrawCover
		}
		return DrawNotCover
	case MainDraw:
		rs := main.RectStyle()
		c.Rect(o.Coords, clip, &rs)
	}
	return DrawOK
}

// SignalBase is the shared part of every widget's signal callback.
func (o *Obj) SignalBase(sig Signal) Res {
	return ResOK
}

func (m DrawMode) String() string {
	switch m {
	case CoverCheck:
		return "CoverCheck"
	case MainDraw:
		return "MainDraw"
	case PostDraw:
		return "PostDraw"
	default:
		panic("invalid DrawMode")
	}
}
