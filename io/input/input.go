// SPDX-License-Identifier: Unlicense OR MIT

/*
Package input abstracts the devices that drive widgets: pointers
(mouse, touch), hardware buttons mapped to screen points, encoders
and keypads.

Widgets receive the active device together with the signal that it
produced and query it for positions, drag vectors and fling
projections.
*/
package input

import (
	"image"
	"math"
	"time"

	"embedui.org/internal/fling"
)

// Kind is the type of an input device.
type Kind uint8

const (
	KindNone Kind = iota
	// KindPointer reports absolute screen positions and drags.
	KindPointer
	// KindButton maps hardware buttons to fixed screen points.
	KindButton
	// KindKeypad sends control key codes to the focused widget.
	KindKeypad
	// KindEncoder steps the focused widget and toggles edit mode.
	KindEncoder
)

// Axis is a scroll direction.
type Axis uint8

const (
	Horizontal Axis = iota
	Vertical
)

// Device is the contract widgets use to query the active input
// device.
type Device interface {
	// Kind reports the device type.
	Kind() Kind
	// Point returns the last reported screen position. Only valid
	// for pointer and button devices.
	Point() image.Point
	// Vector returns the movement since the last report.
	Vector() image.Point
	// ThrowPredict projects how far the gesture released at this
	// moment would travel along axis before settling.
	ThrowPredict(axis Axis) int
}

// Pointer is a Device fed by absolute position samples. It tracks the
// drag vector and estimates fling velocity from the sample history.
type Pointer struct {
	point   image.Point
	vector  image.Point
	pressed bool

	estX, estY fling.Extrapolation
}

// Kind implements Device.
func (p *Pointer) Kind() Kind {
	return KindPointer
}

// Point implements Device.
func (p *Pointer) Point() image.Point {
	return p.point
}

// Vector implements Device.
func (p *Pointer) Vector() image.Point {
	return p.vector
}

// ThrowPredict implements Device.
func (p *Pointer) ThrowPredict(axis Axis) int {
	var est fling.Estimate
	switch axis {
	case Horizontal:
		est = p.estX.Estimate()
	case Vertical:
		est = p.estY.Estimate()
	}
	return int(math.Round(float64(est.Distance)))
}

// Press records the start of a gesture at pt.
func (p *Pointer) Press(t time.Duration, pt image.Point) {
	p.estX = fling.Extrapolation{}
	p.estY = fling.Extrapolation{}
	p.estX.Sample(t, float32(pt.X))
	p.estY.Sample(t, float32(pt.Y))
	p.point = pt
	p.vector = image.Point{}
	p.pressed = true
}

// Move records a new position for an ongoing gesture.
func (p *Pointer) Move(t time.Duration, pt image.Point) {
	if !p.pressed {
		return
	}
	p.estX.Sample(t, float32(pt.X))
	p.estY.Sample(t, float32(pt.Y))
	p.vector = pt.Sub(p.point)
	p.point = pt
}

// Release ends the gesture.
func (p *Pointer) Release(t time.Duration, pt image.Point) {
	p.Move(t, pt)
	p.pressed = false
}

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindPointer:
		return "Pointer"
	case KindButton:
		return "Button"
	case KindKeypad:
		return "Keypad"
	case KindEncoder:
		return "Encoder"
	default:
		panic("invalid Kind")
	}
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("invalid Axis")
	}
}
