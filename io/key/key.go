// SPDX-License-Identifier: Unlicense OR MIT

// Package key contains the control key codes delivered to focused
// widgets.
package key

// Code identifies a control key.
type Code uint8

const (
	CodeNone Code = iota
	CodeUp
	CodeDown
	CodeLeft
	CodeRight
	CodeEnter
	CodeEsc
)

func (c Code) String() string {
	switch c {
	case CodeNone:
		return "None"
	case CodeUp:
		return "Up"
	case CodeDown:
		return "Down"
	case CodeLeft:
		return "Left"
	case CodeRight:
		return "Right"
	case CodeEnter:
		return "Enter"
	case CodeEsc:
		return "Esc"
	default:
		panic("invalid Code")
	}
}
