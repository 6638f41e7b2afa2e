package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction is what a key press means to the pet screen.
type KeyAction int

const (
	KeyActionNone   KeyAction = iota
	KeyActionEdit             // pass the key to the input line
	KeyActionSubmit           // send the input line
	KeyActionClear            // discard the input line
	KeyActionQuit             // leave immediately
)

// KeyMapper translates Bubble Tea key messages for the pet screen.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key press. When the input line is empty the command
// letters act at once and the returned line holds the command to send;
// otherwise keys edit the line until enter.
func (km *KeyMapper) MapKey(msg tea.KeyMsg, lineEmpty bool) (KeyAction, string) {
	key := msg.String()

	switch key {
	case "ctrl+c":
		return KeyActionQuit, ""
	case "enter":
		return KeyActionSubmit, ""
	case "esc":
		return KeyActionClear, ""
	}

	if lineEmpty {
		switch key {
		case "f", "F", "p", "P", "s", "S", "q", "Q":
			return KeyActionSubmit, key
		case " ":
			return KeyActionNone, ""
		}
	}
	return KeyActionEdit, ""
}
