package core

import "strings"

// Command is a semantic player intent, abstracted from the key or line that produced it.
type Command int

const (
	CommandNone  Command = iota
	CommandFeed          // f
	CommandPlay          // p
	CommandSleep         // s
	CommandQuit          // q, Ctrl+C
	CommandSay           // any other text, shown as a message
)

// String returns a human-readable name for the command.
func (c Command) String() string {
	switch c {
	case CommandNone:
		return "None"
	case CommandFeed:
		return "Feed"
	case CommandPlay:
		return "Play"
	case CommandSleep:
		return "Sleep"
	case CommandQuit:
		return "Quit"
	case CommandSay:
		return "Say"
	default:
		return "Unknown"
	}
}

// Input is one queued command together with its raw text.
type Input struct {
	Command Command
	Text    string
}

// ParseInput maps a line of player input to a command (case-insensitive).
// Anything that is not f, p, s or q becomes CommandSay carrying the text;
// a blank line is CommandNone.
func ParseInput(line string) Input {
	text := strings.TrimSpace(line)
	switch strings.ToLower(text) {
	case "":
		return Input{Command: CommandNone}
	case "f":
		return Input{Command: CommandFeed, Text: text}
	case "p":
		return Input{Command: CommandPlay, Text: text}
	case "s":
		return Input{Command: CommandSleep, Text: text}
	case "q":
		return Input{Command: CommandQuit, Text: text}
	default:
		return Input{Command: CommandSay, Text: text}
	}
}
