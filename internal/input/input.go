// Package input turns raw terminal read chunks into logical key actions.
package input

const (
	keyCtrlC     = 0x03
	keyBackspace = 0x08
	keyLF        = 0x0a
	keyCR        = 0x0d
	keyEscape    = 0x1b
	keyDelete    = 0x7f
)

// Action is the logical effect of one input chunk.
type Action int

const (
	Ignore Action = iota
	Exit
	Confirm
	MoveUp
	MoveDown
	Delete
	Insert
)

func (a Action) String() string {
	switch a {
	case Exit:
		return "exit"
	case Confirm:
		return "confirm"
	case MoveUp:
		return "up"
	case MoveDown:
		return "down"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "ignore"
	}
}

// Key is a decoded chunk. Char is set only for Insert.
type Key struct {
	Action Action
	Char   string
}

// Decode classifies a single read chunk. The checks run in a fixed priority
// order and only the first matching action is produced.
func Decode(chunk []byte) Key {
	if len(chunk) == 0 {
		return Key{Action: Ignore}
	}
	first := chunk[0]
	switch {
	case first == keyCtrlC, first == 'q', len(chunk) == 1 && first == keyEscape:
		return Key{Action: Exit}
	case first == keyCR, first == keyLF:
		return Key{Action: Confirm}
	}
	if dir, ok := arrow(chunk); ok {
		return Key{Action: dir}
	}
	switch {
	case first == keyDelete, first == keyBackspace:
		return Key{Action: Delete}
	case first >= 0x20 && first <= 0x7e:
		return Key{Action: Insert, Char: string(first)}
	}
	return Key{Action: Ignore}
}

// arrow recognises ESC [ A/B and the application-cursor form ESC O A/B.
func arrow(chunk []byte) (Action, bool) {
	if len(chunk) < 3 || chunk[0] != keyEscape {
		return Ignore, false
	}
	if chunk[1] != '[' && chunk[1] != 'O' {
		return Ignore, false
	}
	switch chunk[2] {
	case 'A':
		return MoveUp, true
	case 'B':
		return MoveDown, true
	}
	return Ignore, false
}
