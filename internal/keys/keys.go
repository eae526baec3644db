// Package keys defines the key codes the command interpreter understands
// and that terminal surfaces decode raw input into.
package keys

import (
	"fmt"
	"unicode"
)

// Key is either a Unicode code point (control characters included) or one
// of the special keys below, which live above the Unicode range.
type Key rune

// None is reported when a timed read expires without input.
const None Key = -1

const (
	Up Key = unicode.MaxRune + 1 + iota
	Down
	Left
	Right
	Home
	End
	PgUp
	PgDn
	Insert
	Delete
	Backtab
	// Resize reports that the terminal changed size.
	Resize
	// Unknown is an input event with no key code of its own.
	Unknown
	f0
)

const maxFn = 64

const (
	Enter     Key = '\r'
	Backspace Key = 0x7f
)

// Ctrl returns the control key for a letter, e.g. Ctrl('L').
func Ctrl(c byte) Key {
	return Key(c & 0x1f)
}

// Fn returns function key n (1-based).
func Fn(n int) Key {
	if n < 1 || n > maxFn {
		return None
	}
	return f0 + Key(n)
}

func (k Key) IsDigit() bool {
	return k >= '0' && k <= '9'
}

func (k Key) Digit() int {
	return int(k - '0')
}

func (k Key) IsRune() bool {
	return k >= 0 && k <= unicode.MaxRune
}

var specialNames = map[Key]string{
	Up:      "KEY_UP",
	Down:    "KEY_DOWN",
	Left:    "KEY_LEFT",
	Right:   "KEY_RIGHT",
	Home:    "KEY_HOME",
	End:     "KEY_END",
	PgUp:    "KEY_PPAGE",
	PgDn:    "KEY_NPAGE",
	Insert:  "KEY_IC",
	Delete:  "KEY_DC",
	Backtab: "KEY_BTAB",
	Resize:  "KEY_RESIZE",
	Unknown: "KEY_UNKNOWN",
}

// Name renders a key the way curses keyname() does: printable characters as
// themselves, control characters in caret form, special keys by name.
func (k Key) Name() string {
	switch {
	case k == None:
		return ""
	case k == 0x7f:
		return "^?"
	case k >= 0 && k < 0x20:
		return "^" + string(rune(0x40|k))
	case k.IsRune():
		if !unicode.IsPrint(rune(k)) {
			return fmt.Sprintf("\\x%04x", int32(k))
		}
		return string(rune(k))
	}
	if name, ok := specialNames[k]; ok {
		return name
	}
	if k > f0 && k <= f0+maxFn {
		return fmt.Sprintf("KEY_F(%d)", int(k-f0))
	}
	return fmt.Sprintf("\\x%04x", int32(k)&0xffff)
}

func (k Key) String() string { return k.Name() }
