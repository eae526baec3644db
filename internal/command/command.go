// Package command interprets pager keystrokes: an optional decimal repeat
// count followed by a single-key command.
package command

import (
	"math"
	"time"

	"github.com/baaaaaaaka/cellview/internal/keys"
	"github.com/baaaaaaaka/cellview/internal/viewport"
)

type Action int

const (
	ActIdle Action = iota
	ActDigit
	ActScrollDown
	ActScrollUp
	ActShiftRight
	ActShiftLeft
	ActHome
	ActEnd
	ActPageDown
	ActPageUp
	ActQuit
	ActSingleStep
	ActContinuous
	ActToggleNumbers
	ActRedraw
	ActBell
)

var actionNames = map[Action]string{
	ActIdle:          "idle",
	ActDigit:         "digit",
	ActScrollDown:    "scroll-down",
	ActScrollUp:      "scroll-up",
	ActShiftRight:    "shift-right",
	ActShiftLeft:     "shift-left",
	ActHome:          "home",
	ActEnd:           "end",
	ActPageDown:      "page-down",
	ActPageUp:        "page-up",
	ActQuit:          "quit",
	ActSingleStep:    "single-step",
	ActContinuous:    "continuous",
	ActToggleNumbers: "toggle-numbers",
	ActRedraw:        "redraw",
	ActBell:          "bell",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

type PollMode int

const (
	// PollContinuous polls for input without waiting and keeps redrawing.
	PollContinuous PollMode = iota
	// PollBlocking waits for the next key.
	PollBlocking
	// PollTimed waits at most Poll.Timeout for a key.
	PollTimed
)

func (m PollMode) String() string {
	switch m {
	case PollBlocking:
		return "blocking"
	case PollTimed:
		return "timed"
	default:
		return "continuous"
	}
}

type Poll struct {
	Mode    PollMode
	Timeout time.Duration
}

// halfDelayUnit is the tick of a counted single-step command: "5s" waits
// half a second for input.
const halfDelayUnit = 100 * time.Millisecond

// Pending is the state carried between keystrokes.
type Pending struct {
	Count    int
	Counting bool
	LastKey  keys.Key
}

type Result struct {
	Action Action
	Key    keys.Key
	// N is the resolved repeat count, at least 1.
	N    int
	Quit bool
	// Bell asks the surrounding system to ring the terminal bell.
	Bell bool
	// Redraw asks for a full repaint of the terminal.
	Redraw bool
	// PollChanged is set when Poll holds a new input mode.
	PollChanged bool
	Poll        Poll
}

// Interpreter is a two-state machine: Idle, or Accumulating a count.
type Interpreter struct {
	pending Pending
	poll    Poll
}

func New(singleStep bool) *Interpreter {
	in := &Interpreter{pending: Pending{LastKey: keys.None}}
	if singleStep {
		in.poll = Poll{Mode: PollBlocking}
	}
	return in
}

func (in *Interpreter) Pending() Pending { return in.pending }

func (in *Interpreter) Accumulating() bool { return in.pending.Counting }

func (in *Interpreter) Poll() Poll { return in.poll }

// Feed consumes one key and returns what the caller must do. Every key has
// an outcome; unmapped keys resolve to ActBell.
func (in *Interpreter) Feed(k keys.Key) Result {
	if k == keys.None {
		return Result{Action: ActIdle, Key: k, N: 1}
	}
	if k.IsDigit() {
		in.pending.Count = appendDigit(in.pending.Count, k.Digit())
		in.pending.Counting = true
		return Result{Action: ActDigit, Key: k, N: max(1, in.pending.Count)}
	}

	counted := in.pending.Counting && in.pending.Count > 0
	n := 1
	if counted {
		n = in.pending.Count
	}
	res := Result{Action: dispatch(k), Key: k, N: n}
	switch res.Action {
	case ActQuit:
		res.Quit = true
	case ActBell:
		res.Bell = true
	case ActRedraw:
		res.Redraw = true
	case ActSingleStep:
		if counted {
			in.poll = Poll{Mode: PollTimed, Timeout: satDuration(n)}
		} else {
			in.poll = Poll{Mode: PollBlocking}
		}
		res.PollChanged = true
		res.Poll = in.poll
	case ActContinuous:
		in.poll = Poll{Mode: PollContinuous}
		res.PollChanged = true
		res.Poll = in.poll
	}

	in.pending.Count = 0
	in.pending.Counting = false
	if res.Action != ActBell {
		in.pending.LastKey = k
	}
	return res
}

func dispatch(k keys.Key) Action {
	switch k {
	case 'n', keys.Down, keys.Enter, '\n':
		return ActScrollDown
	case 'p', keys.Up:
		return ActScrollUp
	case 'r', keys.Right:
		return ActShiftRight
	case 'l', keys.Left:
		return ActShiftLeft
	case 'h', keys.Home:
		return ActHome
	case 'e', keys.End:
		return ActEnd
	case 'f', keys.PgDn, keys.Ctrl('D'):
		return ActPageDown
	case 'b', keys.PgUp, keys.Ctrl('U'), keys.Backspace:
		return ActPageUp
	case 'q', 'Q':
		return ActQuit
	case 's':
		return ActSingleStep
	case ' ':
		return ActContinuous
	case '#':
		return ActToggleNumbers
	case keys.Ctrl('L'):
		return ActRedraw
	default:
		return ActBell
	}
}

// Apply performs the viewport side of a result. It reports whether the
// bell should ring because a left shift hit column zero.
func Apply(v *viewport.Viewport, r Result) bool {
	switch r.Action {
	case ActScrollDown:
		v.ScrollBy(r.N)
	case ActScrollUp:
		v.ScrollBy(-r.N)
	case ActShiftRight:
		v.ShiftBy(r.N)
	case ActShiftLeft:
		if applied := v.ShiftBy(-r.N); applied != -r.N {
			return true
		}
	case ActHome:
		v.ScrollToStart()
	case ActEnd:
		v.ScrollToEnd()
	case ActPageDown:
		v.PageDown(r.N)
	case ActPageUp:
		v.PageUp(r.N)
	case ActToggleNumbers:
		v.ToggleNumbering()
	}
	return false
}

func appendDigit(count, d int) int {
	if count > (math.MaxInt-d)/10 {
		return math.MaxInt
	}
	return count*10 + d
}

func satDuration(n int) time.Duration {
	if int64(n) > int64(math.MaxInt64/halfDelayUnit) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(n) * halfDelayUnit
}
