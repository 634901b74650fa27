package main

import (
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/mlv/icvm/intcode"
)

// debugView is a terminal debugger for a Runner. The left pane shows
// watched memory cells, the right pane the log, the status bar the
// machine state, and the bottom line accepts commands:
//
//	step  cont  pause  break <addr>  nobreak  watch <addr>
//	in <value>  reset  exit
type debugView struct {
	run *Runner

	log   *tview.TextView
	watch *tview.TextView
	state *tview.TextView
	input *tview.InputField
	cols  *tview.Flex
	rows  *tview.Flex
	app   *tview.Application

	mu      sync.Mutex
	watches []int64
}

func newDebugView() *debugView {
	d := &debugView{
		log: tview.NewTextView().
			SetMaxLines(1000),
		watch: tview.NewTextView().
			SetWrap(false).
			SetTextAlign(tview.AlignRight),
		state: tview.NewTextView().
			SetWrap(false),
		input: tview.NewInputField(),
		cols:  tview.NewFlex(),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.watch.SetBackgroundColor(tcell.ColorDarkBlue)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.cols.
		AddItem(d.watch, 0, 1, false).
		AddItem(d.log, 0, 2, false)
	d.rows.
		AddItem(d.cols, 0, 1, false).
		AddItem(d.state, 3, 0, false).
		AddItem(d.input, 1, 0, true)
	d.app.SetRoot(d.rows, true)

	d.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		line := d.input.GetText()
		if line == "" {
			return
		}
		d.input.SetText("")
		if line == "exit" {
			d.app.Stop()
			return
		}
		cmd, arg, ok := strings.Cut(line, " ")
		if !ok {
			d.run.Debug(cmd, 0)
			return
		}
		v, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			log.Printf("debug: bad argument %q", arg)
			return
		}
		switch cmd {
		case "w", "watch":
			d.mu.Lock()
			d.watches = append(d.watches, v)
			d.mu.Unlock()
			log.Printf("debug: watching [%d]", v)
		default:
			d.run.Debug(cmd, v)
		}
	})
	return d
}

func (d *debugView) Run() error { return d.app.Run() }

func (d *debugView) StateFunc(m *intcode.Machine, k StateKind) {
	var (
		watch = d.watchContent(m)
		state string
	)
	if k != ClearState {
		state = stateMsg(m, k)
	}
	d.app.QueueUpdateDraw(func() {
		switch k {
		case ClearState:
			d.state.SetTextColor(tcell.ColorBlack)
			d.state.SetBackgroundColor(tcell.ColorDarkGrey)
		case BreakState:
			d.state.SetTextColor(tcell.ColorYellow)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case PauseState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkBlue)
		case HaltState:
			d.state.SetTextColor(tcell.ColorWhite)
			d.state.SetBackgroundColor(tcell.ColorDarkRed)
		}
		d.watch.SetText(watch)
		d.state.SetText(state)
	})
}

func stateMsg(m *intcode.Machine, k StateKind) string {
	kind := "       "
	switch k {
	case BreakState:
		kind = "[break]"
	case PauseState:
		kind = "[pause]"
	case HaltState:
		kind = "[HALT!]"
	}
	next := "-"
	if m.Halted() {
		next = "HALT"
		if err := m.Err(); err != nil {
			next = err.Error()
		}
	} else if in, err := m.PeekInstr(); err == nil {
		next = in.String()
	}
	return fmt.Sprintf("head=%-6d %s %s\ntick=%d rbase=%d\n",
		m.Head(), kind, next, m.Tick(), m.RBase())
}

func (d *debugView) watchContent(m *intcode.Machine) string {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b strings.Builder
	for _, addr := range d.watches {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%d] %d", addr, m.At(addr))
	}
	return b.String()
}
