package main

import (
	"errors"
	"log"

	"github.com/mlv/icvm/intcode"
)

// StateKind tells a debugger StateFunc why it is being called.
type StateKind int

const (
	ClearState StateKind = iota // execution resumed, clear any status
	PauseState                  // paused at instruction granularity
	BreakState                  // stopped at a breakpoint
	HaltState                   // program halted or faulted
)

// StateFunc receives the machine after a state change. The machine may
// be inspected from the callback but never driven.
type StateFunc func(m *intcode.Machine, k StateKind)

// Runner drives one machine against a console, accepting program swaps
// and debugger commands from other goroutines.
type Runner struct {
	con   *console
	dev   bool
	trace bool
	state StateFunc
	ctrl  chan ctrlMsg
}

type ctrlMsg struct {
	cmd  string
	arg  int64
	tape []int64
}

func NewRunner(con *console, devMode, trace bool, state StateFunc) *Runner {
	return &Runner{
		con:   con,
		dev:   devMode,
		trace: trace,
		state: state,
		ctrl:  make(chan ctrlMsg),
	}
}

// newMachine constructs a machine for tape, with its trace hook routed
// to the log when tracing is on.
func (r *Runner) newMachine(tape []int64) *intcode.Machine {
	m := intcode.New(tape)
	if r.trace {
		m.Logf = log.Printf
	}
	return m
}

// Swap replaces the running program with a fresh run of tape.
func (r *Runner) Swap(tape []int64) {
	if !r.dev {
		panic("Swap called while not running in dev mode")
	}
	r.ctrl <- ctrlMsg{cmd: "swap", tape: tape}
}

// Debug queues a debugger command:
// step, cont, pause, break N, nobreak, in N, reset, exit.
func (r *Runner) Debug(cmd string, arg int64) {
	r.ctrl <- ctrlMsg{cmd: cmd, arg: arg}
}

var errExit = errors.New("exit")

// Run executes tape until the program halts, or until an exit command
// in dev mode.
func (r *Runner) Run(tape []int64) error {
	s := &session{
		r:      r,
		tape:   tape,
		m:      r.newMachine(tape),
		breaks: make(map[int64]bool),
	}
	for {
		if s.halted && !r.dev {
			return s.err
		}
		var err error
		if s.paused || s.halted {
			err = s.apply(<-r.ctrl)
		} else {
			select {
			case msg := <-r.ctrl:
				err = s.apply(msg)
			default:
				err = s.exec()
			}
		}
		if err == errExit {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// session is the state of one program run inside a Runner.
type session struct {
	r      *Runner
	tape   []int64
	m      *intcode.Machine
	breaks map[int64]bool
	paused bool
	halted bool
	await  bool // suspended waiting for an input value
	err    error
}

// exec advances the machine by one instruction, or delivers one
// awaited console value, blocking until either is possible.
func (s *session) exec() error {
	if s.await {
		select {
		case msg := <-s.r.ctrl:
			return s.apply(msg)
		case v, ok := <-s.r.con.vals:
			if !ok {
				return errors.New("console input closed")
			}
			if err := s.m.Input(v); err != nil {
				return err
			}
			s.await = false
		}
		return nil
	}
	return s.step()
}

func (s *session) step() error {
	sig, v, err := s.m.Step()
	switch sig {
	case intcode.SignalInput:
		s.await = true
	case intcode.SignalOutput:
		s.r.con.write(v)
	case intcode.SignalHalt:
		s.halted, s.err = true, err
		if err != nil && s.r.dev {
			log.Printf("intcode: %v", err)
		}
		s.report(HaltState)
		return nil
	}
	if s.breaks[s.m.Head()] && !s.paused {
		s.paused = true
		s.report(BreakState)
	}
	return nil
}

func (s *session) apply(msg ctrlMsg) error {
	switch msg.cmd {
	case "exit":
		return errExit
	case "swap":
		s.tape = msg.tape
		s.m = s.r.newMachine(msg.tape)
		s.halted, s.await, s.err = false, false, nil
		s.report(ClearState)
		log.Printf("run: swap (%d cells)", len(msg.tape))
	case "reset":
		s.m.Restart()
		s.halted, s.await, s.err = false, false, nil
		s.report(ClearState)
		log.Print("run: reset")
	case "step", "s":
		s.paused = true
		switch {
		case s.halted:
			log.Print("run: halted")
		case s.await:
			// Deliver a queued value if there is one.
			select {
			case v, ok := <-s.r.con.vals:
				if !ok {
					return errors.New("console input closed")
				}
				if err := s.m.Input(v); err != nil {
					return err
				}
				s.await = false
			default:
				log.Print("run: awaiting input (use: in <value>)")
			}
		default:
			if err := s.step(); err != nil {
				return err
			}
		}
		if !s.halted {
			s.report(PauseState)
		}
	case "cont", "c":
		s.paused = false
		s.report(ClearState)
	case "pause", "p":
		s.paused = true
		s.report(PauseState)
	case "break", "b":
		s.breaks[msg.arg] = true
		log.Printf("run: break at %d", msg.arg)
	case "nobreak":
		s.breaks = make(map[int64]bool)
		log.Print("run: cleared breaks")
	case "in":
		s.r.con.push(msg.arg)
	default:
		log.Printf("run: unknown command %q", msg.cmd)
	}
	return nil
}

func (s *session) report(k StateKind) {
	if s.r.state != nil {
		s.r.state(s.m, k)
	}
}
