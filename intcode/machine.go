// Package intcode provides an implementation of an Intcode interpreter,
// called Machine, that executes programs encoded as a flat array of
// integers.
//
// A Machine is driven cooperatively: Step and Run report a Signal when
// the program suspends for input, produces an output, or halts, and
// Input resumes a suspended machine. The adapters built on top (IO
// sessions, fixed-input and control drivers, function wrappers) differ
// only in calling convention.
package intcode

import "math"

// Machine is one instance of interpreter state for one tape. The zero
// head and relative base of a fresh run are established by Restart,
// which snapshots the tape into memory; the tape is never mutated.
type Machine struct {
	// Name identifies the machine in trace output.
	Name string
	// Logf, when set, receives one trace line per instruction executed.
	Logf func(format string, args ...any)

	tape  []int64
	mem   []int64
	pc    int64
	rbase int64
	tick  int64
	state runState
	dst   Arg // write target of a suspended input instruction
	err   error
}

type runState int

const (
	ready runState = iota
	running
	awaitingInput
	halted
)

// Signal reports what a machine paused for.
type Signal int

const (
	SignalNone   Signal = iota // instruction retired; nothing observable
	SignalInput                // suspended, awaiting one input value
	SignalOutput               // produced one output value
	SignalHalt                 // halted
)

func (s Signal) String() string {
	switch s {
	case SignalNone:
		return "none"
	case SignalInput:
		return "input"
	case SignalOutput:
		return "output"
	case SignalHalt:
		return "halt"
	}
	return "invalid"
}

// New returns an inert Machine for tape. Memory is materialized from
// the tape by Restart, which the first Step performs implicitly.
func New(tape []int64) *Machine {
	m := &Machine{tape: make([]int64, len(tape))}
	copy(m.tape, tape)
	return m
}

// Restart discards any run in progress. Memory is re-snapshotted from
// the tape and the head, relative base and tick counter are zeroed.
func (m *Machine) Restart() {
	m.mem = make([]int64, len(m.tape))
	copy(m.mem, m.tape)
	m.pc, m.rbase, m.tick = 0, 0, 0
	m.state = ready
	m.dst = Arg{}
	m.err = nil
}

// Head returns the instruction pointer.
func (m *Machine) Head() int64 { return m.pc }

// RBase returns the relative base register.
func (m *Machine) RBase() int64 { return m.rbase }

// Tick returns the number of instructions started so far in this run.
func (m *Machine) Tick() int64 { return m.tick }

// Halted reports whether the machine has halted, cleanly or on a fault.
func (m *Machine) Halted() bool { return m.state == halted }

// Err returns the fault that aborted the run, if any.
func (m *Machine) Err() error { return m.err }

// Memory returns a copy of the current memory image.
func (m *Machine) Memory() []int64 {
	out := make([]int64, len(m.mem))
	copy(out, m.mem)
	return out
}

// At returns the value at addr, or zero if addr lies outside the
// current memory image. It never grows memory; it exists for
// diagnostic display, not program semantics.
func (m *Machine) At(addr int64) int64 {
	if addr < 0 || addr >= int64(len(m.mem)) {
		return 0
	}
	return m.mem[addr]
}

// Step executes a single instruction and reports what the machine is
// now waiting on: SignalInput if it suspended, SignalOutput (and the
// value) if it emitted, SignalHalt if it halted, SignalNone otherwise.
// Stepping a machine that is awaiting input or has already halted is a
// protocol violation.
func (m *Machine) Step() (Signal, int64, error) {
	switch m.state {
	case awaitingInput:
		return SignalInput, 0, ProtocolError("step while awaiting input")
	case halted:
		if m.err != nil {
			return SignalHalt, 0, m.err
		}
		return SignalHalt, 0, ProtocolError("step after halt")
	}
	if m.mem == nil {
		m.Restart()
	}
	m.state = running
	m.tick++
	addr := m.pc
	in, next, err := m.decodeAt(addr)
	if err != nil {
		return SignalHalt, 0, m.abort(err, in.Op, addr)
	}
	m.pc = next
	m.logf("%d %s", addr, in)
	sig, v, err := m.eval(in)
	if err != nil {
		return SignalHalt, 0, m.abort(err, in.Op, addr)
	}
	return sig, v, nil
}

// Run steps the machine until it suspends for input, emits an output,
// or halts.
func (m *Machine) Run() (Signal, int64, error) {
	for {
		sig, v, err := m.Step()
		if sig != SignalNone || err != nil {
			return sig, v, err
		}
	}
}

// Input supplies the value awaited by a suspended machine and resumes
// it. The deferred memory write of the input instruction happens here,
// so a machine dropped mid-suspension has not mutated memory for it.
func (m *Machine) Input(v int64) error {
	if m.state != awaitingInput {
		if m.err != nil {
			return m.err
		}
		return ProtocolError("input while not awaiting input")
	}
	if err := m.storeArg(m.dst, v); err != nil {
		return m.abort(err, OpInput, m.pc-2)
	}
	m.logf("%d input %d -> %s", m.pc-2, v, m.dst)
	m.dst = Arg{}
	m.state = running
	return nil
}

// PeekInstr decodes the instruction at the current head without
// executing it or advancing the head.
func (m *Machine) PeekInstr() (Instr, error) {
	if m.mem == nil {
		m.Restart()
	}
	in, _, err := m.decodeAt(m.pc)
	return in, err
}

// abort records a terminal error, filling in instruction context if it
// is a Fault. The error is sticky: all further interaction returns it.
func (m *Machine) abort(err error, op Op, addr int64) error {
	if f, ok := err.(Fault); ok {
		f.Op, f.Addr, f.Tick = op, addr, m.tick
		err = f
	}
	m.err = err
	m.state = halted
	return err
}

func (m *Machine) decodeAt(pc int64) (in Instr, next int64, err error) {
	raw, err := m.load(pc)
	if err != nil {
		return in, pc, err
	}
	in.Op = Op(raw % 100)
	n := in.Op.Arity()
	if n < 0 {
		return in, pc, Fault{FaultCode: UnknownOpcode}
	}
	modes := raw / 100
	for k := 0; k < n; k++ {
		v, err := m.load(pc + 1 + int64(k))
		if err != nil {
			return in, pc, err
		}
		d := Mode(modes % 10)
		modes /= 10
		if d < Position || d > Relative {
			return in, pc, Fault{FaultCode: UnknownMode}
		}
		in.Args[k] = Arg{Val: v, Mode: d}
	}
	if w := in.Op.writeOperand(); w >= 0 && in.Args[w].Mode == Immediate {
		return in, pc, Fault{FaultCode: InvalidWriteMode}
	}
	return in, pc + 1 + int64(n), nil
}

func (m *Machine) eval(in Instr) (Signal, int64, error) {
	switch in.Op {
	case OpAdd:
		a, b, err := m.values(in)
		if err != nil {
			return 0, 0, err
		}
		sum, ok := addInt64(a, b)
		if !ok {
			return 0, 0, Fault{FaultCode: Overflow}
		}
		return SignalNone, 0, m.storeArg(in.Args[2], sum)
	case OpMul:
		a, b, err := m.values(in)
		if err != nil {
			return 0, 0, err
		}
		prod, ok := mulInt64(a, b)
		if !ok {
			return 0, 0, Fault{FaultCode: Overflow}
		}
		return SignalNone, 0, m.storeArg(in.Args[2], prod)
	case OpInput:
		m.dst = in.Args[0]
		m.state = awaitingInput
		return SignalInput, 0, nil
	case OpOutput:
		v, err := m.value(in.Args[0])
		if err != nil {
			return 0, 0, err
		}
		return SignalOutput, v, nil
	case OpJumpTrue, OpJumpFalse:
		c, err := m.value(in.Args[0])
		if err != nil {
			return 0, 0, err
		}
		if (c != 0) == (in.Op == OpJumpTrue) {
			t, err := m.value(in.Args[1])
			if err != nil {
				return 0, 0, err
			}
			m.pc = t
		}
		return SignalNone, 0, nil
	case OpLess, OpEquals:
		a, b, err := m.values(in)
		if err != nil {
			return 0, 0, err
		}
		var v int64
		if (in.Op == OpLess && a < b) || (in.Op == OpEquals && a == b) {
			v = 1
		}
		return SignalNone, 0, m.storeArg(in.Args[2], v)
	case OpRBase:
		v, err := m.value(in.Args[0])
		if err != nil {
			return 0, 0, err
		}
		m.rbase += v
		return SignalNone, 0, nil
	case OpHalt:
		m.state = halted
		return SignalHalt, 0, nil
	}
	// Unreachable: decodeAt rejects undefined opcodes.
	return 0, 0, Fault{FaultCode: UnknownOpcode}
}

// value resolves an operand according to its mode.
func (m *Machine) value(a Arg) (int64, error) {
	switch a.Mode {
	case Immediate:
		return a.Val, nil
	case Relative:
		return m.load(m.rbase + a.Val)
	}
	return m.load(a.Val)
}

// values resolves the two source operands of a binary instruction.
func (m *Machine) values(in Instr) (a, b int64, err error) {
	if a, err = m.value(in.Args[0]); err != nil {
		return
	}
	b, err = m.value(in.Args[1])
	return
}

func (m *Machine) storeArg(a Arg, v int64) error {
	addr := a.Val
	if a.Mode == Relative {
		addr += m.rbase
	}
	return m.store(addr, v)
}

// load reads the memory cell at addr, growing memory with zeros if addr
// is beyond its current length.
func (m *Machine) load(addr int64) (int64, error) {
	if addr < 0 {
		return 0, Fault{FaultCode: NegativeAddress}
	}
	m.grow(addr)
	return m.mem[addr], nil
}

// store writes the memory cell at addr, growing memory with zeros if
// addr is beyond its current length.
func (m *Machine) store(addr, v int64) error {
	if addr < 0 {
		return Fault{FaultCode: NegativeAddress}
	}
	m.grow(addr)
	m.mem[addr] = v
	return nil
}

func (m *Machine) grow(addr int64) {
	if addr >= int64(len(m.mem)) {
		m.mem = append(m.mem, make([]int64, addr+1-int64(len(m.mem)))...)
	}
}

func (m *Machine) logf(format string, args ...any) {
	if m.Logf == nil {
		return
	}
	if m.Name != "" {
		m.Logf("[%s %d] "+format, append([]any{m.Name, m.tick}, args...)...)
	} else {
		m.Logf("[%d] "+format, append([]any{m.tick}, args...)...)
	}
}

// addInt64 returns a+b, reporting false if the sum does not fit in a
// cell. Cells never wrap silently.
func addInt64(a, b int64) (int64, bool) {
	s := a + b
	if (a > 0 && b > 0 && s < 0) || (a < 0 && b < 0 && s >= 0) {
		return 0, false
	}
	return s, true
}

// mulInt64 returns a*b, reporting false if the product does not fit in
// a cell.
func mulInt64(a, b int64) (int64, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, false
	}
	p := a * b
	if p/b != a {
		return 0, false
	}
	return p, true
}
