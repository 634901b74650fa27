package intcode

import "fmt"

// Op represents an Intcode opcode.
type Op int64

const (
	OpAdd       Op = 1
	OpMul       Op = 2
	OpInput     Op = 3
	OpOutput    Op = 4
	OpJumpTrue  Op = 5
	OpJumpFalse Op = 6
	OpLess      Op = 7
	OpEquals    Op = 8
	OpRBase     Op = 9
	OpHalt      Op = 99
)

// Arity returns the number of operands op takes, or -1 if op is not a
// defined opcode.
func (op Op) Arity() int {
	switch op {
	case OpAdd, OpMul, OpLess, OpEquals:
		return 3
	case OpJumpTrue, OpJumpFalse:
		return 2
	case OpInput, OpOutput, OpRBase:
		return 1
	case OpHalt:
		return 0
	}
	return -1
}

// writeOperand returns the index of the operand op writes through,
// or -1 if op writes nothing.
func (op Op) writeOperand() int {
	switch op {
	case OpAdd, OpMul, OpLess, OpEquals:
		return 2
	case OpInput:
		return 0
	}
	return -1
}

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "ADD"
	case OpMul:
		return "MUL"
	case OpInput:
		return "IN"
	case OpOutput:
		return "OUT"
	case OpJumpTrue:
		return "JNZ"
	case OpJumpFalse:
		return "JZ"
	case OpLess:
		return "LT"
	case OpEquals:
		return "EQ"
	case OpRBase:
		return "RBASE"
	case OpHalt:
		return "HALT"
	}
	return fmt.Sprintf("op(%d)", int64(op))
}

// Mode determines how an operand's raw value is interpreted.
type Mode int64

const (
	Position  Mode = 0 // value is an address
	Immediate Mode = 1 // value is used literally
	Relative  Mode = 2 // value is an offset from the relative base
)

func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	}
	return fmt.Sprintf("mode(%d)", int64(m))
}

// Arg is a decoded instruction operand: a raw value and its Mode.
type Arg struct {
	Val  int64
	Mode Mode
}

func (a Arg) String() string {
	switch a.Mode {
	case Immediate:
		return fmt.Sprintf("%d", a.Val)
	case Relative:
		return fmt.Sprintf("[R%+d]", a.Val)
	}
	return fmt.Sprintf("[%d]", a.Val)
}

// Instr is one decoded instruction. Only the first Op.Arity() elements
// of Args are meaningful.
type Instr struct {
	Op   Op
	Args [3]Arg
}

func (in Instr) String() string {
	s := in.Op.String() + "("
	for i := 0; i < in.Op.Arity(); i++ {
		if i > 0 {
			s += ", "
		}
		s += in.Args[i].String()
	}
	return s + ")"
}
