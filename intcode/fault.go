package intcode

import (
	"errors"
	"fmt"
)

// Fault is returned when the machine aborts execution. It records the
// decoded opcode, the address of the instruction, and the tick count so
// that a malformed program can be diagnosed.
type Fault struct {
	FaultCode
	Op   Op
	Addr int64
	Tick int64
}

func (f Fault) Error() string {
	return fmt.Sprintf("%s executing %s at %d (tick %d)", f.FaultCode, f.Op, f.Addr, f.Tick)
}

// FaultCode signifies the type of condition that aborted execution.
type FaultCode int

const (
	NegativeAddress  FaultCode = iota // memory access below address zero
	UnknownOpcode                     // instruction is not a defined opcode
	UnknownMode                       // operand mode digit outside 0..2
	InvalidWriteMode                  // write target operand in immediate mode
	Overflow                          // arithmetic result exceeds the cell width
)

func (c FaultCode) String() string {
	if s, ok := map[FaultCode]string{
		NegativeAddress:  "negative address",
		UnknownOpcode:    "unknown opcode",
		UnknownMode:      "unknown operand mode",
		InvalidWriteMode: "write to immediate operand",
		Overflow:         "arithmetic overflow",
	}[c]; ok {
		return s
	}
	return fmt.Sprintf("unknown fault (%d)", int(c))
}

// ProtocolError reports a call-order violation by the driving code:
// supplying input when none is awaited, a strict read with no output
// pending, or interacting with a machine that has halted.
type ProtocolError string

func (e ProtocolError) Error() string { return "protocol violation: " + string(e) }

// ErrInputExhausted is returned by the fixed-input driver when the
// program requests more inputs than were supplied.
var ErrInputExhausted = errors.New("input exhausted")
