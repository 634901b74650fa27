package intcode

// RunThrough restarts the machine and runs a program that performs no
// I/O, returning the final memory image. A program that requests input
// or emits output is reported as a protocol violation.
func (m *Machine) RunThrough() ([]int64, error) {
	m.Restart()
	sig, _, err := m.Run()
	if err != nil {
		return nil, err
	}
	if sig != SignalHalt {
		return nil, ProtocolError("program performed I/O during a run-through")
	}
	return m.Memory(), nil
}

// RunOutputs restarts the machine and collects outputs until the
// program halts. A program that requests input is left suspended and
// the outputs so far are returned.
func (m *Machine) RunOutputs() ([]int64, error) {
	return m.RunIO().ReadAll()
}

// RunFixedInput restarts the machine and runs it with the given inputs,
// returning every output produced before the halt. If the program
// requests more inputs than were supplied the run is abandoned with
// ErrInputExhausted.
func (m *Machine) RunFixedInput(in ...int64) ([]int64, error) {
	io := m.RunIO()
	var out []int64
	for {
		switch io.State() {
		case SignalOutput:
			v, err := io.Read()
			if err != nil {
				return out, err
			}
			out = append(out, v)
		case SignalInput:
			if len(in) == 0 {
				return out, ErrInputExhausted
			}
			if err := io.Write(in[0]); err != nil {
				return out, err
			}
			in = in[1:]
		case SignalHalt:
			return out, io.Err()
		}
	}
}

// Control drives a machine whose inputs are all drawn from a single
// control value that the caller may replace between outputs.
type Control struct {
	io   *IO
	ctrl int64
}

// RunControl restarts the machine and returns a Control seeded with the
// initial control value.
func (m *Machine) RunControl(initial int64) *Control {
	return &Control{io: m.RunIO(), ctrl: initial}
}

// Next returns the next output, feeding the current control value to
// every input request on the way. ok is false once the program halts.
func (c *Control) Next() (v int64, ok bool, err error) {
	for {
		switch c.io.State() {
		case SignalOutput:
			v, err = c.io.Read()
			return v, err == nil, err
		case SignalInput:
			if err = c.io.Write(c.ctrl); err != nil {
				return 0, false, err
			}
		case SignalHalt:
			return 0, false, c.io.Err()
		}
	}
}

// Send replaces the control value and returns the next output.
func (c *Control) Send(ctrl int64) (int64, bool, error) {
	c.ctrl = ctrl
	return c.Next()
}
