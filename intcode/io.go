package intcode

// IO is a stateful read/write session over one machine run. It holds
// the last signal received from the machine, so its State is always one
// of SignalInput (the program wants a value), SignalOutput (a value is
// pending) or SignalHalt (the run is over).
type IO struct {
	m   *Machine
	sig Signal
	val int64
	err error
}

// RunIO restarts the machine and returns a session advanced to the
// first signal.
func (m *Machine) RunIO() *IO {
	m.Restart()
	io := &IO{m: m}
	io.advance()
	return io
}

func (io *IO) advance() {
	if io.err != nil {
		return
	}
	io.sig, io.val, io.err = io.m.Run()
}

// State reports what the session is waiting on. A session whose run
// aborted on a fault reports SignalHalt; the fault is available from
// Err.
func (io *IO) State() Signal {
	if io.err != nil {
		return SignalHalt
	}
	return io.sig
}

// Err returns the error that ended the run, if any.
func (io *IO) Err() error { return io.err }

// Write supplies the given values in order. Each value must be awaited
// by the program: writing while the session is not in the input state
// is a protocol violation.
func (io *IO) Write(vs ...int64) error {
	for _, v := range vs {
		if io.err != nil {
			return io.err
		}
		if io.sig != SignalInput {
			return ProtocolError("write while not awaiting input")
		}
		if err := io.m.Input(v); err != nil {
			io.err = err
			return err
		}
		io.advance()
	}
	return nil
}

// WriteString supplies s one value per byte, for programs speaking the
// ASCII text protocol.
func (io *IO) WriteString(s string) error {
	vs := make([]int64, len(s))
	for i := 0; i < len(s); i++ {
		vs[i] = int64(s[i])
	}
	return io.Write(vs...)
}

// Read returns the pending output value. Reading while no output is
// pending is a protocol violation.
func (io *IO) Read() (int64, error) {
	if io.err != nil {
		return 0, io.err
	}
	if io.sig != SignalOutput {
		return 0, ProtocolError("read while no output pending")
	}
	v := io.val
	io.advance()
	return v, nil
}

// ReadAll collects output values until the program requests input or
// halts. Unlike Read it is not an error to call it with no output
// pending; it returns what is there.
func (io *IO) ReadAll() ([]int64, error) {
	return io.ReadN(-1)
}

// ReadN collects at most n output values, stopping early if the program
// requests input or halts. A negative n means no limit.
func (io *IO) ReadN(n int) ([]int64, error) {
	var out []int64
	for io.err == nil && io.sig == SignalOutput && (n < 0 || len(out) < n) {
		out = append(out, io.val)
		io.advance()
	}
	return out, io.err
}

// ReadString collects outputs like ReadAll and decodes them as one byte
// per value.
func (io *IO) ReadString() (string, error) {
	vs, err := io.ReadAll()
	b := make([]byte, len(vs))
	for i, v := range vs {
		b[i] = byte(v)
	}
	return string(b), err
}
