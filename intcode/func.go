package intcode

// FuncOption configures a function wrapper.
type FuncOption func(*funcSpec)

type funcSpec struct {
	out        int
	init       []int64
	restarting bool
}

// OutCount limits each call to the next n outputs. The default is to
// collect outputs until the program requests input again or halts.
func OutCount(n int) FuncOption {
	return func(s *funcSpec) { s.out = n }
}

// Init supplies a fixed prefix of inputs fed to the program before any
// call arguments. A restarting wrapper replays the prefix on every
// call.
func Init(vs ...int64) FuncOption {
	return func(s *funcSpec) { s.init = vs }
}

// Restarting makes the wrapper construct a fresh run from the tape on
// every call, so calls are pure, repeatable queries against the same
// program. Without it the wrapper drives a single run, and a call after
// the program has halted is a protocol violation.
func Restarting() FuncOption {
	return func(s *funcSpec) { s.restarting = true }
}

// Func exposes the machine as a callable taking integer arguments and
// returning the outputs the program answers with.
func (m *Machine) Func(opts ...FuncOption) func(args ...int64) ([]int64, error) {
	var spec funcSpec
	for _, opt := range opts {
		opt(&spec)
	}

	if spec.restarting {
		return func(args ...int64) ([]int64, error) {
			io := m.RunIO()
			if err := io.Write(spec.init...); err != nil {
				return nil, err
			}
			return call(io, &spec, args)
		}
	}

	io := m.RunIO()
	err := io.Write(spec.init...)
	return func(args ...int64) ([]int64, error) {
		if err != nil {
			return nil, err
		}
		return call(io, &spec, args)
	}
}

func call(io *IO, spec *funcSpec, args []int64) ([]int64, error) {
	if err := io.Write(args...); err != nil {
		return nil, err
	}
	if spec.out > 0 {
		return io.ReadN(spec.out)
	}
	return io.ReadAll()
}

// ScalarFunc is Func for programs that answer each call with a single
// value.
func (m *Machine) ScalarFunc(opts ...FuncOption) func(args ...int64) (int64, error) {
	return Scalar(m.Func(append(opts, OutCount(1))...))
}

// Scalar adapts a function wrapper to return one value per call.
func Scalar(f func(...int64) ([]int64, error)) func(...int64) (int64, error) {
	return func(args ...int64) (int64, error) {
		vs, err := f(args...)
		if err != nil {
			return 0, err
		}
		if len(vs) == 0 {
			return 0, ProtocolError("program produced no output")
		}
		return vs[0], nil
	}
}
