package intcode

import (
	"errors"
	"reflect"
	"testing"
)

// A repeater: reads a value, emits it, loops.
func TestIORepeater(t *testing.T) {
	m := New([]int64{3, 7, 4, 7, 1105, 1, 0, 0})
	m.Name = "repeater"
	io := m.RunIO()
	for _, v := range []int64{0, 5, -42} {
		if got := io.State(); got != SignalInput {
			t.Fatalf("state is %v, want input", got)
		}
		if err := io.Write(v); err != nil {
			t.Fatal(err)
		}
		if got := io.State(); got != SignalOutput {
			t.Fatalf("state is %v, want output", got)
		}
		got, err := io.Read()
		if err != nil {
			t.Fatal(err)
		}
		if got != v {
			t.Errorf("read %d, want %d", got, v)
		}
	}
}

// Mixed numeric and text traffic over one session.
func TestIOStrings(t *testing.T) {
	m := New([]int64{
		104, 5,
		104, 3,
		104, 10,
		104, 10,
		104, 66,
		104, 10,
		3, 100,
		3, 101,
		4, 100,
		4, 100,
		4, 101,
		1105, 1, 12,
	})
	io := m.RunIO()

	got, err := io.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{5, 3, 10, 10, 66, 10}; !reflect.DeepEqual(got, want) {
		t.Fatalf("read %v, want %v", got, want)
	}

	if err := io.WriteString("ab"); err != nil {
		t.Fatal(err)
	}
	s, err := io.ReadString()
	if err != nil {
		t.Fatal(err)
	}
	if s != "aab" {
		t.Errorf("read %q, want %q", s, "aab")
	}

	if err := io.Write(666, 777); err != nil {
		t.Fatal(err)
	}
	got, err = io.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{666, 666, 777}; !reflect.DeepEqual(got, want) {
		t.Errorf("read %v, want %v", got, want)
	}
}

func TestIOProtocol(t *testing.T) {
	var perr ProtocolError

	// Reading while the program awaits input is strict...
	io := New([]int64{3, 0, 99}).RunIO()
	if _, err := io.Read(); !errors.As(err, &perr) {
		t.Errorf("read in input state returned %v, want a protocol violation", err)
	}
	// ...but the lenient readers just return nothing.
	if vs, err := io.ReadAll(); err != nil || len(vs) != 0 {
		t.Errorf("ReadAll in input state returned %v, %v", vs, err)
	}

	// Writing while an output is pending.
	io = New([]int64{104, 1, 3, 0, 99}).RunIO()
	if err := io.Write(1); !errors.As(err, &perr) {
		t.Errorf("write in output state returned %v, want a protocol violation", err)
	}

	// A halted session refuses everything but lenient reads.
	io = New([]int64{99}).RunIO()
	if got := io.State(); got != SignalHalt {
		t.Fatalf("state is %v, want halt", got)
	}
	if err := io.Write(1); !errors.As(err, &perr) {
		t.Errorf("write after halt returned %v, want a protocol violation", err)
	}
	if _, err := io.Read(); !errors.As(err, &perr) {
		t.Errorf("read after halt returned %v, want a protocol violation", err)
	}
	if vs, err := io.ReadAll(); err != nil || len(vs) != 0 {
		t.Errorf("ReadAll after halt returned %v, %v", vs, err)
	}
}

func TestIOFault(t *testing.T) {
	io := New([]int64{4, -1, 99}).RunIO()
	if got := io.State(); got != SignalHalt {
		t.Fatalf("state is %v, want halt", got)
	}
	var f Fault
	if !errors.As(io.Err(), &f) || f.FaultCode != NegativeAddress {
		t.Fatalf("Err() = %v, want a negative address fault", io.Err())
	}
	if err := io.Write(1); !errors.As(err, &f) {
		t.Errorf("write after fault returned %v, want the fault", err)
	}
}

func TestIOReadN(t *testing.T) {
	io := New([]int64{104, 1, 104, 2, 104, 3, 99}).RunIO()
	got, err := io.ReadN(2)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{1, 2}; !reflect.DeepEqual(got, want) {
		t.Fatalf("ReadN(2) = %v, want %v", got, want)
	}
	got, err = io.ReadN(5)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{3}; !reflect.DeepEqual(got, want) {
		t.Errorf("ReadN(5) = %v, want %v", got, want)
	}
}
