package intcode

import (
	"errors"
	"reflect"
	"testing"
)

func TestRunFixedInput(t *testing.T) {
	// Reads two values, emits their sum, loops.
	m := New([]int64{3, 20, 3, 21, 1, 20, 21, 22, 4, 22, 1105, 1, 0})
	out, err := m.RunFixedInput(1, 2, 15, 45, -100, 99)
	if !errors.Is(err, ErrInputExhausted) {
		t.Fatalf("got %v, want input exhaustion once the inputs run out", err)
	}
	if want := []int64{3, 60, -1}; !reflect.DeepEqual(out, want) {
		t.Errorf("outputs are %v, want %v", out, want)
	}
}

func TestRunFixedInputHalts(t *testing.T) {
	m := New([]int64{3, 11, 3, 12, 1, 11, 12, 13, 4, 13, 99})
	out, err := m.RunFixedInput(6, 7)
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{13}; !reflect.DeepEqual(out, want) {
		t.Errorf("outputs are %v, want %v", out, want)
	}
}

// The control driver feeds its current control value to every input
// request, and the caller may replace that value between outputs.
func TestRunControl(t *testing.T) {
	m := New([]int64{3, 31, 1, 30, 31, 30, 4, 30, 1105, 1, 0})
	m.Name = "turbo"
	c := m.RunControl(1)

	for _, step := range []struct {
		send *int64
		want int64
	}{
		{nil, 1},
		{nil, 2},
		{nil, 3},
		{ctrl(5), 8},
		{nil, 13},
		{nil, 18},
		{ctrl(3), 21},
		{ctrl(-1), 20},
		{nil, 19},
		{nil, 18},
		{ctrl(-10), 8},
		{nil, -2},
		{ctrl(1), -1},
		{nil, 0},
		{ctrl(0), 0},
		{nil, 0},
		{nil, 0},
	} {
		var (
			got int64
			ok  bool
			err error
		)
		if step.send != nil {
			got, ok, err = c.Send(*step.send)
		} else {
			got, ok, err = c.Next()
		}
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("control driver stopped early")
		}
		if got != step.want {
			t.Fatalf("got %d, want %d", got, step.want)
		}
	}
}

func TestRunControlHalts(t *testing.T) {
	m := New([]int64{3, 5, 4, 5, 99, 0})
	c := m.RunControl(7)
	v, ok, err := c.Next()
	if err != nil || !ok || v != 7 {
		t.Fatalf("got %d, %v, %v, want 7", v, ok, err)
	}
	if _, ok, err := c.Next(); ok || err != nil {
		t.Errorf("got ok=%v, err=%v after halt, want a clean stop", ok, err)
	}
}

func ctrl(v int64) *int64 { return &v }
