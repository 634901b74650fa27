package intcode

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestParseTape(t *testing.T) {
	for _, c := range []struct {
		name string
		in   string
		want []int64
	}{
		{"oneLine", "1,2,-3,99", []int64{1, 2, -3, 99}},
		{"multiLine", "1,2\n3,4\n99\n", []int64{1, 2, 3, 4, 99}},
		{"trailingComma", "1,2,99,\n", []int64{1, 2, 99}},
		{"blankLines", "\n1,2\n\n99\n", []int64{1, 2, 99}},
		{"spaces", " 1 , 2 ,99", []int64{1, 2, 99}},
		{"bigValue", "104,1125899906842624,99", []int64{104, 1125899906842624, 99}},
	} {
		t.Run(c.name, func(t *testing.T) {
			got, err := ParseTape(strings.NewReader(c.in))
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("got %v, want %v", got, c.want)
			}
		})
	}
}

func TestParseTapeBadToken(t *testing.T) {
	if _, err := ParseTape(strings.NewReader("1,two,3")); err == nil {
		t.Error("got nil error for a non-numeric token")
	}
}

func TestLoadTape(t *testing.T) {
	name := filepath.Join(t.TempDir(), "prog.txt")
	if err := os.WriteFile(name, []byte("1101,2,3,5,99,0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	tape, err := LoadTape(name)
	if err != nil {
		t.Fatal(err)
	}
	mem, err := New(tape).RunThrough()
	if err != nil {
		t.Fatal(err)
	}
	if want := []int64{1101, 2, 3, 5, 99, 5}; !reflect.DeepEqual(mem, want) {
		t.Errorf("final memory is %v, want %v", mem, want)
	}

	if _, err := LoadTape(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("got nil error for a missing file")
	}
}
