package intcode

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParseTape reads a program encoded as comma-separated decimal
// integers, one or more per line. Empty tokens are skipped; anything
// else must parse as an integer.
func ParseTape(r io.Reader) ([]int64, error) {
	var tape []int64
	sc := bufio.NewScanner(r)
	// Tapes are commonly a single long line.
	sc.Buffer(make([]byte, 0, 64*1024), 1<<24)
	for sc.Scan() {
		for _, tok := range strings.Split(sc.Text(), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			v, err := strconv.ParseInt(tok, 10, 64)
			if err != nil {
				return nil, errors.Wrapf(err, "bad tape value %q", tok)
			}
			tape = append(tape, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading tape")
	}
	return tape, nil
}

// LoadTape reads a program from the named file.
func LoadTape(name string) ([]int64, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, errors.Wrap(err, "loading tape")
	}
	defer f.Close()
	tape, err := ParseTape(f)
	return tape, errors.Wrapf(err, "%s", name)
}
