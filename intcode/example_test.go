package intcode_test

import (
	"fmt"
	"log"

	"github.com/mlv/icvm/intcode"
)

// Five copies of an amplifier program are chained in series: each one
// reads a phase setting and the previous amplifier's signal, and emits
// the boosted signal.
func Example_amplifierChain() {
	tape := []int64{3, 15, 3, 16, 1002, 16, 10, 16, 1, 16, 15, 15, 4, 15, 99, 0, 0}

	signal := int64(0)
	for _, phase := range []int64{4, 3, 2, 1, 0} {
		out, err := intcode.New(tape).RunFixedInput(phase, signal)
		if err != nil {
			log.Fatal(err)
		}
		signal = out[0]
	}
	fmt.Println(signal)
	// Output: 43210
}

// The same idea with a feedback loop: the machines run concurrently in
// program order, driven round-robin in a single goroutine, with the
// last amplifier's output looping back into the first.
func Example_feedbackLoop() {
	tape := []int64{
		3, 26, 1001, 26, -4, 26, 3, 27, 1002, 27, 2, 27, 1, 27, 26,
		27, 4, 27, 1001, 28, -1, 28, 1005, 28, 6, 99, 0, 0, 5,
	}

	ios := make([]*intcode.IO, 5)
	for i, phase := range []int64{9, 8, 7, 6, 5} {
		ios[i] = intcode.New(tape).RunIO()
		if err := ios[i].Write(phase); err != nil {
			log.Fatal(err)
		}
	}

	signal := int64(0)
	for ios[len(ios)-1].State() != intcode.SignalHalt {
		for _, io := range ios {
			if err := io.Write(signal); err != nil {
				log.Fatal(err)
			}
			v, err := io.Read()
			if err != nil {
				log.Fatal(err)
			}
			signal = v
		}
	}
	fmt.Println(signal)
	// Output: 139629729
}
