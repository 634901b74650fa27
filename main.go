// Command icvm executes Intcode programs.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime/pprof"
	"strings"

	"github.com/mlv/icvm/intcode"
)

func main() {
	log.SetPrefix("icvm: ")
	log.SetFlags(0)

	var (
		asciiFlag = flag.Bool("ascii", false, "speak the ASCII text protocol on stdin/stdout")
		inFlag    = flag.String("in", "", "comma-separated inputs supplied before console input")
		watchFlag = flag.Bool("watch", false, "re-run the program whenever the tape file changes")
		debugFlag = flag.Bool("debug", false, "enable debugger (implies -watch)")
		traceFlag = flag.Bool("trace", false, "log every instruction executed")

		cpuProfileFlag = flag.String("cpu_profile", "", "write CPU profile to `file`")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [-ascii] [-in 1,2,3] <program.txt>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "       %s [-ascii] <-watch | -debug> <program.txt>\n", os.Args[0])
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	if flag.NArg() != 1 {
		flag.Usage()
	}

	seed, err := intcode.ParseTape(strings.NewReader(*inFlag))
	if err != nil {
		log.Fatalf("-in: %v", err)
	}

	if *watchFlag || *debugFlag {
		if err := watchMode(*asciiFlag, *debugFlag, *traceFlag, seed, flag.Arg(0)); err != nil {
			log.Fatal(err)
		}
		return
	}

	var cpuProfile io.Closer
	if prof := *cpuProfileFlag; prof != "" {
		f, err := os.Create(prof)
		if err != nil {
			log.Fatalf("creating CPU profile file: %v", err)
		}
		pprof.StartCPUProfile(f)
		cpuProfile = f
	}

	err = run(flag.Arg(0), *asciiFlag, *traceFlag, seed)

	if f := cpuProfile; f != nil {
		pprof.StopCPUProfile()
		f.Close()
	}

	if err != nil {
		log.Fatal(err)
	}
}

func run(tapeFile string, ascii, trace bool, seed []int64) error {
	tape, err := intcode.LoadTape(tapeFile)
	if err != nil {
		return err
	}
	con := newConsole(ascii, os.Stdin, os.Stdout, seed)
	return NewRunner(con, false, trace, nil).Run(tape)
}
