package main

import (
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/mlv/icvm/intcode"
)

// watchMode runs the program at tapeFile, reloading and restarting it
// whenever the file changes. With debug enabled the terminal becomes a
// debugger and console I/O is routed through its log pane; instruction
// traces follow the log there too.
func watchMode(ascii, debug, trace bool, seed []int64, tapeFile string) error {
	tapeFile = filepath.Clean(tapeFile)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(tapeFile)); err != nil {
		return err
	}

	var (
		state StateFunc
		in    io.Reader = os.Stdin
		out   io.Writer = os.Stdout
		dbg   *debugView
	)
	if debug {
		dbg = newDebugView()
		state = dbg.StateFunc
		// The debugger owns the terminal; console input arrives via
		// the "in" command and -in seeds instead of stdin.
		in, out = nil, dbg.log
		log.SetPrefix("")
		log.SetOutput(dbg.log)
	}
	con := newConsole(ascii, in, out, seed)
	runner := NewRunner(con, true, trace, state)
	if dbg != nil {
		dbg.run = runner
		go func() {
			if err := dbg.Run(); err != nil {
				log.Fatalf("debug: %v", err)
			}
			log.SetOutput(os.Stderr)
			log.SetPrefix("icvm: ")
			runner.Debug("exit", 0)
		}()
	}

	tapeCh := make(chan []int64)
	go func() {
		started := false
		load := time.After(1 * time.Millisecond)
		for {
			select {
			case <-load:
				log.Printf("watch: load %s", filepath.Base(tapeFile))
				tape, err := intcode.LoadTape(tapeFile)
				if err != nil {
					log.Printf("watch: %v", err)
					break
				}
				if !started {
					log.Print("watch: start")
					tapeCh <- tape
					started = true
				} else {
					runner.Swap(tape)
				}
			case ev := <-watcher.Event:
				if ev.Name == tapeFile && !ev.IsAttrib() {
					load = time.After(100 * time.Millisecond)
				}
			case err := <-watcher.Error:
				log.Printf("watch: watcher: %v", err)
			}
		}
	}()
	return runner.Run(<-tapeCh)
}
