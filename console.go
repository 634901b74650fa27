package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
)

// console connects a machine's input and output values to a
// line-oriented terminal. In ascii mode values are bytes of the text
// protocol; otherwise it reads and writes one decimal value per line.
type console struct {
	ascii bool
	out   io.Writer
	vals  chan int64
}

// newConsole returns a console that delivers the seed values first and
// then anything read from in. A nil in means no terminal is attached
// and values arrive only via seed and push.
func newConsole(ascii bool, in io.Reader, out io.Writer, seed []int64) *console {
	c := &console{ascii: ascii, out: out, vals: make(chan int64, len(seed)+64)}
	for _, v := range seed {
		c.vals <- v
	}
	if in != nil {
		go c.read(in)
	}
	return c
}

func (c *console) read(in io.Reader) {
	defer close(c.vals)
	br := bufio.NewReader(in)
	for {
		line, err := br.ReadString('\n')
		if c.ascii {
			for i := 0; i < len(line); i++ {
				c.vals <- int64(line[i])
			}
		} else if s := strings.TrimSpace(line); s != "" {
			v, perr := strconv.ParseInt(s, 10, 64)
			if perr != nil {
				log.Printf("console: ignoring %q", s)
			} else {
				c.vals <- v
			}
		}
		if err != nil {
			if err != io.EOF {
				log.Printf("console: %v", err)
			}
			return
		}
	}
}

// push delivers an input value from somewhere other than the terminal.
func (c *console) push(v int64) { c.vals <- v }

func (c *console) write(v int64) {
	if c.ascii && v >= 0 && v < 128 {
		fmt.Fprintf(c.out, "%c", v)
		return
	}
	// Values beyond the text protocol are typically a program's final
	// answer; print them as numbers either way.
	fmt.Fprintf(c.out, "%d\n", v)
}
