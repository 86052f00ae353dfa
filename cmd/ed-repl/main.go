// ed-repl is an interactive demo of the line-storage engine. It drives
// a single editing session with a tiny command language over stdin.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ludoplex/ed"
	"go.uber.org/zap"
)

// REPL holds the state of the interactive session.
type REPL struct {
	buf    *ed.Buffer
	reader *bufio.Reader
}

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	dir := flag.String("dir", "", "scratch directory (default $TMPDIR)")
	flag.Parse()

	var log *zap.Logger
	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot build logger: %v\n", err)
			os.Exit(2)
		}
		log = l
	}

	buf, err := ed.New(ed.Options{Dir: *dir, Logger: log})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open scratch store: %v\n", err)
		os.Exit(2)
	}

	fmt.Println("ed-repl - Line Storage Engine Demo")
	fmt.Println("Type 'help' for available commands, 'q' to quit")
	fmt.Println()

	repl := &REPL{
		buf:    buf,
		reader: bufio.NewReader(os.Stdin),
	}

	for {
		fmt.Printf("%d> ", repl.buf.Addr())
		input, err := repl.reader.ReadString('\n')
		if err != nil {
			fmt.Println("\nGoodbye!")
			break
		}

		input = strings.TrimSuffix(input, "\n")
		if input == "" {
			continue
		}
		if !repl.dispatch(input) {
			break
		}
	}

	if err := repl.buf.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "close: %v\n", err)
		os.Exit(1)
	}
}

// dispatch runs one command, returning false when the session ends.
func (r *REPL) dispatch(input string) bool {
	cmd, rest, _ := strings.Cut(input, " ")

	switch cmd {
	case "help":
		r.help()

	case "a": // append after the current line
		if _, err := r.buf.Append(rest); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

	case "i": // i <n> <text>: append after line n
		nStr, text, _ := strings.Cut(rest, " ")
		n, err := strconv.Atoi(nStr)
		if err != nil {
			fmt.Println("Usage: i <line> <text>")
			return true
		}
		if err := r.buf.SetAddr(n); err != nil {
			fmt.Printf("Error: %v\n", err)
			return true
		}
		if _, err := r.buf.Append(text); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

	case "p": // print all lines
		for ord := 1; ord <= r.buf.LastAddr(); ord++ {
			text, err := r.buf.Line(ord)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				return true
			}
			fmt.Printf("%4d  %s\n", ord, text)
		}

	case "l": // l <n>: print one line
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			fmt.Println("Usage: l <line>")
			return true
		}
		text, err := r.buf.Line(n)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return true
		}
		fmt.Println(text)

	case "d": // d <from> [to]: delete a line range
		fields := strings.Fields(rest)
		if len(fields) == 0 || len(fields) > 2 {
			fmt.Println("Usage: d <from> [to]")
			return true
		}
		from, err := strconv.Atoi(fields[0])
		if err != nil {
			fmt.Println("Usage: d <from> [to]")
			return true
		}
		to := from
		if len(fields) == 2 {
			if to, err = strconv.Atoi(fields[1]); err != nil {
				fmt.Println("Usage: d <from> [to]")
				return true
			}
		}
		if err := r.buf.Delete(from, to); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

	case "=": // current and last address
		fmt.Printf("current=%d last=%d\n", r.buf.Addr(), r.buf.LastAddr())

	case "g": // g <n>: move the current line
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil {
			fmt.Println("Usage: g <line>")
			return true
		}
		if err := r.buf.SetAddr(n); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

	case "q":
		return false

	case "Q": // Q [status]: emergency exit, scratch file still removed
		status := 1
		if n, err := strconv.Atoi(strings.TrimSpace(rest)); err == nil {
			status = n
		}
		r.buf.EmergencyExit(status)

	default:
		fmt.Printf("Unknown command %q, type 'help'\n", cmd)
	}
	return true
}

func (r *REPL) help() {
	fmt.Println("Commands:")
	fmt.Println("  a <text>       append a line after the current line")
	fmt.Println("  i <n> <text>   append a line after line n (0 = before first)")
	fmt.Println("  p              print all lines")
	fmt.Println("  l <n>          print line n")
	fmt.Println("  d <from> [to]  delete a line range")
	fmt.Println("  g <n>          set the current line")
	fmt.Println("  =              show current and last line numbers")
	fmt.Println("  q              quit (removes the scratch file)")
	fmt.Println("  Q [status]     emergency exit (scratch file still removed)")
}
