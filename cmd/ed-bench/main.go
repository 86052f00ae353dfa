// ed-bench exercises the line-storage engine: sequential appends,
// sequential and reverse reads, and random ordinal resolution.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/ludoplex/ed"
)

type benchResult struct {
	Name     string
	Duration time.Duration
	Ops      int
}

func (r benchResult) String() string {
	opsPerSec := float64(r.Ops) / r.Duration.Seconds()
	return fmt.Sprintf("%-30s %12v  (%d ops, %.0f ops/sec)",
		r.Name, r.Duration.Round(time.Millisecond), r.Ops, opsPerSec)
}

func main() {
	lines := flag.Int("lines", 100000, "number of lines to append")
	width := flag.Int("width", 60, "bytes per line")
	flag.Parse()

	buf, err := ed.New(ed.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot open scratch store: %v\n", err)
		os.Exit(2)
	}
	defer buf.Close()

	fmt.Println("ed-bench - Line Storage Engine")
	fmt.Printf("Lines: %d, width: %d bytes\n\n", *lines, *width)

	text := strings.Repeat("x", *width)
	var results []benchResult

	run := func(name string, ops int, fn func() error) {
		start := time.Now()
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			buf.EmergencyExit(1)
		}
		results = append(results, benchResult{Name: name, Duration: time.Since(start), Ops: ops})
	}

	run("sequential append", *lines, func() error {
		for i := 0; i < *lines; i++ {
			if _, err := buf.Append(text); err != nil {
				return err
			}
		}
		return nil
	})

	run("sequential read", *lines, func() error {
		for ord := 1; ord <= *lines; ord++ {
			if _, err := buf.Line(ord); err != nil {
				return err
			}
		}
		return nil
	})

	run("reverse read", *lines, func() error {
		for ord := *lines; ord >= 1; ord-- {
			if _, err := buf.Line(ord); err != nil {
				return err
			}
		}
		return nil
	})

	const randomReads = 10000
	run("random read", randomReads, func() error {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < randomReads; i++ {
			if _, err := buf.Line(1 + rng.Intn(*lines)); err != nil {
				return err
			}
		}
		return nil
	})

	run("random resolve (no i/o)", randomReads, func() error {
		reg := buf.Registry()
		rng := rand.New(rand.NewSource(43))
		for i := 0; i < randomReads; i++ {
			if _, err := reg.NodeAt(1 + rng.Intn(*lines)); err != nil {
				return err
			}
		}
		return nil
	})

	fmt.Println("Results:")
	for _, r := range results {
		fmt.Println("  " + r.String())
	}
}
