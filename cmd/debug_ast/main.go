package main

import (
	"flag"
	"fmt"
	"os"

	superpilot "github.com/James-HoneyBadger/Super-PILOT"
	"github.com/James-HoneyBadger/Super-PILOT/parser"
)

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: debug_ast <program file>")
		os.Exit(2)
	}
	src, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}
	prog, err := parser.ParseProgram(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse failed: %v\n", err)
		os.Exit(1)
	}
	vm, err := superpilot.Load(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}

	labels := make(map[int]string, len(prog.Labels))
	for name, idx := range prog.Labels {
		labels[idx] = name
	}

	fmt.Printf("lines=%d labels=%d\n", len(prog.Lines), len(prog.Labels))
	for i, line := range prog.Lines {
		num := "    -"
		if line.Number != nil {
			num = fmt.Sprintf("%5d", *line.Number)
		}
		lbl := ""
		if name, ok := labels[i]; ok {
			lbl = " <" + name + ">"
		}
		fmt.Printf("%3d %s %-5s%s %s\n", i, num, vm.Classify(line.Text), lbl, line.Text)
	}
}
