// Command transcript runs a program headlessly and writes the resulting
// output log, variable bindings and turtle segments as JSON. Interactive
// programs take their answers from -inputs; if the queue runs dry the
// run is reported in the awaiting_input phase together with the pending
// request.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	superpilot "github.com/James-HoneyBadger/Super-PILOT"
	"github.com/James-HoneyBadger/Super-PILOT/turtle"
)

type transcript struct {
	Phase      string             `json:"phase"`
	Output     []string           `json:"output"`
	Vars       map[string]float64 `json:"vars"`
	StringVars map[string]string  `json:"string_vars"`
	Segments   []turtle.Segment   `json:"segments"`
	Pending    *pendingRequest    `json:"pending,omitempty"`
	Error      string             `json:"error,omitempty"`
}

type pendingRequest struct {
	Prompt   string `json:"prompt"`
	Variable string `json:"variable"`
}

func main() {
	in := flag.String("in", "", "program file path")
	out := flag.String("out", "", "output file path (default stdout)")
	inputs := flag.String("inputs", "", "comma separated answers for input requests")
	timeLimit := flag.Duration("time-limit", 0, "wall clock limit (0 keeps the default)")
	flag.Parse()

	if *in == "" {
		fmt.Fprintln(os.Stderr, "usage: transcript -in <program> [-out <file>] [-inputs a,b,c]")
		os.Exit(2)
	}
	src, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read failed: %v\n", err)
		os.Exit(1)
	}
	vm, err := superpilot.Load(string(src))
	if err != nil {
		fmt.Fprintf(os.Stderr, "load failed: %v\n", err)
		os.Exit(1)
	}
	vm.SetLimits(0, *timeLimit)
	if *inputs != "" {
		for _, v := range strings.Split(*inputs, ",") {
			vm.EnqueueInput(strings.TrimSpace(v))
		}
	}

	output, runErr := vm.Execute()
	t := transcript{
		Phase:      string(vm.Phase()),
		Output:     output,
		Vars:       vm.Vars(),
		StringVars: vm.StringVars(),
		Segments:   vm.Turtle().Segments,
	}
	if req, ok := vm.Pending(); ok {
		t.Pending = &pendingRequest{Prompt: req.Prompt, Variable: req.Variable}
	}
	if runErr != nil {
		t.Error = runErr.Error()
	}

	data, err := json.MarshalIndent(t, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "encode failed: %v\n", err)
		os.Exit(1)
	}
	data = append(data, '\n')
	if *out == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(*out, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "write failed: %v\n", err)
		os.Exit(1)
	}
}
