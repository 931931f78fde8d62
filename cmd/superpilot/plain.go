package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	superpilot "github.com/James-HoneyBadger/Super-PILOT"
	"github.com/James-HoneyBadger/Super-PILOT/runtime"
	"github.com/James-HoneyBadger/Super-PILOT/turtle"
	"github.com/goforj/godump"
)

// runPlain executes a program against stdin/stdout with no TUI.
func runPlain(cfg appConfig) error {
	in, err := superpilot.Load(cfg.program)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	applyLimits(in, cfg)

	in.SetOutputHook(func(line string) {
		fmt.Println(line)
	})

	reader := bufio.NewReader(os.Stdin)
	_, err = in.Execute()
	for err == nil && in.Phase() == runtime.PhaseAwaitingInput {
		fmt.Print("? ")
		line, rerr := reader.ReadString('\n')
		if rerr != nil && rerr != io.EOF {
			return rerr
		}
		in.ProvideInput(strings.TrimRight(line, "\r\n"))
		_, err = in.Execute()
	}

	if cfg.dump {
		dumpState(in)
	}
	return err
}

// stateSnapshot is what -dump shows after the run.
type stateSnapshot struct {
	Phase      runtime.Phase
	Vars       map[string]float64
	StringVars map[string]string
	Turtle     turtle.State
	Output     []string
}

func dumpState(in *runtime.Interpreter) {
	godump.Dump(stateSnapshot{
		Phase:      in.Phase(),
		Vars:       in.Vars(),
		StringVars: in.StringVars(),
		Turtle:     *in.Turtle(),
		Output:     in.Output(),
	})
}
