package main

import (
	"fmt"

	superpilot "github.com/James-HoneyBadger/Super-PILOT"
	"github.com/James-HoneyBadger/Super-PILOT/runtime"
	tea "github.com/charmbracelet/bubbletea"
)

// runInterpreter owns one interpreter on its own goroutine and bridges
// it to the TUI through the events channel. Input suspensions surface as
// prompt messages; the answer flows back on a per-request channel.
func runInterpreter(cfg appConfig, events chan<- tea.Msg) {
	defer close(events)

	in, err := superpilot.Load(cfg.program)
	if err != nil {
		events <- vmDoneMsg{err: fmt.Errorf("load: %w", err)}
		return
	}
	applyLimits(in, cfg)

	in.SetOutputHook(func(line string) {
		events <- vmOutputMsg{line: line}
	})

	_, err = in.Execute()
	for err == nil && in.Phase() == runtime.PhaseAwaitingInput {
		req, _ := in.Pending()
		resp := make(chan string, 1)
		events <- vmPromptMsg{req: req, resp: resp}
		in.ProvideInput(<-resp)
		_, err = in.Execute()
	}
	events <- vmDoneMsg{err: err}
}

func applyLimits(in *runtime.Interpreter, cfg appConfig) {
	if cfg.maxIterations > 0 || cfg.timeLimit > 0 {
		in.SetLimits(cfg.maxIterations, cfg.timeLimit)
	}
}
