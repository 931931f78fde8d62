package mobile

import (
	"encoding/json"
	"fmt"
	"strings"

	superpilot "github.com/James-HoneyBadger/Super-PILOT"
	"github.com/James-HoneyBadger/Super-PILOT/runtime"
	"github.com/James-HoneyBadger/Super-PILOT/turtle"
)

type runResult struct {
	Outputs    []string           `json:"outputs"`
	Vars       map[string]float64 `json:"vars,omitempty"`
	StringVars map[string]string  `json:"string_vars,omitempty"`
	Segments   []turtle.Segment   `json:"segments,omitempty"`
	Phase      string             `json:"phase"`
	Pending    string             `json:"pending,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Run executes a program with pre-queued input values and returns a JSON
// result. inputsJSON format: ["1","hello", ...]. When the queue runs dry
// mid-program the result reports the awaiting phase and the variable the
// program asked for, so the host can queue more input and run again.
func Run(source, inputsJSON string) string {
	var result runResult

	var queued []string
	if strings.TrimSpace(inputsJSON) != "" {
		if err := json.Unmarshal([]byte(inputsJSON), &queued); err != nil {
			result.Error = fmt.Sprintf("invalid inputs json: %v", err)
			b, _ := json.Marshal(result)
			return string(b)
		}
	}

	in, err := superpilot.Load(source)
	if err != nil {
		result.Error = fmt.Sprintf("load: %v", err)
		b, _ := json.Marshal(result)
		return string(b)
	}
	if len(queued) > 0 {
		in.EnqueueInput(queued...)
	}

	out, err := in.Execute()
	result.Outputs = out
	result.Vars = in.Vars()
	result.StringVars = in.StringVars()
	result.Segments = in.Turtle().Segments
	result.Phase = string(in.Phase())
	if req, ok := in.Pending(); ok {
		result.Pending = req.Variable
	}
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
	}

	b, _ := json.Marshal(result)
	return string(b)
}

// Phases the host can compare against without importing the runtime.
const (
	PhaseCompleted     = string(runtime.PhaseCompleted)
	PhaseAwaitingInput = string(runtime.PhaseAwaitingInput)
	PhaseHalted        = string(runtime.PhaseHalted)
)
