//go:build js && wasm

package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"syscall/js"

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
	Error      string             `json:"error,omitempty"`
}

type inputRequestPayload struct {
	Prompt        string `json:"prompt"`
	Variable      string `json:"variable"`
	PreferNumeric bool   `json:"prefer_numeric"`
}

const abortSentinel = "__SUPERPILOT_ABORT__"

// inputPrompt asks the host page for one input value via the global
// superpilotInputNext function. A missing function or the abort sentinel
// leaves the request unsatisfied so the run suspends.
func inputPrompt(req runtime.InputRequest) (string, bool) {
	fn := js.Global().Get("superpilotInputNext")
	if fn.Type() != js.TypeFunction {
		return "", false
	}
	payload := inputRequestPayload{
		Prompt:        req.Prompt,
		Variable:      req.Variable,
		PreferNumeric: req.PreferNumeric,
	}
	b, _ := json.Marshal(payload)
	v := fn.Invoke(string(b))
	if v.IsUndefined() || v.IsNull() {
		return "", false
	}
	out := strings.TrimSpace(v.String())
	if out == abortSentinel {
		return "", false
	}
	return out, true
}

func runProgram(this js.Value, args []js.Value) any {
	var result runResult
	if len(args) < 1 {
		result.Error = "runProgram requires program source text"
		b, _ := json.Marshal(result)
		return string(b)
	}

	var queued []string
	if len(args) > 1 && strings.TrimSpace(args[1].String()) != "" {
		_ = json.Unmarshal([]byte(args[1].String()), &queued)
	}

	in, err := superpilot.Load(args[0].String())
	if err != nil {
		result.Error = fmt.Sprintf("load: %v", err)
		b, _ := json.Marshal(result)
		return string(b)
	}
	if len(queued) > 0 {
		in.EnqueueInput(queued...)
	}
	in.SetInputProvider(inputPrompt)

	out, err := in.Execute()
	result.Outputs = out
	result.Vars = in.Vars()
	result.StringVars = in.StringVars()
	result.Segments = in.Turtle().Segments
	result.Phase = string(in.Phase())
	if err != nil {
		result.Error = fmt.Sprintf("runtime: %v", err)
	}

	b, _ := json.Marshal(result)
	return string(b)
}

func main() {
	js.Global().Set("superpilotRun", js.FuncOf(runProgram))
	select {}
}
