package main

import (
	"time"

	"github.com/James-HoneyBadger/Super-PILOT/runtime"
	tea "github.com/charmbracelet/bubbletea"
)

type appConfig struct {
	programPath   string
	program       string
	plain         bool
	dump          bool
	maxIterations int
	timeLimit     time.Duration
}

type vmStartedMsg struct {
	events <-chan tea.Msg
}

type vmOutputMsg struct {
	line string
}

type vmPromptMsg struct {
	req  runtime.InputRequest
	resp chan string
}

type vmDoneMsg struct {
	err error
}

type vmPollMsg struct{}

type pendingInput struct {
	req  runtime.InputRequest
	resp chan string
}
