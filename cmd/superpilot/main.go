package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	configPath := flag.String("config", "", "optional YAML config file")
	plain := flag.Bool("plain", false, "run on stdin/stdout without the TUI")
	dump := flag.Bool("dump", false, "dump final interpreter state after a plain run (implies -plain)")
	maxIter := flag.Int("max-iterations", 0, "override the fetch-execute ceiling")
	timeLimit := flag.Duration("time-limit", 0, "override the wall-clock ceiling")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: superpilot [flags] program")
		flag.PrintDefaults()
		os.Exit(2)
	}

	fileCfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	cfg := appConfig{
		programPath:   flag.Arg(0),
		plain:         *plain || *dump || fileCfg.Plain,
		dump:          *dump,
		maxIterations: fileCfg.MaxIterations,
	}
	if *maxIter > 0 {
		cfg.maxIterations = *maxIter
	}
	if fileCfg.TimeLimit != "" {
		d, err := time.ParseDuration(fileCfg.TimeLimit)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: bad time_limit: %v\n", err)
			os.Exit(1)
		}
		cfg.timeLimit = d
	}
	if *timeLimit > 0 {
		cfg.timeLimit = *timeLimit
	}

	src, err := os.ReadFile(cfg.programPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read program: %v\n", err)
		os.Exit(1)
	}
	cfg.program = string(src)

	if cfg.plain {
		if err := runPlain(cfg); err != nil {
			fmt.Fprintf(os.Stderr, "run: %v\n", err)
			os.Exit(1)
		}
		return
	}

	p := tea.NewProgram(newModel(cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tui: %v\n", err)
		os.Exit(1)
	}
}
