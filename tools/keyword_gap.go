// Command keyword_gap compares the dialect keyword tables in
// runtime/classify.go against a reference command list (one uppercase
// name per line, # comments allowed) and reports the gap both ways.
// Useful when syncing the interpreter with a language reference card.
package main

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
)

func main() {
	referencePath := "docs/commands.txt"
	classifyPath := "runtime/classify.go"
	if len(os.Args) > 1 {
		referencePath = os.Args[1]
	}
	if len(os.Args) > 2 {
		classifyPath = os.Args[2]
	}

	refSet, err := readReference(referencePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read reference list: %v\n", err)
		os.Exit(1)
	}
	knownSet, err := extractKeywords(classifyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read keyword tables: %v\n", err)
		os.Exit(1)
	}

	missing := diff(refSet, knownSet)
	extra := diff(knownSet, refSet)

	fmt.Printf("reference command count: %d\n", len(refSet))
	fmt.Printf("classifier keyword count: %d\n", len(knownSet))
	fmt.Printf("missing in classifier: %d\n", len(missing))
	for _, n := range missing {
		fmt.Println("  - " + n)
	}
	fmt.Printf("extra in classifier: %d\n", len(extra))
	for _, n := range extra {
		fmt.Println("  + " + n)
	}
}

func readReference(path string) (map[string]struct{}, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set := map[string]struct{}{}
	for _, line := range strings.Split(string(b), "\n") {
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.ToUpper(strings.TrimSpace(line))
		if line != "" {
			set[line] = struct{}{}
		}
	}
	return set, nil
}

// extractKeywords pulls every `"NAME": true` entry out of the keyword
// map literals.
func extractKeywords(path string) (map[string]struct{}, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	re := regexp.MustCompile(`"([A-Z0-9_]+)"\s*:\s*true`)
	set := map[string]struct{}{}
	for _, m := range re.FindAllStringSubmatch(string(b), -1) {
		set[m[1]] = struct{}{}
	}
	return set, nil
}

func diff(base, comp map[string]struct{}) []string {
	out := make([]string, 0)
	for n := range base {
		if _, ok := comp[n]; !ok {
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
