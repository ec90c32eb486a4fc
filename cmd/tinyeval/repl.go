package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"golang.org/x/term"

	"github.com/sourcecrate/tinyeval/pkg/tinyeval"
)

func printBanner(e *tinyeval.Evaluator) {
	width := 40
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	fmt.Println(strings.Repeat("-", width))
	fmt.Printf("tinyeval REPL  session %s\n", uuid.NewString())
	fmt.Printf("%s built-ins loaded. :persist NAME, :load NAME, :quit\n", humanize.Comma(int64(len(e.Global()))))
	fmt.Println(strings.Repeat("-", width))
}

func runREPL(e *tinyeval.Evaluator) {
	printBanner(e)

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("> ")
		line, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			if runMeta(e, line) {
				return
			}
			continue
		}

		v, err := e.Eval(line)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			continue
		}
		fmt.Println(v.Display())
	}
}

// runMeta handles a leading-":" REPL command, parsed with shell-word
// splitting so a quoted name or path may contain spaces. It reports
// whether the REPL should exit.
func runMeta(e *tinyeval.Evaluator, line string) bool {
	words, err := shellquote.Split(line[1:])
	if err != nil || len(words) == 0 {
		fmt.Println("error: malformed meta-command")
		return false
	}

	switch words[0] {
	case "quit", "exit":
		return true

	case "persist":
		if len(words) != 2 {
			fmt.Println("usage: :persist NAME")
			return false
		}
		if err := e.PersistGlobal(words[1]); err != nil {
			fmt.Printf("error: %v\n", err)
		}

	case "load":
		if len(words) != 2 {
			fmt.Println("usage: :load NAME")
			return false
		}
		if err := e.LoadGlobal(words[1]); err != nil {
			fmt.Printf("error: %v\n", err)
		}

	default:
		fmt.Printf("unknown meta-command: %s\n", words[0])
	}
	return false
}
