// Command tinyeval is a thin CLI over the tinyeval embeddable evaluator.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/sourcecrate/tinyeval/internal/store"
	"github.com/sourcecrate/tinyeval/pkg/tinyeval"
)

func main() {
	var (
		evalStr = flag.String("e", "", "evaluate a single expression and print the result")
		file    = flag.String("f", "", "evaluate a file")
		dbPath  = flag.String("db", "", "attach a SQLite store at this path")
	)
	flag.Parse()

	opts := []tinyeval.Option{tinyeval.WithOutput(os.Stdout)}
	if *dbPath != "" {
		s, err := store.NewSQLite(*dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tinyeval: %v\n", err)
			os.Exit(1)
		}
		defer s.Close()
		opts = append(opts, tinyeval.WithStore(s))
	}

	e := tinyeval.New(opts...)
	defer e.Close()

	switch {
	case *evalStr != "":
		runSource(e, *evalStr)
	case *file != "":
		src, err := os.ReadFile(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tinyeval: %v\n", err)
			os.Exit(1)
		}
		runSource(e, string(src))
	case !isatty.IsTerminal(os.Stdin.Fd()):
		src, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "tinyeval: %v\n", err)
			os.Exit(1)
		}
		runSource(e, string(src))
	default:
		runREPL(e)
	}
}

// runSource evaluates src and prints its value, exiting non-zero on error.
func runSource(e *tinyeval.Evaluator, src string) {
	v, err := e.Eval(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tinyeval: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(v.Display())
}
