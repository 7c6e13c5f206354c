package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/zephyrtronium/calc"
)

const historyFile = ".calc_history"

var fail = color.New(color.FgRed)

func main() {
	log.SetFlags(0)
	var (
		inname          string
		with            [][2]string
		nl, echo, repl  bool
		greedy, verbose bool
	)
	addwith := func(s string) error {
		d := strings.SplitN(s, "=", 2)
		if len(d) != 2 {
			return fmt.Errorf(`variable definitions must be "name=value", not %q`, s)
		}
		with = append(with, [2]string{strings.TrimSpace(d[0]), strings.TrimSpace(d[1])})
		return nil
	}
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.Func("given", "name=value variable definition (any number of times)", addwith)
	flag.BoolVar(&nl, "n", false, "evaluate separate input lines as separate programs")
	flag.BoolVar(&echo, "echo", false, "print the bracketed form of each program")
	flag.BoolVar(&repl, "i", false, "read programs interactively")
	flag.BoolVar(&greedy, "greedy-signs", false, "attach signs to following names and numbers everywhere")
	flag.BoolVar(&verbose, "v", false, "trace assignments and failed calls to stderr")
	flag.Parse()

	var popts []calc.ParseOption
	if greedy {
		popts = append(popts, calc.GreedySigns())
	}
	logger := zerolog.Nop()
	if verbose {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
	}

	e := calc.NewEvaluator(calc.Logger(logger))
	for _, d := range with {
		nm := d[0]
		vl := d[1]
		r, err := calc.EvalString(vl)
		if err != nil {
			log.Fatalf("setting %s: %v", nm, err)
		}
		if r.Kind() == calc.Error {
			log.Fatalf("setting %s: %v", nm, r.Err())
		}
		e.Set(nm, r)
	}

	if repl {
		os.Exit(interact(e, popts, echo))
	}

	var ins []*bufio.Reader
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		ins = append(ins, f)
	}
	for _, arg := range flag.Args() {
		ins = append(ins, bufio.NewReader(strings.NewReader(arg)))
	}

	var p []string
	for _, in := range ins {
		if nl {
			sc := bufio.NewScanner(in)
			for sc.Scan() {
				if strings.TrimSpace(sc.Text()) != "" {
					p = append(p, sc.Text())
				}
			}
			if err := sc.Err(); err != nil {
				log.Fatal(err)
			}
			continue
		}
		b, err := io.ReadAll(in)
		if err != nil {
			log.Fatal(err)
		}
		p = append(p, string(b))
	}
	logger.Debug().Int("programs", len(p)).Msg("read input")

	status := 0
	for _, src := range p {
		if !show(e, src, popts, echo) {
			status = 1
		}
	}
	os.Exit(status)
}

// show evaluates one program and prints its result. Returns false if the
// program could not be parsed.
func show(e *calc.Evaluator, src string, opts []calc.ParseOption, echo bool) bool {
	if echo {
		if b, err := calc.BracketString(src, opts...); err == nil {
			fmt.Printf("%s : ", strings.ReplaceAll(b, "\n", "; "))
		}
	}
	r, err := e.EvalString(src, opts...)
	if err != nil {
		fail.Fprintln(os.Stderr, err)
		return false
	}
	if r.Kind() == calc.Error {
		fail.Println(r)
		return true
	}
	fmt.Println(r)
	return true
}

// interact runs a read-eval-print loop until EOF. Variables persist between
// lines.
func interact(e *calc.Evaluator, opts []calc.ParseOption, echo bool) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)
	ln.SetCompleter(func(line string) (c []string) {
		i := strings.LastIndexFunc(line, func(r rune) bool {
			return r != '_' && !('0' <= r && r <= '9') && !('a' <= r && r <= 'z') && !('A' <= r && r <= 'Z')
		}) + 1
		if i == len(line) {
			return nil
		}
		for _, name := range e.Vars() {
			if strings.HasPrefix(name, line[i:]) {
				c = append(c, line[:i]+name)
			}
		}
		return c
	})

	home, _ := os.UserHomeDir()
	hist := filepath.Join(home, historyFile)
	if f, err := os.Open(hist); err == nil {
		ln.ReadHistory(f)
		f.Close()
	}

	for {
		line, err := ln.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Print(err)
			}
			fmt.Println()
			break
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		ln.AppendHistory(line)
		show(e, line, opts, echo)
	}

	if f, err := os.Create(hist); err == nil {
		ln.WriteHistory(f)
		f.Close()
	}
	return 0
}

func infile(inname string, std bool) (*bufio.Reader, error) {
	var f *os.File
	switch {
	case inname != "" && inname != "-":
		in, err := os.Open(inname)
		if err != nil {
			return nil, err
		}
		f = in
	case inname == "-", std:
		f = os.Stdin
	}
	if f == nil {
		return nil, nil
	}
	return bufio.NewReader(f), nil
}
